package nli

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shahyaksh/Multi-Class-Classification-Using-ANLI/pkg/types"
)

// EngineConfig encapsulates all tunables for Engine construction.
type EngineConfig struct {
	// Classifier backend settings; used when Classifier is nil.
	Backend ClassifierConfig
	// Classifier overrides backend construction. Tests inject fakes here.
	Classifier Classifier
	// ModelDir is reported in status; informational only.
	ModelDir string
	// AdapterMerged records whether the loaded weights include a merged
	// low-rank adapter; informational only.
	AdapterMerged bool
}

// Engine holds the loaded classifier and serves predictions. It is created
// once at startup, never mutated afterwards (counters aside), and shared by
// all concurrent requests.
type Engine struct {
	classifier    Classifier
	modelDir      string
	adapterMerged bool
	startTime     time.Time

	predictions atomic.Uint64
	batches     atomic.Uint64

	mu      sync.RWMutex
	lastErr string
	closed  bool
}

// New constructs an Engine. Any backend failure here is fatal: the returned
// error is an init failure and the caller must not serve traffic.
func New(cfg EngineConfig) (*Engine, error) {
	cls := cfg.Classifier
	if cls == nil {
		var err error
		cls, err = NewONNXClassifier(cfg.Backend.withDefaults())
		if err != nil {
			return nil, ErrInitFailure(err)
		}
	}
	return &Engine{
		classifier:    cls,
		modelDir:      cfg.ModelDir,
		adapterMerged: cfg.AdapterMerged,
		startTime:     time.Now(),
	}, nil
}

// Predict classifies one pair. Empty premise or hypothesis strings are
// accepted and still produce a prediction. A failure here leaves the engine
// valid for subsequent calls.
func (e *Engine) Predict(ctx context.Context, p Pair) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	e.mu.RLock()
	closed := e.closed
	e.mu.RUnlock()
	if closed {
		return Result{}, ErrInferenceFailure(errClosed)
	}
	scores, err := e.classifier.Scores(ctx, p.Premise, p.Hypothesis)
	if err != nil {
		if IsDependencyUnavailable(err) {
			e.recordError(err)
			return Result{}, err
		}
		err = ErrInferenceFailure(err)
		e.recordError(err)
		return Result{}, err
	}
	probs := softmax(scores)
	idx := argmax(probs)
	e.predictions.Add(1)
	return Result{
		Prediction: LabelForIndex(idx),
		Confidence: probs[idx],
		Probs:      probs,
	}, nil
}

// PredictBatch classifies each pair independently, preserving input order:
// item i of the output corresponds to pairs[i]. A single failing pair is
// isolated into that item's Err rather than aborting the batch. The top-level
// error is reserved for whole-batch conditions: a canceled context or an
// unavailable backend.
func (e *Engine) PredictBatch(ctx context.Context, pairs []Pair) ([]BatchItem, error) {
	items := make([]BatchItem, len(pairs))
	for i, p := range pairs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := e.Predict(ctx, p)
		if err != nil {
			if IsDependencyUnavailable(err) {
				return nil, err
			}
			items[i] = BatchItem{Pair: p, Err: ErrPairFailure(i, err)}
			continue
		}
		items[i] = BatchItem{Pair: p, Result: res}
	}
	e.batches.Add(1)
	return items, nil
}

// Ready reports whether the engine can serve predictions.
func (e *Engine) Ready() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return !e.closed && e.classifier != nil
}

// Device reports the compute device the classifier is bound to.
func (e *Engine) Device() string {
	if e.classifier == nil {
		return ""
	}
	return e.classifier.Device()
}

// Status builds a status report for the /status endpoint.
func (e *Engine) Status() types.StatusResponse {
	e.mu.RLock()
	lastErr := e.lastErr
	closed := e.closed
	e.mu.RUnlock()
	state := StateReady
	if closed {
		state = StateError
	}
	now := time.Now()
	return types.StatusResponse{
		State:            string(state),
		ModelDir:         e.modelDir,
		Device:           e.Device(),
		AdapterMerged:    e.adapterMerged,
		PredictionsTotal: e.predictions.Load(),
		BatchesTotal:     e.batches.Load(),
		LastError:        lastErr,
		UptimeSeconds:    int64(now.Sub(e.startTime).Seconds()),
		ServerTimeUnix:   now.Unix(),
	}
}

// Close releases the classifier. The engine must not be used afterwards.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.mu.Unlock()
	if e.classifier == nil {
		return nil
	}
	return e.classifier.Close()
}

func (e *Engine) recordError(err error) {
	if err == nil {
		return
	}
	e.mu.Lock()
	e.lastErr = err.Error()
	e.mu.Unlock()
}

// errClosed is returned by predict paths after Close.
var errClosed = errors.New("engine closed")
