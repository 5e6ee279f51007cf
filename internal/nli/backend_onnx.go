//go:build ort

package nli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
	ort "github.com/yalue/onnxruntime_go"
)

// ortBuilt indicates this binary was compiled with real onnxruntime support.
var ortBuilt = true

// ortEnvOnce guards process-wide onnxruntime environment initialization.
// The environment stays alive until process exit; multiple classifiers in one
// process share it.
var ortEnvOnce sync.Once

// onnxClassifier owns the tokenizer and the loaded session. Both are
// immutable after construction; onnxruntime sessions are safe for concurrent
// Run calls, so no locking is needed on the predict path.
type onnxClassifier struct {
	tk      *tokenizer.Tokenizer
	session *ort.DynamicAdvancedSession
	cfg     ClassifierConfig
	device  string
}

// NewONNXClassifier loads the tokenizer and the exported classifier graph and
// binds it to a device. With Device "auto" it tries the CUDA execution
// provider first and falls back to the CPU.
func NewONNXClassifier(cfg ClassifierConfig) (Classifier, error) {
	if strings.TrimSpace(cfg.ModelPath) == "" {
		return nil, errors.New("model path is empty")
	}
	if strings.TrimSpace(cfg.TokenizerPath) == "" {
		return nil, errors.New("tokenizer path is empty")
	}

	tk, err := pretrained.FromFile(cfg.TokenizerPath)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer: %w", err)
	}
	tk.WithTruncation(&tokenizer.TruncationParams{
		MaxLength: cfg.MaxSeqLen,
		Strategy:  tokenizer.LongestFirst,
	})

	if cfg.LibraryPath != "" {
		ort.SetSharedLibraryPath(cfg.LibraryPath)
	}
	var envErr error
	ortEnvOnce.Do(func() { envErr = ort.InitializeEnvironment() })
	if envErr != nil {
		return nil, fmt.Errorf("init onnxruntime: %w", envErr)
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("session options: %w", err)
	}
	defer opts.Destroy()

	device := "cpu"
	if cfg.Device == "cuda" || cfg.Device == "auto" {
		if err := appendCUDA(opts); err != nil {
			if cfg.Device == "cuda" {
				return nil, fmt.Errorf("cuda provider: %w", err)
			}
			// auto: accelerator absent, stay on cpu
		} else {
			device = "cuda"
		}
	}

	session, err := ort.NewDynamicAdvancedSession(
		cfg.ModelPath,
		[]string{cfg.InputIDsName, cfg.AttentionMaskName},
		[]string{cfg.OutputName},
		opts,
	)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	return &onnxClassifier{tk: tk, session: session, cfg: cfg, device: device}, nil
}

func appendCUDA(opts *ort.SessionOptions) error {
	cudaOpts, err := ort.NewCUDAProviderOptions()
	if err != nil {
		return err
	}
	defer cudaOpts.Destroy()
	if err := cudaOpts.Update(map[string]string{"device_id": "0"}); err != nil {
		return err
	}
	return opts.AppendExecutionProviderCUDA(cudaOpts)
}

func (c *onnxClassifier) Scores(ctx context.Context, premise, hypothesis string) ([NumClasses]float32, error) {
	var out [NumClasses]float32
	if c.session == nil {
		return out, errors.New("onnx session not initialized")
	}
	if err := ctx.Err(); err != nil {
		return out, err
	}

	// Joint encoding; the tokenizer truncates the combined pair to MaxSeqLen.
	enc, err := c.tk.EncodePair(premise, hypothesis, true)
	if err != nil {
		return out, fmt.Errorf("tokenize: %w", err)
	}
	n := len(enc.Ids)
	if n == 0 {
		return out, errors.New("tokenizer produced empty encoding")
	}
	ids := make([]int64, n)
	mask := make([]int64, n)
	for i, id := range enc.Ids {
		ids[i] = int64(id)
	}
	for i, m := range enc.AttentionMask {
		mask[i] = int64(m)
	}

	shape := ort.NewShape(1, int64(n))
	idsTensor, err := ort.NewTensor(shape, ids)
	if err != nil {
		return out, fmt.Errorf("input_ids tensor: %w", err)
	}
	defer idsTensor.Destroy()
	maskTensor, err := ort.NewTensor(shape, mask)
	if err != nil {
		return out, fmt.Errorf("attention_mask tensor: %w", err)
	}
	defer maskTensor.Destroy()

	outputs := []ort.Value{nil}
	if err := c.session.Run([]ort.Value{idsTensor, maskTensor}, outputs); err != nil {
		return out, fmt.Errorf("forward pass: %w", err)
	}
	logits, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return out, errors.New("unexpected output tensor type")
	}
	defer logits.Destroy()

	data := logits.GetData()
	if len(data) < NumClasses {
		return out, fmt.Errorf("expected %d logits, got %d", NumClasses, len(data))
	}
	copy(out[:], data[:NumClasses])
	return out, nil
}

func (c *onnxClassifier) Device() string { return c.device }

func (c *onnxClassifier) Close() error {
	if c.session != nil {
		err := c.session.Destroy()
		c.session = nil
		return err
	}
	return nil
}
