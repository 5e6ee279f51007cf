package httpapi

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shahyaksh/Multi-Class-Classification-Using-ANLI/internal/nli"
	"github.com/shahyaksh/Multi-Class-Classification-Using-ANLI/pkg/types"
)

// Service name, version and model description reported by GET / and GET /health.
const (
	ServiceName  = "ANLI NLI Inference API"
	Version      = "1.0.0"
	ModelSummary = "DeBERTa-v3-base fine-tuned on ANLI R2"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Predict(ctx context.Context, p nli.Pair) (nli.Result, error)
	PredictBatch(ctx context.Context, pairs []nli.Pair) ([]nli.BatchItem, error)
	Status() types.StatusResponse
	Device() string
	Ready() bool
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	r.Use(MetricsMiddleware)
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		info := types.ServiceInfo{
			Message: ServiceName,
			Version: Version,
			Model:   ModelSummary,
			Endpoints: map[string]string{
				"predict":       "/predict",
				"batch_predict": "/batch_predict",
				"health":        "/health",
				"status":        "/status",
			},
		}
		if err := json.NewEncoder(w).Encode(info); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
		}
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		resp := types.HealthResponse{
			Status:      "healthy",
			ModelLoaded: svc.Ready(),
			Device:      svc.Device(),
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
		}
	})

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(svc.Status()); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
		}
	})

	r.Post("/predict", func(w http.ResponseWriter, r *http.Request) {
		var req types.PredictRequest
		if !decodeJSONBody(w, r, &req) {
			return
		}
		// Empty premise/hypothesis strings are valid input and still produce
		// a prediction; no non-empty validation here.
		lvl := requestLogLevel(r)
		start := time.Now()
		logStart(r, lvl, "predict")
		ctx, cancel := boundaryContext(r)
		defer cancel()
		res, err := svc.Predict(ctx, nli.Pair{Premise: req.Premise, Hypothesis: req.Hypothesis})
		if err != nil {
			status := mapErrorStatus(r, err)
			if status == 0 {
				return // client disconnect or shutdown
			}
			writeJSONError(w, status, err.Error())
			logEnd(r, lvl, "predict", status, start, err)
			return
		}
		ObservePrediction(string(res.Prediction))
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(toPredictResponse(res)); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
		logEnd(r, lvl, "predict", http.StatusOK, start, nil)
	})

	r.Post("/batch_predict", func(w http.ResponseWriter, r *http.Request) {
		var req types.BatchPredictRequest
		if !decodeJSONBody(w, r, &req) {
			return
		}
		if maxBatchPairs > 0 && len(req.Pairs) > maxBatchPairs {
			writeJSONError(w, http.StatusBadRequest, "too many pairs in batch")
			return
		}
		lvl := requestLogLevel(r)
		start := time.Now()
		logStart(r, lvl, "batch_predict")
		pairs := make([]nli.Pair, len(req.Pairs))
		for i, p := range req.Pairs {
			pairs[i] = nli.Pair{Premise: p.Premise, Hypothesis: p.Hypothesis}
		}
		ctx, cancel := boundaryContext(r)
		defer cancel()
		items, err := svc.PredictBatch(ctx, pairs)
		if err != nil {
			status := mapErrorStatus(r, err)
			if status == 0 {
				return
			}
			writeJSONError(w, status, err.Error())
			logEnd(r, lvl, "batch_predict", status, start, err)
			return
		}
		ObserveBatch(len(items))
		resp := types.BatchPredictResponse{Results: make([]types.BatchResult, len(items))}
		for i, item := range items {
			resp.Results[i] = toBatchResult(item)
			if item.Err == nil {
				ObservePrediction(string(item.Result.Prediction))
			}
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
		logEnd(r, lvl, "batch_predict", http.StatusOK, start, nil)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("loading"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

// decodeJSONBody enforces the content type and body limit, then decodes into
// dst. On failure it writes the error response and returns false.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		// An exceeded MaxBytesReader also lands here; return 400 without
		// leaking size details.
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// boundaryContext joins the process base context with the request context and
// applies the optional boundary timeout. The engine itself never enforces a
// timeout.
func boundaryContext(r *http.Request) (context.Context, context.CancelFunc) {
	ctx, cancel := joinContexts(serverBaseCtx, r.Context())
	if predictTimeout <= 0 {
		return ctx, cancel
	}
	tctx, tcancel := context.WithTimeout(ctx, time.Duration(predictTimeout)*time.Second)
	return tctx, func() { tcancel(); cancel() }
}

// mapErrorStatus converts service errors to HTTP status codes. It returns 0
// when the response should be abandoned (client disconnect or shutdown).
func mapErrorStatus(r *http.Request, err error) int {
	if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
		return 0
	}
	if nli.IsDependencyUnavailable(err) {
		return http.StatusServiceUnavailable
	}
	if he, ok := err.(HTTPError); ok {
		return he.StatusCode()
	}
	return http.StatusInternalServerError
}

func toPredictResponse(res nli.Result) types.PredictResponse {
	return types.PredictResponse{
		Prediction: string(res.Prediction),
		Confidence: res.Confidence,
		Probabilities: types.Probabilities{
			Entailment:    res.Probs[0],
			Neutral:       res.Probs[1],
			Contradiction: res.Probs[2],
		},
	}
}

func toBatchResult(item nli.BatchItem) types.BatchResult {
	out := types.BatchResult{
		Premise:    item.Pair.Premise,
		Hypothesis: item.Pair.Hypothesis,
	}
	if item.Err != nil {
		out.Error = item.Err.Error()
		return out
	}
	out.Prediction = string(item.Result.Prediction)
	out.Confidence = item.Result.Confidence
	out.Probabilities = &types.Probabilities{
		Entailment:    item.Result.Probs[0],
		Neutral:       item.Result.Probs[1],
		Contradiction: item.Result.Probs[2],
	}
	return out
}

func logStart(r *http.Request, lvl LogLevel, op string) {
	if lvl < LevelInfo {
		return
	}
	if zlog != nil {
		z := zlog.Info().Str("path", r.URL.Path).Str("op", op)
		if rid := middleware.GetReqID(r.Context()); rid != "" {
			z = z.Str("request_id", rid)
		}
		z.Msg(op + " start")
		return
	}
	log.Printf("%s start path=%s", op, r.URL.Path)
}

func logEnd(r *http.Request, lvl LogLevel, op string, status int, start time.Time, err error) {
	if lvl < LevelInfo {
		return
	}
	if zlog != nil {
		z := zlog.Info().Str("op", op).Int("status", status).Dur("dur", time.Since(start))
		if rid := middleware.GetReqID(r.Context()); rid != "" {
			z = z.Str("request_id", rid)
		}
		if err != nil {
			z = z.Err(err)
		}
		z.Msg(op + " end")
		return
	}
	if err != nil {
		log.Printf("%s end status=%d dur=%s err=%v", op, status, time.Since(start), err)
		return
	}
	log.Printf("%s end status=%d dur=%s", op, status, time.Since(start))
}
