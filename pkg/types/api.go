package types

// PredictRequest represents a single premise/hypothesis classification request.
type PredictRequest struct {
	// Premise statement. Empty strings are accepted.
	// example: A person is walking a dog in the park
	Premise string `json:"premise" example:"A person is walking a dog in the park"`
	// Hypothesis statement. Empty strings are accepted.
	// example: A person is outside
	Hypothesis string `json:"hypothesis" example:"A person is outside"`
}

// Probabilities carries the full distribution over the three relationship
// classes. The field order mirrors the model's label scheme and must not be
// reordered: entailment, neutral, contradiction.
type Probabilities struct {
	// example: 0.91
	Entailment float64 `json:"entailment" example:"0.91"`
	// example: 0.07
	Neutral float64 `json:"neutral" example:"0.07"`
	// example: 0.02
	Contradiction float64 `json:"contradiction" example:"0.02"`
}

// PredictResponse is returned by POST /predict.
type PredictResponse struct {
	// Predicted class label: Entailment, Neutral or Contradiction.
	// example: Entailment
	Prediction string `json:"prediction" example:"Entailment"`
	// Probability mass assigned to the predicted class.
	// example: 0.91
	Confidence float64 `json:"confidence" example:"0.91"`
	// Full class distribution.
	Probabilities Probabilities `json:"probabilities"`
}

// BatchPredictRequest represents a batch of pairs for POST /batch_predict.
type BatchPredictRequest struct {
	// Ordered pairs to classify. Output order matches input order.
	Pairs []PredictRequest `json:"pairs"`
}

// BatchResult is one entry of a batch response. It echoes the input pair.
// When a single pair fails, Error is set and the prediction fields are
// zero-valued; the rest of the batch is unaffected.
type BatchResult struct {
	// example: The cat is sleeping on the couch
	Premise string `json:"premise" example:"The cat is sleeping on the couch"`
	// example: The cat is awake
	Hypothesis string `json:"hypothesis" example:"The cat is awake"`
	// example: Contradiction
	Prediction string `json:"prediction,omitempty" example:"Contradiction"`
	// example: 0.88
	Confidence    float64        `json:"confidence,omitempty" example:"0.88"`
	Probabilities *Probabilities `json:"probabilities,omitempty"`
	// Per-pair failure message, if this pair could not be classified.
	Error string `json:"error,omitempty"`
}

// BatchPredictResponse wraps the ordered batch results.
type BatchPredictResponse struct {
	Results []BatchResult `json:"results"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	// example: healthy
	Status string `json:"status" example:"healthy"`
	// example: true
	ModelLoaded bool `json:"model_loaded" example:"true"`
	// Compute device the classifier is bound to (cuda or cpu).
	// example: cpu
	Device string `json:"device" example:"cpu"`
}

// ServiceInfo is returned by GET / and describes the running service.
type ServiceInfo struct {
	// example: ANLI NLI Inference API
	Message string `json:"message" example:"ANLI NLI Inference API"`
	// example: 1.0.0
	Version string `json:"version" example:"1.0.0"`
	// example: DeBERTa-v3-base fine-tuned on ANLI R2
	Model string `json:"model" example:"DeBERTa-v3-base fine-tuned on ANLI R2"`
	// Endpoint map, path by operation name.
	Endpoints map[string]string `json:"endpoints"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Engine state (loading, ready, error).
	// example: ready
	State string `json:"state" example:"ready"`
	// Directory the model was loaded from.
	// example: /srv/models/anli-r2
	ModelDir string `json:"model_dir" example:"/srv/models/anli-r2"`
	// Compute device in use.
	// example: cuda
	Device string `json:"device" example:"cuda"`
	// Whether a merged low-rank adapter is part of the loaded weights.
	// example: true
	AdapterMerged bool `json:"adapter_merged" example:"true"`
	// Total single predictions served.
	// example: 1042
	PredictionsTotal uint64 `json:"predictions_total" example:"1042"`
	// Total batch requests served.
	// example: 17
	BatchesTotal uint64 `json:"batches_total" example:"17"`
	// Last per-request error observed (if any).
	LastError string `json:"last_error,omitempty"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}
