// Package nli maps premise/hypothesis pairs to a labeled probability
// distribution over the three relationship classes. It is structured into
// small files by concern:
//
//   - engine.go: Engine construction, Predict/PredictBatch, status reporting.
//   - types.go: labels, pairs, results and the fixed index-to-label mapping.
//   - errors.go: error types and helpers (IsInitFailure, IsInferenceFailure,
//     IsDependencyUnavailable).
//   - adapter_iface.go: the Classifier backend interface and its config.
//   - softmax.go: numerically stable softmax and first-max argmax.
//
// Build tags and runtimes:
//
//   - ONNX Runtime (standard): enabled with `-tags=ort`. Loads the exported
//     classifier graph with onnxruntime_go and tokenizes with the HuggingFace
//     tokenizer.json. File: backend_onnx.go.
//   - A no-CGO stub exists when the tag is not set: backend_stub.go. It fails
//     fast instead of mocking inference, so default builds and CI stay
//     dependency-free.
//
// External packages should construct an Engine once at startup and share it
// across requests. The engine holds no mutable model state after New returns;
// all reads are safe to share without locking.
package nli
