//go:build !ort

package nli

// This file provides a no-CGO stub for the onnxruntime backend. It is
// compiled when the 'ort' build tag is NOT set, keeping default builds and CI
// free of the onnxruntime shared library. The real backend lives in
// backend_onnx.go (tagged 'ort').

// ortBuilt indicates whether this binary was compiled with real onnxruntime
// support.
var ortBuilt = false

// NewONNXClassifier fails fast: the runtime is not available in this build.
// No mocked inference in production binaries.
func NewONNXClassifier(cfg ClassifierConfig) (Classifier, error) {
	return nil, ErrDependencyUnavailable("onnxruntime support not built (missing 'ort' build tag)")
}
