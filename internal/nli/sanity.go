package nli

import "os"

// SanityReport describes runtime checks for external dependencies.
type SanityReport struct {
	OrtBuilt       bool   `json:"ort_built"`
	ModelFound     bool   `json:"model_found"`
	TokenizerFound bool   `json:"tokenizer_found"`
	Error          string `json:"error,omitempty"`
}

// SanityCheck validates that the files the backend needs are present and that
// the binary carries the runtime. It does not mutate state and is safe to
// call at any time.
func SanityCheck(cfg ClassifierConfig) SanityReport {
	cfg = cfg.withDefaults()
	r := SanityReport{OrtBuilt: ortBuilt}
	r.ModelFound = fileExists(cfg.ModelPath)
	r.TokenizerFound = fileExists(cfg.TokenizerPath)
	switch {
	case !r.OrtBuilt:
		r.Error = "onnxruntime support not built (missing 'ort' build tag)"
	case !r.ModelFound:
		r.Error = "model file not found: " + cfg.ModelPath
	case !r.TokenizerFound:
		r.Error = "tokenizer file not found: " + cfg.TokenizerPath
	}
	return r
}

func fileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}
