// Package artifact resolves the local model directory the engine consumes.
// The directory is pre-populated by a build-time export step; nothing here
// performs network I/O.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Well-known file names inside a model directory.
const (
	TokenizerFile  = "tokenizer.json"
	ModelFile      = "model.onnx"
	MergedFile     = "model.merged.onnx"
	AdapterDirName = "lora_adapter"
	AdapterConfig  = "adapter_config.json"
)

// ModelDir describes a validated model directory.
type ModelDir struct {
	// Dir is the absolute directory path.
	Dir string
	// ModelPath is the classifier graph to load (merged weights preferred).
	ModelPath string
	// TokenizerPath is the tokenizer definition.
	TokenizerPath string
	// AdapterDir is the low-rank adapter directory, empty when absent.
	AdapterDir string
	// AdapterMerged reports whether the selected model file carries merged
	// adapter weights.
	AdapterMerged bool
}

// Resolve validates dir and selects the files the backend will load.
//
// A low-rank adapter must be merged into the base weights before use; merging
// happens in the export step, never at runtime. When an adapter directory is
// present without a pre-merged model file, Resolve fails so the process stops
// at startup instead of serving the unadapted base model.
func Resolve(dir string) (ModelDir, error) {
	base, err := expandHome(dir)
	if err != nil {
		return ModelDir{}, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return ModelDir{}, fmt.Errorf("abs path: %w", err)
	}
	if fi, err := os.Stat(abs); err != nil {
		return ModelDir{}, fmt.Errorf("model dir: %w", err)
	} else if !fi.IsDir() {
		return ModelDir{}, fmt.Errorf("model dir: %s is not a directory", abs)
	}

	md := ModelDir{Dir: abs}

	tok := filepath.Join(abs, TokenizerFile)
	if !fileExists(tok) {
		return ModelDir{}, fmt.Errorf("missing %s in %s", TokenizerFile, abs)
	}
	md.TokenizerPath = tok

	adapterDir := filepath.Join(abs, AdapterDirName)
	if dirExists(adapterDir) {
		if !fileExists(filepath.Join(adapterDir, AdapterConfig)) {
			return ModelDir{}, fmt.Errorf("adapter dir %s has no %s", adapterDir, AdapterConfig)
		}
		md.AdapterDir = adapterDir
	}

	merged := filepath.Join(abs, MergedFile)
	plain := filepath.Join(abs, ModelFile)
	switch {
	case fileExists(merged):
		md.ModelPath = merged
		md.AdapterMerged = true
	case md.AdapterDir != "":
		return ModelDir{}, fmt.Errorf("adapter present in %s but no %s; run the export step to merge it", abs, MergedFile)
	case fileExists(plain):
		md.ModelPath = plain
	default:
		return ModelDir{}, fmt.Errorf("no %s or %s in %s", MergedFile, ModelFile, abs)
	}
	return md, nil
}

// expandHome expands a leading '~' to the user's home directory.
func expandHome(path string) (string, error) {
	if path == "" {
		return path, nil
	}
	if path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	// handle cases like ~/models/anli
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}

func fileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}

func dirExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
