package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", "addr: :9999\nmodel_dir: /srv/models/anli\ndevice: cuda\nmax_seq_len: 128\nmax_batch_size: 16\nlog_level: debug\ncors_enabled: true\ncors_origins:\n  - https://ui.example.com\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9999" || cfg.ModelDir != "/srv/models/anli" || cfg.Device != "cuda" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.MaxSeqLen != 128 || cfg.MaxBatchSize != 16 || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if !cfg.CORSEnabled || len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "https://ui.example.com" {
		t.Fatalf("unexpected cors: %+v", cfg)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"addr":":7070","model_dir":"/m","max_batch_size":8,"max_body_bytes":2048,"ort_library":"/usr/lib/libonnxruntime.so"}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":7070" || cfg.ModelDir != "/m" || cfg.MaxBatchSize != 8 || cfg.MaxBodyBytes != 2048 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.OrtLibrary != "/usr/lib/libonnxruntime.so" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", "addr=\":8081\"\nmodel_dir=\"/x\"\nmax_seq_len=64\nlog_level=\"info\"\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8081" || cfg.ModelDir != "/x" || cfg.MaxSeqLen != 64 || cfg.LogLevel != "info" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error on empty path")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error on missing file")
	}
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.txt", "not supported")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
	bad := writeTempFile(t, d, "bad.json", "{")
	if _, err := Load(bad); err == nil {
		t.Fatalf("expected parse error")
	}
}
