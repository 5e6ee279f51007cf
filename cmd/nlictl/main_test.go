package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPredictCommandHitsServer(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"prediction":"Entailment","confidence":0.91}`))
	}))
	defer srv.Close()

	cfg := &clientConfig{}
	root := buildRootCmd(cfg)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"predict", "--base-url", srv.URL, "a premise", "a hypothesis"})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if gotPath != "/predict" {
		t.Fatalf("path=%q", gotPath)
	}
	if gotBody["premise"] != "a premise" || gotBody["hypothesis"] != "a hypothesis" {
		t.Fatalf("body=%v", gotBody)
	}
	if !strings.Contains(out.String(), "Entailment") {
		t.Fatalf("output: %s", out.String())
	}
}

func TestBatchCommandReadsFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/batch_predict" {
			t.Errorf("path=%q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	f := filepath.Join(t.TempDir(), "pairs.json")
	if err := os.WriteFile(f, []byte(`{"pairs":[{"premise":"p","hypothesis":"h"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &clientConfig{}
	root := buildRootCmd(cfg)
	root.SetOut(new(bytes.Buffer))
	root.SetArgs([]string{"batch", "--base-url", srv.URL, "-f", f})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
}

func TestBatchCommandRequiresFile(t *testing.T) {
	cfg := &clientConfig{}
	root := buildRootCmd(cfg)
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"batch"})
	if err := root.Execute(); err == nil {
		t.Fatal("expected error without -f")
	}
}

func TestNonOKStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"engine unavailable","code":503}`))
	}))
	defer srv.Close()

	cfg := &clientConfig{}
	root := buildRootCmd(cfg)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"health", "--base-url", srv.URL})
	err := root.Execute()
	if err == nil {
		t.Fatal("expected error for 503")
	}
	if !strings.Contains(out.String(), "engine unavailable") {
		t.Fatalf("body not printed: %s", out.String())
	}
}

func TestDefaultBaseURL(t *testing.T) {
	t.Setenv("NLID_URL", "")
	if got := defaultBaseURL(); got != "http://127.0.0.1:8080" {
		t.Fatalf("got %q", got)
	}
	t.Setenv("NLID_URL", "http://10.0.0.5:9000")
	if got := defaultBaseURL(); got != "http://10.0.0.5:9000" {
		t.Fatalf("got %q", got)
	}
}
