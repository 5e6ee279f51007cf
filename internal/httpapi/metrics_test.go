package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// TestMetricsMiddleware_EmitsRequestCounters verifies that wrapping a handler
// with MetricsMiddleware results in request metrics being exposed via the
// Prometheus /metrics handler.
func TestMetricsMiddleware_EmitsRequestCounters(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	MetricsMiddleware(next).ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	// Scrape the default registry and ensure our metric name is present
	mrr := httptest.NewRecorder()
	mreq := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	promhttp.Handler().ServeHTTP(mrr, mreq)
	if mrr.Code != http.StatusOK {
		t.Fatalf("/metrics status=%d", mrr.Code)
	}
	body := mrr.Body.Bytes()
	if !bytes.Contains(body, []byte("nlid_http_requests_total")) {
		previewLen := len(body)
		if previewLen > 200 {
			previewLen = 200
		}
		t.Fatalf("expected to find nlid_http_requests_total in metrics; got: %q", string(body[:previewLen]))
	}
}

// TestPredictionCounter verifies the domain counter appears after observing a
// prediction.
func TestPredictionCounter(t *testing.T) {
	ObservePrediction("Entailment")
	ObservePrediction("") // falls back to "unknown"
	ObserveBatch(3)

	mrr := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(mrr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := mrr.Body.Bytes()
	if !bytes.Contains(body, []byte(`nlid_predictions_total{label="Entailment"}`)) {
		t.Fatal("missing labeled prediction counter")
	}
	if !bytes.Contains(body, []byte(`nlid_predictions_total{label="unknown"}`)) {
		t.Fatal("missing unknown-label fallback")
	}
	if !bytes.Contains(body, []byte("nlid_batch_pairs")) {
		t.Fatal("missing batch pairs histogram")
	}
}

func TestRoutePatternFallsBackToPath(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/plain", nil)
	if got := routePatternOrPath(req); got != "/plain" {
		t.Fatalf("got %q", got)
	}
}

func TestItoa(t *testing.T) {
	cases := map[int]string{0: "0", 200: "200", 404: "404", 503: "503"}
	for n, want := range cases {
		if got := itoa(n); got != want {
			t.Fatalf("itoa(%d)=%q", n, got)
		}
	}
}
