package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestMiddlewareRecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewAPICollector(reg)
	if err != nil {
		t.Fatalf("NewAPICollector: %v", err)
	}

	handler := collector.Middleware("/api/v1/systems", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/systems", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got := testutil.ToFloat64(collector.HTTPRequests.WithLabelValues("/api/v1/systems", "GET", "200")); got != 1 {
		t.Fatalf("bstar_http_requests_total = %v, want 1", got)
	}

	if count := histogramSampleCount(t, reg, "bstar_http_request_duration_seconds", map[string]string{
		"route":  "/api/v1/systems",
		"method": "GET",
	}); count != 1 {
		t.Fatalf("bstar_http_request_duration_seconds sample_count = %d, want 1", count)
	}
}

func TestMiddlewareRecordsErrorCode(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewAPICollector(reg)
	if err != nil {
		t.Fatalf("NewAPICollector: %v", err)
	}

	handler := collector.Middleware("/api/v1/systems/{name}", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/systems/missing", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got := testutil.ToFloat64(collector.HTTPRequests.WithLabelValues("/api/v1/systems/{name}", "GET", "404")); got != 1 {
		t.Fatalf("bstar_http_requests_total error label = %v, want 1", got)
	}
}

func TestMetricsHandlerExposesGauges(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewAPICollector(reg)
	if err != nil {
		t.Fatalf("NewAPICollector: %v", err)
	}
	collector.SetCatalogSize(3)
	collector.ObserveSpectrum()
	collector.WSConnectionOpened()
	collector.ObserveWSMessage()
	collector.HTTPRequests.WithLabelValues("/x", "GET", "200").Inc()
	collector.HTTPDurations.WithLabelValues("/x", "GET").Observe(0.01)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("/metrics status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	for _, metric := range []string{
		"bstar_http_requests_total",
		"bstar_http_request_duration_seconds",
		"bstar_catalog_systems",
		"bstar_spectra_synthesized_total",
		"bstar_ws_connections",
		"bstar_ws_messages_total",
	} {
		if !strings.Contains(body, metric) {
			t.Fatalf("expected %q in /metrics output", metric)
		}
	}

	if got := testutil.ToFloat64(collector.CatalogSystems); got != 3 {
		t.Fatalf("bstar_catalog_systems = %v, want 3", got)
	}
	collector.WSConnectionClosed()
	if got := testutil.ToFloat64(collector.WSConnections); got != 0 {
		t.Fatalf("bstar_ws_connections after close = %v, want 0", got)
	}
}

func TestDuplicateRegistrationReturnsExisting(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewAPICollector(reg)
	if err != nil {
		t.Fatalf("NewAPICollector: %v", err)
	}
	second, err := NewAPICollector(reg)
	if err != nil {
		t.Fatalf("NewAPICollector again: %v", err)
	}

	first.ObserveSpectrum()
	second.ObserveSpectrum()
	if got := testutil.ToFloat64(first.SpectraSynthesized); got != 2 {
		t.Fatalf("shared counter = %v, want 2", got)
	}
}

func histogramSampleCount(t *testing.T, gatherer prometheus.Gatherer, name string, labels map[string]string) uint64 {
	t.Helper()

	metrics, err := gatherer.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, mf := range metrics {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.Metric {
			if matchLabels(m.GetLabel(), labels) && m.GetHistogram() != nil {
				return m.GetHistogram().GetSampleCount()
			}
		}
	}
	return 0
}

func matchLabels(got []*dto.LabelPair, want map[string]string) bool {
	if len(got) < len(want) {
		return false
	}
	matched := 0
	for _, lp := range got {
		if val, ok := want[lp.GetName()]; ok && val == lp.GetValue() {
			matched++
		}
	}
	return matched == len(want)
}
