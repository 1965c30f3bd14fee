package observability

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// APICollector bundles Prometheus metrics for the HTTP API surface and
// the simulation itself, and provides helpers to wire them into
// handlers.
type APICollector struct {
	gatherer prometheus.Gatherer

	HTTPRequests  *prometheus.CounterVec
	HTTPDurations *prometheus.HistogramVec

	CatalogSystems     prometheus.Gauge
	SpectraSynthesized prometheus.Counter
	WSConnections      prometheus.Gauge
	WSMessages         prometheus.Counter
}

// NewAPICollector registers the metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewAPICollector(reg prometheus.Registerer) (*APICollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bstar_http_requests_total",
		Help: "Total number of handled HTTP requests, labeled by route, method, and status code.",
	}, []string{"route", "method", "code"})
	requests, err := registerCounterVec(reg, requests, "bstar_http_requests_total")
	if err != nil {
		return nil, err
	}

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bstar_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"route", "method"})
	durations, err = registerHistogramVec(reg, durations, "bstar_http_request_duration_seconds")
	if err != nil {
		return nil, err
	}

	systems, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "bstar_catalog_systems",
		Help: "Current number of star systems in the catalog.",
	}), "bstar_catalog_systems")
	if err != nil {
		return nil, err
	}

	spectra, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bstar_spectra_synthesized_total",
		Help: "Total number of spectra synthesized by API requests.",
	}), "bstar_spectra_synthesized_total")
	if err != nil {
		return nil, err
	}

	wsConns, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "bstar_ws_connections",
		Help: "Currently open websocket streaming connections.",
	}), "bstar_ws_connections")
	if err != nil {
		return nil, err
	}

	wsMessages, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bstar_ws_messages_total",
		Help: "Total number of state messages pushed over websockets.",
	}), "bstar_ws_messages_total")
	if err != nil {
		return nil, err
	}

	return &APICollector{
		gatherer:           gatherer,
		HTTPRequests:       requests,
		HTTPDurations:      durations,
		CatalogSystems:     systems,
		SpectraSynthesized: spectra,
		WSConnections:      wsConns,
		WSMessages:         wsMessages,
	}, nil
}

// Middleware records request counts and durations for an HTTP route.
// The route label is the registered pattern, not the raw URL, to keep
// metric cardinality bounded.
func (c *APICollector) Middleware(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(sw, r)

		if c == nil {
			return
		}
		if c.HTTPRequests != nil {
			c.HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(sw.code)).Inc()
		}
		if c.HTTPDurations != nil {
			c.HTTPDurations.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
		}
	})
}

// Handler exposes a ready-to-use /metrics handler.
func (c *APICollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetCatalogSize drives the catalog gauge. The server subscribes it to
// catalog events so the value tracks adds and removes.
func (c *APICollector) SetCatalogSize(n int) {
	if c == nil || c.CatalogSystems == nil {
		return
	}
	c.CatalogSystems.Set(float64(n))
}

// ObserveSpectrum counts one synthesized spectrum.
func (c *APICollector) ObserveSpectrum() {
	if c == nil || c.SpectraSynthesized == nil {
		return
	}
	c.SpectraSynthesized.Inc()
}

// WSConnectionOpened and WSConnectionClosed track the streaming gauge.
func (c *APICollector) WSConnectionOpened() {
	if c == nil || c.WSConnections == nil {
		return
	}
	c.WSConnections.Inc()
}

func (c *APICollector) WSConnectionClosed() {
	if c == nil || c.WSConnections == nil {
		return
	}
	c.WSConnections.Dec()
}

// ObserveWSMessage counts one pushed state message.
func (c *APICollector) ObserveWSMessage() {
	if c == nil || c.WSMessages == nil {
		return
	}
	c.WSMessages.Inc()
}

// statusWriter captures the response status code for labeling.
type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

// Hijack forwards to the wrapped writer so websocket upgrades work
// through the middleware.
func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, http.ErrNotSupported
	}
	return h.Hijack()
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
