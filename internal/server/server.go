// Package server exposes the star catalog and the synthesis engine
// over HTTP. Read endpoints compute orbits, radial velocity curves and
// spectra on demand; a websocket endpoint streams live state as the
// clock advances the catalog.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"gonum.org/v1/plot"

	"github.com/signalsfoundry/binarystar-simulator/analysis"
	"github.com/signalsfoundry/binarystar-simulator/core"
	"github.com/signalsfoundry/binarystar-simulator/internal/logging"
	"github.com/signalsfoundry/binarystar-simulator/internal/observability"
	"github.com/signalsfoundry/binarystar-simulator/kb"
	"github.com/signalsfoundry/binarystar-simulator/model"
	"github.com/signalsfoundry/binarystar-simulator/render"
)

// query parameter bounds; anything above is almost certainly a typo
// and would only burn CPU.
const (
	maxCurvePoints    = 100000
	maxSpectrumPoints = 100000
	maxPeriods        = 1000
)

// Server routes API requests to the catalog and the computation
// packages.
type Server struct {
	catalog *kb.Catalog
	log     logging.Logger
	metrics *observability.APICollector
}

// New constructs a Server. A nil logger or collector is replaced with a
// no-op so handlers never need nil checks.
func New(catalog *kb.Catalog, log logging.Logger, metrics *observability.APICollector) *Server {
	if log == nil {
		log = logging.Noop()
	}
	return &Server{catalog: catalog, log: log, metrics: metrics}
}

// Routes builds the HTTP handler with all endpoints registered.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	s.handle(mux, "GET /api/v1/systems", s.handleListSystems)
	s.handle(mux, "POST /api/v1/systems", s.handleCreateSystem)
	s.handle(mux, "GET /api/v1/systems/{name}", s.handleGetSystem)
	s.handle(mux, "DELETE /api/v1/systems/{name}", s.handleDeleteSystem)
	s.handle(mux, "GET /api/v1/systems/{name}/orbit", s.handleOrbit)
	s.handle(mux, "GET /api/v1/systems/{name}/rv", s.handleRVCurve)
	s.handle(mux, "GET /api/v1/systems/{name}/spectrum", s.handleSpectrum)
	s.handle(mux, "GET /api/v1/systems/{name}/period", s.handlePeriodEstimate)
	s.handle(mux, "GET /api/v1/systems/{name}/plot/{kind}", s.handlePlot)
	s.handle(mux, "GET /ws/systems/{name}", s.handleStream)

	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}

	return mux
}

// handle wraps a handler with request-id, access logging and metrics
// middleware, keyed by the route pattern.
func (s *Server) handle(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	route := pattern
	if i := strings.IndexByte(pattern, ' '); i >= 0 {
		route = pattern[i+1:]
	}

	var wrapped http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, log := logging.WithRequestLogger(r.Context(), s.log)
		r = r.WithContext(logging.ContextWithLogger(ctx, log))

		h(w, r)

		log.Debug(ctx, "request handled",
			logging.String("route", route),
			logging.String("method", r.Method),
		)
	})
	wrapped = tracingMiddleware(route, wrapped)
	if s.metrics != nil {
		wrapped = s.metrics.Middleware(route, wrapped)
	}
	mux.Handle(pattern, wrapped)
}

// ---- catalog CRUD ----

func (s *Server) handleListSystems(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"systems": s.catalog.List()})
}

type createSystemRequest struct {
	Name            string               `json:"name"`
	Mass1           float64              `json:"mass1_msun"`
	Mass2           float64              `json:"mass2_msun"`
	SemiMajorAxisAU float64              `json:"semi_major_axis_au"`
	PeriodDays      float64              `json:"period_days"`
	InclinationDeg  *float64             `json:"inclination_deg"`
	Lines1          []model.SpectralLine `json:"lines1"`
	Lines2          []model.SpectralLine `json:"lines2"`
}

func (s *Server) handleCreateSystem(w http.ResponseWriter, r *http.Request) {
	var req createSystemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}

	inclination := model.DefaultInclinationDeg
	if req.InclinationDeg != nil {
		inclination = *req.InclinationDeg
	}
	pair, err := model.NewStarPair(req.Mass1, req.Mass2, req.SemiMajorAxisAU, req.PeriodDays, inclination)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	system := kb.StarSystem{
		Name:   req.Name,
		Pair:   pair,
		Lines1: req.Lines1,
		Lines2: req.Lines2,
	}
	if err := s.catalog.Add(system); err != nil {
		code := http.StatusBadRequest
		if strings.Contains(err.Error(), "already exists") {
			code = http.StatusConflict
		}
		writeError(w, code, err)
		return
	}
	s.metrics.SetCatalogSize(s.catalog.Len())

	created, _ := s.catalog.Get(req.Name)
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetSystem(w http.ResponseWriter, r *http.Request) {
	system, ok := s.catalog.Get(r.PathValue("name"))
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("system %q not found", r.PathValue("name")))
		return
	}
	writeJSON(w, http.StatusOK, system)
}

func (s *Server) handleDeleteSystem(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.Remove(r.PathValue("name")); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	s.metrics.SetCatalogSize(s.catalog.Len())
	w.WriteHeader(http.StatusNoContent)
}

// ---- computed views ----

func (s *Server) orbitFor(w http.ResponseWriter, r *http.Request) (*core.Orbit, kb.StarSystem, bool) {
	system, ok := s.catalog.Get(r.PathValue("name"))
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("system %q not found", r.PathValue("name")))
		return nil, kb.StarSystem{}, false
	}
	orbit, err := core.NewOrbit(system.Pair)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return nil, kb.StarSystem{}, false
	}
	return orbit, system, true
}

func (s *Server) handleOrbit(w http.ResponseWriter, r *http.Request) {
	orbit, _, ok := s.orbitFor(w, r)
	if !ok {
		return
	}
	points, err := intQuery(r, "points", 360, 2, maxCurvePoints)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"radius1_au":  orbit.Radius1(),
		"radius2_au":  orbit.Radius2(),
		"speed1_km_s": orbit.Speed1KmS(),
		"speed2_km_s": orbit.Speed2KmS(),
		"path":        orbit.Path(points),
	})
}

func (s *Server) handleRVCurve(w http.ResponseWriter, r *http.Request) {
	orbit, _, ok := s.orbitFor(w, r)
	if !ok {
		return
	}
	points, err := intQuery(r, "points", 500, 2, maxCurvePoints)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	periods, err := floatQuery(r, "periods", 1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if periods <= 0 || periods > maxPeriods {
		writeError(w, http.StatusBadRequest, fmt.Errorf("periods must be in (0, %d], got %g", maxPeriods, periods))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"samples": orbit.RVCurveOverPeriods(periods, points),
	})
}

func (s *Server) handleSpectrum(w http.ResponseWriter, r *http.Request) {
	orbit, system, ok := s.orbitFor(w, r)
	if !ok {
		return
	}
	phase, err := floatQuery(r, "phase", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	points, err := intQuery(r, "points", core.DefaultSpectrumPoints, 2, maxSpectrumPoints)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	_, span := startChildSpan(r.Context(), "synthesize_spectrum", system.Name)
	spectrum, err := orbit.SpectrumAtPhase(phase, system.Lines1, system.Lines2, core.DefaultWindow(), points)
	span.End()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.metrics.ObserveSpectrum()

	rv := orbit.RVSampleAt(phase * system.Pair.PeriodDays)
	writeJSON(w, http.StatusOK, map[string]any{
		"phase":    phase,
		"rv":       rv,
		"spectrum": spectrum,
	})
}

func (s *Server) handlePeriodEstimate(w http.ResponseWriter, r *http.Request) {
	orbit, system, ok := s.orbitFor(w, r)
	if !ok {
		return
	}

	// Sample a few orbits densely and hand the curve to the
	// spectral estimator, as a round-trip check of the configured
	// period.
	_, span := startChildSpan(r.Context(), "estimate_period", system.Name)
	samples := orbit.RVCurveOverPeriods(4, 2000)
	estimate, err := analysis.EstimatePeriod(samples)
	span.End()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"configured_period_days": system.Pair.PeriodDays,
		"estimated_period_days":  estimate.PeriodDays,
		"frequency_per_day":      estimate.FrequencyPerDay,
	})
}

func (s *Server) handlePlot(w http.ResponseWriter, r *http.Request) {
	orbit, system, ok := s.orbitFor(w, r)
	if !ok {
		return
	}

	var (
		figure *plot.Plot
		err    error
	)
	switch kind := r.PathValue("kind"); kind {
	case "orbit":
		figure, err = render.OrbitFigure(orbit, 720)
	case "rv":
		figure, err = render.RVCurveFigure(orbit, 2, 1000)
	case "spectrum":
		phase, perr := floatQuery(r, "phase", 0)
		if perr != nil {
			writeError(w, http.StatusBadRequest, perr)
			return
		}
		var spectrum model.Spectrum
		spectrum, err = orbit.SpectrumAtPhase(phase, system.Lines1, system.Lines2, core.DefaultWindow(), core.DefaultSpectrumPoints)
		if err == nil {
			figure, err = render.SpectrumFigure(spectrum, []float64{core.HAlphaNm})
		}
	default:
		writeError(w, http.StatusNotFound, fmt.Errorf("unknown plot kind %q", kind))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if err := render.WritePNG(figure, w); err != nil {
		s.log.Warn(r.Context(), "failed to stream plot", logging.Err(err))
	}
}

// ---- helpers ----

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

func intQuery(r *http.Request, key string, def, min, max int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("query %s: %w", key, err)
	}
	if v < min || v > max {
		return 0, fmt.Errorf("query %s: %d out of range [%d, %d]", key, v, min, max)
	}
	return v, nil
}

func floatQuery(r *http.Request, key string, def float64) (float64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("query %s: %w", key, err)
	}
	return v, nil
}
