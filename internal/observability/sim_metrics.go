package observability

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SimCollector exposes metrics for the background clock that advances
// every catalog system.
type SimCollector struct {
	gatherer prometheus.Gatherer

	TickDuration prometheus.Histogram
	TicksTotal   prometheus.Counter
	SimDay       prometheus.Gauge
}

// NewSimCollector registers simulation metrics against the provided registerer.
func NewSimCollector(reg prometheus.Registerer) (*SimCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	tickHistogram := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "bstar_sim_tick_duration_seconds",
		Help:    "Wall-clock time spent recomputing catalog state on one tick.",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
	})
	tickHistogram, err := registerHistogram(reg, tickHistogram, "bstar_sim_tick_duration_seconds")
	if err != nil {
		return nil, err
	}

	ticks := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bstar_sim_ticks_total",
		Help: "Cumulative number of simulation ticks processed.",
	})
	ticks, err = registerCounter(reg, ticks, "bstar_sim_ticks_total")
	if err != nil {
		return nil, err
	}

	day := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "bstar_sim_day",
		Help: "Current simulation time in days.",
	})
	day, err = registerGauge(reg, day, "bstar_sim_day")
	if err != nil {
		return nil, err
	}

	return &SimCollector{
		gatherer:     gatherer,
		TickDuration: tickHistogram,
		TicksTotal:   ticks,
		SimDay:       day,
	}, nil
}

// Gatherer returns the Prometheus gatherer associated with the collector.
func (c *SimCollector) Gatherer() prometheus.Gatherer {
	if c == nil {
		return nil
	}
	return c.gatherer
}

// ObserveTick records one tick: its recompute duration and the new
// simulation day.
func (c *SimCollector) ObserveTick(d time.Duration, day float64) {
	if c == nil {
		return
	}
	if c.TickDuration != nil {
		c.TickDuration.Observe(d.Seconds())
	}
	if c.TicksTotal != nil {
		c.TicksTotal.Inc()
	}
	if c.SimDay != nil {
		c.SimDay.Set(day)
	}
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}
