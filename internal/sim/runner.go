// Package sim drives the catalog from the simulation clock. On every
// tick it recomputes orbital state and radial velocities for each
// system and pushes them into the catalog, which fans the updates out
// to subscribers.
package sim

import (
	"context"
	"sync"
	"time"

	"github.com/signalsfoundry/binarystar-simulator/core"
	"github.com/signalsfoundry/binarystar-simulator/internal/logging"
	"github.com/signalsfoundry/binarystar-simulator/internal/observability"
	"github.com/signalsfoundry/binarystar-simulator/kb"
	"github.com/signalsfoundry/binarystar-simulator/timectrl"
)

// Runner couples a time controller to the catalog.
type Runner struct {
	catalog *kb.Catalog
	clock   *timectrl.TimeController
	log     logging.Logger
	metrics *observability.SimCollector

	startOnce sync.Once
	done      <-chan struct{}
}

// NewRunner constructs a runner. The metrics collector may be nil.
func NewRunner(catalog *kb.Catalog, clock *timectrl.TimeController, log logging.Logger, metrics *observability.SimCollector) *Runner {
	if log == nil {
		log = logging.Noop()
	}
	return &Runner{catalog: catalog, clock: clock, log: log, metrics: metrics}
}

// Start registers the tick listener and starts the clock. The returned
// channel closes when the clock stops; with a zero duration it runs for
// the life of the process. Start is one-shot: repeated calls return the
// first call's channel without registering a second listener.
func (r *Runner) Start(runFor time.Duration) <-chan struct{} {
	r.startOnce.Do(func() {
		r.clock.AddListener(r.Step)
		r.done = r.clock.Start(runFor)
	})
	return r.done
}

// Step advances every catalog system to the given simulation day. It is
// exported so tests can tick without a running clock.
func (r *Runner) Step(day float64) {
	start := time.Now()

	for _, system := range r.catalog.List() {
		orbit, err := core.NewOrbit(system.Pair)
		if err != nil {
			// Validation on Add makes this unreachable unless the
			// catalog was mutated concurrently with bad data.
			r.log.Warn(context.Background(), "skipping system with invalid configuration",
				logging.String("system", system.Name), logging.Err(err))
			continue
		}
		state := orbit.StateAt(day)
		rv := orbit.RVSampleAt(day)
		if err := r.catalog.UpdateState(system.Name, state, rv); err != nil {
			r.log.Warn(context.Background(), "state update failed",
				logging.String("system", system.Name), logging.Err(err))
		}
	}

	r.metrics.ObserveTick(time.Since(start), day)
}
