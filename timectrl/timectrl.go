package timectrl

import (
	"sync"
	"time"
)

// SimClock is an interface for reading simulation time. Components that
// only need to know the current simulation day depend on this rather
// than on the concrete controller, which keeps them testable.
type SimClock interface {
	// NowDays returns the current simulation time in days since epoch.
	NowDays() float64
}

// Mode describes how the TimeController advances simulation time.
type Mode int

const (
	// RealTime advances one simulated second per wall-clock second.
	RealTime Mode = iota
	// Accelerated advances by DaysPerTick on every wall-clock tick.
	Accelerated
)

// TimeController drives simulation time and notifies registered
// listeners on every tick. It implements SimClock.
type TimeController struct {
	mu          sync.RWMutex
	StartDay    float64
	Tick        time.Duration
	DaysPerTick float64
	Mode        Mode

	currentDay float64

	listeners []func(days float64)
}

// NewTimeController constructs a controller. In RealTime mode the
// per-tick advance is fixed so that simulated time tracks wall time;
// in Accelerated mode daysPerTick sets the speedup.
func NewTimeController(startDay float64, tick time.Duration, mode Mode, daysPerTick float64) *TimeController {
	if mode == RealTime {
		daysPerTick = tick.Seconds() / 86400.0
	}
	return &TimeController{
		StartDay:    startDay,
		Tick:        tick,
		DaysPerTick: daysPerTick,
		Mode:        mode,
		currentDay:  startDay,
	}
}

// NowDays returns the current simulation day. Implements SimClock.
func (tc *TimeController) NowDays() float64 {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return tc.currentDay
}

// SetDay jumps simulation time to the given day without notifying
// listeners. Used for scrubbing when the controller is not running.
func (tc *TimeController) SetDay(day float64) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.currentDay = day
}

// AddListener registers a callback invoked on every tick with the new
// simulation day. Listeners must be registered before Start.
func (tc *TimeController) AddListener(fn func(days float64)) {
	tc.listeners = append(tc.listeners, fn)
}

// Start runs the controller for the specified wall-clock duration in a
// separate goroutine. A duration of zero runs until the process exits.
// It returns a channel that is closed when the controller finishes.
// Start must be called at most once; two runs would race on the
// current day.
func (tc *TimeController) Start(duration time.Duration) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)

		tc.mu.Lock()
		day := tc.StartDay
		tc.currentDay = day
		tc.mu.Unlock()

		elapsed := time.Duration(0)

		ticker := time.NewTicker(tc.Tick)
		defer ticker.Stop()

		for {
			if duration > 0 && elapsed >= duration {
				return
			}

			<-ticker.C
			day += tc.DaysPerTick
			elapsed += tc.Tick

			tc.mu.Lock()
			tc.currentDay = day
			tc.mu.Unlock()

			for _, fn := range tc.listeners {
				fn(day)
			}
		}
	}()
	return done
}
