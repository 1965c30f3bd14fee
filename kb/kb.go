package kb

import (
	"fmt"
	"sort"
	"sync"

	"github.com/signalsfoundry/binarystar-simulator/core"
	"github.com/signalsfoundry/binarystar-simulator/model"
)

// EventType indicates what kind of change happened in the catalog.
type EventType int

const (
	EventSystemAdded EventType = iota
	EventSystemRemoved
	EventSystemStateUpdated
)

// Event is emitted to subscribers when a system changes.
type Event struct {
	Type   EventType
	System StarSystem
}

// StarSystem couples a named configuration with its line lists and the
// most recent simulated state pushed by the time controller.
type StarSystem struct {
	Name   string               `json:"name"`
	Pair   model.StarPair       `json:"pair"`
	Lines1 []model.SpectralLine `json:"lines1,omitempty"`
	Lines2 []model.SpectralLine `json:"lines2,omitempty"`

	State core.OrbitalState          `json:"state"`
	RV    model.RadialVelocitySample `json:"rv"`
}

// Catalog is an in-memory, thread-safe store of named star systems.
type Catalog struct {
	mu sync.RWMutex

	systems map[string]*StarSystem
	subs    map[int]func(Event)
	nextSub int
}

// NewCatalog constructs an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		systems: make(map[string]*StarSystem),
		subs:    make(map[int]func(Event)),
	}
}

// Add stores a new system. The configuration is validated here so that
// nothing invalid ever reaches the engine; a duplicate name is an error.
func (c *Catalog) Add(s StarSystem) error {
	if s.Name == "" {
		return fmt.Errorf("catalog: system with empty name")
	}
	if err := s.Pair.Validate(); err != nil {
		return fmt.Errorf("catalog: system %q: %w", s.Name, err)
	}
	if len(s.Lines1) == 0 {
		s.Lines1 = core.PrimaryLines()
	}
	if len(s.Lines2) == 0 {
		s.Lines2 = core.SecondaryLines()
	}

	c.mu.Lock()
	if _, exists := c.systems[s.Name]; exists {
		c.mu.Unlock()
		return fmt.Errorf("catalog: system %q already exists", s.Name)
	}
	c.systems[s.Name] = &s
	subs := c.snapshotSubs()
	c.mu.Unlock()

	notify(subs, Event{Type: EventSystemAdded, System: s})
	return nil
}

// Get returns a copy of the named system.
func (c *Catalog) Get(name string) (StarSystem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.systems[name]
	if !ok {
		return StarSystem{}, false
	}
	return *s, true
}

// List returns a snapshot of all systems, sorted by name.
func (c *Catalog) List() []StarSystem {
	c.mu.RLock()
	res := make([]StarSystem, 0, len(c.systems))
	for _, s := range c.systems {
		res = append(res, *s)
	}
	c.mu.RUnlock()

	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res
}

// Len returns the number of stored systems.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.systems)
}

// Remove deletes the named system.
func (c *Catalog) Remove(name string) error {
	c.mu.Lock()
	s, ok := c.systems[name]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("catalog: system %q not found", name)
	}
	delete(c.systems, name)
	removed := *s
	subs := c.snapshotSubs()
	c.mu.Unlock()

	notify(subs, Event{Type: EventSystemRemoved, System: removed})
	return nil
}

// UpdateState records the latest simulated state for a system and
// notifies subscribers.
func (c *Catalog) UpdateState(name string, state core.OrbitalState, rv model.RadialVelocitySample) error {
	c.mu.Lock()
	s, ok := c.systems[name]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("catalog: system %q not found", name)
	}
	s.State = state
	s.RV = rv
	updated := *s
	subs := c.snapshotSubs()
	c.mu.Unlock()

	notify(subs, Event{Type: EventSystemStateUpdated, System: updated})
	return nil
}

// Subscribe registers a callback for catalog events and returns an
// unsubscribe function. Subscribers are keyed by a monotonic id so that
// unsubscribing one never disturbs the others.
func (c *Catalog) Subscribe(fn func(Event)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

// snapshotSubs copies the current subscriber set. Callers must hold c.mu.
func (c *Catalog) snapshotSubs() []func(Event) {
	subs := make([]func(Event), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	return subs
}

// Subscribers run outside the lock to avoid deadlocks when a callback
// reads the catalog.
func notify(subs []func(Event), ev Event) {
	for _, fn := range subs {
		fn(ev)
	}
}
