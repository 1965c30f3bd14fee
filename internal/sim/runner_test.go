package sim

import (
	"math"
	"testing"
	"time"

	"github.com/signalsfoundry/binarystar-simulator/kb"
	"github.com/signalsfoundry/binarystar-simulator/model"
	"github.com/signalsfoundry/binarystar-simulator/timectrl"
)

func TestStepUpdatesCatalogState(t *testing.T) {
	catalog := kb.NewCatalog()
	if err := catalog.Add(kb.StarSystem{Name: "default", Pair: model.DefaultStarPair()}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	clock := timectrl.NewTimeController(0, time.Millisecond, timectrl.Accelerated, 1)
	runner := NewRunner(catalog, clock, nil, nil)

	// A quarter period puts star 1 at its maximum recession velocity.
	runner.Step(91.25)

	system, _ := catalog.Get("default")
	if system.State.TimeDays != 91.25 {
		t.Fatalf("state time = %v, want 91.25", system.State.TimeDays)
	}
	if system.RV.RV1KmS <= 0 {
		t.Errorf("RV1 at quarter period = %v, want positive", system.RV.RV1KmS)
	}
	wantRatio := -model.DefaultMass2 / model.DefaultMass1
	if got := system.RV.RV1KmS / system.RV.RV2KmS; math.Abs(got-wantRatio) > 1e-9 {
		t.Errorf("RV1/RV2 = %v, want %v", got, wantRatio)
	}
}

func TestStartTicksThroughClock(t *testing.T) {
	catalog := kb.NewCatalog()
	if err := catalog.Add(kb.StarSystem{Name: "default", Pair: model.DefaultStarPair()}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	var updates int
	catalog.Subscribe(func(ev kb.Event) {
		if ev.Type == kb.EventSystemStateUpdated {
			updates++
		}
	})

	clock := timectrl.NewTimeController(0, 2*time.Millisecond, timectrl.Accelerated, 10)
	runner := NewRunner(catalog, clock, nil, nil)

	done := runner.Start(6 * time.Millisecond)
	if again := runner.Start(6 * time.Millisecond); again != done {
		t.Fatal("second Start returned a different channel")
	}
	<-done

	// One update per tick proves the second Start did not register a
	// second listener.
	if updates != 3 {
		t.Fatalf("got %d state updates, want 3", updates)
	}
	system, _ := catalog.Get("default")
	if system.State.TimeDays != 30 {
		t.Errorf("final state time = %v, want 30", system.State.TimeDays)
	}
}
