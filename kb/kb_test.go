package kb

import (
	"strings"
	"testing"

	"github.com/signalsfoundry/binarystar-simulator/core"
	"github.com/signalsfoundry/binarystar-simulator/model"
)

func validSystem(name string) StarSystem {
	return StarSystem{Name: name, Pair: model.DefaultStarPair()}
}

func TestAddGetList(t *testing.T) {
	c := NewCatalog()

	if err := c.Add(validSystem("algol")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := c.Add(validSystem("sirius")); err != nil {
		t.Fatalf("Add: %v", err)
	}

	got, ok := c.Get("algol")
	if !ok {
		t.Fatalf("Get(algol) missing")
	}
	if got.Pair.Mass1 != model.DefaultMass1 {
		t.Errorf("stored pair mass1 = %v", got.Pair.Mass1)
	}
	// Default line lists are filled in on Add.
	if len(got.Lines1) == 0 || len(got.Lines2) == 0 {
		t.Errorf("default line lists not populated: %d/%d", len(got.Lines1), len(got.Lines2))
	}

	list := c.List()
	if len(list) != 2 || c.Len() != 2 {
		t.Fatalf("List/Len = %d/%d, want 2", len(list), c.Len())
	}
	if list[0].Name != "algol" || list[1].Name != "sirius" {
		t.Errorf("List not sorted by name: %v, %v", list[0].Name, list[1].Name)
	}
}

func TestAddRejectsDuplicatesAndInvalid(t *testing.T) {
	c := NewCatalog()
	if err := c.Add(validSystem("algol")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := c.Add(validSystem("algol")); err == nil {
		t.Errorf("duplicate name accepted")
	}
	if err := c.Add(StarSystem{Name: "bad", Pair: model.StarPair{Mass1: -1}}); err == nil {
		t.Errorf("invalid configuration accepted")
	}
	if err := c.Add(StarSystem{Pair: model.DefaultStarPair()}); err == nil {
		t.Errorf("empty name accepted")
	}
}

func TestRemove(t *testing.T) {
	c := NewCatalog()
	if err := c.Add(validSystem("algol")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := c.Remove("algol"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, ok := c.Get("algol"); ok {
		t.Errorf("system still present after Remove")
	}
	if err := c.Remove("algol"); err == nil {
		t.Errorf("removing a missing system should error")
	}
}

func TestUpdateStateNotifiesSubscribers(t *testing.T) {
	c := NewCatalog()
	if err := c.Add(validSystem("algol")); err != nil {
		t.Fatalf("Add: %v", err)
	}

	var events []Event
	unsubscribe := c.Subscribe(func(ev Event) { events = append(events, ev) })

	state := core.OrbitalState{TimeDays: 10}
	rv := model.RadialVelocitySample{TimeDays: 10, RV1KmS: 12.5, RV2KmS: -18.75}
	if err := c.UpdateState("algol", state, rv); err != nil {
		t.Fatalf("UpdateState: %v", err)
	}

	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Type != EventSystemStateUpdated {
		t.Errorf("event type = %v", events[0].Type)
	}
	if events[0].System.RV.RV1KmS != 12.5 {
		t.Errorf("event carries RV1 = %v, want 12.5", events[0].System.RV.RV1KmS)
	}

	got, _ := c.Get("algol")
	if got.State.TimeDays != 10 {
		t.Errorf("stored state time = %v, want 10", got.State.TimeDays)
	}

	unsubscribe()
	if err := c.UpdateState("algol", state, rv); err != nil {
		t.Fatalf("UpdateState after unsubscribe: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("unsubscribed callback still invoked")
	}

	if err := c.UpdateState("missing", state, rv); err == nil {
		t.Errorf("UpdateState on missing system should error")
	}
}

func TestUnsubscribeLeavesOtherSubscribersIntact(t *testing.T) {
	c := NewCatalog()
	if err := c.Add(validSystem("algol")); err != nil {
		t.Fatalf("Add: %v", err)
	}

	counts := make([]int, 3)
	unsubA := c.Subscribe(func(Event) { counts[0]++ })
	unsubB := c.Subscribe(func(Event) { counts[1]++ })
	c.Subscribe(func(Event) { counts[2]++ })

	// Removing earlier subscribers must not shift later ones.
	unsubA()
	unsubB()

	state := core.OrbitalState{TimeDays: 1}
	rv := model.RadialVelocitySample{TimeDays: 1}
	if err := c.UpdateState("algol", state, rv); err != nil {
		t.Fatalf("UpdateState: %v", err)
	}

	if counts[0] != 0 || counts[1] != 0 {
		t.Errorf("unsubscribed callbacks invoked: a=%d b=%d", counts[0], counts[1])
	}
	if counts[2] != 1 {
		t.Errorf("remaining subscriber received %d events, want 1", counts[2])
	}

	// Unsubscribing twice is a no-op.
	unsubB()
	if err := c.UpdateState("algol", state, rv); err != nil {
		t.Fatalf("UpdateState: %v", err)
	}
	if counts[2] != 2 {
		t.Errorf("remaining subscriber received %d events, want 2", counts[2])
	}
}

func TestLoadCatalog(t *testing.T) {
	const preset = `{
		"systems": [
			{"name": "default", "mass1_msun": 1.5, "mass2_msun": 1.0, "semi_major_axis_au": 5.0, "period_days": 365},
			{"name": "inclined", "mass1_msun": 1.0, "mass2_msun": 1.0, "semi_major_axis_au": 4.0, "period_days": 365, "inclination_deg": 60,
			 "lines1": [{"center_nm": 656.3, "depth": 0.5, "sigma_nm": 0.05}]}
		]
	}`

	c := NewCatalog()
	summary, err := LoadCatalog(c, strings.NewReader(preset))
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if len(summary.SystemNames) != 2 {
		t.Fatalf("loaded %d systems, want 2", len(summary.SystemNames))
	}

	def, ok := c.Get("default")
	if !ok {
		t.Fatalf("default system missing")
	}
	if def.Pair.InclinationDeg != model.DefaultInclinationDeg {
		t.Errorf("omitted inclination = %v, want default %v", def.Pair.InclinationDeg, model.DefaultInclinationDeg)
	}

	inclined, _ := c.Get("inclined")
	if inclined.Pair.InclinationDeg != 60 {
		t.Errorf("inclination = %v, want 60", inclined.Pair.InclinationDeg)
	}
	if len(inclined.Lines1) != 1 || inclined.Lines1[0].Depth != 0.5 {
		t.Errorf("explicit line list not preserved: %+v", inclined.Lines1)
	}
}

func TestLoadCatalogRejectsBadInput(t *testing.T) {
	cases := []struct {
		name, payload string
	}{
		{"malformed json", `{"systems": [`},
		{"empty name", `{"systems": [{"mass1_msun": 1, "mass2_msun": 1, "semi_major_axis_au": 1, "period_days": 1}]}`},
		{"invalid config", `{"systems": [{"name": "x", "mass1_msun": -1, "mass2_msun": 1, "semi_major_axis_au": 1, "period_days": 1}]}`},
		{"duplicate name", `{"systems": [
			{"name": "x", "mass1_msun": 1, "mass2_msun": 1, "semi_major_axis_au": 1, "period_days": 1},
			{"name": "x", "mass1_msun": 1, "mass2_msun": 1, "semi_major_axis_au": 1, "period_days": 1}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCatalog()
			if _, err := LoadCatalog(c, strings.NewReader(tc.payload)); err == nil {
				t.Errorf("expected load error")
			}
			if c.Len() != 0 {
				t.Errorf("failed load left %d systems in the catalog", c.Len())
			}
		})
	}
}

func TestLoadCatalogFailureAppliesNothing(t *testing.T) {
	const preset = `{
		"systems": [
			{"name": "good", "mass1_msun": 1.5, "mass2_msun": 1.0, "semi_major_axis_au": 5.0, "period_days": 365},
			{"name": "bad", "mass1_msun": -1, "mass2_msun": 1.0, "semi_major_axis_au": 5.0, "period_days": 365}
		]
	}`

	c := NewCatalog()
	if err := c.Add(validSystem("preexisting")); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if _, err := LoadCatalog(c, strings.NewReader(preset)); err == nil {
		t.Fatalf("expected load error")
	}
	if _, ok := c.Get("good"); ok {
		t.Errorf("valid entry from a failed load was applied")
	}
	if c.Len() != 1 {
		t.Errorf("catalog has %d systems after failed load, want 1", c.Len())
	}
}
