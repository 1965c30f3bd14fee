package core

import (
	"math"

	"github.com/signalsfoundry/binarystar-simulator/model"
)

// OrbitalState is a snapshot of both stars at one instant: phase angle,
// positions (AU), and velocities (AU/day) in the orbital plane. Both
// stars sit on a line through the barycentre at the origin, so the two
// positions are always diametrically opposite.
type OrbitalState struct {
	TimeDays float64 `json:"time_days"`
	PhaseRad float64 `json:"phase_rad"`
	Pos1     Vec2    `json:"pos1_au"`
	Pos2     Vec2    `json:"pos2_au"`
	Vel1     Vec2    `json:"vel1_au_day"`
	Vel2     Vec2    `json:"vel2_au_day"`
}

// Orbit derives the closed-form circular two-body geometry of a star
// pair: barycentric radii from the mass ratio, constant angular velocity
// from the period, and constant-magnitude tangential speeds. All derived
// values are precomputed once; per-call evaluation is pure arithmetic
// with no iteration.
type Orbit struct {
	pair model.StarPair

	r1, r2 float64 // barycentric radii, AU
	omega  float64 // angular velocity, rad/day
	v1, v2 float64 // tangential speeds, AU/day
	sinInc float64
}

// NewOrbit builds an Orbit from a configuration, validating it first.
// Invalid configurations are rejected here; once constructed, every
// method is total.
func NewOrbit(pair model.StarPair) (*Orbit, error) {
	if err := pair.Validate(); err != nil {
		return nil, err
	}

	total := pair.TotalMass()
	o := &Orbit{
		pair:  pair,
		r1:    pair.SemiMajorAxisAU * pair.Mass2 / total,
		r2:    pair.SemiMajorAxisAU * pair.Mass1 / total,
		omega: 2 * math.Pi / pair.PeriodDays,
	}
	o.v1 = o.r1 * o.omega
	o.v2 = o.r2 * o.omega
	o.sinInc = math.Sin(pair.InclinationDeg * math.Pi / 180)
	return o, nil
}

// Pair returns the configuration the orbit was built from.
func (o *Orbit) Pair() model.StarPair { return o.pair }

// Radius1 returns star 1's distance from the barycentre in AU.
func (o *Orbit) Radius1() float64 { return o.r1 }

// Radius2 returns star 2's distance from the barycentre in AU.
func (o *Orbit) Radius2() float64 { return o.r2 }

// AngularVelocity returns the constant angular velocity in rad/day.
func (o *Orbit) AngularVelocity() float64 { return o.omega }

// Speed1KmS returns star 1's constant tangential speed in km/s.
func (o *Orbit) Speed1KmS() float64 { return o.v1 * AUPerDayToKmS }

// Speed2KmS returns star 2's constant tangential speed in km/s.
func (o *Orbit) Speed2KmS() float64 { return o.v2 * AUPerDayToKmS }

// PhaseAt returns the phase angle at time t (days), wrapped to [0, 2π).
func (o *Orbit) PhaseAt(tDays float64) float64 {
	t := math.Mod(tDays, o.pair.PeriodDays)
	if t < 0 {
		t += o.pair.PeriodDays
	}
	return t * o.omega
}

// StateAt evaluates both stars' positions and velocities at time t.
// Star 1 is at (r1 cosθ, r1 sinθ); star 2 is half an orbit ahead on the
// opposite side of the barycentre. Velocities are tangential, consistent
// with increasing θ.
func (o *Orbit) StateAt(tDays float64) OrbitalState {
	theta := o.PhaseAt(tDays)
	sin, cos := math.Sincos(theta)

	return OrbitalState{
		TimeDays: tDays,
		PhaseRad: theta,
		Pos1:     Vec2{X: o.r1 * cos, Y: o.r1 * sin},
		Pos2:     Vec2{X: -o.r2 * cos, Y: -o.r2 * sin},
		Vel1:     Vec2{X: -o.v1 * sin, Y: o.v1 * cos},
		Vel2:     Vec2{X: o.v2 * sin, Y: -o.v2 * cos},
	}
}

// Path samples one full period at n evenly spaced times, for orbital
// path plots. n must be at least 2.
func (o *Orbit) Path(n int) []OrbitalState {
	times := SampleTimes(0, o.pair.PeriodDays, n)
	states := make([]OrbitalState, len(times))
	for i, t := range times {
		states[i] = o.StateAt(t)
	}
	return states
}

// Separation returns the instantaneous distance between the stars in AU.
// For a circular orbit this is the semi-major axis at every instant.
func (o *Orbit) Separation(tDays float64) float64 {
	s := o.StateAt(tDays)
	return s.Pos1.DistanceTo(s.Pos2)
}

// SampleTimes returns n evenly spaced times spanning [start, end],
// endpoints included. It returns nil when n < 2.
func SampleTimes(start, end float64, n int) []float64 {
	if n < 2 {
		return nil
	}
	times := make([]float64, n)
	step := (end - start) / float64(n-1)
	for i := range times {
		times[i] = start + float64(i)*step
	}
	return times
}
