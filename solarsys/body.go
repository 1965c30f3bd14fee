// Package solarsys implements the interactive solar-system teaching
// ensemble: the Sun plus the classical planets on closed-form circular
// orbits, advanced in simulated days. It reuses the same circular-orbit
// arithmetic as the binary-star engine, just with one fixed central
// body instead of a barycentre between two.
package solarsys

import (
	"math"

	"github.com/signalsfoundry/binarystar-simulator/core"
)

// Body is a celestial body on a circular orbit about the Sun.
type Body struct {
	Name       string  `json:"name"`
	Symbol     byte    `json:"-"` // single-letter marker for the ASCII view
	MassKg     float64 `json:"mass_kg"`
	DistanceAU float64 `json:"distance_au"`
	PeriodDays float64 `json:"period_days"`
	RadiusKm   float64 `json:"radius_km"`
	Color      string  `json:"color"`

	angle float64 // current orbital angle, radians
}

// Advance moves the body along its orbit by the given number of days.
// The Sun (period 0) does not move.
func (b *Body) Advance(days float64) {
	if b.PeriodDays <= 0 {
		return
	}
	b.angle += 2 * math.Pi / b.PeriodDays * days
	b.angle = math.Mod(b.angle, 2*math.Pi)
	if b.angle < 0 {
		b.angle += 2 * math.Pi
	}
}

// Angle returns the current orbital angle in radians, in [0, 2π).
func (b *Body) Angle() float64 { return b.angle }

// Position returns the body's plane coordinates in AU.
func (b *Body) Position() core.Vec2 {
	return core.Vec2{
		X: b.DistanceAU * math.Cos(b.angle),
		Y: b.DistanceAU * math.Sin(b.angle),
	}
}

// OrbitalVelocityKmS returns the circular orbital speed, 2πr/T, in km/s.
func (b *Body) OrbitalVelocityKmS() float64 {
	if b.PeriodDays <= 0 {
		return 0
	}
	distanceKm := b.DistanceAU * core.AUToKm
	periodSeconds := b.PeriodDays * 24 * 3600
	return 2 * math.Pi * distanceKm / periodSeconds
}
