package solarsys

import (
	"fmt"
	"strings"

	"github.com/signalsfoundry/binarystar-simulator/core"
)

// System is the simulated solar system: the Sun at the origin and the
// planets on circular orbits. It is not safe for concurrent use; the
// interactive loop drives it from one goroutine.
type System struct {
	Sun    Body
	Bodies []*Body

	elapsedDays float64
}

// NewSystem builds the preset ensemble: the inner planets plus Jupiter
// and Saturn, starting aligned on the +X axis.
func NewSystem() *System {
	return &System{
		Sun: Body{Name: "Sun", Symbol: '*', MassKg: 1.989e30, RadiusKm: 696340, Color: "yellow"},
		Bodies: []*Body{
			{Name: "Mercury", Symbol: 'M', MassKg: 3.285e23, DistanceAU: 0.39, PeriodDays: 88, RadiusKm: 2439.7, Color: "gray"},
			{Name: "Venus", Symbol: 'V', MassKg: 4.867e24, DistanceAU: 0.72, PeriodDays: 225, RadiusKm: 6051.8, Color: "orange"},
			{Name: "Earth", Symbol: 'E', MassKg: 5.972e24, DistanceAU: 1.0, PeriodDays: 365.25, RadiusKm: 6371, Color: "blue"},
			{Name: "Mars", Symbol: 'm', MassKg: 6.39e23, DistanceAU: 1.52, PeriodDays: 687, RadiusKm: 3389.5, Color: "red"},
			{Name: "Jupiter", Symbol: 'J', MassKg: 1.898e27, DistanceAU: 5.2, PeriodDays: 4333, RadiusKm: 69911, Color: "orange"},
			{Name: "Saturn", Symbol: 'S', MassKg: 5.683e26, DistanceAU: 9.54, PeriodDays: 10759, RadiusKm: 58232, Color: "yellow"},
		},
	}
}

// Advance moves every body forward by the given number of days.
func (s *System) Advance(days float64) {
	for _, b := range s.Bodies {
		b.Advance(days)
	}
	s.elapsedDays += days
}

// ElapsedDays returns the total simulated time in days.
func (s *System) ElapsedDays() float64 { return s.elapsedDays }

// Body looks a body up by name, case-insensitively.
func (s *System) Body(name string) (*Body, bool) {
	for _, b := range s.Bodies {
		if strings.EqualFold(b.Name, name) {
			return b, true
		}
	}
	return nil, false
}

// Distance is the separation between two bodies in several units.
type Distance struct {
	AU           float64 `json:"au"`
	Km           float64 `json:"km"`
	LightSeconds float64 `json:"light_seconds"`
}

// Distance computes the current separation between two named bodies.
func (s *System) Distance(nameA, nameB string) (Distance, error) {
	a, ok := s.Body(nameA)
	if !ok {
		return Distance{}, fmt.Errorf("solar system: unknown body %q", nameA)
	}
	b, ok := s.Body(nameB)
	if !ok {
		return Distance{}, fmt.Errorf("solar system: unknown body %q", nameB)
	}

	au := a.Position().DistanceTo(b.Position())
	km := au * core.AUToKm
	return Distance{
		AU:           au,
		Km:           km,
		LightSeconds: km / core.SpeedOfLightKmS,
	}, nil
}

// AsciiView renders a top-down grid of the system, Sun at the centre.
// size is the grid side length; bodies outside the grid are simply not
// drawn (the outer planets at the default scale).
func (s *System) AsciiView(size int) string {
	if size < 5 {
		size = 5
	}
	grid := make([][]byte, size)
	for i := range grid {
		grid[i] = make([]byte, size)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	center := size / 2
	grid[center][center] = s.Sun.Symbol

	const scale = 3 // grid cells per AU
	for _, b := range s.Bodies {
		pos := b.Position()
		x := center + int(pos.X*scale)
		y := center + int(pos.Y*scale)
		if x >= 0 && x < size && y >= 0 && y < size {
			grid[y][x] = b.Symbol
		}
	}

	var sb strings.Builder
	for _, row := range grid {
		sb.Write(row)
		sb.WriteByte('\n')
	}
	return sb.String()
}
