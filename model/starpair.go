package model

import "fmt"

// StarPair is the immutable configuration of a binary star system.
// Masses are in solar masses, the semi-major axis in AU, the period in
// days, and the inclination in degrees (90 = edge-on, 0 = face-on).
//
// A StarPair is only valid once it has passed through NewStarPair (or
// Validate); the engine refuses to derive anything from an invalid
// configuration.
type StarPair struct {
	Mass1           float64 `json:"mass1_msun"`
	Mass2           float64 `json:"mass2_msun"`
	SemiMajorAxisAU float64 `json:"semi_major_axis_au"`
	PeriodDays      float64 `json:"period_days"`
	InclinationDeg  float64 `json:"inclination_deg"`
}

// Default system parameters for the canonical example scenario.
const (
	DefaultMass1           = 1.5
	DefaultMass2           = 1.0
	DefaultSemiMajorAxisAU = 5.0
	DefaultPeriodDays      = 365.0
	DefaultInclinationDeg  = 90.0
)

// DefaultStarPair returns the canonical example configuration.
func DefaultStarPair() StarPair {
	return StarPair{
		Mass1:           DefaultMass1,
		Mass2:           DefaultMass2,
		SemiMajorAxisAU: DefaultSemiMajorAxisAU,
		PeriodDays:      DefaultPeriodDays,
		InclinationDeg:  DefaultInclinationDeg,
	}
}

// NewStarPair constructs a validated configuration. It returns an error
// naming the offending parameter when a constraint is violated.
func NewStarPair(mass1, mass2, semiMajorAxisAU, periodDays, inclinationDeg float64) (StarPair, error) {
	p := StarPair{
		Mass1:           mass1,
		Mass2:           mass2,
		SemiMajorAxisAU: semiMajorAxisAU,
		PeriodDays:      periodDays,
		InclinationDeg:  inclinationDeg,
	}
	if err := p.Validate(); err != nil {
		return StarPair{}, err
	}
	return p, nil
}

// Validate checks every configuration constraint eagerly.
func (p StarPair) Validate() error {
	if p.Mass1 <= 0 {
		return fmt.Errorf("star pair: mass1 must be positive, got %g", p.Mass1)
	}
	if p.Mass2 <= 0 {
		return fmt.Errorf("star pair: mass2 must be positive, got %g", p.Mass2)
	}
	if p.SemiMajorAxisAU <= 0 {
		return fmt.Errorf("star pair: semi-major axis must be positive, got %g", p.SemiMajorAxisAU)
	}
	if p.PeriodDays <= 0 {
		return fmt.Errorf("star pair: period must be positive, got %g", p.PeriodDays)
	}
	if p.InclinationDeg < 0 || p.InclinationDeg > 180 {
		return fmt.Errorf("star pair: inclination must be within [0, 180] degrees, got %g", p.InclinationDeg)
	}
	return nil
}

// TotalMass returns the combined mass in solar masses.
func (p StarPair) TotalMass() float64 { return p.Mass1 + p.Mass2 }
