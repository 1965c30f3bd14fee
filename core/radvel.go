package core

import (
	"math"

	"github.com/signalsfoundry/binarystar-simulator/model"
)

// RadialVelocitiesAt projects both stars' orbital velocities onto the
// line of sight at time t, in km/s. The sightline lies in the plane
// containing the orbit normal, scaled by sin(i): edge-on (i=90°) gives
// the full tangential speed as amplitude, face-on (i=0°) gives exactly
// zero regardless of t.
//
// The phase convention matches the orbital geometry in StateAt: RV is
// zero when a star crosses the plane of the sky (t=0) and extremal a
// quarter period later. The two values are opposite in phase and tied
// by the mass ratio, RV1 == -(m2/m1)*RV2.
func (o *Orbit) RadialVelocitiesAt(tDays float64) (rv1, rv2 float64) {
	theta := o.PhaseAt(tDays)
	rv1 = o.Speed1KmS() * math.Sin(theta) * o.sinInc
	rv2 = o.Speed2KmS() * math.Sin(theta+math.Pi) * o.sinInc
	return rv1, rv2
}

// RVSampleAt wraps RadialVelocitiesAt in a value sample.
func (o *Orbit) RVSampleAt(tDays float64) model.RadialVelocitySample {
	rv1, rv2 := o.RadialVelocitiesAt(tDays)
	return model.RadialVelocitySample{TimeDays: tDays, RV1KmS: rv1, RV2KmS: rv2}
}

// RVCurve evaluates the radial velocities at each given time.
func (o *Orbit) RVCurve(times []float64) []model.RadialVelocitySample {
	samples := make([]model.RadialVelocitySample, len(times))
	for i, t := range times {
		samples[i] = o.RVSampleAt(t)
	}
	return samples
}

// RVCurveOverPeriods samples n points spanning the given number of
// orbital periods starting at t=0. Radial-velocity plots conventionally
// cover two periods so the sinusoid repeats visibly.
func (o *Orbit) RVCurveOverPeriods(periods float64, n int) []model.RadialVelocitySample {
	return o.RVCurve(SampleTimes(0, periods*o.pair.PeriodDays, n))
}
