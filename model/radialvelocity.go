package model

// RadialVelocitySample is a signed line-of-sight velocity pair at one
// instant, in km/s. Positive means receding from the observer.
//
// Momentum balance about the barycentre ties the two values together:
// RV1 == -(m2/m1)*RV2 at every instant, for every inclination.
type RadialVelocitySample struct {
	TimeDays float64 `json:"time_days"`
	RV1KmS   float64 `json:"rv1_kms"`
	RV2KmS   float64 `json:"rv2_kms"`
}
