package core

import "math"

// AUPerDayToKmS converts a speed in AU/day to km/s.
const AUPerDayToKmS = 1731.5

// SpeedOfLightKmS is the speed of light in km/s.
const SpeedOfLightKmS = 299792.458

// AUToKm is the length of one astronomical unit in kilometres.
const AUToKm = 149597870.7

// Vec2 is a position or velocity in the orbital plane. Units depend on
// context: AU for positions, AU/day for velocities.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Dot returns the dot product of two vectors.
func (v Vec2) Dot(other Vec2) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Norm returns the Euclidean norm of the vector.
func (v Vec2) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// DistanceTo returns the straight-line distance between two points.
func (v Vec2) DistanceTo(other Vec2) float64 {
	dx := v.X - other.X
	dy := v.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}
