package core

import (
	"math"
	"testing"
)

func TestRVAntisymmetryAcrossInclinations(t *testing.T) {
	for _, inc := range []float64{0, 15, 30, 45, 60, 90, 120, 180} {
		o := mustOrbit(t, 1.5, 1.0, 5.0, 365, inc)
		for _, tDays := range []float64{0, 10, 91.25, 200, 364, 500} {
			rv1, rv2 := o.RadialVelocitiesAt(tDays)
			// Momentum balance: RV1 == -(m2/m1)*RV2, whatever the viewing angle.
			want := -(1.0 / 1.5) * rv2
			if math.Abs(rv1-want) > 1e-9 {
				t.Errorf("i=%v t=%v: RV1 = %v, want %v", inc, tDays, rv1, want)
			}
		}
	}
}

func TestRVZeroFaceOn(t *testing.T) {
	o := mustOrbit(t, 1.5, 1.0, 5.0, 365, 0)
	for _, tDays := range []float64{0, 45.6, 91.25, 182.5, 300} {
		rv1, rv2 := o.RadialVelocitiesAt(tDays)
		if rv1 != 0 || rv2 != 0 {
			t.Errorf("t=%v: face-on RV = (%v, %v), want exactly zero", tDays, rv1, rv2)
		}
	}
}

func TestRVAmplitudeEdgeOn(t *testing.T) {
	o := mustOrbit(t, 1.5, 1.0, 5.0, 365, 90)

	max1 := 0.0
	for _, s := range o.RVCurveOverPeriods(1, 2000) {
		if v := math.Abs(s.RV1KmS); v > max1 {
			max1 = v
		}
	}
	if math.Abs(max1-o.Speed1KmS()) > 1e-6*o.Speed1KmS() {
		t.Errorf("edge-on |RV1| max = %v, want tangential speed %v", max1, o.Speed1KmS())
	}
}

func TestRVPhaseConvention(t *testing.T) {
	o := mustOrbit(t, 1.5, 1.0, 5.0, 365, 90)

	// Zero at the sky-plane crossing...
	rv1, rv2 := o.RadialVelocitiesAt(0)
	if math.Abs(rv1) > 1e-9 || math.Abs(rv2) > 1e-9 {
		t.Fatalf("RV at t=0 = (%v, %v), want (0, 0)", rv1, rv2)
	}
	// ...and extremal a quarter period later.
	rv1, rv2 = o.RadialVelocitiesAt(365.0 / 4)
	if math.Abs(rv1-o.Speed1KmS()) > 1e-9 {
		t.Errorf("RV1 at quarter period = %v, want +%v", rv1, o.Speed1KmS())
	}
	if math.Abs(rv2+o.Speed2KmS()) > 1e-9 {
		t.Errorf("RV2 at quarter period = %v, want -%v", rv2, o.Speed2KmS())
	}
}

func TestRVInclinationScalesAmplitude(t *testing.T) {
	quarter := 365.0 / 4
	edgeOn := mustOrbit(t, 1.5, 1.0, 5.0, 365, 90)
	inclined := mustOrbit(t, 1.5, 1.0, 5.0, 365, 30)

	full, _ := edgeOn.RadialVelocitiesAt(quarter)
	half, _ := inclined.RadialVelocitiesAt(quarter)
	// sin 30° = 0.5.
	if math.Abs(half-0.5*full) > 1e-9 {
		t.Errorf("RV1 at i=30 = %v, want half of edge-on %v", half, full)
	}
}

func TestEqualMassRVMirrored(t *testing.T) {
	// Equal masses, a=10 AU, P=500 d: RV1(t) == -RV2(t) for all t.
	o := mustOrbit(t, 1.0, 1.0, 10.0, 500, 90)
	for _, s := range o.RVCurveOverPeriods(2, 101) {
		if math.Abs(s.RV1KmS+s.RV2KmS) > 1e-9 {
			t.Errorf("t=%v: RV1=%v RV2=%v, want exact mirror", s.TimeDays, s.RV1KmS, s.RV2KmS)
		}
	}
	if math.Abs(o.Radius1()-5.0) > tol || math.Abs(o.Radius2()-5.0) > tol {
		t.Errorf("equal-mass radii = (%v, %v), want (5, 5)", o.Radius1(), o.Radius2())
	}
}

func TestRVCurveSampling(t *testing.T) {
	o := mustOrbit(t, 1.5, 1.0, 5.0, 365, 90)
	curve := o.RVCurveOverPeriods(2, 11)
	if len(curve) != 11 {
		t.Fatalf("RVCurveOverPeriods returned %d samples, want 11", len(curve))
	}
	if curve[0].TimeDays != 0 || math.Abs(curve[10].TimeDays-730) > tol {
		t.Errorf("curve spans %v..%v days, want 0..730", curve[0].TimeDays, curve[10].TimeDays)
	}
}
