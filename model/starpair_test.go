package model

import (
	"strings"
	"testing"
)

func TestNewStarPairValid(t *testing.T) {
	p, err := NewStarPair(1.5, 1.0, 5.0, 365.0, 90.0)
	if err != nil {
		t.Fatalf("NewStarPair: %v", err)
	}
	if p.TotalMass() != 2.5 {
		t.Fatalf("TotalMass = %v, want 2.5", p.TotalMass())
	}
}

func TestNewStarPairRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name                  string
		m1, m2, a, period, inc float64
		wantSubstr            string
	}{
		{"zero mass1", 0, 1, 5, 365, 90, "mass1"},
		{"negative mass2", 1, -2, 5, 365, 90, "mass2"},
		{"zero axis", 1, 1, 0, 365, 90, "semi-major axis"},
		{"negative period", 1, 1, 5, -1, 90, "period"},
		{"inclination below range", 1, 1, 5, 365, -0.5, "inclination"},
		{"inclination above range", 1, 1, 5, 365, 180.5, "inclination"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewStarPair(tc.m1, tc.m2, tc.a, tc.period, tc.inc)
			if err == nil {
				t.Fatalf("expected configuration error")
			}
			if !strings.Contains(err.Error(), tc.wantSubstr) {
				t.Fatalf("error %q does not name parameter %q", err, tc.wantSubstr)
			}
		})
	}
}

func TestDefaultStarPairIsValid(t *testing.T) {
	if err := DefaultStarPair().Validate(); err != nil {
		t.Fatalf("default configuration should validate, got %v", err)
	}
}

func TestWavelengthRangeValidate(t *testing.T) {
	if err := (WavelengthRange{MinNm: 654.3, MaxNm: 658.3}).Validate(); err != nil {
		t.Fatalf("valid range rejected: %v", err)
	}
	if err := (WavelengthRange{MinNm: 658.3, MaxNm: 654.3}).Validate(); err == nil {
		t.Fatalf("inverted range accepted")
	}
	if err := (WavelengthRange{MinNm: 656.3, MaxNm: 656.3}).Validate(); err == nil {
		t.Fatalf("empty range accepted")
	}
}
