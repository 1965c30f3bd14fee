// Package analysis recovers orbital parameters from sampled radial
// velocity curves. The estimator treats the curve as a uniformly
// sampled signal and looks for the dominant spectral peak.
package analysis

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/signalsfoundry/binarystar-simulator/model"
)

// Periodogram holds the one-sided power spectrum of a velocity curve.
type Periodogram struct {
	// FrequenciesPerDay holds the frequency of each bin in cycles per day.
	FrequenciesPerDay []float64
	// Power holds |X[k]|^2 for each bin.
	Power []float64
	// StepDays is the sample spacing of the input curve.
	StepDays float64
}

// PeriodEstimate is the result of a period search.
type PeriodEstimate struct {
	PeriodDays      float64
	FrequencyPerDay float64
	PeakPower       float64
}

// zero-padding factor before the FFT, for finer bin spacing
const padFactor = 4

// Compute builds the one-sided periodogram of a uniformly sampled
// radial velocity curve. The samples must be evenly spaced in time;
// the spacing is taken from the first two samples.
func Compute(samples []model.RadialVelocitySample) (*Periodogram, error) {
	if len(samples) < 4 {
		return nil, fmt.Errorf("periodogram: need at least 4 samples, got %d", len(samples))
	}

	step := samples[1].TimeDays - samples[0].TimeDays
	if step <= 0 {
		return nil, fmt.Errorf("periodogram: sample times must be strictly increasing")
	}

	signal := make([]float64, len(samples))
	mean := 0.0
	for i, s := range samples {
		signal[i] = s.RV1KmS
		mean += s.RV1KmS
	}
	mean /= float64(len(signal))

	// Remove the mean and apply a Hann window so the DC bin and
	// spectral leakage do not swamp the orbital peak.
	coeffs := hann(len(signal))
	for i := range signal {
		signal[i] = (signal[i] - mean) * coeffs[i]
	}

	fftSize := nextPow2(padFactor * len(signal))

	in := make([]complex128, fftSize)
	for i, v := range signal {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("periodogram: plan fft: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("periodogram: forward fft: %w", err)
	}

	// One-sided spectrum up to Nyquist.
	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := 0; k < bins; k++ {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}
	power := make([]float64, bins)
	vecmath.Power(power, re, im)

	freqs := make([]float64, bins)
	binWidth := 1.0 / (float64(fftSize) * step)
	for k := range freqs {
		freqs[k] = float64(k) * binWidth
	}

	return &Periodogram{
		FrequenciesPerDay: freqs,
		Power:             power,
		StepDays:          step,
	}, nil
}

// EstimatePeriod finds the dominant period of a radial velocity curve.
// The curve should cover at least two full orbits for a reliable peak.
func EstimatePeriod(samples []model.RadialVelocitySample) (PeriodEstimate, error) {
	pg, err := Compute(samples)
	if err != nil {
		return PeriodEstimate{}, err
	}
	return pg.Peak()
}

// Peak locates the strongest non-DC bin and refines it with parabolic
// interpolation over the neighbouring bins.
func (pg *Periodogram) Peak() (PeriodEstimate, error) {
	if len(pg.Power) < 3 {
		return PeriodEstimate{}, fmt.Errorf("periodogram: spectrum too short")
	}

	peak := 1
	for k := 2; k < len(pg.Power)-1; k++ {
		if pg.Power[k] > pg.Power[peak] {
			peak = k
		}
	}
	if pg.Power[peak] <= 0 {
		return PeriodEstimate{}, fmt.Errorf("periodogram: no spectral peak found")
	}

	binWidth := pg.FrequenciesPerDay[1] - pg.FrequenciesPerDay[0]
	offset := parabolicOffset(pg.Power[peak-1], pg.Power[peak], pg.Power[peak+1])
	freq := (float64(peak) + offset) * binWidth
	if freq <= 0 {
		return PeriodEstimate{}, fmt.Errorf("periodogram: degenerate peak frequency")
	}

	return PeriodEstimate{
		PeriodDays:      1.0 / freq,
		FrequencyPerDay: freq,
		PeakPower:       pg.Power[peak],
	}, nil
}

func hann(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}
	return w
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// parabolicOffset fits a parabola through three adjacent power values
// and returns the sub-bin offset of its vertex in [-0.5, 0.5].
func parabolicOffset(left, center, right float64) float64 {
	denom := left - 2*center + right
	if denom == 0 {
		return 0
	}
	off := 0.5 * (left - right) / denom
	if off < -0.5 {
		off = -0.5
	}
	if off > 0.5 {
		off = 0.5
	}
	return off
}
