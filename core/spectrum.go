package core

import (
	"fmt"
	"math"

	"github.com/signalsfoundry/binarystar-simulator/model"
)

// Canonical spectrum parameters: the Hα line with the window and
// sampling the original teaching scenarios use.
const (
	HAlphaNm              = 656.3
	DefaultWindowHalfNm   = 2.0
	DefaultSpectrumPoints = 1000
)

// CanonicalPhases are the orbital phases spectra are produced at by
// default: conjunctions and quadratures.
var CanonicalPhases = []float64{0.00, 0.25, 0.50, 0.75}

// PrimaryLines returns the default rest-frame line list for star 1.
func PrimaryLines() []model.SpectralLine {
	return []model.SpectralLine{{CenterNm: HAlphaNm, Depth: 0.6, SigmaNm: 0.05}}
}

// SecondaryLines returns the default rest-frame line list for star 2.
// The secondary's lines are shallower, as for a fainter companion.
func SecondaryLines() []model.SpectralLine {
	return []model.SpectralLine{{CenterNm: HAlphaNm, Depth: 0.4, SigmaNm: 0.05}}
}

// DefaultWindow returns the canonical wavelength window around Hα.
func DefaultWindow() model.WavelengthRange {
	return model.WavelengthRange{MinNm: HAlphaNm - DefaultWindowHalfNm, MaxNm: HAlphaNm + DefaultWindowHalfNm}
}

// DopplerShift returns the observed wavelength of a rest line for a
// signed radial velocity in km/s: positive RV (receding) shifts red,
// negative (approaching) shifts blue.
func DopplerShift(restNm, rvKmS float64) float64 {
	return restNm * (1 + rvKmS/SpeedOfLightKmS)
}

// Synthesize builds a flux spectrum of nSamples points evenly spaced
// over the window: continuum 1.0 with a Gaussian absorption dip per
// line, each centred at its Doppler-shifted wavelength for the given
// radial velocity. Lines are independent; dips subtract without
// re-normalisation, and a line shifted out of the window simply leaves
// no visible feature. Flux below zero from overlapping dips is kept
// as-is.
func Synthesize(lines []model.SpectralLine, rvKmS float64, window model.WavelengthRange, nSamples int) (model.Spectrum, error) {
	sp, err := newContinuum(window, nSamples)
	if err != nil {
		return model.Spectrum{}, err
	}
	if err := subtractLines(sp, lines, rvKmS); err != nil {
		return model.Spectrum{}, err
	}
	if err := checkFinite(sp); err != nil {
		return model.Spectrum{}, err
	}
	return sp, nil
}

// SynthesizePair combines both stars' line systems into one spectrum,
// each shifted by its own star's radial velocity at the sampled instant.
func SynthesizePair(rv model.RadialVelocitySample, lines1, lines2 []model.SpectralLine, window model.WavelengthRange, nSamples int) (model.Spectrum, error) {
	sp, err := newContinuum(window, nSamples)
	if err != nil {
		return model.Spectrum{}, err
	}
	if err := subtractLines(sp, lines1, rv.RV1KmS); err != nil {
		return model.Spectrum{}, err
	}
	if err := subtractLines(sp, lines2, rv.RV2KmS); err != nil {
		return model.Spectrum{}, err
	}
	if err := checkFinite(sp); err != nil {
		return model.Spectrum{}, err
	}
	return sp, nil
}

// SpectrumAtPhase synthesizes the combined spectrum at an orbital phase
// in [0, 1), evaluated at t = phase * P.
func (o *Orbit) SpectrumAtPhase(phase float64, lines1, lines2 []model.SpectralLine, window model.WavelengthRange, nSamples int) (model.Spectrum, error) {
	if phase < 0 || phase >= 1 {
		return model.Spectrum{}, fmt.Errorf("spectrum: phase must be within [0, 1), got %g", phase)
	}
	rv := o.RVSampleAt(phase * o.pair.PeriodDays)
	return SynthesizePair(rv, lines1, lines2, window, nSamples)
}

func newContinuum(window model.WavelengthRange, nSamples int) (model.Spectrum, error) {
	if err := window.Validate(); err != nil {
		return model.Spectrum{}, err
	}
	if nSamples <= 1 {
		return model.Spectrum{}, fmt.Errorf("spectrum: need at least 2 samples, got %d", nSamples)
	}

	sp := model.Spectrum{
		WavelengthsNm: SampleTimes(window.MinNm, window.MaxNm, nSamples),
		Flux:          make([]float64, nSamples),
	}
	for i := range sp.Flux {
		sp.Flux[i] = 1.0
	}
	return sp, nil
}

func subtractLines(sp model.Spectrum, lines []model.SpectralLine, rvKmS float64) error {
	for _, line := range lines {
		if line.SigmaNm <= 0 {
			return fmt.Errorf("spectrum: line at %g nm has non-positive width %g", line.CenterNm, line.SigmaNm)
		}
		center := DopplerShift(line.CenterNm, rvKmS)
		for i, wl := range sp.WavelengthsNm {
			d := (wl - center) / line.SigmaNm
			sp.Flux[i] -= line.Depth * math.Exp(-0.5*d*d)
		}
	}
	return nil
}

// checkFinite guards the numeric invariant: a NaN or Inf flux from
// validated inputs is an implementation bug and must surface, not
// propagate silently.
func checkFinite(sp model.Spectrum) error {
	for i, f := range sp.Flux {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("spectrum: non-finite flux %g at sample %d", f, i)
		}
	}
	return nil
}
