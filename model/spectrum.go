package model

import "fmt"

// SpectralLine describes one rest-frame absorption line: a Gaussian dip
// of the given fractional depth and width (standard deviation), centred
// at CenterNm. Depth is expected in (0, 1]; values are not clamped.
type SpectralLine struct {
	CenterNm float64 `json:"center_nm"`
	Depth    float64 `json:"depth"`
	SigmaNm  float64 `json:"sigma_nm"`
}

// WavelengthRange is the observed window a spectrum is sampled over.
type WavelengthRange struct {
	MinNm float64 `json:"min_nm"`
	MaxNm float64 `json:"max_nm"`
}

// Validate rejects inverted or empty windows.
func (r WavelengthRange) Validate() error {
	if r.MinNm >= r.MaxNm {
		return fmt.Errorf("wavelength range: min %g must be below max %g", r.MinNm, r.MaxNm)
	}
	return nil
}

// Width returns the window span in nm.
func (r WavelengthRange) Width() float64 { return r.MaxNm - r.MinNm }

// Spectrum is an ordered sequence of (wavelength, flux) samples over a
// fixed window. Flux is 1.0 (continuum) outside absorption features.
// Overlapping lines subtract independently, so combined flux may drop
// below zero; that is intentional and left uncorrected.
type Spectrum struct {
	WavelengthsNm []float64 `json:"wavelengths_nm"`
	Flux          []float64 `json:"flux"`
}

// Len returns the number of samples.
func (s Spectrum) Len() int { return len(s.WavelengthsNm) }
