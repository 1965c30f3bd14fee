// Package render produces plots of orbits, radial velocity curves and
// synthesized spectra.
package render

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/signalsfoundry/binarystar-simulator/core"
	"github.com/signalsfoundry/binarystar-simulator/model"
)

var (
	primaryColor   = color.RGBA{R: 0xd6, G: 0x45, B: 0x3c, A: 0xff}
	secondaryColor = color.RGBA{R: 0x2c, G: 0x6f, B: 0xb5, A: 0xff}
	ruleColor      = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
)

// OrbitFigure plots both stellar orbits around the barycenter, in AU.
// The axes are forced symmetric so the circles are not distorted.
func OrbitFigure(o *core.Orbit, points int) (*plot.Plot, error) {
	if points < 2 {
		return nil, fmt.Errorf("render: orbit figure needs at least 2 points, got %d", points)
	}

	p := plot.New()
	p.Title.Text = "Orbits in the barycentric frame"
	p.X.Label.Text = "x [AU]"
	p.Y.Label.Text = "y [AU]"

	states := o.Path(points)
	path1 := make(plotter.XYs, len(states))
	path2 := make(plotter.XYs, len(states))
	for i, s := range states {
		path1[i] = plotter.XY{X: s.Pos1.X, Y: s.Pos1.Y}
		path2[i] = plotter.XY{X: s.Pos2.X, Y: s.Pos2.Y}
	}

	line1, err := plotter.NewLine(path1)
	if err != nil {
		return nil, fmt.Errorf("render: primary orbit line: %w", err)
	}
	line1.Color = primaryColor

	line2, err := plotter.NewLine(path2)
	if err != nil {
		return nil, fmt.Errorf("render: secondary orbit line: %w", err)
	}
	line2.Color = secondaryColor

	p.Add(line1, line2)
	p.Legend.Add("star 1", line1)
	p.Legend.Add("star 2", line2)

	// The larger orbit belongs to the lighter star.
	limit := 1.1 * o.Radius2()
	if o.Radius1() > o.Radius2() {
		limit = 1.1 * o.Radius1()
	}
	p.X.Min, p.X.Max = -limit, limit
	p.Y.Min, p.Y.Max = -limit, limit

	return p, nil
}

// RVCurveFigure plots both radial velocity curves over the given number
// of orbital periods.
func RVCurveFigure(o *core.Orbit, periods float64, points int) (*plot.Plot, error) {
	samples := o.RVCurveOverPeriods(periods, points)
	if len(samples) == 0 {
		return nil, fmt.Errorf("render: rv figure needs at least 2 points, got %d", points)
	}

	p := plot.New()
	p.Title.Text = "Radial velocity"
	p.X.Label.Text = "time [days]"
	p.Y.Label.Text = "radial velocity [km/s]"

	curve1 := make(plotter.XYs, len(samples))
	curve2 := make(plotter.XYs, len(samples))
	for i, s := range samples {
		curve1[i] = plotter.XY{X: s.TimeDays, Y: s.RV1KmS}
		curve2[i] = plotter.XY{X: s.TimeDays, Y: s.RV2KmS}
	}

	line1, err := plotter.NewLine(curve1)
	if err != nil {
		return nil, fmt.Errorf("render: primary rv line: %w", err)
	}
	line1.Color = primaryColor

	line2, err := plotter.NewLine(curve2)
	if err != nil {
		return nil, fmt.Errorf("render: secondary rv line: %w", err)
	}
	line2.Color = secondaryColor

	zero, err := horizontalRule(0, samples[0].TimeDays, samples[len(samples)-1].TimeDays)
	if err != nil {
		return nil, err
	}

	p.Add(zero, line1, line2)
	p.Legend.Add("star 1", line1)
	p.Legend.Add("star 2", line2)

	return p, nil
}

// SpectrumFigure plots flux against wavelength. Vertical dashed rules
// mark each wavelength in marksNm, typically the rest and shifted line
// centers.
func SpectrumFigure(spec model.Spectrum, marksNm []float64) (*plot.Plot, error) {
	if spec.Len() < 2 {
		return nil, fmt.Errorf("render: spectrum figure needs at least 2 samples, got %d", spec.Len())
	}

	p := plot.New()
	p.Title.Text = "Synthesized spectrum"
	p.X.Label.Text = "wavelength [nm]"
	p.Y.Label.Text = "normalized flux"

	curve := make(plotter.XYs, spec.Len())
	for i := range spec.WavelengthsNm {
		curve[i] = plotter.XY{X: spec.WavelengthsNm[i], Y: spec.Flux[i]}
	}
	line, err := plotter.NewLine(curve)
	if err != nil {
		return nil, fmt.Errorf("render: flux line: %w", err)
	}
	line.Color = secondaryColor
	p.Add(line)

	minNm := spec.WavelengthsNm[0]
	maxNm := spec.WavelengthsNm[spec.Len()-1]
	fluxMin, fluxMax := fluxRange(spec.Flux)
	for _, mark := range marksNm {
		if mark < minNm || mark > maxNm {
			continue
		}
		rule, err := verticalRule(mark, fluxMin, fluxMax)
		if err != nil {
			return nil, err
		}
		p.Add(rule)
	}

	return p, nil
}

// SavePNG writes the plot to path as a PNG at a fixed figure size.
func SavePNG(p *plot.Plot, path string) error {
	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("render: save %s: %w", path, err)
	}
	return nil
}

// WritePNG encodes the plot as PNG into w.
func WritePNG(p *plot.Plot, w io.Writer) error {
	wt, err := p.WriterTo(8*vg.Inch, 5*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("render: encode png: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("render: write png: %w", err)
	}
	return nil
}

func horizontalRule(y, xMin, xMax float64) (*plotter.Line, error) {
	line, err := plotter.NewLine(plotter.XYs{{X: xMin, Y: y}, {X: xMax, Y: y}})
	if err != nil {
		return nil, fmt.Errorf("render: rule at y=%g: %w", y, err)
	}
	line.Color = ruleColor
	line.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	return line, nil
}

func verticalRule(x, yMin, yMax float64) (*plotter.Line, error) {
	line, err := plotter.NewLine(plotter.XYs{{X: x, Y: yMin}, {X: x, Y: yMax}})
	if err != nil {
		return nil, fmt.Errorf("render: rule at x=%g: %w", x, err)
	}
	line.Color = ruleColor
	line.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
	return line, nil
}

// fluxRange returns the flux extent with a little headroom so rules
// span the whole curve, including dips below zero from overlapping
// lines.
func fluxRange(flux []float64) (min, max float64) {
	min, max = flux[0], flux[0]
	for _, f := range flux[1:] {
		if f < min {
			min = f
		}
		if f > max {
			max = f
		}
	}
	pad := 0.05 * (max - min)
	if pad == 0 {
		pad = 0.05
	}
	return min - pad, max + pad
}
