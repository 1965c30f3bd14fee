package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/signalsfoundry/binarystar-simulator/core"
	"github.com/signalsfoundry/binarystar-simulator/render"
)

// printSystemSummary writes the derived orbital quantities for a pair.
func printSystemSummary(w io.Writer, orbit *core.Orbit) {
	pair := orbit.Pair()

	fmt.Fprintln(w, theme.headerStyle().Render("System"))
	row := func(label, value string) {
		fmt.Fprintf(w, "  %s %s\n", theme.labelStyle().Render(label+":"), theme.valueStyle().Render(value))
	}
	row("mass 1", fmt.Sprintf("%.3g M_sun", pair.Mass1))
	row("mass 2", fmt.Sprintf("%.3g M_sun", pair.Mass2))
	row("separation", fmt.Sprintf("%.3g AU", pair.SemiMajorAxisAU))
	row("period", fmt.Sprintf("%.4g days", pair.PeriodDays))
	row("inclination", fmt.Sprintf("%.4g deg", pair.InclinationDeg))

	fmt.Fprintln(w, theme.headerStyle().Render("Orbits"))
	row("orbit radius 1", fmt.Sprintf("%.4g AU", orbit.Radius1()))
	row("orbit radius 2", fmt.Sprintf("%.4g AU", orbit.Radius2()))
	row("orbital speed 1", fmt.Sprintf("%.4g km/s", orbit.Speed1KmS()))
	row("orbital speed 2", fmt.Sprintf("%.4g km/s", orbit.Speed2KmS()))
}

// printRVTable writes the radial velocities at the canonical phases.
func printRVTable(w io.Writer, orbit *core.Orbit) {
	fmt.Fprintln(w, theme.headerStyle().Render("Radial velocity by phase"))
	fmt.Fprintf(w, "  %-8s %14s %14s\n",
		theme.labelStyle().Render("phase"),
		theme.primaryStyle().Render("RV1 [km/s]"),
		theme.secondStyle().Render("RV2 [km/s]"))

	period := orbit.Pair().PeriodDays
	for _, phase := range core.CanonicalPhases {
		rv1, rv2 := orbit.RadialVelocitiesAt(phase * period)
		fmt.Fprintf(w, "  %-8.2f %14.4f %14.4f\n", phase, rv1, rv2)
	}
}

// savePlots writes orbit, radial velocity and per-phase spectrum
// figures into dir and returns the created file names.
func savePlots(orbit *core.Orbit, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var files []string
	save := func(name string, figErr func() error) error {
		if err := figErr(); err != nil {
			return err
		}
		files = append(files, name)
		return nil
	}

	orbitPath := filepath.Join(dir, "orbit.png")
	if err := save(orbitPath, func() error {
		fig, err := render.OrbitFigure(orbit, 720)
		if err != nil {
			return err
		}
		return render.SavePNG(fig, orbitPath)
	}); err != nil {
		return nil, err
	}

	rvPath := filepath.Join(dir, "rv.png")
	if err := save(rvPath, func() error {
		fig, err := render.RVCurveFigure(orbit, 2, 1000)
		if err != nil {
			return err
		}
		return render.SavePNG(fig, rvPath)
	}); err != nil {
		return nil, err
	}

	for _, phase := range core.CanonicalPhases {
		path := filepath.Join(dir, fmt.Sprintf("spectrum_phase_%03.0f.png", phase*100))
		if err := save(path, func() error {
			spectrum, err := orbit.SpectrumAtPhase(phase, core.PrimaryLines(), core.SecondaryLines(), core.DefaultWindow(), core.DefaultSpectrumPoints)
			if err != nil {
				return err
			}
			fig, err := render.SpectrumFigure(spectrum, []float64{core.HAlphaNm})
			if err != nil {
				return err
			}
			return render.SavePNG(fig, path)
		}); err != nil {
			return nil, err
		}
	}

	return files, nil
}
