package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/signalsfoundry/binarystar-simulator/core"
	"github.com/signalsfoundry/binarystar-simulator/model"
)

var (
	simMass1       float64
	simMass2       float64
	simSeparation  float64
	simPeriod      float64
	simInclination float64
	simOutDir      string
	simNoPlots     bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate one binary system and write its plots",
	Long: `Simulate computes the orbits, radial velocity curves and Doppler
spectra for a single binary system and writes PNG figures.

Examples:
  binarystar simulate
  binarystar simulate --mass1 2 --mass2 1.5 --separation 8 --period 500
  binarystar simulate --inclination 30 --out plots/`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().Float64Var(&simMass1, "mass1", model.DefaultMass1, "mass of star 1 in solar masses")
	simulateCmd.Flags().Float64Var(&simMass2, "mass2", model.DefaultMass2, "mass of star 2 in solar masses")
	simulateCmd.Flags().Float64Var(&simSeparation, "separation", model.DefaultSemiMajorAxisAU, "separation between the stars in AU")
	simulateCmd.Flags().Float64Var(&simPeriod, "period", model.DefaultPeriodDays, "orbital period in days")
	simulateCmd.Flags().Float64Var(&simInclination, "inclination", model.DefaultInclinationDeg, "orbital inclination in degrees")
	simulateCmd.Flags().StringVarP(&simOutDir, "out", "o", "plots", "directory for PNG output")
	simulateCmd.Flags().BoolVar(&simNoPlots, "no-plots", false, "skip writing PNG figures")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	pair, err := model.NewStarPair(simMass1, simMass2, simSeparation, simPeriod, simInclination)
	if err != nil {
		return err
	}
	orbit, err := core.NewOrbit(pair)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printSystemSummary(out, orbit)
	printRVTable(out, orbit)

	if simNoPlots {
		return nil
	}
	files, err := savePlots(orbit, simOutDir)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, theme.headerStyle().Render("Figures"))
	for _, f := range files {
		fmt.Fprintf(out, "  %s\n", theme.hintStyle().Render(f))
	}
	return nil
}
