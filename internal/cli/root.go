// Package cli provides the command-line interface for the binary star
// simulator.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	theme = DefaultTheme
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "binarystar",
	Short: "Binary star orbit, radial velocity and spectrum simulator",
	Long: `Binarystar simulates a circular binary star system: the orbits of both
stars around their barycenter, the radial velocity curves an observer
would measure, and the Doppler-shifted absorption spectrum around the
H-alpha line.

Masses are in solar masses, separations in AU, periods in days and the
inclination in degrees (90 is edge-on).`,
	Version: Version,
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(examplesCmd)
	rootCmd.AddCommand(interactiveCmd)
	rootCmd.AddCommand(solarsysCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
