package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/signalsfoundry/binarystar-simulator/core"
	"github.com/signalsfoundry/binarystar-simulator/kb"
)

var (
	examplesCatalog string
	examplesOutDir  string
	examplesPlots   bool
)

var examplesCmd = &cobra.Command{
	Use:   "examples",
	Short: "Run the preset example systems",
	Long: `Examples loads the preset catalog and prints the derived orbital
quantities and radial velocity tables for each system. With --plots it
also writes the PNG figures per system.

Examples:
  binarystar examples
  binarystar examples --catalog configs/catalog.json --plots`,
	RunE: runExamples,
}

func init() {
	examplesCmd.Flags().StringVar(&examplesCatalog, "catalog", "configs/catalog.json", "path to the preset catalog")
	examplesCmd.Flags().StringVarP(&examplesOutDir, "out", "o", "plots", "directory for PNG output")
	examplesCmd.Flags().BoolVar(&examplesPlots, "plots", false, "write PNG figures for every system")
}

func runExamples(cmd *cobra.Command, args []string) error {
	f, err := os.Open(examplesCatalog)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	catalog := kb.NewCatalog()
	summary, err := kb.LoadCatalog(catalog, f)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n",
		theme.headerStyle().Render("Loaded"),
		theme.valueStyle().Render(fmt.Sprintf("%d systems from %s", len(summary.SystemNames), examplesCatalog)))

	for _, name := range summary.SystemNames {
		system, ok := catalog.Get(name)
		if !ok {
			continue
		}
		orbit, err := core.NewOrbit(system.Pair)
		if err != nil {
			return fmt.Errorf("system %q: %w", name, err)
		}

		fmt.Fprintf(out, "\n%s\n", theme.headerStyle().Render("== "+name+" =="))
		printSystemSummary(out, orbit)
		printRVTable(out, orbit)

		if !examplesPlots {
			continue
		}
		dir := filepath.Join(examplesOutDir, name)
		files, err := savePlots(orbit, dir)
		if err != nil {
			return fmt.Errorf("system %q: %w", name, err)
		}
		fmt.Fprintf(out, "  %s\n", theme.hintStyle().Render(fmt.Sprintf("%d figures in %s", len(files), dir)))
	}
	return nil
}
