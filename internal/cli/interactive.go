package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/signalsfoundry/binarystar-simulator/core"
	"github.com/signalsfoundry/binarystar-simulator/model"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Prompt for parameters and simulate repeatedly",
	Long: `Interactive reads the system parameters from stdin, one prompt per
value with the default shown in brackets, and prints the same report as
the simulate command. Invalid input re-prompts; an empty answer keeps
the default.`,
	RunE: runInteractive,
}

func runInteractive(cmd *cobra.Command, args []string) error {
	in := bufio.NewScanner(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	for {
		pair, err := promptPair(in, out)
		if err != nil {
			return err
		}
		orbit, err := core.NewOrbit(pair)
		if err != nil {
			// promptPair validates; reaching this means a bug.
			return err
		}

		printSystemSummary(out, orbit)
		printRVTable(out, orbit)

		again, err := promptString(in, out, "simulate another system? (y/n)", "n")
		if err != nil {
			return err
		}
		if !strings.EqualFold(again, "y") && !strings.EqualFold(again, "yes") {
			return nil
		}
		fmt.Fprintln(out)
	}
}

// promptPair asks for each parameter until the whole set validates.
func promptPair(in *bufio.Scanner, out io.Writer) (model.StarPair, error) {
	for {
		mass1, err := promptFloat(in, out, "mass of star 1 [M_sun]", model.DefaultMass1)
		if err != nil {
			return model.StarPair{}, err
		}
		mass2, err := promptFloat(in, out, "mass of star 2 [M_sun]", model.DefaultMass2)
		if err != nil {
			return model.StarPair{}, err
		}
		separation, err := promptFloat(in, out, "separation [AU]", model.DefaultSemiMajorAxisAU)
		if err != nil {
			return model.StarPair{}, err
		}
		period, err := promptFloat(in, out, "orbital period [days]", model.DefaultPeriodDays)
		if err != nil {
			return model.StarPair{}, err
		}
		inclination, err := promptFloat(in, out, "inclination [deg]", model.DefaultInclinationDeg)
		if err != nil {
			return model.StarPair{}, err
		}

		pair, err := model.NewStarPair(mass1, mass2, separation, period, inclination)
		if err == nil {
			return pair, nil
		}
		fmt.Fprintln(out, theme.errorStyle().Render(err.Error()))
	}
}

// promptFloat re-prompts until it reads a number or an empty line,
// which selects the default.
func promptFloat(in *bufio.Scanner, out io.Writer, label string, def float64) (float64, error) {
	for {
		raw, err := promptString(in, out, label, strconv.FormatFloat(def, 'g', -1, 64))
		if err != nil {
			return 0, err
		}
		if raw == "" {
			return def, nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err == nil {
			return v, nil
		}
		fmt.Fprintln(out, theme.errorStyle().Render(fmt.Sprintf("not a number: %q", raw)))
	}
}

func promptString(in *bufio.Scanner, out io.Writer, label, def string) (string, error) {
	fmt.Fprintf(out, "%s %s ",
		theme.labelStyle().Render(label),
		theme.hintStyle().Render("["+def+"]:"))
	if !in.Scan() {
		if err := in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(in.Text()), nil
}
