package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/signalsfoundry/binarystar-simulator/solarsys"
)

var (
	solarsysDays  float64
	solarsysView  bool
	solarsysFacts bool
)

var solarsysCmd = &cobra.Command{
	Use:   "solarsys",
	Short: "Explore the bundled solar system model",
	Long: `Solarsys advances a small solar system model by a number of days,
prints each body's orbital speed, and then answers distance queries
between pairs of bodies until stdin closes. Typing "facts" in the
query loop (or passing --facts) prints a page of astronomy facts.

Examples:
  binarystar solarsys --days 100
  binarystar solarsys --days 365 --view
  binarystar solarsys --facts`,
	RunE: runSolarsys,
}

func init() {
	solarsysCmd.Flags().Float64Var(&solarsysDays, "days", 0, "days to advance before reporting")
	solarsysCmd.Flags().BoolVar(&solarsysView, "view", false, "print an ascii map of the system")
	solarsysCmd.Flags().BoolVar(&solarsysFacts, "facts", false, "print astronomy facts before the query loop")
}

func runSolarsys(cmd *cobra.Command, args []string) error {
	system := solarsys.NewSystem()
	system.Advance(solarsysDays)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n",
		theme.headerStyle().Render("Solar system at day"),
		theme.valueStyle().Render(fmt.Sprintf("%.4g", system.ElapsedDays())))

	fmt.Fprintf(out, "  %-10s %12s %12s %14s\n",
		theme.labelStyle().Render("body"),
		theme.labelStyle().Render("dist [AU]"),
		theme.labelStyle().Render("T [days]"),
		theme.labelStyle().Render("speed [km/s]"))
	for _, body := range system.Bodies {
		fmt.Fprintf(out, "  %-10s %12.3f %12.1f %14.2f\n",
			body.Name, body.DistanceAU, body.PeriodDays, body.OrbitalVelocityKmS())
	}

	if solarsysView {
		fmt.Fprintln(out)
		fmt.Fprint(out, system.AsciiView(40))
	}
	if solarsysFacts {
		printFacts(out)
	}

	return distanceLoop(cmd.InOrStdin(), out, system)
}

// printFacts prints the astronomy facts page.
func printFacts(out io.Writer) {
	sections := []struct {
		title string
		lines []string
	}{
		{"Astronomical Unit (AU)", []string{
			"1 AU = 149,597,870.7 km (distance from Earth to Sun)",
			"Used as a convenient unit for measuring distances in the solar system",
		}},
		{"Kepler's Laws of Planetary Motion", []string{
			"1. Planets move in elliptical orbits with the Sun at one focus",
			"2. A line joining a planet and the Sun sweeps equal areas in equal times",
			"3. The square of orbital period is proportional to the cube of semi-major axis",
		}},
		{"Orbital Velocity", []string{
			"Earth orbits the Sun at approximately 30 km/s",
			"Closer planets move faster (Mercury ~48 km/s)",
			"Farther planets move slower (Neptune ~5.4 km/s)",
		}},
		{"Fun Facts", []string{
			"Jupiter is more massive than all other planets combined",
			"Venus rotates backwards compared to most planets",
			"Mars has the largest volcano in the solar system (Olympus Mons)",
			"Saturn's rings are made of ice and rock particles",
		}},
	}

	fmt.Fprintf(out, "\n%s\n", theme.headerStyle().Render("Educational Astronomy Facts"))
	for _, s := range sections {
		fmt.Fprintf(out, "%s\n", theme.labelStyle().Render(s.title+":"))
		for _, line := range s.lines {
			fmt.Fprintf(out, "  %s\n", line)
		}
	}
}

// distanceLoop answers "earth mars" style queries until EOF or "quit".
// "facts" prints the astronomy facts page.
func distanceLoop(r io.Reader, out io.Writer, system *solarsys.System) error {
	in := bufio.NewScanner(r)
	for {
		fmt.Fprintf(out, "%s ", theme.hintStyle().Render("distance between (e.g. earth mars, facts, quit to exit):"))
		if !in.Scan() {
			return in.Err()
		}
		line := strings.TrimSpace(in.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "quit") || strings.EqualFold(line, "q") {
			return nil
		}
		if strings.EqualFold(line, "facts") {
			printFacts(out)
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			fmt.Fprintln(out, theme.errorStyle().Render("expected two body names"))
			continue
		}
		if err := printDistance(out, system, fields[0], fields[1]); err != nil {
			fmt.Fprintln(out, theme.errorStyle().Render(err.Error()))
		}
	}
}

func printDistance(out io.Writer, system *solarsys.System, a, b string) error {
	d, err := system.Distance(a, b)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "  %s %s\n",
		theme.labelStyle().Render(fmt.Sprintf("%s - %s:", strings.ToLower(a), strings.ToLower(b))),
		theme.valueStyle().Render(fmt.Sprintf("%.4g AU = %.4g km = %.4g light-seconds", d.AU, d.Km, d.LightSeconds)))
	return nil
}
