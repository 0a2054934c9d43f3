package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tough-lang/tough/internal/fixture"
)

var (
	fixturesDir    string
	fixturesFilter string
)

var fixturesCmd = &cobra.Command{
	Use:   "fixtures",
	Short: "List the archived end-to-end test fixtures",
	Long: `List the txtar fixtures under testdata/fixtures, the same cases
the internal/fixture test suite runs under lli. --filter restricts the
listing to names matching a shell-style glob.`,
	RunE: listFixtures,
}

func init() {
	rootCmd.AddCommand(fixturesCmd)
	fixturesCmd.Flags().StringVar(&fixturesDir, "dir", "testdata/fixtures", "directory containing *.txtar fixtures")
	fixturesCmd.Flags().StringVar(&fixturesFilter, "filter", "", "glob pattern restricting which fixtures are listed")
}

func listFixtures(_ *cobra.Command, _ []string) error {
	cases, err := fixture.Load(fixturesDir)
	if err != nil {
		return fmt.Errorf("loading fixtures from %s: %w", fixturesDir, err)
	}

	cases = fixture.Filter(cases, fixturesFilter)
	if len(cases) == 0 {
		fmt.Fprintln(os.Stderr, "no fixtures matched")
		return nil
	}

	for _, c := range cases {
		fmt.Printf("%s\t(exit %d)\n", c.Name, c.WantExitCode)
	}
	return nil
}
