package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tough-lang/tough/internal/config"
	"github.com/tough-lang/tough/internal/driver"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "tough",
	Short: "TOUGH compiler and REPL",
	Long: `tough is a compiler for TOUGH, a small imperative language whose
keywords are Japanese catch-phrases. Source is lexed, parsed, and lowered
to LLVM IR, then executed with lli.`,
	Version: Version,
	// Bare `tough` drops into the interactive shell.
	RunE: runREPL,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "tough.yaml", "path to the tough.yaml settings file")
}

var configPath string

// newDriver loads the --config settings file (tough.yaml by default),
// falling back to defaults when it is absent, and builds a Driver
// honoring its lli_path.
func newDriver() *driver.Driver {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; using defaults\n", err)
		cfg = config.Default()
	}
	return driver.NewFromConfig(cfg)
}
