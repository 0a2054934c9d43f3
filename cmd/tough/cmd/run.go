package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var evalExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Compile and run a TOUGH program",
	Long: `Compile a TOUGH program to LLVM IR, verify it, and execute it with lli.

Examples:
  # Run a script file
  tough run script.tough

  # Run inline source
  tough run -e $'我が名は　尊鷹\n逃げるんかいっ\n'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "run inline source instead of reading from file")
}

func runScript(_ *cobra.Command, args []string) error {
	source, filename, err := readInput(evalExpr, args)
	if err != nil {
		return err
	}

	d := newDriver()
	code, err := d.Run(source)
	if err != nil {
		reportCompileError(err, source, filename)
	}
	os.Exit(code)
	return nil
}

// readInput resolves a command's input source from either the shared
// -e flag or a single positional file argument.
func readInput(eval string, args []string) (source, filename string, err error) {
	if eval != "" {
		return eval, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e flag for inline source")
}
