package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var emitIRCmd = &cobra.Command{
	Use:   "emit-ir [file]",
	Short: "Compile a TOUGH program and print its LLVM IR",
	Long: `Compile a TOUGH program to LLVM IR and print it to stdout, preceded
by a banner, without executing it.

Examples:
  tough emit-ir script.tough
  tough emit-ir -e $'我が名は　尊鷹\n逃げるんかいっ\n'`,
	Args: cobra.MaximumNArgs(1),
	RunE: emitIR,
}

func init() {
	rootCmd.AddCommand(emitIRCmd)
	emitIRCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "compile inline source instead of reading from file")
}

func emitIR(_ *cobra.Command, args []string) error {
	source, filename, err := readInput(evalExpr, args)
	if err != nil {
		return err
	}

	d := newDriver()
	irText, err := d.EmitIR(source)
	if err != nil {
		reportCompileError(err, source, filename)
	}

	fmt.Println("--- LLVM IR ---")
	fmt.Println(irText)
	return nil
}
