package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tough-lang/tough/internal/ast"
	"github.com/tough-lang/tough/internal/lexer"
	"github.com/tough-lang/tough/internal/parser"
)

var dumpJSON bool

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a TOUGH file and dump its AST",
	Long: `Tokenize and parse a TOUGH program and print its AST, for debugging
the parser. By default prints each statement's debug String(); --json
prints the same tree as indented JSON instead.

Examples:
  tough parse script.tough
  tough parse --json -e "xだ xが正体を現すぞ"`,
	Args: cobra.MaximumNArgs(1),
	RunE: parseScript,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "parse inline source instead of reading from file")
	parseCmd.Flags().BoolVar(&dumpJSON, "json", false, "dump the AST as JSON instead of its debug String()")
}

func parseScript(_ *cobra.Command, args []string) error {
	source, filename, err := readInput(evalExpr, args)
	if err != nil {
		return err
	}

	tokens, err := lexer.Tokenize(source)
	if err != nil {
		reportCompileError(err, source, filename)
	}

	program, err := parser.New(tokens).Parse()
	if err != nil {
		reportCompileError(err, source, filename)
	}

	if dumpJSON {
		dump, err := ast.DumpJSON(program)
		if err != nil {
			return fmt.Errorf("dumping AST: %w", err)
		}
		fmt.Println(dump)
		return nil
	}

	fmt.Print(program.String())
	return nil
}
