package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tough-lang/tough/internal/lexer"
)

var showPos bool

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a TOUGH file or expression",
	Long: `Tokenize a TOUGH program and print the resulting tokens, one per
line, for debugging the lexer.

Examples:
  tough lex script.tough
  tough lex --show-pos script.tough
  tough lex -e "42 を継ぐ x"`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline source instead of reading from file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token line numbers")
}

func lexScript(cmd *cobra.Command, args []string) error {
	source, filename, err := readInput(evalExpr, args)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Printf("Tokenizing: %s\n", filename)
		fmt.Printf("Input length: %d bytes\n", len(source))
		fmt.Println("---")
	}

	tokens, err := lexer.Tokenize(source)
	if err != nil {
		reportCompileError(err, source, filename)
	}

	for _, tok := range tokens {
		if showPos {
			fmt.Printf("[%-16s] %q @%d\n", tok.Type, tok.Value, tok.Pos.Line)
		} else {
			fmt.Printf("[%-16s] %q\n", tok.Type, tok.Value)
		}
	}

	if verbose {
		fmt.Println("---")
		fmt.Printf("Total tokens: %d\n", len(tokens))
	}
	return nil
}
