package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tough-lang/tough/internal/codegen"
	"github.com/tough-lang/tough/internal/lexer"
	"github.com/tough-lang/tough/internal/parser"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive TOUGH shell",
	Long: `Start a line-buffered REPL. Input accumulates across lines while
braces are unbalanced; a completed program is compiled and run
immediately, and the session ends when the program exits (e.g. via
逃げるんかいっ or はっきり言ってそれって病気だから　お前死ぬよ) or on EOF/Ctrl-C.`,
	RunE: runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runREPL(_ *cobra.Command, _ []string) error {
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("  TOUGH v%s - LLVM compiler shell\n", Version)
	fmt.Println("  Ctrl-D or 逃げるんかいっ to exit")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println()

	d := newDriver()
	scanner := bufio.NewScanner(os.Stdin)

	var buffer []string
	braceDepth := 0

	for {
		if braceDepth > 0 {
			fmt.Print("...> ")
		} else {
			fmt.Print("tough> ")
		}

		if !scanner.Scan() {
			fmt.Println("\n逃げるんかいっ！")
			return nil
		}
		line := scanner.Text()

		braceDepth += strings.Count(line, "{") - strings.Count(line, "}")
		buffer = append(buffer, line)

		if braceDepth > 0 {
			continue
		}

		source := strings.Join(buffer, "\n")
		buffer = nil
		braceDepth = 0

		if strings.TrimSpace(source) == "" {
			continue
		}

		if _, err := d.Run(source); err != nil {
			fmt.Fprintf(os.Stderr, "%s%v\n", errorPrefix(err), err)
			continue
		}

		// An explicit 逃げるんかいっ or throw compiles to an exit() call,
		// which ends the whole process when the module runs in-process;
		// the session ends here too. Anything else keeps the prompt.
		if callsExit(source) {
			fmt.Println("逃げるんかいっ！")
			return nil
		}
	}
}

// callsExit reports whether source contains a statement that lowers to an
// exit() call (ProgramEnd or Throw). The source is already known to lex
// cleanly by the time this runs.
func callsExit(source string) bool {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return false
	}
	for _, tok := range tokens {
		if tok.Type == lexer.PROGRAM_END || tok.Type == lexer.THROW {
			return true
		}
	}
	return false
}

// errorPrefix distinguishes compile-time failures (Lexer/Parser/CodeGen)
// from everything that happens once a program is actually executing.
func errorPrefix(err error) string {
	var lexErr *lexer.LexerError
	var parseErr *parser.ParseError
	var codeGenErr *codegen.CodeGenError
	if errors.As(err, &lexErr) || errors.As(err, &parseErr) || errors.As(err, &codeGenErr) {
		return "【エラー】"
	}
	return "【実行エラー】"
}
