package cmd

import (
	"fmt"
	"os"

	"github.com/tough-lang/tough/internal/codegen"
	compilererrors "github.com/tough-lang/tough/internal/errors"
	"github.com/tough-lang/tough/internal/lexer"
	"github.com/tough-lang/tough/internal/parser"
)

// reportCompileError renders a Lexer/Parser/CodeGen failure the way
// internal/errors renders a CompilerError — source excerpt, caret,
// message — then exits 1. Anything else (an *Executor failure, an I/O
// error) is not a compiler error and is printed plainly instead.
func reportCompileError(err error, source, filename string) {
	line, message, ok := lineAndMessage(err)
	if !ok {
		fmt.Fprintf(os.Stderr, "【実行エラー】%v\n", err)
		os.Exit(1)
	}
	fmt.Fprintln(os.Stderr, "【エラー】"+compilererrors.New(line, message, source, filename).Format(true))
	os.Exit(1)
}

func lineAndMessage(err error) (line int, message string, ok bool) {
	switch e := err.(type) {
	case *lexer.LexerError:
		return e.Pos.Line, e.Message, true
	case *parser.ParseError:
		return e.Line, e.Message, true
	case *codegen.CodeGenError:
		return e.Line, e.Message, true
	default:
		return 0, "", false
	}
}
