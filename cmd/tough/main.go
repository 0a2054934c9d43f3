// Command tough is the TOUGH compiler and REPL: lex, parse, emit-ir, run.
package main

import (
	"fmt"
	"os"

	"github.com/tough-lang/tough/cmd/tough/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
