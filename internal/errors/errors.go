// Package errors formats TOUGH compiler errors with source context and a
// caret pointing at the offending line. TOUGH tokens only carry a line
// number (see internal/lexer.Position), so the caret always sits at
// column 1.
package errors

import (
	"fmt"
	"strings"
)

// CompilerError is a single compilation failure: a message, the line it
// occurred on, the file it came from (if any), and the source text it
// came from (so a context excerpt can be rendered).
type CompilerError struct {
	Message string
	Source  string
	File    string
	Line    int
}

func New(line int, message, source, file string) *CompilerError {
	return &CompilerError{Line: line, Message: message, Source: source, File: file}
}

func (e *CompilerError) Error() string { return e.Format(false) }

// Format renders the error with a one-line source excerpt and caret. If
// color is true, ANSI escapes highlight the excerpt and caret.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "Error in %s:%d\n", e.File, e.Line)
	} else {
		fmt.Fprintf(&sb, "Error at line %d\n", e.Line)
	}

	if line := e.sourceLine(e.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^\n")
		if color {
			sb.WriteString("\033[0m")
		}
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func (e *CompilerError) sourceLine(n int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if n < 1 || n > len(lines) {
		return ""
	}
	return lines[n-1]
}

// FormatAll renders a list of errors, numbering them when there is more
// than one.
func FormatAll(errs []*CompilerError, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(color)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "compilation failed with %d error(s):\n\n", len(errs))
	for i, err := range errs {
		fmt.Fprintf(&sb, "[error %d of %d]\n", i+1, len(errs))
		sb.WriteString(err.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
