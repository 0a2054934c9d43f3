package ast

import (
	"fmt"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// DumpJSON renders a Program as a JSON array of statement descriptions,
// one `sjson.Set` call per field the way a recursive AST walk naturally
// produces output one field at a time, then pretty-prints the result.
// It is a debugging aid for `tough parse --json`, not part of the
// compiler pipeline.
func DumpJSON(p *Program) (string, error) {
	json := "[]"
	var err error
	for i, stmt := range p.Statements {
		json, err = dumpStatement(json, fmt.Sprintf("%d", i), stmt)
		if err != nil {
			return "", err
		}
	}
	return string(pretty.Pretty([]byte(json))), nil
}

func dumpStatement(json, path string, stmt Statement) (string, error) {
	var err error
	set := func(field string, value any) {
		if err != nil {
			return
		}
		json, err = sjson.Set(json, path+"."+field, value)
	}

	set("line", stmt.Line())
	set("kind", kindOf(stmt))

	switch n := stmt.(type) {
	case *Comment:
		set("text", n.Text)
	case *Declare:
		set("name", n.Name)
	case *Assign:
		set("name", n.Name)
		set("value", n.Value.String())
	case *Print:
		set("value", n.Value.String())
	case *Input:
		set("name", n.Name)
	case *Increment:
		set("name", n.Name)
	case *Decrement:
		set("name", n.Name)
	case *Throw, *ProgramStart, *ProgramEnd:
		// No extra fields.
	case *If:
		set("condition", n.Condition.String())
		set("thenLen", len(n.ThenBody))
		set("elifCount", len(n.ElifClauses))
		set("hasElse", len(n.ElseBody) > 0)
	case *While:
		set("condition", n.Condition.String())
		set("bodyLen", len(n.Body))
	case *Fn:
		set("name", n.Name)
		set("params", n.Params)
		set("bodyLen", len(n.Body))
	case *Catch:
		set("name", n.Name)
		set("bodyLen", len(n.Body))
	}

	return json, err
}

func kindOf(stmt Statement) string {
	switch stmt.(type) {
	case *ProgramStart:
		return "ProgramStart"
	case *ProgramEnd:
		return "ProgramEnd"
	case *Comment:
		return "Comment"
	case *Declare:
		return "Declare"
	case *Assign:
		return "Assign"
	case *Print:
		return "Print"
	case *Input:
		return "Input"
	case *Increment:
		return "Increment"
	case *Decrement:
		return "Decrement"
	case *If:
		return "If"
	case *While:
		return "While"
	case *Fn:
		return "Fn"
	case *Catch:
		return "Catch"
	case *Throw:
		return "Throw"
	default:
		return fmt.Sprintf("%T", stmt)
	}
}
