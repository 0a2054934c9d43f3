package ast_test

import (
	"testing"

	"github.com/kr/pretty"
	"github.com/tidwall/gjson"

	"github.com/tough-lang/tough/internal/ast"
	"github.com/tough-lang/tough/internal/lexer"
)

func tok(typ lexer.TokenType, value string, line int) lexer.Token {
	return lexer.Token{Type: typ, Value: value, Pos: lexer.Position{Line: line}}
}

func TestConstructorsCarryLine(t *testing.T) {
	decl := ast.NewDeclare(tok(lexer.DECLARE_DA, "x", 7), "x")
	if decl.Line() != 7 {
		t.Errorf("Declare.Line() = %d, want 7", decl.Line())
	}
	if decl.Name != "x" {
		t.Errorf("Declare.Name = %q, want %q", decl.Name, "x")
	}
}

func TestBinaryOpString(t *testing.T) {
	left := ast.NewIdentifier(tok(lexer.IDENT, "x", 1), "x")
	right := ast.NewIntLiteral(tok(lexer.INT, "1", 1), 1)
	op := ast.NewBinaryOp(tok(lexer.EQ, "ガチンコ", 1), ast.OpEq, left, right)

	if got := op.String(); got != "(x == 1)" {
		t.Errorf("BinaryOp.String() = %q, want %q", got, "(x == 1)")
	}
}

func TestDumpJSONIncludesEveryStatementKind(t *testing.T) {
	program := &ast.Program{
		Statements: []ast.Statement{
			ast.NewProgramStart(tok(lexer.PROGRAM_START, "", 1)),
			ast.NewDeclare(tok(lexer.DECLARE_DA, "x", 2), "x"),
			ast.NewAssign(tok(lexer.ASSIGN_TSUGU, "", 3), "x", ast.NewIntLiteral(tok(lexer.INT, "1", 3), 1)),
			ast.NewPrint(tok(lexer.PRINT, "", 4), ast.NewIdentifier(tok(lexer.IDENT, "x", 4), "x")),
			ast.NewProgramEnd(tok(lexer.PROGRAM_END, "", 5)),
		},
	}

	out, err := ast.DumpJSON(program)
	if err != nil {
		t.Fatalf("DumpJSON: %v", err)
	}

	kinds := gjson.Get(out, "#.kind").Array()
	wantKinds := []string{"ProgramStart", "Declare", "Assign", "Print", "ProgramEnd"}
	if len(kinds) != len(wantKinds) {
		t.Fatalf("got %d statement kinds, want %d:\n%s", len(kinds), len(wantKinds), out)
	}
	for i, want := range wantKinds {
		if got := kinds[i].String(); got != want {
			t.Errorf("statement %d kind = %q, want %q\ndiff: %v", i, got, want, pretty.Diff(got, want))
		}
	}
	if gjson.Get(out, "1.name").String() != "x" {
		t.Errorf("Declare statement missing name=x:\n%s", out)
	}
}

func TestNewFnCarriesNameAndParams(t *testing.T) {
	fn := ast.NewFn(tok(lexer.FN_PREFIX, "", 1), "f", []string{"a", "b"}, nil)
	if fn.Name != "f" || len(fn.Params) != 2 {
		t.Errorf("unexpected Fn: %+v", fn)
	}
}
