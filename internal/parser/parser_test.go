package parser_test

import (
	"testing"

	"github.com/tough-lang/tough/internal/ast"
	"github.com/tough-lang/tough/internal/lexer"
	"github.com/tough-lang/tough/internal/parser"
)

func parse(t *testing.T, source string) *ast.Program {
	t.Helper()
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	program, err := parser.New(tokens).Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return program
}

func TestParseDeclareAssignPrint(t *testing.T) {
	program := parse(t, "xだ xが正体を現すぞ\n42 を継ぐ x\nx しゃあっ\n")
	if len(program.Statements) != 3 {
		t.Fatalf("got %d statements, want 3", len(program.Statements))
	}

	decl, ok := program.Statements[0].(*ast.Declare)
	if !ok || decl.Name != "x" {
		t.Errorf("statement 0 = %#v, want Declare(x)", program.Statements[0])
	}

	assign, ok := program.Statements[1].(*ast.Assign)
	if !ok || assign.Name != "x" {
		t.Errorf("statement 1 = %#v, want Assign(x, ...)", program.Statements[1])
	}
	lit, ok := assign.Value.(*ast.IntLiteral)
	if !ok || lit.Value != 42 {
		t.Errorf("Assign.Value = %#v, want IntLiteral(42)", assign.Value)
	}

	print, ok := program.Statements[2].(*ast.Print)
	if !ok {
		t.Errorf("statement 2 = %#v, want Print", program.Statements[2])
	}
	if ident, ok := print.Value.(*ast.Identifier); !ok || ident.Name != "x" {
		t.Errorf("Print.Value = %#v, want Identifier(x)", print.Value)
	}
}

func TestParseWhileLoop(t *testing.T) {
	source := "xだ xが正体を現すぞ\n" +
		"0 を継ぐ x\n" +
		"禁断の\"x に及ばない 3 度打ち\" {\n" +
		"x 進化したと言うてくれや\n" +
		"}\n"
	program := parse(t, source)

	while, ok := program.Statements[2].(*ast.While)
	if !ok {
		t.Fatalf("statement 2 = %#v, want While", program.Statements[2])
	}
	if len(while.Body) != 1 {
		t.Fatalf("While.Body has %d statements, want 1", len(while.Body))
	}
	if _, ok := while.Body[0].(*ast.Increment); !ok {
		t.Errorf("While.Body[0] = %#v, want Increment", while.Body[0])
	}
}

func TestParseIfElifElse(t *testing.T) {
	source := "xだ xが正体を現すぞ\n" +
		"5 を継ぐ x\n" +
		"なにっ (x ガチンコ 1) {\n" +
		"「one」 しゃあっ\n" +
		"}\n" +
		"いやちょっとまてよ (x ガチンコ 5) {\n" +
		"「five」 しゃあっ\n" +
		"}\n" +
		"う　あ　あ　あ　あ（ＰＣ書き文字） {\n" +
		"「other」 しゃあっ\n" +
		"}\n"
	program := parse(t, source)

	ifStmt, ok := program.Statements[2].(*ast.If)
	if !ok {
		t.Fatalf("statement 2 = %#v, want If", program.Statements[2])
	}
	if len(ifStmt.ElifClauses) != 1 {
		t.Fatalf("got %d elif clauses, want 1", len(ifStmt.ElifClauses))
	}
	if len(ifStmt.ElseBody) != 1 {
		t.Fatalf("got %d else statements, want 1", len(ifStmt.ElseBody))
	}
}

func TestParseFunctionDefinition(t *testing.T) {
	source := "自分たちの手で作るから尊いんだ add が (a,b)るんだ {\n" +
		"a を継ぐ a\n" +
		"}\n"
	program := parse(t, source)

	fn, ok := program.Statements[0].(*ast.Fn)
	if !ok {
		t.Fatalf("statement 0 = %#v, want Fn", program.Statements[0])
	}
	if fn.Name != "add" {
		t.Errorf("Fn.Name = %q, want %q", fn.Name, "add")
	}
	if len(fn.Params) != 2 || fn.Params[0] != "a" || fn.Params[1] != "b" {
		t.Errorf("Fn.Params = %v, want [a b]", fn.Params)
	}
}

func TestParseCatchAfterBlock(t *testing.T) {
	source := "xだ xが正体を現すぞ\n" +
		"0 を継ぐ x\n" +
		"禁断の\"x に及ばない 1 度打ち\" {\n" +
		"x 進化したと言うてくれや\n" +
		"} e はルールで禁止スよね {\n" +
		"x しゃあっ\n" +
		"}\n"
	program := parse(t, source)

	if _, ok := program.Statements[2].(*ast.While); !ok {
		t.Fatalf("statement 2 = %#v, want While", program.Statements[2])
	}
	catch, ok := program.Statements[3].(*ast.Catch)
	if !ok {
		t.Fatalf("statement 3 = %#v, want Catch", program.Statements[3])
	}
	if catch.Name != "e" {
		t.Errorf("Catch.Name = %q, want %q", catch.Name, "e")
	}
}

func TestParseUnexpectedTokenFails(t *testing.T) {
	tokens, err := lexer.Tokenize("xだ xが正体を現すぞ\n")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	tokens = append(tokens[:1], tokens[2:]...) // drop DECLARE_REVEAL
	if _, err := parser.New(tokens).Parse(); err == nil {
		t.Fatal("expected a ParseError, got none")
	}
}
