package codegen_test

import (
	"os"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/tough-lang/tough/internal/codegen"
	"github.com/tough-lang/tough/internal/lexer"
	"github.com/tough-lang/tough/internal/parser"
)

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

func compile(t *testing.T, source string) string {
	t.Helper()
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	program, err := parser.New(tokens).Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	module, err := codegen.New().Generate(program)
	if err != nil {
		t.Fatalf("codegen: %v", err)
	}
	return module.String()
}

func TestGenerateDeclareAssignPrint(t *testing.T) {
	source := "xだ xが正体を現すぞ\n" +
		"42 を継ぐ x\n" +
		"x しゃあっ\n"
	snaps.MatchSnapshot(t, compile(t, source))
}

func TestGenerateWhileLoopIncrement(t *testing.T) {
	source := "xだ xが正体を現すぞ\n" +
		"0 を継ぐ x\n" +
		"禁断の\"x に及ばない 3 度打ち\" {\n" +
		"x 進化したと言うてくれや\n" +
		"}\n" +
		"x しゃあっ\n"
	snaps.MatchSnapshot(t, compile(t, source))
}

func TestGenerateIfElifElse(t *testing.T) {
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
	snaps.MatchSnapshot(t, compile(t, source))
}

func TestGenerateEveryBlockTerminated(t *testing.T) {
	source := "我が名は　尊鷹\n" +
		"xだ xが正体を現すぞ\n" +
		"0 を継ぐ x\n" +
		"禁断の\"x に及ばない 3 度打ち\" {\n" +
		"なにっ (x ガチンコ 1) {\n" +
		"「one」 しゃあっ\n" +
		"}\n" +
		"う　あ　あ　あ　あ（ＰＣ書き文字） {\n" +
		"x 進化したと言うてくれや\n" +
		"}\n" +
		"}\n" +
		"自分たちの手で作るから尊いんだ f が (a)るんだ {\n" +
		"a しゃあっ\n" +
		"}\n" +
		"逃げるんかいっ\n"

	tokens, err := lexer.Tokenize(source)
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	program, err := parser.New(tokens).Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	module, err := codegen.New().Generate(program)
	if err != nil {
		t.Fatalf("codegen: %v", err)
	}

	for _, fn := range module.Funcs {
		for _, block := range fn.Blocks {
			if block.Term == nil {
				t.Errorf("function %s: block %s has no terminator", fn.Name(), block.LocalName)
			}
		}
	}
}

func TestGenerateRedeclaredSlotNamesStayUnique(t *testing.T) {
	source := "xだ xが正体を現すぞ\n" +
		"xだ xが正体を現すぞ\n" +
		"x しゃあっ\n"
	ir := compile(t, source)

	if !strings.Contains(ir, "%x.1") {
		t.Errorf("expected the re-declared slot to take a suffixed name, got:\n%s", ir)
	}
}

func TestGenerateUndeclaredReadFails(t *testing.T) {
	source := "y しゃあっ\n"

	tokens, err := lexer.Tokenize(source)
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	program, err := parser.New(tokens).Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := codegen.New().Generate(program); err == nil {
		t.Fatal("expected a CodeGenError for reading an undeclared variable, got none")
	}
}

func TestGenerateUndeclaredIncrementFails(t *testing.T) {
	source := "x 進化したと言うてくれや\n"

	tokens, err := lexer.Tokenize(source)
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	program, err := parser.New(tokens).Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := codegen.New().Generate(program); err == nil {
		t.Fatal("expected a CodeGenError for an undeclared variable, got none")
	}
}
