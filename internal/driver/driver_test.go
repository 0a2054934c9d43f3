package driver_test

import (
	"strings"
	"testing"

	"github.com/llir/llvm/asm"

	"github.com/tough-lang/tough/internal/driver"
)

type stubExecutor struct {
	lastIR string
	code   int
	err    error
}

func (s *stubExecutor) Execute(irText string) (int, error) {
	s.lastIR = irText
	return s.code, s.err
}

func TestCompileDeclaresPrintf(t *testing.T) {
	d := driver.New()
	source := "「Hello」 しゃあっ\n"

	module, err := d.Compile(source)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !strings.Contains(module.String(), "declare i32 @printf") {
		t.Errorf("expected printf declaration in emitted IR, got:\n%s", module.String())
	}
}

func TestEmitIRDefinesMain(t *testing.T) {
	d := driver.New()
	irText, err := d.EmitIR("「Hello」 しゃあっ\n")
	if err != nil {
		t.Fatalf("EmitIR: %v", err)
	}
	if !strings.Contains(irText, "define i32 @main()") {
		t.Errorf("expected a main definition, got:\n%s", irText)
	}
}

func TestRunDelegatesToExecutor(t *testing.T) {
	stub := &stubExecutor{code: 0}
	d := driver.NewWithExecutor(stub)

	code, err := d.Run("「Hello」 しゃあっ\n")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if code != 0 {
		t.Errorf("expected exit code 0, got %d", code)
	}
	if !strings.Contains(stub.lastIR, "@main") {
		t.Errorf("expected the executor to receive IR text containing @main, got:\n%s", stub.lastIR)
	}
}

func TestEmitIRIdempotentAcrossDrivers(t *testing.T) {
	source := "xだ xが正体を現すぞ\n" +
		"42 を継ぐ x\n" +
		"x しゃあっ\n" +
		"「done」 しゃあっ\n"

	first, err := driver.New().EmitIR(source)
	if err != nil {
		t.Fatalf("EmitIR (first driver): %v", err)
	}
	second, err := driver.New().EmitIR(source)
	if err != nil {
		t.Fatalf("EmitIR (second driver): %v", err)
	}
	if first != second {
		t.Errorf("separate drivers emitted different IR:\n--- first ---\n%s\n--- second ---\n%s", first, second)
	}
}

func TestEmitIRRoundTripsStructurally(t *testing.T) {
	source := "xだ xが正体を現すぞ\n" +
		"0 を継ぐ x\n" +
		"禁断の\"x に及ばない 3 度打ち\" {\n" +
		"x 進化したと言うてくれや\n" +
		"}\n" +
		"x しゃあっ\n"

	d := driver.New()
	module, err := d.Compile(source)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	reparsed, err := asm.ParseString("<round-trip>", module.String())
	if err != nil {
		t.Fatalf("emitted IR failed to re-parse: %v", err)
	}

	if got, want := len(reparsed.Funcs), len(module.Funcs); got != want {
		t.Fatalf("re-parsed module has %d functions, want %d", got, want)
	}
	for i, fn := range module.Funcs {
		if got, want := len(reparsed.Funcs[i].Blocks), len(fn.Blocks); got != want {
			t.Errorf("function %s: re-parsed block count = %d, want %d", fn.Name(), got, want)
		}
	}
}

func TestRunPropagatesCompileErrors(t *testing.T) {
	d := driver.NewWithExecutor(&stubExecutor{})
	if _, err := d.Run("これは認識できない行だ\n"); err == nil {
		t.Fatal("expected a lexer error for an unrecognized line, got none")
	}
}
