// Package driver orchestrates the lexer, parser, and code generator into
// the compile/run/emit-ir pipeline, and wraps execution of the emitted
// module in an Executor.
package driver

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/llir/llvm/asm"
	"github.com/llir/llvm/ir"

	"github.com/tough-lang/tough/internal/codegen"
	"github.com/tough-lang/tough/internal/config"
	"github.com/tough-lang/tough/internal/lexer"
	"github.com/tough-lang/tough/internal/parser"
)

// Driver owns the pipeline stages and the runtime used to execute
// compiled modules. Each Compile/Run call constructs its own lexer,
// parser, and code generator; the Driver itself holds only the
// one-time-resolved path to the lli binary.
type Driver struct {
	executor Executor
}

// New resolves the lli binary on PATH once, at construction. Compile and
// EmitIR do not need lli and still work if it is absent; only Run
// requires it, and returns an error lazily if so.
func New() *Driver {
	d := &Driver{}
	if path, err := exec.LookPath("lli"); err == nil {
		d.executor = newLLIExecutor(path)
	}
	return d
}

// NewWithExecutor builds a Driver around a caller-supplied Executor,
// bypassing lli resolution — used by tests that stub execution.
func NewWithExecutor(executor Executor) *Driver {
	return &Driver{executor: executor}
}

// NewFromConfig resolves lli the way New does, but prefers cfg.LLIPath
// when it names an existing executable, the same override tough.yaml's
// lli_path key is documented to provide.
func NewFromConfig(cfg *config.Config) *Driver {
	if cfg != nil && cfg.LLIPath != "" {
		if path, err := exec.LookPath(cfg.LLIPath); err == nil {
			return &Driver{executor: newLLIExecutor(path)}
		}
	}
	return New()
}

// Compile lexes, parses, and lowers source into an IR module.
func (d *Driver) Compile(source string) (*ir.Module, error) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}
	program, err := parser.New(tokens).Parse()
	if err != nil {
		return nil, err
	}
	return codegen.New().Generate(program)
}

// CompileFile reads path as UTF-8 and delegates to Compile.
func (d *Driver) CompileFile(path string) (*ir.Module, error) {
	source, err := readUTF8(path)
	if err != nil {
		return nil, err
	}
	return d.Compile(source)
}

// EmitIR compiles source and returns its textual IR.
func (d *Driver) EmitIR(source string) (string, error) {
	module, err := d.Compile(source)
	if err != nil {
		return "", err
	}
	return module.String(), nil
}

// EmitIRFile reads path as UTF-8 and delegates to EmitIR.
func (d *Driver) EmitIRFile(path string) (string, error) {
	source, err := readUTF8(path)
	if err != nil {
		return "", err
	}
	return d.EmitIR(source)
}

// Run compiles source, re-materializes the IR through the textual
// asm parser (this is the verification step — llir/llvm has no
// standalone verifier, so a successful round-trip parse stands in for
// one), then hands the text to the Executor and returns main's exit
// code.
func (d *Driver) Run(source string) (int, error) {
	irText, err := d.EmitIR(source)
	if err != nil {
		return 1, err
	}
	if _, err := asm.ParseString("<generated>", irText); err != nil {
		return 1, fmt.Errorf("generated IR failed verification: %w", err)
	}
	if d.executor == nil {
		return 1, fmt.Errorf("lli not found on PATH: cannot execute compiled programs")
	}
	return d.executor.Execute(irText)
}

// RunFile reads path as UTF-8 and delegates to Run.
func (d *Driver) RunFile(path string) (int, error) {
	source, err := readUTF8(path)
	if err != nil {
		return 1, err
	}
	return d.Run(source)
}

// Optimize is a documented no-op: llir/llvm is a pure-Go IR
// builder/printer with no optimizer of its own, so there is nothing to
// invoke. Kept as a method so callers of the four-stage pipeline have
// somewhere to hang an optimization step.
func (d *Driver) Optimize(module *ir.Module) {
	_ = module
}

func readUTF8(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
