// Package codegen walks a TOUGH Program AST and emits an LLVM IR module
// containing a single exported `main` plus zero or more user-defined
// functions, built on github.com/llir/llvm/ir.
package codegen

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/tough-lang/tough/internal/ast"
)

// CodeGenError reports use of an undeclared variable or an AST node kind
// codegen does not know how to lower.
type CodeGenError struct {
	Message string
	Line    int
}

func (e *CodeGenError) Error() string { return fmt.Sprintf("line %d: %s", e.Line, e.Message) }

func newCodeGenError(line int, format string, args ...any) *CodeGenError {
	return &CodeGenError{Message: fmt.Sprintf(format, args...), Line: line}
}

var (
	i8Type  = types.I8
	i32Type = types.I32
	i64Type = types.I64
	charPtr = types.NewPointer(i8Type)
)

// Generator holds the single-pass codegen state: the module under
// construction, the external C runtime declarations, the current
// function's builder position ("current basic block"), and the variable
// table for the function presently being lowered.
type Generator struct {
	module *ir.Module

	printfFn *ir.Func
	scanfFn  *ir.Func
	exitFn   *ir.Func

	block     *ir.Block
	variables map[string]*ir.InstAlloca
	slotNames map[string]int

	stringCounter int
	blockCounter  int
}

// newSlot allocates an i64 stack slot for name in the current block and
// records it in the variable table. LLVM local names are unique per
// function, so a re-declared name gets a numeric suffix.
func (g *Generator) newSlot(name string) *ir.InstAlloca {
	alloca := g.block.NewAlloca(i64Type)
	if n := g.slotNames[name]; n == 0 {
		alloca.LocalIdent.LocalName = name
	} else {
		alloca.LocalIdent.LocalName = fmt.Sprintf("%s.%d", name, n)
	}
	g.slotNames[name]++
	g.variables[name] = alloca
	return alloca
}

// blockName returns a module-unique basic block label built from prefix,
// so nested or repeated control structures in the same function never
// collide.
func (g *Generator) blockName(prefix string) string {
	g.blockCounter++
	return fmt.Sprintf("%s.%d", prefix, g.blockCounter)
}

// New creates a Generator with the C runtime externals pre-declared.
func New() *Generator {
	g := &Generator{module: ir.NewModule()}
	g.declareExternals()
	return g
}

func (g *Generator) declareExternals() {
	printfParam := ir.NewParam("", charPtr)
	g.printfFn = g.module.NewFunc("printf", i32Type, printfParam)
	g.printfFn.Sig.Variadic = true

	scanfParam := ir.NewParam("", charPtr)
	g.scanfFn = g.module.NewFunc("scanf", i32Type, scanfParam)
	g.scanfFn.Sig.Variadic = true

	exitParam := ir.NewParam("", i32Type)
	g.exitFn = g.module.NewFunc("exit", types.Void, exitParam)
}

// Generate lowers program into g's module and returns it. After walking
// the program, if main's current block is unterminated, it emits an
// implicit `ret 0`.
func (g *Generator) Generate(program *ast.Program) (*ir.Module, error) {
	mainFunc := g.module.NewFunc("main", i32Type)
	entry := mainFunc.NewBlock("entry")

	g.block = entry
	g.variables = map[string]*ir.InstAlloca{}
	g.slotNames = map[string]int{}

	for _, stmt := range program.Statements {
		if err := g.genStatement(stmt); err != nil {
			return nil, err
		}
	}

	if g.block.Term == nil {
		g.block.NewRet(constI32(0))
	}

	return g.module, nil
}

func constI32(n int64) value.Value { return constant.NewInt(i32Type, n) }
func constI64(n int64) value.Value { return constant.NewInt(i64Type, n) }
