package codegen

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"

	"github.com/tough-lang/tough/internal/ast"
)

func (g *Generator) genStatement(stmt ast.Statement) error {
	switch n := stmt.(type) {
	case *ast.ProgramStart, *ast.Comment:
		return nil

	case *ast.ProgramEnd:
		g.block.NewCall(g.exitFn, constI32(0))
		g.block.NewRet(constI32(0))
		return nil

	case *ast.Throw:
		g.block.NewCall(g.exitFn, constI32(1))
		g.block.NewRet(constI32(1))
		return nil

	case *ast.Declare:
		return g.genDeclare(n)

	case *ast.Assign:
		return g.genAssign(n)

	case *ast.Print:
		return g.genPrint(n)

	case *ast.Input:
		return g.genInput(n)

	case *ast.Increment:
		return g.genIncDec(n.Name, n.Line(), true)

	case *ast.Decrement:
		return g.genIncDec(n.Name, n.Line(), false)

	case *ast.If:
		return g.genIf(n)

	case *ast.While:
		return g.genWhile(n)

	case *ast.Fn:
		return g.genFn(n)

	case *ast.Catch:
		return newCodeGenError(n.Line(), "catch is not lowered: exception identifier binding is undefined behavior upstream")

	default:
		return newCodeGenError(stmt.Line(), "unsupported statement: %T", stmt)
	}
}

func (g *Generator) genDeclare(n *ast.Declare) error {
	alloca := g.newSlot(n.Name)
	g.block.NewStore(constI64(0), alloca)
	return nil
}

func (g *Generator) genAssign(n *ast.Assign) error {
	value, err := g.genExpression(n.Value)
	if err != nil {
		return err
	}
	slot, ok := g.variables[n.Name]
	if !ok {
		slot = g.newSlot(n.Name)
	}
	g.block.NewStore(value, slot)
	return nil
}

func (g *Generator) genPrint(n *ast.Print) error {
	if str, ok := n.Value.(*ast.StringLiteral); ok {
		fmtPtr := g.globalStringPtr("%s\n")
		strPtr := g.globalStringPtr(str.Value)
		g.block.NewCall(g.printfFn, fmtPtr, strPtr)
		return nil
	}

	val, err := g.genExpression(n.Value)
	if err != nil {
		return err
	}
	fmtPtr := g.globalStringPtr("%lld\n")
	g.block.NewCall(g.printfFn, fmtPtr, val)
	return nil
}

func (g *Generator) genInput(n *ast.Input) error {
	slot, ok := g.variables[n.Name]
	if !ok {
		slot = g.newSlot(n.Name)
	}
	fmtPtr := g.globalStringPtr("%lld")
	g.block.NewCall(g.scanfFn, fmtPtr, slot)
	return nil
}

func (g *Generator) genIncDec(name string, line int, inc bool) error {
	slot, ok := g.variables[name]
	if !ok {
		return newCodeGenError(line, "undeclared variable: %s", name)
	}
	current := g.block.NewLoad(i64Type, slot)
	if inc {
		g.block.NewStore(g.block.NewAdd(current, constant.NewInt(i64Type, 1)), slot)
	} else {
		g.block.NewStore(g.block.NewSub(current, constant.NewInt(i64Type, 1)), slot)
	}
	return nil
}

// genIf lowers If into then/merge blocks, one (cond, body) block pair
// per elif, and an optional else block. Each branch's false
// target is resolved by walking forward through elif clauses to the
// first else-or-merge.
func (g *Generator) genIf(n *ast.If) error {
	fn := g.block.Parent
	thenBB := fn.NewBlock(g.blockName("if.then"))
	mergeBB := fn.NewBlock(g.blockName("if.merge"))

	type elifBlocks struct {
		condBB, bodyBB *ir.Block
		clause         ast.ElifClause
	}
	var elifs []elifBlocks
	for i, clause := range n.ElifClauses {
		elifs = append(elifs, elifBlocks{
			condBB: fn.NewBlock(g.blockName(fmt.Sprintf("elif.cond.%d", i))),
			bodyBB: fn.NewBlock(g.blockName(fmt.Sprintf("elif.body.%d", i))),
			clause: clause,
		})
	}

	var elseBB *ir.Block
	if len(n.ElseBody) > 0 {
		elseBB = fn.NewBlock(g.blockName("if.else"))
	}

	firstFalse := mergeBB
	if len(elifs) > 0 {
		firstFalse = elifs[0].condBB
	} else if elseBB != nil {
		firstFalse = elseBB
	}

	condVal, err := g.genExpression(n.Condition)
	if err != nil {
		return err
	}
	condBool := g.block.NewICmp(enum.IPredNE, condVal, constI64(0))
	g.block.NewCondBr(condBool, thenBB, firstFalse)

	g.block = thenBB
	if err := g.genBlock(n.ThenBody); err != nil {
		return err
	}
	if g.block.Term == nil {
		g.block.NewBr(mergeBB)
	}

	for i, e := range elifs {
		nextFalse := mergeBB
		if i+1 < len(elifs) {
			nextFalse = elifs[i+1].condBB
		} else if elseBB != nil {
			nextFalse = elseBB
		}

		g.block = e.condBB
		elifCondVal, err := g.genExpression(e.clause.Condition)
		if err != nil {
			return err
		}
		elifCondBool := g.block.NewICmp(enum.IPredNE, elifCondVal, constI64(0))
		g.block.NewCondBr(elifCondBool, e.bodyBB, nextFalse)

		g.block = e.bodyBB
		if err := g.genBlock(e.clause.Body); err != nil {
			return err
		}
		if g.block.Term == nil {
			g.block.NewBr(mergeBB)
		}
	}

	if elseBB != nil {
		g.block = elseBB
		if err := g.genBlock(n.ElseBody); err != nil {
			return err
		}
		if g.block.Term == nil {
			g.block.NewBr(mergeBB)
		}
	}

	g.block = mergeBB
	return nil
}

func (g *Generator) genWhile(n *ast.While) error {
	fn := g.block.Parent
	condBB := fn.NewBlock(g.blockName("while.cond"))
	bodyBB := fn.NewBlock(g.blockName("while.body"))
	mergeBB := fn.NewBlock(g.blockName("while.merge"))

	g.block.NewBr(condBB)

	g.block = condBB
	condVal, err := g.genExpression(n.Condition)
	if err != nil {
		return err
	}
	condBool := g.block.NewICmp(enum.IPredNE, condVal, constI64(0))
	g.block.NewCondBr(condBool, bodyBB, mergeBB)

	g.block = bodyBB
	if err := g.genBlock(n.Body); err != nil {
		return err
	}
	if g.block.Term == nil {
		g.block.NewBr(condBB)
	}

	g.block = mergeBB
	return nil
}

// genFn declares and lowers a user function. Its body starts with a
// fresh variable table containing only its parameter slots; the
// caller's builder position and variable table are restored on exit.
func (g *Generator) genFn(n *ast.Fn) error {
	params := make([]*ir.Param, len(n.Params))
	for i, name := range n.Params {
		params[i] = ir.NewParam(name, i64Type)
	}
	fn := g.module.NewFunc(n.Name, i64Type, params...)
	entry := fn.NewBlock("entry")

	savedBlock, savedVars, savedNames := g.block, g.variables, g.slotNames
	g.block = entry
	g.variables = map[string]*ir.InstAlloca{}
	g.slotNames = map[string]int{}

	for i, name := range n.Params {
		// The incoming parameter already owns the bare name, so its
		// slot takes the .addr suffix.
		alloca := g.block.NewAlloca(i64Type)
		alloca.LocalIdent.LocalName = name + ".addr"
		g.block.NewStore(fn.Params[i], alloca)
		g.variables[name] = alloca
		g.slotNames[name]++
	}

	if err := g.genBlock(n.Body); err != nil {
		return err
	}
	if g.block.Term == nil {
		g.block.NewRet(constI64(0))
	}

	g.block, g.variables, g.slotNames = savedBlock, savedVars, savedNames
	return nil
}

func (g *Generator) genBlock(stmts []ast.Statement) error {
	for _, s := range stmts {
		if err := g.genStatement(s); err != nil {
			return err
		}
	}
	return nil
}

// globalStringPtr emits an internal constant global holding value's
// UTF-8 bytes plus a terminating NUL, and returns a pointer to its
// zeroth element.
func (g *Generator) globalStringPtr(value string) *ir.InstGetElementPtr {
	g.stringCounter++
	data := append([]byte(value), 0)
	arrType := types.NewArray(uint64(len(data)), i8Type)

	global := g.module.NewGlobalDef(fmt.Sprintf(".str.%d", g.stringCounter), constant.NewCharArray(data))
	global.Immutable = true
	global.Linkage = enum.LinkageInternal

	zero := constant.NewInt(i64Type, 0)
	return g.block.NewGetElementPtr(arrType, global, zero, zero)
}
