package codegen

import (
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/value"

	"github.com/tough-lang/tough/internal/ast"
)

// genExpression lowers expr to the i64 value.Value it evaluates to.
// Comparisons (==, !=, >, <) produce icmp's i1 result zero-extended to
// i64; % lowers to a signed remainder. StringLiteral has no general
// expression form — it is only meaningful as Print's direct operand,
// handled in genPrint before genExpression is ever called on it.
func (g *Generator) genExpression(expr ast.Expression) (value.Value, error) {
	switch n := expr.(type) {
	case *ast.IntLiteral:
		return constI64(n.Value), nil

	case *ast.FloatLiteral:
		return constI64(int64(n.Value)), nil

	case *ast.Identifier:
		slot, ok := g.variables[n.Name]
		if !ok {
			return nil, newCodeGenError(n.Line(), "undeclared variable: %s", n.Name)
		}
		return g.block.NewLoad(i64Type, slot), nil

	case *ast.BinaryOp:
		return g.genBinaryOp(n)

	case *ast.StringLiteral:
		return nil, newCodeGenError(n.Line(), "string literal used outside of print")

	default:
		return nil, newCodeGenError(expr.Line(), "unsupported expression: %T", expr)
	}
}

func (g *Generator) genBinaryOp(n *ast.BinaryOp) (value.Value, error) {
	left, err := g.genExpression(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := g.genExpression(n.Right)
	if err != nil {
		return nil, err
	}

	if n.Op == ast.OpMod {
		return g.block.NewSRem(left, right), nil
	}

	pred, ok := icmpPred(n.Op)
	if !ok {
		return nil, newCodeGenError(n.Line(), "unsupported operator: %s", n.Op)
	}
	cmp := g.block.NewICmp(pred, left, right)
	return g.block.NewZExt(cmp, i64Type), nil
}

func icmpPred(op ast.BinaryOpKind) (enum.IPred, bool) {
	switch op {
	case ast.OpEq:
		return enum.IPredEQ, true
	case ast.OpNeq:
		return enum.IPredNE, true
	case ast.OpGt:
		return enum.IPredSGT, true
	case ast.OpLt:
		return enum.IPredSLT, true
	default:
		return 0, false
	}
}
