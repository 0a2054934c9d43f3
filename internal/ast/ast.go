// Package ast defines the Abstract Syntax Tree node types produced by the
// TOUGH parser and consumed by the code generator.
package ast

import (
	"fmt"
	"strings"

	"github.com/tough-lang/tough/internal/lexer"
)

// Node is the base interface every AST node implements.
type Node interface {
	// Line returns the source line this node was parsed from.
	Line() int
	// String returns a debug representation of the node.
	String() string
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action but produces no value.
type Statement interface {
	Node
	statementNode()
}

type baseNode struct {
	line int
}

func (b baseNode) Line() int { return b.line }

// Program is the root of the AST: the ordered list of top-level statements.
type Program struct {
	Statements []Statement
}

func (p *Program) Line() int {
	if len(p.Statements) > 0 {
		return p.Statements[0].Line()
	}
	return 1
}

func (p *Program) String() string {
	var sb strings.Builder
	for _, s := range p.Statements {
		sb.WriteString(s.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// --- Expressions ---------------------------------------------------------

// IntLiteral is an integer literal.
type IntLiteral struct {
	baseNode
	Value int64
}

func (n *IntLiteral) expressionNode() {}
func (n *IntLiteral) String() string  { return fmt.Sprintf("%d", n.Value) }

// FloatLiteral is a floating-point literal. It survives to codegen
// unevaluated; lowering (truncation to i64) happens there.
type FloatLiteral struct {
	baseNode
	Value float64
}

func (n *FloatLiteral) expressionNode() {}
func (n *FloatLiteral) String() string  { return fmt.Sprintf("%g", n.Value) }

// StringLiteral is a bracketed string literal 「...」. Valid only as the
// direct operand of Print.
type StringLiteral struct {
	baseNode
	Value string
}

func (n *StringLiteral) expressionNode() {}
func (n *StringLiteral) String() string  { return fmt.Sprintf("「%s」", n.Value) }

// Identifier references a variable by name.
type Identifier struct {
	baseNode
	Name string
}

func (n *Identifier) expressionNode() {}
func (n *Identifier) String() string  { return n.Name }

// BinaryOpKind enumerates the operators BinaryOp supports. TOUGH has a
// single uniform precedence level across all of them.
type BinaryOpKind string

const (
	OpEq  BinaryOpKind = "=="
	OpNeq BinaryOpKind = "!="
	OpGt  BinaryOpKind = ">"
	OpLt  BinaryOpKind = "<"
	OpMod BinaryOpKind = "%"
)

// BinaryOp is a comparison (producing 0/1) or a signed remainder.
type BinaryOp struct {
	baseNode
	Op    BinaryOpKind
	Left  Expression
	Right Expression
}

func (n *BinaryOp) expressionNode() {}
func (n *BinaryOp) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Left.String(), n.Op, n.Right.String())
}

// --- Statements -----------------------------------------------------------

// ProgramStart is the 我が名は尊鷹 bookend. It has no codegen effect.
type ProgramStart struct{ baseNode }

func (n *ProgramStart) statementNode() {}
func (n *ProgramStart) String() string { return "ProgramStart" }

// ProgramEnd is the 逃げるんかいっ bookend: exit(0) then ret 0.
type ProgramEnd struct{ baseNode }

func (n *ProgramEnd) statementNode() {}
func (n *ProgramEnd) String() string { return "ProgramEnd" }

// Comment is discarded at codegen; it is kept in the AST purely so
// formatting/debug tooling can round-trip source structure.
type Comment struct {
	baseNode
	Text string
}

func (n *Comment) statementNode() {}
func (n *Comment) String() string { return "// " + n.Text }

// Declare allocates a zero-initialized i64 slot for Name.
type Declare struct {
	baseNode
	Name string
}

func (n *Declare) statementNode() {}
func (n *Declare) String() string { return fmt.Sprintf("declare %s", n.Name) }

// Assign stores Value's result into Name's slot, allocating the slot on
// first assignment if it does not already exist.
type Assign struct {
	baseNode
	Name  string
	Value Expression
}

func (n *Assign) statementNode() {}
func (n *Assign) String() string { return fmt.Sprintf("%s := %s", n.Name, n.Value.String()) }

// Print writes Value to standard output. A StringLiteral operand is
// printed with %s, anything else is evaluated to i64 and printed with
// %lld.
type Print struct {
	baseNode
	Value Expression
}

func (n *Print) statementNode() {}
func (n *Print) String() string { return fmt.Sprintf("print %s", n.Value.String()) }

// Input reads an integer from stdin into Name's slot, allocating the
// slot if it does not already exist.
type Input struct {
	baseNode
	Name string
}

func (n *Input) statementNode() {}
func (n *Input) String() string { return fmt.Sprintf("input %s", n.Name) }

// Increment adds 1 to Name's slot. The slot must already exist.
type Increment struct {
	baseNode
	Name string
}

func (n *Increment) statementNode() {}
func (n *Increment) String() string { return fmt.Sprintf("%s++", n.Name) }

// Decrement subtracts 1 from Name's slot. The slot must already exist.
type Decrement struct {
	baseNode
	Name string
}

func (n *Decrement) statementNode() {}
func (n *Decrement) String() string { return fmt.Sprintf("%s--", n.Name) }

// ElifClause is one いやちょっとまてよ arm of an If.
type ElifClause struct {
	Condition Expression
	Body      []Statement
}

// If is a condition with a then-body, zero or more elif arms, and an
// optional else-body.
type If struct {
	baseNode
	Condition   Expression
	ThenBody    []Statement
	ElifClauses []ElifClause
	ElseBody    []Statement
}

func (n *If) statementNode() {}
func (n *If) String() string { return fmt.Sprintf("if %s {...}", n.Condition.String()) }

// While is a condition re-evaluated before each iteration of Body.
type While struct {
	baseNode
	Condition Expression
	Body      []Statement
}

func (n *While) statementNode() {}
func (n *While) String() string { return fmt.Sprintf("while %s {...}", n.Condition.String()) }

// Fn is a user-defined function. Its body does not inherit the caller's
// variables — it starts with a fresh table containing only its
// parameter slots.
type Fn struct {
	baseNode
	Name   string
	Params []string
	Body   []Statement
}

func (n *Fn) statementNode() {}
func (n *Fn) String() string {
	return fmt.Sprintf("fn %s(%s) {...}", n.Name, strings.Join(n.Params, ", "))
}

// Catch binds an identifier inside an exception-handling clause. How the
// bound name relates to a thrown value is undefined; Catch parses to a
// valid node so source using it still produces a well-formed AST, but
// internal/codegen rejects it.
type Catch struct {
	baseNode
	Name string
	Body []Statement
}

func (n *Catch) statementNode() {}
func (n *Catch) String() string { return fmt.Sprintf("catch %s {...}", n.Name) }

// Throw terminates the program with exit code 1.
type Throw struct{ baseNode }

func (n *Throw) statementNode() {}
func (n *Throw) String() string { return "throw" }

func base(tok lexer.Token) baseNode { return baseNode{line: tok.Pos.Line} }

// Constructors. The parser builds nodes exclusively through these —
// baseNode's line field is not exported, so a node's source line can
// only be set here, at construction time, never edited afterward.

func NewIntLiteral(tok lexer.Token, value int64) *IntLiteral {
	return &IntLiteral{baseNode: base(tok), Value: value}
}

func NewFloatLiteral(tok lexer.Token, value float64) *FloatLiteral {
	return &FloatLiteral{baseNode: base(tok), Value: value}
}

func NewStringLiteral(tok lexer.Token, value string) *StringLiteral {
	return &StringLiteral{baseNode: base(tok), Value: value}
}

func NewIdentifier(tok lexer.Token, name string) *Identifier {
	return &Identifier{baseNode: base(tok), Name: name}
}

func NewBinaryOp(tok lexer.Token, op BinaryOpKind, left, right Expression) *BinaryOp {
	return &BinaryOp{baseNode: base(tok), Op: op, Left: left, Right: right}
}

func NewProgramStart(tok lexer.Token) *ProgramStart { return &ProgramStart{base(tok)} }

func NewProgramEnd(tok lexer.Token) *ProgramEnd { return &ProgramEnd{base(tok)} }

func NewComment(tok lexer.Token, text string) *Comment {
	return &Comment{baseNode: base(tok), Text: text}
}

func NewDeclare(tok lexer.Token, name string) *Declare {
	return &Declare{baseNode: base(tok), Name: name}
}

func NewAssign(tok lexer.Token, name string, value Expression) *Assign {
	return &Assign{baseNode: base(tok), Name: name, Value: value}
}

func NewPrint(tok lexer.Token, value Expression) *Print {
	return &Print{baseNode: base(tok), Value: value}
}

func NewInput(tok lexer.Token, name string) *Input {
	return &Input{baseNode: base(tok), Name: name}
}

func NewIncrement(tok lexer.Token, name string) *Increment {
	return &Increment{baseNode: base(tok), Name: name}
}

func NewDecrement(tok lexer.Token, name string) *Decrement {
	return &Decrement{baseNode: base(tok), Name: name}
}

func NewIf(tok lexer.Token, cond Expression, thenBody []Statement, elifs []ElifClause, elseBody []Statement) *If {
	return &If{baseNode: base(tok), Condition: cond, ThenBody: thenBody, ElifClauses: elifs, ElseBody: elseBody}
}

func NewWhile(tok lexer.Token, cond Expression, body []Statement) *While {
	return &While{baseNode: base(tok), Condition: cond, Body: body}
}

func NewFn(tok lexer.Token, name string, params []string, body []Statement) *Fn {
	return &Fn{baseNode: base(tok), Name: name, Params: params, Body: body}
}

func NewCatch(tok lexer.Token, name string, body []Statement) *Catch {
	return &Catch{baseNode: base(tok), Name: name, Body: body}
}

func NewThrow(tok lexer.Token) *Throw { return &Throw{base(tok)} }
