// Package parser implements a recursive-descent parser with one-token
// lookahead over the TOUGH token stream, producing a Program AST.
package parser

import (
	"fmt"

	"github.com/tough-lang/tough/internal/ast"
	"github.com/tough-lang/tough/internal/lexer"
)

// ParseError reports a token mismatch or an unexpected end of input.
type ParseError struct {
	Message string
	Line    int
}

func (e *ParseError) Error() string { return fmt.Sprintf("line %d: %s", e.Line, e.Message) }

func newParseError(line int, format string, args ...any) *ParseError {
	return &ParseError{Message: fmt.Sprintf(format, args...), Line: line}
}

// Parser consumes a token stream and builds a Program AST. It is pure
// recursive descent with one-token lookahead: every parse function looks
// only at the current and, occasionally, the next token before deciding
// what to do.
type Parser struct {
	tokens []lexer.Token
	pos    int
}

// New creates a Parser over an already-lexed token stream.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse lexes nothing further — it consumes the Parser's token stream
// and returns the resulting Program, or the first ParseError encountered.
func (p *Parser) Parse() (*ast.Program, error) {
	program := &ast.Program{}
	p.skipNewlines()

	for p.current().Type != lexer.EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.skipNewlines()
	}

	return program, nil
}

func (p *Parser) current() lexer.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return lexer.Token{Type: lexer.EOF}
}

func (p *Parser) peek(offset int) lexer.Token {
	idx := p.pos + offset
	if idx < len(p.tokens) {
		return p.tokens[idx]
	}
	return lexer.Token{Type: lexer.EOF}
}

func (p *Parser) advance() lexer.Token {
	tok := p.current()
	p.pos++
	return tok
}

func (p *Parser) expect(typ lexer.TokenType) (lexer.Token, error) {
	tok := p.current()
	if tok.Type != typ {
		return tok, newParseError(tok.Pos.Line, "expected %s, got %s (%q)", typ, tok.Type, tok.Value)
	}
	return p.advance(), nil
}

func (p *Parser) skipNewlines() {
	for p.current().Type == lexer.NEWLINE {
		p.advance()
	}
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	tok := p.current()

	switch tok.Type {
	case lexer.COMMENT:
		p.advance()
		p.skipNewlines()
		return ast.NewComment(tok, tok.Value), nil

	case lexer.PROGRAM_START:
		p.advance()
		p.skipNewlines()
		return ast.NewProgramStart(tok), nil

	case lexer.PROGRAM_END:
		p.advance()
		p.skipNewlines()
		return ast.NewProgramEnd(tok), nil

	case lexer.THROW:
		p.advance()
		p.skipNewlines()
		return ast.NewThrow(tok), nil

	case lexer.DECLARE_DA:
		return p.parseDeclare()

	case lexer.FN_PREFIX:
		return p.parseFunction()

	case lexer.IF:
		return p.parseIf()

	case lexer.WHILE:
		return p.parseWhile()

	case lexer.CATCH:
		return p.parseCatch()

	default:
		return p.parseExprStatement()
	}
}

func (p *Parser) parseDeclare() (ast.Statement, error) {
	tok := p.advance() // DECLARE_DA, Value carries the name
	if _, err := p.expect(lexer.DECLARE_REVEAL); err != nil {
		return nil, err
	}
	p.skipNewlines()
	return ast.NewDeclare(tok, tok.Value), nil
}

func (p *Parser) parseFunction() (ast.Statement, error) {
	tok := p.advance() // FN_PREFIX
	nameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.FN_GA); err != nil {
		return nil, err
	}

	var params []string
	for p.current().Type == lexer.IDENT {
		params = append(params, p.advance().Value)
	}

	if _, err := p.expect(lexer.FN_RUNDA); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	p.skipNewlines()

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return ast.NewFn(tok, nameTok.Value, params, body), nil
}

func (p *Parser) parseIf() (ast.Statement, error) {
	tok := p.advance() // IF
	cond, thenBody, err := p.parseHeaderAndBlock()
	if err != nil {
		return nil, err
	}

	var elifs []ast.ElifClause
	for p.current().Type == lexer.ELIF {
		p.advance()
		elifCond, elifBody, err := p.parseHeaderAndBlock()
		if err != nil {
			return nil, err
		}
		elifs = append(elifs, ast.ElifClause{Condition: elifCond, Body: elifBody})
	}

	var elseBody []ast.Statement
	if p.current().Type == lexer.ELSE {
		p.advance()
		if _, err := p.expect(lexer.LBRACE); err != nil {
			return nil, err
		}
		p.skipNewlines()
		elseBody, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}

	return ast.NewIf(tok, cond, thenBody, elifs, elseBody), nil
}

// parseHeaderAndBlock parses "( expr ) { block" — the common tail shared
// by if and elif headers (while has the same shape but carries its own
// keyword token, so it calls this too).
func (p *Parser) parseHeaderAndBlock() (ast.Expression, []ast.Statement, error) {
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, nil, err
	}
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, nil, err
	}
	p.skipNewlines()
	body, err := p.parseBlock()
	if err != nil {
		return nil, nil, err
	}
	return cond, body, nil
}

// parseCatch parses the catch header's tail — CATCH IDENT LBRACE block.
// Its leading RBRACE belongs to whatever block it is closing and is
// already consumed by that block's own parseBlock call; this function
// only ever sees the CATCH token onward. How the bound identifier relates
// to a thrown value is undefined, so codegen rejects Catch outright
// rather than guessing.
func (p *Parser) parseCatch() (ast.Statement, error) {
	tok := p.advance() // CATCH
	nameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	p.skipNewlines()
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewCatch(tok, nameTok.Value, body), nil
}

func (p *Parser) parseWhile() (ast.Statement, error) {
	tok := p.advance() // WHILE
	cond, body, err := p.parseHeaderAndBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewWhile(tok, cond, body), nil
}

// parseBlock parses statements until RBRACE or EOF, consuming the RBRACE.
func (p *Parser) parseBlock() ([]ast.Statement, error) {
	var stmts []ast.Statement
	for p.current().Type != lexer.RBRACE && p.current().Type != lexer.EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		p.skipNewlines()
	}
	if p.current().Type == lexer.RBRACE {
		p.advance()
	}
	p.skipNewlines()
	return stmts, nil
}

// parseExprStatement covers assign / print / input / increment /
// decrement: statements that do not start with a dedicated keyword.
func (p *Parser) parseExprStatement() (ast.Statement, error) {
	tok := p.current()

	// Short-circuit: IDENT directly followed by a bare-identifier keyword.
	if tok.Type == lexer.IDENT {
		next := p.peek(1)
		switch next.Type {
		case lexer.INCREMENT:
			p.advance()
			p.advance()
			p.skipNewlines()
			return ast.NewIncrement(tok, tok.Value), nil
		case lexer.DECREMENT:
			p.advance()
			p.advance()
			p.skipNewlines()
			return ast.NewDecrement(tok, tok.Value), nil
		case lexer.INPUT:
			p.advance()
			p.advance()
			p.skipNewlines()
			return ast.NewInput(tok, tok.Value), nil
		}
	}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	cur := p.current()
	switch cur.Type {
	case lexer.PRINT:
		p.advance()
		p.skipNewlines()
		return ast.NewPrint(tok, expr), nil
	case lexer.ASSIGN_TSUGU:
		p.advance()
		nameTok, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		p.skipNewlines()
		return ast.NewAssign(tok, nameTok.Value, expr), nil
	default:
		return nil, newParseError(cur.Pos.Line, "unexpected statement terminator: %s", cur.Type)
	}
}

// parseExpression parses a left-associative chain of comparisons/%. All
// five binary operators share one precedence level; there is no unary,
// additive, or multiplicative layer.
func (p *Parser) parseExpression() (ast.Expression, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for isBinaryOp(p.current().Type) {
		opTok := p.advance()
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOp(opTok, binaryOpKind(opTok.Type), left, right)
	}

	return left, nil
}

func isBinaryOp(t lexer.TokenType) bool {
	switch t {
	case lexer.EQ, lexer.NEQ, lexer.GT, lexer.LT, lexer.PERCENT:
		return true
	default:
		return false
	}
}

func binaryOpKind(t lexer.TokenType) ast.BinaryOpKind {
	switch t {
	case lexer.EQ:
		return ast.OpEq
	case lexer.NEQ:
		return ast.OpNeq
	case lexer.GT:
		return ast.OpGt
	case lexer.LT:
		return ast.OpLt
	default:
		return ast.OpMod
	}
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok := p.current()

	switch tok.Type {
	case lexer.INT:
		p.advance()
		var v int64
		fmt.Sscanf(tok.Value, "%d", &v)
		return ast.NewIntLiteral(tok, v), nil

	case lexer.FLOAT:
		p.advance()
		var v float64
		fmt.Sscanf(tok.Value, "%g", &v)
		return ast.NewFloatLiteral(tok, v), nil

	case lexer.STRING:
		p.advance()
		return ast.NewStringLiteral(tok, tok.Value), nil

	case lexer.IDENT:
		p.advance()
		return ast.NewIdentifier(tok, tok.Value), nil

	case lexer.LPAREN:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return expr, nil

	default:
		return nil, newParseError(tok.Pos.Line, "expected expression, found %s", tok.Type)
	}
}
