package lexer

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// LexerError is raised when a line, or a character inside an expression,
// does not match any recognized TOUGH syntax.
type LexerError struct {
	Message string
	Pos     Position
}

func (e *LexerError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Pos.Line, e.Message)
}

func newLexerError(line int, format string, args ...any) *LexerError {
	return &LexerError{Message: fmt.Sprintf(format, args...), Pos: Position{Line: line}}
}

// Whole-line phrase matchers, tried right after the comment form.
var (
	programStartRe = regexp.MustCompile(`^我が名は[\s　]+尊鷹$`)
	programEndRe   = regexp.MustCompile(`^逃げるんかいっ$`)
	throwRe        = regexp.MustCompile(`^はっきり言ってそれって病気だから[\s　]+お前死ぬよ$`)

	commentRe     = regexp.MustCompile(`^（(.+?)のコメント）(.*)$`)
	declareRe     = regexp.MustCompile(`^(.+?)だ[\s　]+(.+?)が正体を現すぞ$`)
	fnHeaderRe    = regexp.MustCompile(`^自分たちの手で作るから尊いんだ[\s　]+(.+?)が[\s　]*\((.*?)\)るんだ[\s　]*\{$`)
	ifHeaderRe    = regexp.MustCompile(`^なにっ[\s　]+\((.+?)\)[\s　]*\{$`)
	elifHeaderRe  = regexp.MustCompile(`^いやちょっとまてよ[\s　]+\((.+?)\)[\s　]*\{$`)
	elseHeaderRe  = regexp.MustCompile(`^う[\s　]+あ[\s　]+あ[\s　]+あ[\s　]+あ[（(][\s　]*([ＰPｐp])([ＣCｃc])書き文字[\s　]*[）)][\s　]*\{$`)
	whileRe       = regexp.MustCompile(`^禁断の["「](.+?)度打ち["」][\s　]*\{$`)
	catchHeaderRe = regexp.MustCompile(`^\}[\s　]*(.+?)[\s　]+はルールで禁止スよね[\s　]*\{$`)

	assignRe = regexp.MustCompile(`^(.+?)[\s　]+を継ぐ[\s　]+(.+)$`)
	printRe  = regexp.MustCompile(`^(.+?)[\s　]+しゃあっ$`)
	inputRe  = regexp.MustCompile(`^(.+?)[\s　]+を教えてくれよ$`)
	incRe    = regexp.MustCompile(`^(.+?)[\s　]+進化したと言うてくれや$`)
	decRe    = regexp.MustCompile(`^(.+?)[\s　]+（哀）$`)

	exprEqRe  = regexp.MustCompile(`^ガチンコ`)
	exprNeqRe = regexp.MustCompile(`^ガチンコじゃない`)
	exprGtRe  = regexp.MustCompile(`^を超えた`)
	exprLtRe  = regexp.MustCompile(`^に及ばない`)
	numberRe  = regexp.MustCompile(`^-?\d+(\.\d+)?`)
	identRe   = regexp.MustCompile(`^[a-zA-Z_\x{3040}-\x{9fff}][a-zA-Z0-9_\x{3040}-\x{9fff}]*`)
)

// Tokenize converts whole-source TOUGH text into a terminated token list.
// Blank (post-trim) lines are skipped; every other line is matched against
// the ordered catalog of line-forms and decomposed into one or more
// tokens followed by NEWLINE. Lexing aborts at the first unrecognized
// line or character; TOUGH does not recover from lexer errors.
func Tokenize(source string) ([]Token, error) {
	lex := &lexer{}
	lines := strings.Split(source, "\n")

	for i, raw := range lines {
		lineNum := i + 1
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if err := lex.tokenizeLine(line, lineNum); err != nil {
			return nil, err
		}
		lex.emit(NEWLINE, "\\n", lineNum)
	}

	lex.emit(EOF, "", len(lines)+1)
	return lex.tokens, nil
}

type lexer struct {
	tokens []Token
}

func (l *lexer) emit(typ TokenType, value string, line int) {
	l.tokens = append(l.tokens, Token{Type: typ, Value: value, Pos: Position{Line: line}})
}

func (l *lexer) tokenizeLine(line string, lineNum int) error {
	// Comment form.
	if m := commentRe.FindStringSubmatch(line); m != nil {
		text := strings.TrimSpace(m[2])
		if text == "" {
			text = m[1] + "のコメント"
		}
		l.emit(COMMENT, text, lineNum)
		return nil
	}

	// Whole-line bookend phrases.
	if programStartRe.MatchString(line) {
		l.emit(PROGRAM_START, line, lineNum)
		return nil
	}
	if programEndRe.MatchString(line) {
		l.emit(PROGRAM_END, line, lineNum)
		return nil
	}
	if throwRe.MatchString(line) {
		l.emit(THROW, line, lineNum)
		return nil
	}

	// Declare pair: <name>だ <name>が正体を現すぞ — names must match.
	if m := declareRe.FindStringSubmatch(line); m != nil {
		first := strings.TrimSpace(m[1])
		second := strings.TrimSpace(m[2])
		if first == second {
			l.emit(DECLARE_DA, first, lineNum)
			l.emit(DECLARE_REVEAL, first, lineNum)
			return nil
		}
	}

	// Function header.
	if m := fnHeaderRe.FindStringSubmatch(line); m != nil {
		name := strings.TrimSpace(m[1])
		l.emit(FN_PREFIX, "自分たちの手で作るから尊いんだ", lineNum)
		l.emit(IDENT, name, lineNum)
		l.emit(FN_GA, "が", lineNum)
		params := strings.TrimSpace(m[2])
		if params != "" {
			for _, p := range strings.Split(params, ",") {
				l.emit(IDENT, strings.TrimSpace(p), lineNum)
			}
		}
		l.emit(FN_RUNDA, "るんだ", lineNum)
		l.emit(LBRACE, "{", lineNum)
		return nil
	}

	// if / elif / while headers: keyword + parenthesized expression + brace.
	if m := ifHeaderRe.FindStringSubmatch(line); m != nil {
		return l.emitHeader(IF, "なにっ", m[1], lineNum)
	}
	if m := elifHeaderRe.FindStringSubmatch(line); m != nil {
		return l.emitHeader(ELIF, "いやちょっとまてよ", m[1], lineNum)
	}
	if m := whileRe.FindStringSubmatch(line); m != nil {
		return l.emitHeader(WHILE, "禁断の", m[1], lineNum)
	}

	// else header: tolerant of full/half-width P/C.
	if m := elseHeaderRe.FindStringSubmatch(line); m != nil {
		p := width.Fold.String(m[1])
		c := width.Fold.String(m[2])
		if strings.EqualFold(p, "P") && strings.EqualFold(c, "C") {
			l.emit(ELSE, "う　あ　あ　あ　あ（ＰＣ書き文字）", lineNum)
			l.emit(LBRACE, "{", lineNum)
			return nil
		}
	}

	// catch header.
	if m := catchHeaderRe.FindStringSubmatch(line); m != nil {
		l.emit(RBRACE, "}", lineNum)
		l.emit(CATCH, "はルールで禁止スよね", lineNum)
		l.emit(IDENT, strings.TrimSpace(m[1]), lineNum)
		l.emit(LBRACE, "{", lineNum)
		return nil
	}

	// Lone brace close.
	if line == "}" {
		l.emit(RBRACE, "}", lineNum)
		return nil
	}

	// Statement suffixes, tried in order.
	if m := assignRe.FindStringSubmatch(line); m != nil {
		if err := l.tokenizeExpr(strings.TrimSpace(m[1]), lineNum); err != nil {
			return err
		}
		l.emit(ASSIGN_TSUGU, "を継ぐ", lineNum)
		l.emit(IDENT, strings.TrimSpace(m[2]), lineNum)
		return nil
	}
	if m := printRe.FindStringSubmatch(line); m != nil {
		if err := l.tokenizeExpr(strings.TrimSpace(m[1]), lineNum); err != nil {
			return err
		}
		l.emit(PRINT, "しゃあっ", lineNum)
		return nil
	}
	if m := inputRe.FindStringSubmatch(line); m != nil {
		l.emit(IDENT, strings.TrimSpace(m[1]), lineNum)
		l.emit(INPUT, "を教えてくれよ", lineNum)
		return nil
	}
	if m := incRe.FindStringSubmatch(line); m != nil {
		l.emit(IDENT, strings.TrimSpace(m[1]), lineNum)
		l.emit(INCREMENT, "進化したと言うてくれや", lineNum)
		return nil
	}
	if m := decRe.FindStringSubmatch(line); m != nil {
		l.emit(IDENT, strings.TrimSpace(m[1]), lineNum)
		l.emit(DECREMENT, "（哀）", lineNum)
		return nil
	}

	return newLexerError(lineNum, "unrecognized syntax: %s", line)
}

func (l *lexer) emitHeader(typ TokenType, literal, expr string, lineNum int) error {
	l.emit(typ, literal, lineNum)
	l.emit(LPAREN, "(", lineNum)
	if err := l.tokenizeExpr(strings.TrimSpace(expr), lineNum); err != nil {
		return err
	}
	l.emit(RPAREN, ")", lineNum)
	l.emit(LBRACE, "{", lineNum)
	return nil
}

// tokenizeExpr is the expression sub-lexer: it scans an already-extracted
// expression substring left to right, emitting comparison operators,
// string/number literals, parentheses, '%', and identifiers.
func (l *lexer) tokenizeExpr(expr string, lineNum int) error {
	runes := []rune(expr)
	pos := 0

	for pos < len(runes) {
		ch := runes[pos]

		if ch == ' ' || ch == '\t' || ch == '　' {
			pos++
			continue
		}

		rest := string(runes[pos:])

		// Longest-match first: NEQ before EQ.
		if loc := exprNeqRe.FindStringIndex(rest); loc != nil {
			l.emit(NEQ, "ガチンコじゃない", lineNum)
			pos += len([]rune(rest[loc[0]:loc[1]]))
			continue
		}
		if loc := exprEqRe.FindStringIndex(rest); loc != nil {
			l.emit(EQ, "ガチンコ", lineNum)
			pos += len([]rune(rest[loc[0]:loc[1]]))
			continue
		}
		if loc := exprGtRe.FindStringIndex(rest); loc != nil {
			l.emit(GT, "を超えた", lineNum)
			pos += len([]rune(rest[loc[0]:loc[1]]))
			continue
		}
		if loc := exprLtRe.FindStringIndex(rest); loc != nil {
			l.emit(LT, "に及ばない", lineNum)
			pos += len([]rune(rest[loc[0]:loc[1]]))
			continue
		}

		// String literal 「...」
		if ch == '「' {
			end := -1
			for i := pos + 1; i < len(runes); i++ {
				if runes[i] == '」' {
					end = i
					break
				}
			}
			if end == -1 {
				return newLexerError(lineNum, "unterminated string literal")
			}
			l.emit(STRING, string(runes[pos+1:end]), lineNum)
			pos = end + 1
			continue
		}

		// Numeric literal (int or float, optional leading '-').
		if unicode.IsDigit(ch) || (ch == '-' && pos+1 < len(runes) && unicode.IsDigit(runes[pos+1])) {
			if m := numberRe.FindString(rest); m != "" {
				if strings.Contains(m, ".") {
					l.emit(FLOAT, m, lineNum)
				} else {
					l.emit(INT, m, lineNum)
				}
				pos += len([]rune(m))
				continue
			}
		}

		if ch == '%' {
			l.emit(PERCENT, "%", lineNum)
			pos++
			continue
		}
		if ch == '(' {
			l.emit(LPAREN, "(", lineNum)
			pos++
			continue
		}
		if ch == ')' {
			l.emit(RPAREN, ")", lineNum)
			pos++
			continue
		}

		// Identifier: ASCII letters/digits/underscore, or CJK Unified
		// Ideographs / Hiragana.
		if m := identRe.FindString(rest); m != "" {
			l.emit(IDENT, m, lineNum)
			pos += len([]rune(m))
			continue
		}

		return newLexerError(lineNum, "unrecognized character: %q", ch)
	}

	return nil
}
