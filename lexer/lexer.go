// Package lexer converts expression source text into a token stream plus a
// diagnostic bag (spec.md §4.1). It never stops on error: unrecognized or
// misplaced characters are recorded as diagnostics and lexing continues.
package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Andrew1407/expression-parser/diag"
	"github.com/Andrew1407/expression-parser/funcs"
	"github.com/Andrew1407/expression-parser/token"
)

// Config holds lexer configuration, set via functional Options.
type Config struct {
	table map[string]int
}

// Option configures a Lexer the way runtime/lexer/v2's LexerOpt configures
// that lexer: small functions closing over a *Config.
type Option func(*Config)

// WithFunctionTable overrides the default built-in function table used for
// Variable→Function promotion. Primarily useful for tests that want to
// exercise promotion/arity behavior against a custom table.
func WithFunctionTable(table map[string]int) Option {
	return func(c *Config) {
		c.table = table
	}
}

// Result is the lexer's output: the token stream and any lexical-family
// diagnostics, in source order.
type Result struct {
	Tokens      []token.Token
	Diagnostics []diag.Diagnostic
}

// Lex tokenizes source and returns every token plus accumulated
// diagnostics. It never panics or returns an error value: diagnostics carry
// all recoverable lexical problems.
func Lex(source string, opts ...Option) Result {
	cfg := Config{table: funcs.Table}
	for _, opt := range opts {
		opt(&cfg)
	}

	st := &state{src: source, table: cfg.table}
	st.run()

	return Result{Tokens: st.tokens, Diagnostics: st.bag.Items()}
}

// state is the lexer's mutable working state for a single Lex call,
// analogous to the source's ExpressionParser instance state.
type state struct {
	src    string
	table  map[string]int
	tokens []token.Token
	bag    diag.Bag

	prevWasSpace bool
}

func (s *state) run() {
	s.scan()
	s.trim()
	s.checkLastToken()
	s.promoteFunctions()
}

func (s *state) scan() {
	i := 0
	for i < len(s.src) {
		r, width := utf8.DecodeRuneInString(s.src[i:])
		switch {
		case isOperatorRune(r):
			s.addOperatorToken(string(r), i)
		case isDigit(r):
			s.addVarNumber(string(r), i)
		case r == '.':
			s.addFloatingPoint(i)
		case isIdentChar(r):
			s.addVarChar(string(r), i)
		case r == '(' || r == ')':
			s.addParenthesis(string(r), i)
		case unicode.IsSpace(r):
			s.handleSpace(string(r))
		case r == ',':
			s.addDelimiter(i)
		default:
			s.diag(diag.UnknownSymbol, fmt.Sprintf("Unknown symbol %q", string(r)), string(r), i)
		}
		s.prevWasSpace = unicode.IsSpace(r)
		i += width
	}
}

func (s *state) diag(kind diag.Kind, message, symbol string, position int) {
	s.bag.Add(kind, message, symbol, position)
}

func (s *state) last() *token.Token {
	if len(s.tokens) == 0 {
		return nil
	}
	return &s.tokens[len(s.tokens)-1]
}

func (s *state) push(lexeme string, kind token.Kind, pos int) {
	s.tokens = append(s.tokens, token.Of(lexeme, kind, pos))
}

// checkSpaceEntries flags whitespace interior to an accumulating token, e.g.
// "83 234" lexing as one Constant but with an UnexpectedSymbol diagnostic.
func (s *state) checkSpaceEntries(value string, pos int) {
	if s.prevWasSpace {
		s.diag(diag.UnexpectedSymbol, fmt.Sprintf("Unexpected symbol %q", value), value, pos)
	}
}

// checkAfterLParen flags a token opening immediately after a closing
// parenthesis with no operator between them, e.g. "(a)b".
func (s *state) checkAfterLParen(last *token.Token, value string, pos int) {
	if last.Kind == token.Parenthesis && last.Lexeme == ")" {
		s.diag(diag.UnexpectedSymbol, fmt.Sprintf("Unexpected symbol %q", value), value, pos)
	}
}

func (s *state) addOperatorToken(op string, pos int) {
	last := s.last()
	switch {
	case last == nil && !token.IsUnarySymbol(op):
		s.diag(diag.InvalidOperator, fmt.Sprintf("Invalid symbol operator %q", op), op, pos)
	case last != nil && last.Kind == token.Constant && strings.TrimSpace(last.Lexeme) == ".":
		s.diag(diag.InvalidSymbol, fmt.Sprintf("Invalid symbol %q", op), op, pos)
	case last != nil && last.Kind == token.Delimiter && !token.IsUnarySymbol(op):
		s.diag(diag.InvalidOperator, fmt.Sprintf("Invalid symbol operator %q", op), op, pos)
	case last != nil && last.Lexeme == "(" && !token.IsUnarySymbol(op):
		s.diag(diag.InvalidOperator, fmt.Sprintf("Invalid symbol operator %q", op), op, pos)
	case last != nil && last.Kind == token.Operator && !token.IsUnarySymbol(op):
		s.diag(diag.InvalidOperator, fmt.Sprintf("Invalid symbol operator %q", op), op, pos)
	}
	s.push(op, token.Operator, pos)
}

func (s *state) addVarNumber(digit string, pos int) {
	last := s.last()
	switch {
	case last == nil:
		s.push(digit, token.Constant, pos)
	case last.Kind == token.Constant || last.Kind == token.Variable:
		s.checkSpaceEntries(digit, pos)
		last.Lexeme += digit
		last.End = pos
	default:
		s.checkAfterLParen(last, digit, pos)
		s.push(digit, token.Constant, pos)
	}
}

func (s *state) addFloatingPoint(pos int) {
	last := s.last()
	switch {
	case last == nil:
		s.push(".", token.Constant, pos)
	case last.Kind == token.Variable:
		s.diag(diag.UnexpectedSymbol, fmt.Sprintf("Unexpected symbol %q", "."), ".", pos)
		last.Lexeme += "."
		last.End = pos
	case last.Kind != token.Constant:
		s.checkAfterLParen(last, ".", pos)
		s.push(".", token.Constant, pos)
	case strings.Contains(last.Lexeme, "."):
		s.diag(diag.InvalidSymbol, fmt.Sprintf("Invalid symbol %q", "."), ".", pos)
		last.Lexeme += "."
		last.End = pos
	default:
		s.checkSpaceEntries(".", pos)
		last.Lexeme += "."
		last.End = pos
	}
}

func (s *state) addVarChar(ch string, pos int) {
	last := s.last()
	switch {
	case last == nil:
		s.push(ch, token.Variable, pos)
	case last.Kind == token.Variable:
		s.checkSpaceEntries(ch, pos)
		last.Lexeme += ch
		last.End = pos
	case last.Kind == token.Constant:
		if isNumericLexeme(last.Lexeme) {
			s.diag(diag.InvalidSymbol, fmt.Sprintf("Invalid symbol %q", ch), ch, pos)
		}
		s.checkSpaceEntries(ch, pos)
		last.Lexeme += ch
		last.End = pos
		last.Kind = token.Variable
	default:
		s.checkAfterLParen(last, ch, pos)
		s.push(ch, token.Variable, pos)
	}
}

func (s *state) addParenthesis(p string, pos int) {
	last := s.last()
	if p == "(" {
		if last != nil && (last.Kind == token.Constant || last.Lexeme == ")") {
			s.diag(diag.UnexpectedLeftParen, fmt.Sprintf("Unexpected left parenthesis %q", p), p, pos)
		}
		s.push(p, token.Parenthesis, pos)
		return
	}
	switch {
	case last == nil:
		s.diag(diag.UnexpectedRightParen, "Unexpected right parenthesis", p, pos)
	case last.Kind == token.Operator:
		s.diag(diag.UnexpectedSymbol, fmt.Sprintf("Unexpected symbol %q", p), p, pos)
	case last.Kind == token.Constant && strings.TrimSpace(last.Lexeme) == ".":
		s.diag(diag.InvalidSymbol, fmt.Sprintf("Invalid symbol %q", p), p, pos)
	case last.Kind == token.Delimiter:
		s.diag(diag.UnexpectedSymbol, fmt.Sprintf("Unexpected symbol %q", p), p, pos)
	}
	s.push(p, token.Parenthesis, pos)
}

func (s *state) addDelimiter(pos int) {
	last := s.last()
	switch {
	case last == nil:
		s.diag(diag.UnexpectedDelimiter, "Unexpected delimiter symbol \",\"", ",", pos)
	case last.Kind == token.Operator || trimmedIn(last.Lexeme, ".", "("):
		s.diag(diag.UnexpectedDelimiter, "Unexpected delimiter symbol \",\"", ",", pos)
	case last.Kind == token.Delimiter:
		s.diag(diag.UnexpectedDelimiter, "Unexpected delimiter symbol \",\"", ",", pos)
	}
	s.push(",", token.Delimiter, pos)
}

func (s *state) handleSpace(space string) {
	last := s.last()
	if last != nil && (last.Kind == token.Constant || last.Kind == token.Variable) {
		last.Lexeme += space
	}
}

func (s *state) trim() {
	for i := range s.tokens {
		s.tokens[i].Lexeme = strings.TrimSpace(s.tokens[i].Lexeme)
	}
}

func (s *state) checkLastToken() {
	last := s.last()
	if last == nil {
		return
	}
	switch {
	case last.Kind == token.Constant && last.Lexeme == ".":
		s.diag(diag.InvalidSymbol, fmt.Sprintf("Invalid symbol %q", last.Lexeme), last.Lexeme, last.Start)
	case last.Kind == token.Delimiter:
		if len(s.tokens) > 1 {
			s.diag(diag.InvalidSymbol, fmt.Sprintf("Invalid symbol %q", last.Lexeme), last.Lexeme, last.Start)
		}
	case last.Kind == token.Parenthesis && last.Lexeme == "(":
		s.diag(diag.UnexpectedLeftParen, fmt.Sprintf("Unexpected left parenthesis %q", last.Lexeme), last.Lexeme, last.Start)
	case last.Kind == token.Operator:
		unary := token.IsUnarySymbol(last.Lexeme)
		if unary || (len(s.tokens) > 1 && !unary) {
			s.diag(diag.UnexpectedSymbol, fmt.Sprintf("Unexpected symbol %q", last.Lexeme), last.Lexeme, last.Start)
		}
	}
}

func (s *state) promoteFunctions() {
	for i := range s.tokens {
		if s.tokens[i].Kind == token.Variable && isKnownFunction(s.table, s.tokens[i].Lexeme) {
			s.tokens[i].Kind = token.Function
		}
	}
}

func isKnownFunction(table map[string]int, name string) bool {
	_, ok := table[name]
	return ok
}

func isOperatorRune(r rune) bool {
	switch r {
	case '+', '-', '*', '/', '^':
		return true
	default:
		return false
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// isIdentChar restricts identifier characters to [A-Za-z_], matching
// spec.md §4.1's recognized letter class exactly (no broader Unicode
// letters, unlike whitespace which is intentionally Unicode-wide).
func isIdentChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isNumericLexeme(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isDigit(r) && r != '.' {
			return false
		}
	}
	return true
}

func trimmedIn(lexeme string, options ...string) bool {
	trimmed := strings.TrimSpace(lexeme)
	for _, o := range options {
		if trimmed == o {
			return true
		}
	}
	return false
}
