// Package parser implements the recursive-descent grammar of spec.md §4.2:
// additive < multiplicative (*, /, ^ share one precedence level) < unary <
// primary. Unlike the lexer, the parser fails fast — the first grammar
// violation is returned as a single fatal *Error, mirroring
// runtime/parser/errors.go's ParseError style adapted to a one-shot (not
// event-based) parse.
package parser

import (
	"fmt"

	"github.com/Andrew1407/expression-parser/ast"
	"github.com/Andrew1407/expression-parser/funcs"
	"github.com/Andrew1407/expression-parser/token"
)

// ErrorKind enumerates the syntactic error family (spec.md §4.2, §7).
type ErrorKind int

const (
	UnexpectedToken ErrorKind = iota
	MissingRightParenthesis
	FunctionNotCalled
	UndefinedFunction
	ArgCountMismatch
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "UnexpectedToken"
	case MissingRightParenthesis:
		return "MissingRightParenthesis"
	case FunctionNotCalled:
		return "FunctionNotCalled"
	case UndefinedFunction:
		return "UndefinedFunction"
	case ArgCountMismatch:
		return "ArgCountMismatch"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is the parser's single fatal error, carrying the offending token.
// ArgCountMismatch additionally carries Expected/Actual argument counts.
type Error struct {
	Kind     ErrorKind
	Message  string
	Token    token.Token
	Expected int
	Actual   int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Config holds parser configuration.
type Config struct {
	table map[string]int
}

// Option configures a Parse call, mirroring lexer.Option.
type Option func(*Config)

// WithFunctionTable overrides the arity table used for ArgCountMismatch
// checks. Must agree with whatever table produced the Function tokens being
// parsed, or every function call will be misjudged.
func WithFunctionTable(table map[string]int) Option {
	return func(c *Config) {
		c.table = table
	}
}

// Parse consumes the full token stream and returns the parsed tree, or the
// first syntactic error encountered. An empty token stream is not an error:
// it yields the ast.Empty sentinel (spec.md §4.2).
func Parse(tokens []token.Token, opts ...Option) (ast.Node, *Error) {
	cfg := Config{table: funcs.Table}
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(tokens) == 0 {
		return ast.Empty(), nil
	}

	p := &parser{tokens: tokens, table: cfg.table}
	tree, err := p.additive()
	if err != nil {
		return nil, err
	}
	if t, ok := p.peek(); ok {
		return nil, &Error{
			Kind:    UnexpectedToken,
			Message: fmt.Sprintf("unexpected token %q", t.Lexeme),
			Token:   t,
		}
	}
	return tree, nil
}

type parser struct {
	tokens []token.Token
	pos    int
	table  map[string]int
}

func (p *parser) peek() (token.Token, bool) {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos], true
	}
	return token.Token{}, false
}

func (p *parser) advance() token.Token {
	t := p.tokens[p.pos]
	p.pos++
	return t
}

func (p *parser) additive() (ast.Node, *Error) {
	left, err := p.multiplicative()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.peek()
		if !ok || t.Kind != token.Operator || !token.IsUnarySymbol(t.Lexeme) {
			break
		}
		op := p.advance()
		right, err := p.multiplicative()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(op, left, right)
	}
	return left, nil
}

// multiplicative parses *, / and ^ at a single precedence level, matching
// the source's "any operator that is not unary" loop condition.
func (p *parser) multiplicative() (ast.Node, *Error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := p.peek()
		if !ok || t.Kind != token.Operator || token.IsUnarySymbol(t.Lexeme) {
			break
		}
		op := p.advance()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(op, left, right)
	}
	return left, nil
}

func (p *parser) unary() (ast.Node, *Error) {
	t, ok := p.peek()
	if ok && t.Kind == token.Operator && token.IsUnarySymbol(t.Lexeme) {
		op := p.advance()
		expr, err := p.unary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnary(op, expr), nil
	}
	return p.primary()
}

func (p *parser) primary() (ast.Node, *Error) {
	t, ok := p.peek()
	if !ok {
		return nil, &Error{Kind: UnexpectedToken, Message: "unexpected end of input"}
	}

	switch {
	case t.Kind == token.Variable || t.Kind == token.Function:
		tok := p.advance()
		if next, ok := p.peek(); ok && next.Lexeme == "(" {
			return p.functionCall(tok)
		}
		if tok.Kind == token.Function {
			return nil, &Error{
				Kind:    FunctionNotCalled,
				Message: fmt.Sprintf("declared function %q must be called", tok.Lexeme),
				Token:   tok,
			}
		}
		return ast.NewLeaf(tok), nil

	case t.Kind == token.Constant:
		return ast.NewLeaf(p.advance()), nil

	case t.Lexeme == "(":
		lp := p.advance()
		expr, err := p.additive()
		if err != nil {
			return nil, err
		}
		rp, ok := p.peek()
		if !ok || rp.Lexeme != ")" {
			return nil, &Error{
				Kind:    MissingRightParenthesis,
				Message: fmt.Sprintf("no right parenthesis found for %q", lp.Lexeme),
				Token:   lp,
			}
		}
		p.advance()
		return expr, nil

	default:
		return nil, &Error{
			Kind:    UnexpectedToken,
			Message: fmt.Sprintf("nonparsable token %q", t.Lexeme),
			Token:   t,
		}
	}
}

func (p *parser) functionCall(fn token.Token) (ast.Node, *Error) {
	lp, ok := p.peek()
	if !ok || lp.Lexeme != "(" {
		return nil, &Error{
			Kind:    FunctionNotCalled,
			Message: fmt.Sprintf("function call expected for %q", fn.Lexeme),
			Token:   fn,
		}
	}
	if fn.Kind != token.Function {
		return nil, &Error{
			Kind:    UndefinedFunction,
			Message: fmt.Sprintf("no such function, cannot call %q", fn.Lexeme),
			Token:   fn,
		}
	}
	p.advance() // consume "("

	var args []ast.Node
	if next, ok := p.peek(); !(ok && next.Lexeme == ")") {
		var err *Error
		args, err = p.functionArgs()
		if err != nil {
			return nil, err
		}
	}

	rp, ok := p.peek()
	if !ok || rp.Lexeme != ")" {
		return nil, &Error{
			Kind:    MissingRightParenthesis,
			Message: fmt.Sprintf("right parenthesis expected for %q", fn.Lexeme),
			Token:   fn,
		}
	}
	p.advance()

	expected, _ := p.table[fn.Lexeme]
	if expected != len(args) {
		word := "many"
		if expected > len(args) {
			word = "few"
		}
		return nil, &Error{
			Kind:     ArgCountMismatch,
			Message:  fmt.Sprintf("too %s arguments (given: %d) for %q (expected: %d)", word, len(args), fn.Lexeme, expected),
			Token:    fn,
			Expected: expected,
			Actual:   len(args),
		}
	}
	return ast.NewFunc(fn, args), nil
}

func (p *parser) functionArgs() ([]ast.Node, *Error) {
	var args []ast.Node
	for {
		expr, err := p.additive()
		if err != nil {
			return nil, err
		}
		args = append(args, expr)
		t, ok := p.peek()
		if !ok || t.Kind != token.Delimiter {
			break
		}
		p.advance()
	}
	return args, nil
}
