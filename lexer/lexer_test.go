package lexer_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Andrew1407/expression-parser/diag"
	"github.com/Andrew1407/expression-parser/lexer"
	"github.com/Andrew1407/expression-parser/token"
)

type tok struct {
	Kind   token.Kind
	Lexeme string
}

func kinds(tokens []token.Token) []tok {
	out := make([]tok, len(tokens))
	for i, t := range tokens {
		out[i] = tok{Kind: t.Kind, Lexeme: t.Lexeme}
	}
	return out
}

func TestLexEmptySource(t *testing.T) {
	res := lexer.Lex("")
	assert.Empty(t, res.Tokens)
	assert.Empty(t, res.Diagnostics)
}

func TestLexSourcePositionsRoundTrip(t *testing.T) {
	src := "a + b * c"
	res := lexer.Lex(src)
	require.Empty(t, res.Diagnostics)
	for _, tk := range res.Tokens {
		assert.Equal(t, tk.Lexeme, src[tk.Start:tk.End+1], "token %+v", tk)
	}
}

func TestLexSimpleExpression(t *testing.T) {
	res := lexer.Lex("a + b * c")
	require.Empty(t, res.Diagnostics)
	want := []tok{
		{token.Variable, "a"},
		{token.Operator, "+"},
		{token.Variable, "b"},
		{token.Operator, "*"},
		{token.Variable, "c"},
	}
	if diff := cmp.Diff(want, kinds(res.Tokens), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("token mismatch (-want +got):\n%s", diff)
	}
}

func TestLexFunctionPromotion(t *testing.T) {
	res := lexer.Lex("sin(cos(4))")
	require.Empty(t, res.Diagnostics)
	require.NotEmpty(t, res.Tokens)
	assert.Equal(t, token.Function, res.Tokens[0].Kind)
	assert.Equal(t, "sin", res.Tokens[0].Lexeme)
}

func TestLexWhitespaceInsideConstantIsToleratedButFlagged(t *testing.T) {
	res := lexer.Lex("83 234")
	require.Len(t, res.Tokens, 1)
	assert.Equal(t, token.Constant, res.Tokens[0].Kind)
	assert.Equal(t, "83 234", res.Tokens[0].Lexeme)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, diag.UnexpectedSymbol, res.Diagnostics[0].Kind)
}

func TestLexTrailingDotIsDiagnosed(t *testing.T) {
	res := lexer.Lex("8 + .")
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, diag.InvalidSymbol, res.Diagnostics[0].Kind)
	assert.Equal(t, 4, res.Diagnostics[0].Position)
}

func TestLexDelimiterAtTopLevelIsAcceptedByLexer(t *testing.T) {
	res := lexer.Lex("a, b")
	assert.Empty(t, res.Diagnostics)
	want := []tok{
		{token.Variable, "a"},
		{token.Delimiter, ","},
		{token.Variable, "b"},
	}
	if diff := cmp.Diff(want, kinds(res.Tokens)); diff != "" {
		t.Errorf("token mismatch (-want +got):\n%s", diff)
	}
}

func TestLexUnknownSymbolIsSkippedAndDiagnosed(t *testing.T) {
	// An operator between the skipped symbol and the next identifier closes
	// the accumulating token, so "a" and "b" come back as separate tokens;
	// an unknown symbol never closes a token on its own (spec.md §4.1).
	res := lexer.Lex("a @ + b")
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, diag.UnknownSymbol, res.Diagnostics[0].Kind)
	want := []tok{{token.Variable, "a"}, {token.Operator, "+"}, {token.Variable, "b"}}
	if diff := cmp.Diff(want, kinds(res.Tokens)); diff != "" {
		t.Errorf("token mismatch (-want +got):\n%s", diff)
	}
}

func TestLexDiagnosticsDeduplicatedByPosition(t *testing.T) {
	// "*" after "(" is an invalid operator, and as the trailing token it is
	// flagged again at the same position; only the first is kept.
	res := lexer.Lex("(*")
	assert.Len(t, res.Diagnostics, 1)
}

func TestLexIdempotentUnderReLexingEchoedLexemes(t *testing.T) {
	src := "sin(a) + b * (c - 1)"
	first := lexer.Lex(src)
	require.Empty(t, first.Diagnostics)

	lexemes := make([]string, len(first.Tokens))
	for i, tk := range first.Tokens {
		lexemes[i] = tk.Lexeme
	}
	echoed := ""
	for i, l := range lexemes {
		if i > 0 {
			echoed += " "
		}
		echoed += l
	}
	second := lexer.Lex(echoed)
	assert.Empty(t, second.Diagnostics)
}

func TestLexCustomFunctionTable(t *testing.T) {
	res := lexer.Lex("sqrt(4)", lexer.WithFunctionTable(map[string]int{"sqrt": 1}))
	require.Empty(t, res.Diagnostics)
	assert.Equal(t, token.Function, res.Tokens[0].Kind)
}
