package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Andrew1407/expression-parser/ast"
	"github.com/Andrew1407/expression-parser/lexer"
	"github.com/Andrew1407/expression-parser/parser"
)

func parse(t *testing.T, src string) (ast.Node, *parser.Error) {
	t.Helper()
	lexed := lexer.Lex(src)
	require.Empty(t, lexed.Diagnostics, "lexer diagnostics for %q", src)
	return parser.Parse(lexed.Tokens)
}

func TestParseEmptyYieldsSentinel(t *testing.T) {
	tree, err := parser.Parse(nil)
	require.Nil(t, err)
	assert.True(t, ast.IsEmpty(tree))
}

func TestParsePrecedence(t *testing.T) {
	tree, err := parse(t, "a + b * c")
	require.Nil(t, err)
	bin, ok := tree.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "+", bin.Tok.Lexeme)
	_, leftIsLeaf := bin.Left.(*ast.Leaf)
	assert.True(t, leftIsLeaf)
	right, ok := bin.Right.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "*", right.Tok.Lexeme)
}

func TestParseParenthesesProduceNoWrapper(t *testing.T) {
	tree, err := parse(t, "(a + b) * c")
	require.Nil(t, err)
	bin, ok := tree.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "*", bin.Tok.Lexeme)
	inner, ok := bin.Left.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "+", inner.Tok.Lexeme)
}

func TestParseFunctionCall(t *testing.T) {
	tree, err := parse(t, "sin(cos(4))")
	require.Nil(t, err)
	outer, ok := tree.(*ast.Func)
	require.True(t, ok)
	assert.Equal(t, "sin", outer.Tok.Lexeme)
	require.Len(t, outer.Args, 1)
	inner, ok := outer.Args[0].(*ast.Func)
	require.True(t, ok)
	assert.Equal(t, "cos", inner.Tok.Lexeme)
}

func TestParseArgCountMismatch(t *testing.T) {
	_, err := parse(t, "sin()")
	require.NotNil(t, err)
	assert.Equal(t, parser.ArgCountMismatch, err.Kind)
	assert.Equal(t, 1, err.Expected)
	assert.Equal(t, 0, err.Actual)
}

func TestParseFunctionNotCalled(t *testing.T) {
	_, err := parse(t, "sin + 1")
	require.NotNil(t, err)
	assert.Equal(t, parser.FunctionNotCalled, err.Kind)
}

func TestParseUndefinedFunction(t *testing.T) {
	_, err := parse(t, "sqrt(4)")
	require.NotNil(t, err)
	assert.Equal(t, parser.UndefinedFunction, err.Kind)
}

func TestParseMissingRightParenthesis(t *testing.T) {
	_, err := parse(t, "(a + b")
	require.NotNil(t, err)
	assert.Equal(t, parser.MissingRightParenthesis, err.Kind)
}

func TestParseDelimiterAtTopLevelIsUnexpectedToken(t *testing.T) {
	_, err := parse(t, "a, b")
	require.NotNil(t, err)
	assert.Equal(t, parser.UnexpectedToken, err.Kind)
	assert.Equal(t, ",", err.Token.Lexeme)
}

func TestParseResidualTokenIsUnexpectedToken(t *testing.T) {
	_, err := parse(t, "a + b)")
	require.NotNil(t, err)
	assert.Equal(t, parser.UnexpectedToken, err.Kind)
}

func TestParseTreeHeightBoundedByOperatorCount(t *testing.T) {
	tree, err := parse(t, "a + b * c - d / e ^ f")
	require.Nil(t, err)
	operatorCount := 5
	assert.LessOrEqual(t, ast.Height(tree), operatorCount+1)
}

func TestParseCustomFunctionTable(t *testing.T) {
	lexed := lexer.Lex("sqrt(4)", lexer.WithFunctionTable(map[string]int{"sqrt": 1}))
	require.Empty(t, lexed.Diagnostics)
	tree, err := parser.Parse(lexed.Tokens, parser.WithFunctionTable(map[string]int{"sqrt": 1}))
	require.Nil(t, err)
	fn, ok := tree.(*ast.Func)
	require.True(t, ok)
	assert.Equal(t, "sqrt", fn.Tok.Lexeme)
}
