package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Andrew1407/expression-parser/token"
)

func TestOfSinglePosition(t *testing.T) {
	tok := token.Of("+", token.Operator, 3)
	assert.Equal(t, 3, tok.Start)
	assert.Equal(t, 3, tok.End)
	assert.False(t, tok.IsAbsent())
}

func TestIsAbsent(t *testing.T) {
	var zero token.Token
	assert.True(t, zero.IsAbsent())

	tok := token.Of("a", token.Variable, 0)
	assert.False(t, tok.IsAbsent())
}

func TestIsOperatorSymbol(t *testing.T) {
	for _, sym := range []string{"+", "-", "*", "/", "^"} {
		assert.True(t, token.IsOperatorSymbol(sym), sym)
	}
	assert.False(t, token.IsOperatorSymbol(","))
	assert.False(t, token.IsOperatorSymbol("sin"))
}

func TestIsUnarySymbol(t *testing.T) {
	assert.True(t, token.IsUnarySymbol("+"))
	assert.True(t, token.IsUnarySymbol("-"))
	assert.False(t, token.IsUnarySymbol("*"))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "Constant", token.Constant.String())
	assert.Equal(t, "None", token.KindNone.String())
}
