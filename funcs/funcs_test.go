package funcs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Andrew1407/expression-parser/funcs"
)

func TestArity(t *testing.T) {
	cases := map[string]int{
		"sin":  1,
		"cos":  1,
		"rand": 0,
		"max":  2,
		"min":  2,
		"pow":  2,
	}
	for name, want := range cases {
		got, ok := funcs.Arity(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}
}

func TestArityUnknown(t *testing.T) {
	_, ok := funcs.Arity("sqrt")
	assert.False(t, ok)
}

func TestIsFunction(t *testing.T) {
	assert.True(t, funcs.IsFunction("max"))
	assert.False(t, funcs.IsFunction("x"))
}

func TestNamesMatchesTable(t *testing.T) {
	names := funcs.Names()
	assert.Len(t, names, len(funcs.Table))
	for _, n := range names {
		assert.True(t, funcs.IsFunction(n), n)
	}
}
