package suggest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Andrew1407/expression-parser/funcs"
	"github.com/Andrew1407/expression-parser/suggest"
)

func TestFunctionEmptyCandidatesReportsFalse(t *testing.T) {
	_, ok := suggest.Function("sn", nil)
	assert.False(t, ok)
}

func TestFunctionExactNameMatches(t *testing.T) {
	match, ok := suggest.Function("cos", funcs.Names())
	assert.True(t, ok)
	assert.Equal(t, "cos", match)
}

func TestFunctionSubsequenceTypoMatches(t *testing.T) {
	// "sn" is an in-order subsequence of "sin" but of nothing else in the
	// table, so it should resolve unambiguously.
	match, ok := suggest.Function("sn", funcs.Names())
	assert.True(t, ok)
	assert.Equal(t, "sin", match)
}

func TestFunctionCaseIsFolded(t *testing.T) {
	match, ok := suggest.Function("MX", funcs.Names())
	assert.True(t, ok)
	assert.Equal(t, "max", match)
}

func TestFunctionNoSubsequenceMatchReportsFalse(t *testing.T) {
	_, ok := suggest.Function("zzz", funcs.Names())
	assert.False(t, ok)
}
