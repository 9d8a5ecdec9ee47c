package analyze_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Andrew1407/expression-parser/analyze"
	"github.com/Andrew1407/expression-parser/ast"
	"github.com/Andrew1407/expression-parser/calibration"
	"github.com/Andrew1407/expression-parser/canon"
	"github.com/Andrew1407/expression-parser/parser"
)

func TestAnalyzeEmptyInputYieldsSentinelWithNoVariants(t *testing.T) {
	result := analyze.Analyze("")
	assert.Empty(t, result.Tokens)
	assert.Empty(t, result.Diagnostics)
	assert.Nil(t, result.ParseError)
	require.NotNil(t, result.Tree)
	assert.True(t, ast.IsEmpty(result.Tree))
	assert.Nil(t, result.Variants)
}

func TestAnalyzeLexicalDiagnosticsShortCircuit(t *testing.T) {
	result := analyze.Analyze("8 + .")
	require.NotEmpty(t, result.Diagnostics)
	assert.Nil(t, result.ParseError)
	assert.Nil(t, result.Tree)
	assert.Nil(t, result.Variants)
}

func TestAnalyzeParseErrorShortCircuitsWithoutSuggestion(t *testing.T) {
	result := analyze.Analyze("sin()")
	require.NotNil(t, result.ParseError)
	assert.Equal(t, parser.ArgCountMismatch, result.ParseError.Kind)
	assert.Empty(t, result.Suggestion)
	assert.Nil(t, result.Tree)
	assert.Nil(t, result.Variants)
}

func TestAnalyzeUndefinedFunctionPopulatesSuggestion(t *testing.T) {
	// "sn" is not a declared function; calling it is parsed as
	// UndefinedFunction, and "sn" is an in-order subsequence of the table's
	// "sin", so suggest.Function resolves it unambiguously.
	result := analyze.Analyze("sn(4)")
	require.NotNil(t, result.ParseError)
	assert.Equal(t, parser.UndefinedFunction, result.ParseError.Kind)
	assert.Equal(t, "sin", result.Suggestion)
}

func TestAnalyzeSuccessPathOrdersAndDeduplicatesVariants(t *testing.T) {
	result := analyze.Analyze("(a + b) * c")
	require.Nil(t, result.ParseError)
	require.NotNil(t, result.Tree)
	assert.Equal(t, "(a + b) * c", canon.Stringify(result.Tree))

	require.Len(t, result.Variants, 5)
	assert.Equal(t, analyze.KindDefault, result.Variants[0].Kind)
	assert.Equal(t, "(a + b) * c", canon.Stringify(result.Variants[0].Tree))

	var kinds = map[analyze.VariantKind]int{}
	seen := map[string]bool{}
	for _, v := range result.Variants {
		kinds[v.Kind]++
		s := canon.Stringify(v.Tree)
		assert.False(t, seen[s], "duplicate variant %q", s)
		seen[s] = true
	}
	assert.Equal(t, 1, kinds[analyze.KindDefault])
	assert.Equal(t, 1, kinds[analyze.KindDistributivity])
	assert.Equal(t, 3, kinds[analyze.KindCommutativity])
	assert.True(t, seen["a * c + b * c"])
	assert.True(t, seen["(b + a) * c"])
	assert.True(t, seen["c * (a + b)"])
	assert.True(t, seen["c * (b + a)"])
}

func TestAnalyzeMaxVariantsTruncatesAfterUniqueInsertions(t *testing.T) {
	result := analyze.Analyze("(a + b) * c", analyze.WithMaxVariants(2))
	require.Len(t, result.Variants, 2)
	assert.Equal(t, analyze.KindDefault, result.Variants[0].Kind)
	assert.Equal(t, analyze.KindDistributivity, result.Variants[1].Kind)
	assert.Equal(t, "a * c + b * c", canon.Stringify(result.Variants[1].Tree))
}

func TestAnalyzeWiresLayersAndProfileIntoSimulation(t *testing.T) {
	profile := calibration.Profile{SchemaVersion: "1.0.0", Plus: 100, Minus: 100, Multiply: 1, Divide: 1, Power: 1, Function: 1}
	result := analyze.Analyze("a + b", analyze.WithLayers(2), analyze.WithProfile(profile))
	require.NotEmpty(t, result.Variants)
	assert.Equal(t, 200.0, result.Variants[0].Simulation.Sequential)
}

func TestAnalyzeCustomFunctionTableAffectsLexingAndParsing(t *testing.T) {
	table := map[string]int{"sqrt": 1}
	result := analyze.Analyze("sqrt(4)", analyze.WithFunctionTable(table))
	require.Nil(t, result.ParseError)
	require.NotNil(t, result.Tree)
	assert.Equal(t, "sqrt(4)", canon.Stringify(result.Tree))
}
