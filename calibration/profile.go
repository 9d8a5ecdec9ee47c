// Package calibration holds the pipeline simulator's tact-cost table as a
// configurable, schema-validated document (spec.md §4.5 parenthetical:
// "implementations must keep them configurable but preserve the relative
// ordering"), grounded on core/types/validation.go's JSON-Schema-validated
// configuration pattern.
package calibration

import "github.com/Andrew1407/expression-parser/token"

// Profile is the tact cost charged for each operator/function-call kind.
// Field names mirror the spec.md §4.5 table; SchemaVersion is validated as
// a semantic version by the embedded schema.
type Profile struct {
	SchemaVersion string  `json:"schemaVersion"`
	Plus          float64 `json:"plus"`
	Minus         float64 `json:"minus"`
	Multiply      float64 `json:"multiply"`
	Divide        float64 `json:"divide"`
	Power         float64 `json:"power"`
	Function      float64 `json:"function"`
}

// Default reproduces spec.md §4.5's table exactly: +/- = 1, * = 2, / = 5,
// ^ = 7, any function call = 10. This intentionally differs from
// original_source's OperationDuration (POW=4, FUNCTION=5) per
// SPEC_FULL.md §6 — only the relative ordering is carried from the source,
// not its absolute numbers.
var Default = Profile{
	SchemaVersion: "1.0.0",
	Plus:          1,
	Minus:         1,
	Multiply:      2,
	Divide:        5,
	Power:         7,
	Function:      10,
}

// OperatorCost returns the tact cost for a binary operator symbol. It
// panics if sym is not one of the five recognized operator symbols — a
// caller bug, not a data error.
func (p Profile) OperatorCost(sym string) float64 {
	switch sym {
	case token.Plus:
		return p.Plus
	case token.Minus:
		return p.Minus
	case token.Multiply:
		return p.Multiply
	case token.Divide:
		return p.Divide
	case token.Power:
		return p.Power
	default:
		panic("calibration: unknown operator symbol " + sym)
	}
}

// FunctionCost returns the tact cost charged for any function call,
// regardless of which function (spec.md §4.5: "any function call" is one
// row in the table).
func (p Profile) FunctionCost() float64 {
	return p.Function
}
