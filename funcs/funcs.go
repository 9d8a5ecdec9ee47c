// Package funcs holds the closed table of built-in function names and their
// required argument counts (spec.md §3, "Function table"). It is shared by
// the lexer (Variable→Function promotion), the parser (arity checks), and
// suggest (fuzzy "did you mean" matching on unresolved identifiers).
package funcs

// Table maps a built-in function name to its required arity. It is the
// single source of truth; no identifier outside this map is ever classified
// as a Function token.
var Table = map[string]int{
	"sin":  1,
	"cos":  1,
	"rand": 0,
	"max":  2,
	"min":  2,
	"pow":  2,
}

// Arity returns the declared argument count for name and whether name is a
// known function.
func Arity(name string) (int, bool) {
	n, ok := Table[name]
	return n, ok
}

// IsFunction reports whether name appears in the function table.
func IsFunction(name string) bool {
	_, ok := Table[name]
	return ok
}

// Names returns the known function names in a stable order, used as the
// candidate set for fuzzy suggestions.
func Names() []string {
	// Fixed, not derived from map iteration, so suggestion output is
	// deterministic across runs.
	return []string{"sin", "cos", "rand", "max", "min", "pow"}
}
