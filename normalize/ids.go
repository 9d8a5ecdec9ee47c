package normalize

import "github.com/Andrew1407/expression-parser/ast"

// AssignIDs numbers every node reachable from root with a stable,
// sequential, bottom-up post-order ID starting at 1 (0 means unassigned).
// The pipeline simulator compares operands by this ID instead of pointer
// identity, so a deep-copied variant produced by the equivalence generators
// simulates correctly despite sharing no pointers with its source
// (SPEC_FULL.md §7).
func AssignIDs(root ast.Node) {
	next := 1
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		for _, c := range n.Children() {
			walk(c)
		}
		n.SetID(next)
		next++
	}
	walk(root)
}
