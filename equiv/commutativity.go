// Package equiv implements the commutativity and distributivity equivalence
// generators of spec.md §4.4. Both return a finite, deduplicated set of CPTs
// semantically equal to the input; every returned Node is a fresh deep
// copy sharing no structure with the input or with each other.
package equiv

import (
	"github.com/Andrew1407/expression-parser/ast"
	"github.com/Andrew1407/expression-parser/canon"
	"github.com/Andrew1407/expression-parser/token"
)

// GenerateCommutativity recursively builds the cross product of each
// child's variant set, emitting a commutative Binary node's product twice
// (original and swapped order), ported from the source's
// get_binary_forms_collection/get_function_forms_collection/
// get_unary_forms_collection combinators (spec.md §4.4).
func GenerateCommutativity(n ast.Node) []ast.Node {
	return dedupeByString(commutationForms(n))
}

func commutationForms(n ast.Node) []ast.Node {
	switch node := n.(type) {
	case *ast.Leaf:
		return []ast.Node{node.Clone()}

	case *ast.Unary:
		var out []ast.Node
		for _, expr := range commutationForms(node.Expr) {
			out = append(out, ast.NewUnary(node.Tok, expr))
		}
		return out

	case *ast.Func:
		return functionForms(node, commutationForms)

	case *ast.Binary:
		swapIncluded := node.Tok.Lexeme == token.Plus || node.Tok.Lexeme == token.Multiply
		return binaryForms(node, commutationForms, swapIncluded)

	default:
		return []ast.Node{n.Clone()}
	}
}

// binaryForms is get_binary_forms_collection: the cross product of the
// left and right variant sets, each pairing also emitted swapped when
// swapIncluded.
func binaryForms(node *ast.Binary, factory func(ast.Node) []ast.Node, swapIncluded bool) []ast.Node {
	leftForms := factory(node.Left)
	rightForms := factory(node.Right)
	var out []ast.Node
	for _, l := range leftForms {
		for _, r := range rightForms {
			out = append(out, ast.NewBinary(node.Tok, l.Clone(), r.Clone()))
			if swapIncluded {
				out = append(out, ast.NewBinary(node.Tok, r.Clone(), l.Clone()))
			}
		}
	}
	return out
}

// functionForms is get_function_forms_collection: the cross product across
// every argument's variant set.
func functionForms(node *ast.Func, factory func(ast.Node) []ast.Node) []ast.Node {
	if len(node.Args) == 0 {
		return []ast.Node{node.Clone()}
	}
	var combinations [][]ast.Node
	for _, arg := range node.Args {
		forms := factory(arg)
		if combinations == nil {
			for _, f := range forms {
				combinations = append(combinations, []ast.Node{f})
			}
			continue
		}
		var extended [][]ast.Node
		for _, f := range forms {
			for _, combo := range combinations {
				next := make([]ast.Node, len(combo), len(combo)+1)
				copy(next, combo)
				next = append(next, f)
				extended = append(extended, next)
			}
		}
		combinations = extended
	}

	out := make([]ast.Node, 0, len(combinations))
	for _, combo := range combinations {
		args := make([]ast.Node, len(combo))
		for i, a := range combo {
			args[i] = a.Clone()
		}
		out = append(out, ast.NewFunc(node.Tok, args))
	}
	return out
}

func dedupeByString(nodes []ast.Node) []ast.Node {
	seen := make(map[string]bool, len(nodes))
	out := make([]ast.Node, 0, len(nodes))
	for _, n := range nodes {
		s := canon.Stringify(n)
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, n)
	}
	return out
}
