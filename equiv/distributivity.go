package equiv

import (
	"github.com/Andrew1407/expression-parser/ast"
	"github.com/Andrew1407/expression-parser/internal/invariant"
	"github.com/Andrew1407/expression-parser/token"
)

// GenerateDistributivity returns the input unexpanded and, when it differs,
// its full distributive expansion: every `*` node's operands are expanded
// as plus-summand cross products ((a+b)(c+d) -> ac+ad+bc+bd) and every `/`
// chain is regrouped into a numerator product over a denominator product,
// ported from multiply_nodes/divide_nodes/join_nodes_with_operator.
func GenerateDistributivity(n ast.Node) []ast.Node {
	original := n.Clone()
	expanded := distributeOperator(n.Clone())
	return dedupeByString([]ast.Node{original, expanded})
}

func distributeOperator(n ast.Node) ast.Node {
	switch node := n.(type) {
	case *ast.Binary:
		switch node.Tok.Lexeme {
		case token.Multiply:
			return multiplyNodes(node)
		case token.Divide:
			return divideNodes(node)
		default:
			node.Left = distributeOperator(node.Left)
			node.Right = distributeOperator(node.Right)
			return node
		}
	case *ast.Func:
		for i, a := range node.Args {
			node.Args[i] = distributeOperator(a)
		}
		return node
	default:
		return n
	}
}

func multiplyNodes(node *ast.Binary) ast.Node {
	node.Left = distributeOperator(node.Left)
	node.Right = distributeOperator(node.Right)

	var leftSummands, rightSummands []ast.Node
	searchPlusNodes(node.Left, &leftSummands)
	searchPlusNodes(node.Right, &rightSummands)
	if len(leftSummands) == 1 && len(rightSummands) == 1 {
		return node
	}

	joined := make([]ast.Node, 0, len(leftSummands)*len(rightSummands))
	for _, l := range leftSummands {
		for _, r := range rightSummands {
			op := token.Of(token.Multiply, token.Operator, l.Token().Start)
			joined = append(joined, ast.NewBinary(op, l, r))
		}
	}
	return joinWithOperator(joined, token.Plus)
}

func divideNodes(node *ast.Binary) ast.Node {
	var upper, lower []ast.Node
	current := ast.Node(node)
	toUpper := true
	for {
		cb, isDivide := current.(*ast.Binary)
		isDivide = isDivide && cb.Tok.Lexeme == token.Divide
		if !isDivide {
			if toUpper {
				upper = append(upper, current)
			} else {
				lower = append(lower, current)
			}
			break
		}
		if toUpper {
			upper = append(upper, cb.Left)
		} else {
			lower = append(lower, cb.Left)
		}
		current = cb.Right
		toUpper = !toUpper
	}

	upperNode := distributeOperator(joinWithOperator(upper, token.Multiply))
	lowerNode := distributeOperator(joinWithOperator(lower, token.Multiply))
	return setDivisionNode(upperNode, lowerNode)
}

func joinWithOperator(nodes []ast.Node, operator string) ast.Node {
	invariant.Precondition(len(nodes) > 0, "joinWithOperator: empty node list")
	last := nodes[len(nodes)-1]
	if len(nodes) == 1 {
		return last
	}
	var mainNode, current *ast.Binary
	for _, n := range nodes[:len(nodes)-1] {
		created := &ast.Binary{Tok: token.Of(operator, token.Operator, n.Token().End), Left: n}
		if mainNode == nil {
			mainNode = created
		} else {
			current.Right = created
		}
		current = created
	}
	current.Right = last
	return mainNode
}

func searchPlusNodes(n ast.Node, out *[]ast.Node) {
	if b, ok := n.(*ast.Binary); ok && b.Tok.Lexeme == token.Plus {
		searchPlusNodes(b.Left, out)
		searchPlusNodes(b.Right, out)
		return
	}
	*out = append(*out, n)
}

// setDivisionNode distributes division over a top-level "+" chain,
// producing a fresh division node per summand. Unlike the source, each
// branch gets its own clone of division so no two returned subtrees alias
// (spec.md §3's "never share mutable substructure" ownership invariant).
func setDivisionNode(n, division ast.Node) ast.Node {
	if b, ok := n.(*ast.Binary); ok && b.Tok.Lexeme == token.Plus {
		b.Left = setDivisionNode(b.Left, division.Clone())
		b.Right = setDivisionNode(b.Right, division.Clone())
		return b
	}
	op := token.Of(token.Divide, token.Operator, n.Token().Start)
	return ast.NewBinary(op, n, division)
}
