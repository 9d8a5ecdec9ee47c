// Package normalize converts a parsed ast.Node into the Canonical Parallel
// Tree of spec.md §3-§4.3: five passes over a deep copy of the input in
// Normalize, plus the optional display pass Redisplay, ported
// from original_source/expression_parser/parallel_tree/builder.py and
// optimizer_tools.py pass for pass.
package normalize

import (
	"github.com/Andrew1407/expression-parser/ast"
	"github.com/Andrew1407/expression-parser/internal/invariant"
	"github.com/Andrew1407/expression-parser/token"
)

// Normalize builds the CPT for n: identity simplification, primitive
// reduction, unary collapse, bracket opening and depth balancing, in that
// order (SPEC_FULL.md §6). The input is never mutated; n.Clone() is
// normalized in place and returned. Every node in the result carries a
// fresh, stable ID (AssignIDs).
func Normalize(n ast.Node) ast.Node {
	tree := n.Clone()
	if ast.IsEmpty(tree) {
		return tree
	}

	tree = minimizeRedundant(tree)
	convertToPrimitive(tree)
	tree = collapseUnary(tree)
	tree = openBrackets(tree)
	minimizeDepth(tree)

	AssignIDs(tree)
	return tree
}

// --- pass 1: identity simplification ---------------------------------

func minimizeRedundant(n ast.Node) ast.Node {
	switch node := n.(type) {
	case *ast.Binary:
		switch node.Tok.Lexeme {
		case token.Minus:
			if isPrimitive(node.Left) && valsEq(node.Left, node.Right) {
				return ast.NewLeaf(token.Of("0", token.Constant, node.Tok.Start))
			}
			if valEq(node.Left, "0") {
				sign := token.Of(token.Minus, token.Operator, node.Tok.Start)
				return minimizeRedundant(ast.NewUnary(sign, node.Right))
			}
			if valEq(node.Right, "0") {
				return minimizeRedundant(node.Left)
			}
		case token.Plus:
			if valEq(node.Left, "0") {
				return minimizeRedundant(node.Right)
			}
			if valEq(node.Right, "0") {
				return minimizeRedundant(node.Left)
			}
		case token.Multiply:
			if valEq(node.Left, "1") {
				return minimizeRedundant(node.Right)
			}
			if valEq(node.Right, "1") {
				return minimizeRedundant(node.Left)
			}
			if valEq(node.Left, "0") {
				return node.Left
			}
			if valEq(node.Right, "0") {
				return node.Right
			}
		case token.Divide:
			if valEq(node.Right, "1") {
				return minimizeRedundant(node.Left)
			}
			if valEq(node.Left, "0") {
				if valEq(node.Right, "0") {
					return node
				}
				return node.Left
			}
		}
		leftBefore, rightBefore := node.Left.Token().Lexeme, node.Right.Token().Lexeme
		node.Left = minimizeRedundant(node.Left)
		node.Right = minimizeRedundant(node.Right)
		if leftBefore != node.Left.Token().Lexeme || rightBefore != node.Right.Token().Lexeme {
			return minimizeRedundant(node)
		}
		return node

	case *ast.Unary:
		if valEq(node.Expr, "0") {
			return node.Expr
		}
		node.Expr = minimizeRedundant(node.Expr)
		if valEq(node.Expr, "0") {
			return node.Expr
		}
		return node

	case *ast.Func:
		for i, a := range node.Args {
			node.Args[i] = minimizeRedundant(a)
		}
		return node

	default:
		return n
	}
}

func isPrimitive(n ast.Node) bool {
	k := n.Token().Kind
	return k == token.Constant || k == token.Variable
}

func valsEq(a, b ast.Node) bool {
	return a.Token().Lexeme == b.Token().Lexeme
}

func valEq(n ast.Node, lexeme string) bool {
	return n.Token().Lexeme == lexeme
}

// --- pass 2: primitive reduction --------------------------------------

func convertToPrimitive(n ast.Node) {
	switch node := n.(type) {
	case *ast.Binary:
		switch node.Tok.Lexeme {
		case token.Minus:
			convertToPrimitive(node.Left)
			convertToPrimitive(node.Right)
			sign := token.Of(token.Minus, token.Operator, node.Right.Token().Start)
			node.Tok.Lexeme = token.Plus
			node.Right = ast.NewUnary(sign, node.Right)
		case token.Divide:
			convertToPrimitive(node.Left)
			convertToPrimitive(node.Right)
			if ast.IsLeafValue(node.Left, "1") {
				return // already the reciprocal form 1/b
			}
			start := node.Right.Token().Start
			one := ast.NewLeaf(token.Of("1", token.Constant, start))
			divTok := token.Of(token.Divide, token.Operator, start)
			node.Tok.Lexeme = token.Multiply
			node.Right = ast.NewBinary(divTok, one, node.Right)
		case token.Plus, token.Multiply, token.Power:
			convertToPrimitive(node.Left)
			convertToPrimitive(node.Right)
		}
	case *ast.Unary:
		convertToPrimitive(node.Expr)
	case *ast.Func:
		for _, a := range node.Args {
			convertToPrimitive(a)
		}
	}
}

// --- pass 3: unary collapse --------------------------------------------

func collapseUnary(n ast.Node) ast.Node {
	root, unary := unaryMinDepth(n)
	if unary != nil {
		unary.Expr = root
		root = unary
	}
	reduceUnaries(root)
	return root
}

// unaryMinDepth walks a chain of nested Unary nodes starting at n and
// reports the innermost non-Unary expression plus, if the chain's net sign
// is negative, the single Unary node that should wrap it.
func unaryMinDepth(n ast.Node) (ast.Node, *ast.Unary) {
	outer, ok := n.(*ast.Unary)
	if !ok {
		return n, nil
	}
	unary := outer
	minus := outer.Tok.Lexeme == token.Minus
	current := ast.Node(outer)
	for {
		u, ok := current.(*ast.Unary)
		if !ok {
			break
		}
		current = u.Expr
		next, ok := current.(*ast.Unary)
		if !ok {
			break
		}
		if next.Tok.Lexeme == token.Minus {
			minus = !minus
			unary = next
		}
	}
	if !minus {
		unary = nil
	}
	return current, unary
}

func reduceUnaries(n ast.Node) {
	switch node := n.(type) {
	case *ast.Binary:
		node.Left = collapseChild(node.Left)
		node.Right = collapseChild(node.Right)
	case *ast.Func:
		for i, a := range node.Args {
			node.Args[i] = collapseChild(a)
		}
	}
}

func collapseChild(n ast.Node) ast.Node {
	expr, unary := unaryMinDepth(n)
	reduceUnaries(expr)
	if unary != nil {
		unary.Expr = expr
		return unary
	}
	return expr
}

// --- pass 4: bracket opening --------------------------------------------

func openBrackets(n ast.Node) ast.Node {
	switch node := n.(type) {
	case *ast.Unary:
		return applyMinus(node.Expr)
	case *ast.Binary:
		if node.Tok.Lexeme == token.Minus {
			node.Tok.Lexeme = token.Plus
			node.Left = openBrackets(node.Left)
			node.Right = applyMinus(node.Right)
			return node
		}
		node.Left = openBrackets(node.Left)
		node.Right = openBrackets(node.Right)
		return node
	case *ast.Func:
		for i, a := range node.Args {
			node.Args[i] = openBrackets(a)
		}
		return node
	default:
		return n
	}
}

// applyMinus pushes a minus sign that would otherwise wrap n down into n,
// returning the (possibly restructured) replacement for n.
func applyMinus(n ast.Node) ast.Node {
	switch node := n.(type) {
	case *ast.Unary:
		return openBrackets(node.Expr)
	case *ast.Binary:
		switch node.Tok.Lexeme {
		case token.Minus:
			node.Tok.Lexeme = token.Plus
			return node
		case token.Plus:
			node.Left = applyMinus(openBrackets(node.Left))
			node.Right = applyMinus(openBrackets(node.Right))
			return node
		case token.Multiply, token.Divide:
			node.Left = openBrackets(node.Left)
			node.Right = openBrackets(node.Right)
			if ast.IsLeafValue(node.Left, "1") {
				node.Right = applyMinus(node.Right)
			} else {
				node.Left = applyMinus(node.Left)
			}
			return node
		}
	}
	return ast.NewUnary(token.Of(token.Minus, token.Operator, n.Token().Start), openBrackets(n))
}

// --- pass 5: depth balancing ---------------------------------------------

func minimizeDepth(n ast.Node) {
	switch node := n.(type) {
	case *ast.Unary:
		minimizeDepth(node.Expr)
	case *ast.Binary:
		switch node.Tok.Lexeme {
		case token.Plus, token.Multiply:
			balanceOperator(node.Tok.Lexeme, node)
		case token.Power:
			minimizeDepth(node.Left)
			minimizeDepth(node.Right)
		}
	case *ast.Func:
		for _, a := range node.Args {
			minimizeDepth(a)
		}
	}
}

func balanceOperator(operator string, node *ast.Binary) {
	maxPath, minPath := leavesPath(node, operator)
	maxLen, minLen := len(maxPath), len(minPath)

	if maxLen != minLen && maxLen > 2 {
		joinable, ok := maxPath[maxLen-3].(*ast.Binary)
		invariant.Invariant(ok, "balanceOperator: max path joinable slot is not Binary")
		prev, ok := maxPath[maxLen-2].(*ast.Binary)
		invariant.Invariant(ok, "balanceOperator: max path prev slot is not Binary")
		replaceable := maxPath[maxLen-1]

		var sibling ast.Node
		if prev.Right == replaceable {
			sibling = prev.Left
		} else {
			sibling = prev.Right
		}
		if joinable.Left == ast.Node(prev) {
			joinable.Left = sibling
		} else {
			joinable.Right = sibling
		}

		prevMin, ok := minPath[minLen-2].(*ast.Binary)
		invariant.Invariant(ok, "balanceOperator: min path prev slot is not Binary")
		groupable := minPath[minLen-1]
		grouped := ast.NewBinary(token.Of(operator, token.Operator, groupable.Token().Start), replaceable, groupable)
		if prevMin.Left == groupable {
			prevMin.Left = grouped
		} else {
			prevMin.Right = grouped
		}
	}

	minimizeDepth(node.Left)
	minimizeDepth(node.Right)
}

// leavesPath returns the two monotone paths from node to a leaf/boundary
// along same-operator edges, longer first.
func leavesPath(node *ast.Binary, operator string) (longer, shorter []ast.Node) {
	leftDepth := []ast.Node{node}
	rightDepth := []ast.Node{node}
	pathDepth(node.Left, &leftDepth, operator)
	pathDepth(node.Right, &rightDepth, operator)
	if len(leftDepth) > len(rightDepth) {
		return leftDepth, rightDepth
	}
	return rightDepth, leftDepth
}

func pathDepth(n ast.Node, depth *[]ast.Node, operator string) {
	binary, isBinary := n.(*ast.Binary)
	if !isBinary || binary.Tok.Lexeme != operator {
		*depth = append(*depth, n)
		return
	}

	leftIsOp := ast.IsOperator(binary.Left, operator)
	rightIsOp := ast.IsOperator(binary.Right, operator)

	if leftIsOp && rightIsOp {
		longer, _ := leavesPath(binary, operator)
		*depth = append(*depth, longer...)
		return
	}

	*depth = append(*depth, binary)
	switch {
	case leftIsOp && !rightIsOp:
		pathDepth(binary.Right, depth, operator)
	case rightIsOp && !leftIsOp:
		pathDepth(binary.Left, depth, operator)
	default:
		leftBin, leftIsBinary := binary.Left.(*ast.Binary)
		rightBin, rightIsBinary := binary.Right.(*ast.Binary)
		switch {
		case leftIsBinary && !rightIsBinary:
			*depth = append(*depth, binary.Right)
		case rightIsBinary && !leftIsBinary:
			*depth = append(*depth, binary.Left)
		case leftIsBinary && rightIsBinary:
			maxLeft, _ := leavesPath(leftBin, leftBin.Tok.Lexeme)
			maxRight, _ := leavesPath(rightBin, rightBin.Tok.Lexeme)
			// Carried verbatim from the source: this picks the child whose
			// own chain runs longer, despite the "shortest" name the
			// original gives the equivalent local variable.
			if len(maxLeft) > len(maxRight) {
				*depth = append(*depth, binary.Left)
			} else {
				*depth = append(*depth, binary.Right)
			}
		}
	}
}
