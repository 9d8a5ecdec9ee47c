package normalize

import (
	"github.com/Andrew1407/expression-parser/ast"
	"github.com/Andrew1407/expression-parser/token"
)

// Redisplay re-introduces "-" and "/" for subtraction-shaped and
// division-shaped operands so the tree reads naturally when stringified,
// without changing its arithmetic meaning (spec.md §4.3 pass 6, "optional").
// It must run on a separate copy: the pipeline simulator always consumes
// the pre-Redisplay CPT, since IDs are assigned before this pass runs and
// Redisplay restructures nodes in ways that would invalidate them.
func Redisplay(n ast.Node) ast.Node {
	switch node := n.(type) {
	case *ast.Func:
		for i, a := range node.Args {
			node.Args[i] = Redisplay(a)
		}
		return node

	case *ast.Binary:
		switch node.Tok.Lexeme {
		case token.Power:
			node.Left = Redisplay(node.Left)
			node.Right = Redisplay(node.Right)
			return node

		case token.Plus:
			node.Left = Redisplay(node.Left)
			node.Right = Redisplay(node.Right)
			leftMinus, leftIsUnary := node.Left.(*ast.Unary)
			rightMinus, rightIsUnary := node.Right.(*ast.Unary)
			switch {
			case leftIsUnary && rightIsUnary:
				node.Left = leftMinus.Expr
				node.Right = rightMinus.Expr
				return ast.NewUnary(token.Of(token.Minus, token.Operator, node.Tok.Start), node)
			case rightIsUnary && !leftIsUnary:
				node.Tok.Lexeme = token.Minus
				node.Right = rightMinus.Expr
				return node
			case leftIsUnary && !rightIsUnary:
				node.Tok.Lexeme = token.Minus
				left := leftMinus.Expr
				node.Left = node.Right
				node.Right = left
				return node
			}
			return node

		case token.Multiply:
			node.Left = Redisplay(node.Left)
			node.Right = Redisplay(node.Right)
			leftDen, leftHas := denominator(node.Left)
			rightDen, rightHas := denominator(node.Right)
			switch {
			case leftHas && !rightHas:
				node.Tok.Lexeme = token.Divide
				node.Left, node.Right = node.Right, leftDen
				return removeRedundantMinuses(node)
			case !leftHas && rightHas:
				node.Tok.Lexeme = token.Divide
				node.Right = Redisplay(rightDen)
				return removeRedundantMinuses(node)
			case leftHas && rightHas:
				denomOp := node.Tok
				node.Tok.Lexeme = token.Divide
				leftBinary := node.Left.(*ast.Binary)
				node.Left = leftBinary.Left
				node.Right = removeRedundantMinuses(ast.NewBinary(denomOp, leftDen, rightDen))
				return node
			default:
				return removeRedundantMinuses(node)
			}
		}
		return node

	default:
		return n
	}
}

// denominator reports whether n is the "1/x" reciprocal shape and, if so,
// returns x.
func denominator(n ast.Node) (ast.Node, bool) {
	b, ok := n.(*ast.Binary)
	if !ok || b.Tok.Lexeme != token.Divide {
		return nil, false
	}
	if !ast.IsLeafValue(b.Left, "1") {
		return nil, false
	}
	return b.Right, true
}

func removeRedundantMinuses(node *ast.Binary) ast.Node {
	leftUnary, leftIsUnary := node.Left.(*ast.Unary)
	rightUnary, rightIsUnary := node.Right.(*ast.Unary)
	if leftIsUnary {
		node.Left = leftUnary.Expr
	}
	if rightIsUnary {
		node.Right = rightUnary.Expr
	}
	if leftIsUnary != rightIsUnary {
		return ast.NewUnary(token.Of(token.Minus, token.Operator, node.Tok.Start), node)
	}
	return node
}
