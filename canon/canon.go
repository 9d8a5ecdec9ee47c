// Package canon gives a CPT two canonical representations used for ordering
// and deduplicating equivalence-generator variants (spec.md §4.4, §6):
//
//   - Digest: a deterministic BLAKE2b-256 hash of a CBOR encoding of the
//     tree's shape, grounded on core/planfmt/canonical.go's
//     CBOR-then-hash pattern. Consumed by analyze.sortByDigest as the
//     stable ordering key applied before variant-count truncation.
//   - Stringify: the human-readable infix form that is this module's
//     round-trip dedup target, ported from
//     original_source/expression_parser/tree_output/str_converter.py.
package canon

import (
	"strings"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"

	"github.com/Andrew1407/expression-parser/ast"
	"github.com/Andrew1407/expression-parser/token"
)

// shape is the CBOR-serializable canonical form of a Node: structure and
// lexemes only, no byte-offset positions or node IDs, so that two
// structurally identical trees parsed from different source spans digest
// identically.
type shape struct {
	Kind     string  `cbor:"kind"`
	Lexeme   string  `cbor:"lexeme,omitempty"`
	Children []shape `cbor:"children,omitempty"`
}

func toShape(n ast.Node) shape {
	switch node := n.(type) {
	case *ast.Leaf:
		return shape{Kind: "leaf", Lexeme: node.Tok.Lexeme}
	case *ast.Unary:
		return shape{Kind: "unary", Lexeme: node.Tok.Lexeme, Children: []shape{toShape(node.Expr)}}
	case *ast.Binary:
		return shape{Kind: "binary", Lexeme: node.Tok.Lexeme, Children: []shape{toShape(node.Left), toShape(node.Right)}}
	case *ast.Func:
		children := make([]shape, len(node.Args))
		for i, a := range node.Args {
			children[i] = toShape(a)
		}
		return shape{Kind: "func", Lexeme: node.Tok.Lexeme, Children: children}
	default:
		return shape{Kind: "empty"}
	}
}

var canonicalEncMode = func() cbor.EncMode {
	mode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return mode
}()

// Digest returns the BLAKE2b-256 hash of the canonical CBOR encoding of n's
// shape. Two nodes with the same Digest are structurally identical CPTs.
func Digest(n ast.Node) ([32]byte, error) {
	data, err := canonicalEncMode.Marshal(toShape(n))
	if err != nil {
		return [32]byte{}, err
	}
	return blake2b.Sum256(data), nil
}

// Stringify renders n as infix notation, adding parentheses only where
// precedence or associativity demands (spec.md §6, "Tree string form").
func Stringify(n ast.Node) string {
	if n == nil || ast.IsEmpty(n) {
		return ""
	}
	switch node := n.(type) {
	case *ast.Binary:
		switch node.Tok.Lexeme {
		case token.Plus:
			return Stringify(node.Left) + " " + node.Tok.Lexeme + " " + Stringify(node.Right)
		case token.Minus:
			return wrapInBrackets(node, nil, isPlusOrMinus)
		case token.Multiply:
			return wrapInBrackets(node, isPlusOrMinus, isPlusOrMinus)
		case token.Divide:
			return wrapInBrackets(node, isPlusOrMinus, isBinaryNotPower)
		case token.Power:
			return wrapInBrackets(node, isBinary, isBinary)
		default:
			return Stringify(node.Left) + " " + node.Tok.Lexeme + " " + Stringify(node.Right)
		}

	case *ast.Func:
		parts := make([]string, len(node.Args))
		for i, a := range node.Args {
			parts[i] = Stringify(a)
		}
		return node.Tok.Lexeme + "(" + strings.Join(parts, ", ") + ")"

	case *ast.Unary:
		expr := Stringify(node.Expr)
		if token.IsOperatorSymbol(node.Expr.Token().Lexeme) {
			expr = "(" + expr + ")"
		}
		return node.Tok.Lexeme + expr

	case *ast.Leaf:
		return node.Tok.Lexeme

	default:
		return ""
	}
}

func wrapInBrackets(node *ast.Binary, leftRule, rightRule func(ast.Node) bool) string {
	left := Stringify(node.Left)
	right := Stringify(node.Right)
	if leftRule != nil && leftRule(node.Left) {
		left = "(" + left + ")"
	}
	if rightRule != nil && rightRule(node.Right) {
		right = "(" + right + ")"
	}
	return left + " " + node.Tok.Lexeme + " " + right
}

func isPlusOrMinus(n ast.Node) bool {
	b, ok := n.(*ast.Binary)
	return ok && token.IsUnarySymbol(b.Tok.Lexeme)
}

func isBinary(n ast.Node) bool {
	_, ok := n.(*ast.Binary)
	return ok
}

func isBinaryNotPower(n ast.Node) bool {
	b, ok := n.(*ast.Binary)
	return ok && b.Tok.Lexeme != token.Power
}
