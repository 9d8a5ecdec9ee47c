// Package pipeline implements the multi-layer conveyor simulator of
// spec.md §4.5, ported from
// original_source/expression_parser/conveyor_simulation/{dynamic,utils,
// containers}.py. Operations are compared by ast.Node.ID rather than
// pointer identity so a deep-copied equivalence-generator variant
// simulates correctly (SPEC_FULL.md §7).
package pipeline

import (
	"log"

	"github.com/Andrew1407/expression-parser/ast"
	"github.com/Andrew1407/expression-parser/calibration"
	"github.com/Andrew1407/expression-parser/canon"
	"github.com/Andrew1407/expression-parser/internal/invariant"
	"github.com/Andrew1407/expression-parser/token"
)

// Debug reproduces the source's congeneric-fill debug print as an opt-in
// log.Printf, so the surprising control flow (SPEC_FULL.md §7, "Congeneric-
// fill heuristic") is preserved without making tests noisy by default.
var Debug = false

// Step is one pipeline cycle: a fixed-length window of L layer slots (nil
// for an empty slot) and the tacts the cycle cost.
type Step struct {
	Layers []ast.Node
	Tacts  float64
}

// SimulationData is the per-variant result of spec.md §3.
type SimulationData struct {
	Steps        []Step
	Sequential   float64
	Dynamic      float64
	Acceleration float64
	Efficiency   float64
}

// Simulate runs the conveyor over every Binary/Function operation in tree
// (post-order) across layers parallel layers, charging costs from profile.
// The empty-tree sentinel and any tree with no operations (a bare Leaf)
// simulate to a zero-valued SimulationData.
func Simulate(tree ast.Node, layers int, profile calibration.Profile) SimulationData {
	invariant.Precondition(layers > 0, "pipeline.Simulate: layers must be positive, got %d", layers)

	if tree == nil || ast.IsEmpty(tree) {
		return SimulationData{}
	}

	var operations []ast.Node
	flatOperations(tree, &operations)
	if len(operations) == 0 {
		return SimulationData{}
	}

	s := &simulator{
		layers:         layers,
		profile:        profile,
		operationsLeft: append([]ast.Node(nil), operations...),
		count:          len(operations),
	}
	return s.run()
}

type simulator struct {
	layers               int
	profile              calibration.Profile
	operationsLeft       []ast.Node
	operationsFulfilled  []ast.Node
	steps                []Step
	count                int
}

func (s *simulator) run() SimulationData {
	for len(s.operationsFulfilled) < s.count {
		prevFulfilled, prevSteps := len(s.operationsFulfilled), len(s.steps)

		if len(s.steps) == 0 {
			node := s.take(nil)
			window := make([]ast.Node, s.layers)
			window[0] = node
			step := Step{Layers: window, Tacts: s.calcStepTacts(window)}
			s.steps = append(s.steps, step)
		} else {
			previous := s.steps[len(s.steps)-1].Layers
			retiring := previous[len(previous)-1]
			if retiring != nil {
				s.operationsFulfilled = append(s.operationsFulfilled, retiring)
			}
			node := s.take(previous)
			window := make([]ast.Node, s.layers)
			window[0] = node
			copy(window[1:], previous[:len(previous)-1])
			tacts := s.calcStepTacts(window)
			if tacts > 0 {
				s.steps = append(s.steps, Step{Layers: window, Tacts: tacts})
			}
		}

		invariant.Invariant(
			len(s.operationsFulfilled) > prevFulfilled || len(s.steps) > prevSteps,
			"pipeline: dispatch loop made no forward progress",
		)
	}
	return s.results()
}

func (s *simulator) take(previous []ast.Node) ast.Node {
	if found := takeFlat(&s.operationsLeft); found != nil {
		return found
	}
	if found := takeReady(&s.operationsLeft, s.operationsFulfilled); found != nil {
		return found
	}
	if previous == nil {
		return nil
	}
	found := takeCongenerical(&s.operationsLeft, previous)
	if Debug && found != nil {
		log.Printf("pipeline: step %d congeneric match %s", len(s.steps)+1, canon.Stringify(found))
	}
	return found
}

func (s *simulator) calcStepTacts(layers []ast.Node) float64 {
	var max float64
	for _, n := range layers {
		if t := s.getTacts(n); t > max {
			max = t
		}
	}
	return max
}

func (s *simulator) getTacts(n ast.Node) float64 {
	switch node := n.(type) {
	case *ast.Func:
		return s.profile.FunctionCost()
	case *ast.Binary:
		return s.profile.OperatorCost(node.Tok.Lexeme)
	default:
		return 0
	}
}

func (s *simulator) results() SimulationData {
	var sequential float64
	for _, n := range s.operationsFulfilled {
		sequential += s.getTacts(n)
	}
	sequential *= float64(s.layers)

	var dynamic float64
	for _, st := range s.steps {
		dynamic += st.Tacts
	}

	var acceleration, efficiency float64
	if dynamic > 0 {
		acceleration = sequential / dynamic
		efficiency = acceleration / float64(s.layers)
	}

	return SimulationData{
		Steps:        s.steps,
		Sequential:   sequential,
		Dynamic:      dynamic,
		Acceleration: acceleration,
		Efficiency:   efficiency,
	}
}

// --- flattening and dispatch rules ---------------------------------------

func flatOperations(n ast.Node, out *[]ast.Node) {
	switch node := n.(type) {
	case *ast.Unary:
		// A unary sign carries no tact cost of its own; descend into what
		// it wraps so a power or function hidden behind "-(a ^ b)" still
		// gets counted.
		flatOperations(node.Expr, out)
	case *ast.Binary:
		flatOperations(node.Left, out)
		flatOperations(node.Right, out)
		*out = append(*out, node)
	case *ast.Func:
		for _, a := range node.Args {
			flatOperations(a, out)
		}
		*out = append(*out, node)
	}
}

// operand strips any unary-sign wrapping to reach the node that actually
// carries operation/fulfillment identity. A CPT can leave a Binary(^) or a
// Func directly under a Unary (bracket-opening has no identity for pushing
// a sign through exponentiation or a function call), so dispatch rules must
// see through the sign rather than mistake it for a leaf.
func operand(n ast.Node) ast.Node {
	for {
		u, ok := n.(*ast.Unary)
		if !ok {
			return n
		}
		n = u.Expr
	}
}

// isOperationNode reports whether n counts as "not a leaf" for nesting
// purposes: any Binary, or any Func with at least one argument. (The
// source's is_nested compares a Python tuple to an int here — a latent bug
// this port resolves to the evidently intended len(args) > 0 check.)
func isOperationNode(n ast.Node) bool {
	switch node := operand(n).(type) {
	case *ast.Binary:
		return true
	case *ast.Func:
		return len(node.Args) > 0
	default:
		return false
	}
}

func isNested(n ast.Node) bool {
	switch node := n.(type) {
	case *ast.Binary:
		return isOperationNode(node.Left) || isOperationNode(node.Right)
	case *ast.Func:
		return len(node.Args) > 0
	default:
		return false
	}
}

// takeFlat dispatches the earliest pending op whose operands are all
// leaves.
func takeFlat(left *[]ast.Node) ast.Node {
	for i, n := range *left {
		if !isNested(n) {
			*left = append((*left)[:i:i], (*left)[i+1:]...)
			return n
		}
	}
	return nil
}

func isOperationCandidate(n ast.Node) bool {
	switch operand(n).(type) {
	case *ast.Binary, *ast.Func:
		return true
	default:
		return false
	}
}

func fulfilledContains(fulfilled []ast.Node, id int) bool {
	for _, n := range fulfilled {
		if n.ID() == id {
			return true
		}
	}
	return false
}

// takeReady dispatches the earliest pending op whose Binary/Func children
// are all already fulfilled.
func takeReady(left *[]ast.Node, fulfilled []ast.Node) ast.Node {
	for i, n := range *left {
		var children []ast.Node
		switch node := n.(type) {
		case *ast.Binary:
			children = []ast.Node{node.Left, node.Right}
		case *ast.Func:
			children = node.Args
		default:
			continue
		}
		if len(children) == 0 {
			continue
		}
		ready := true
		for _, c := range children {
			real := operand(c)
			if !isOperationCandidate(real) {
				continue
			}
			if !fulfilledContains(fulfilled, real.ID()) {
				ready = false
				break
			}
		}
		if ready {
			*left = append((*left)[:i:i], (*left)[i+1:]...)
			return n
		}
	}
	return nil
}

func sameNode(a, b ast.Node) bool {
	return a != nil && b != nil && a.ID() == b.ID()
}

// takeCongenerical dispatches a pending +/* op sharing an operand with the
// same-operator op in some previous-step layer slot. Carried verbatim per
// SPEC_FULL.md §7: it returns nil the instant it meets a pending op that
// isn't +/*, rather than continuing the scan — an advisory heuristic, not a
// guarantee of finding every eligible match.
func takeCongenerical(left *[]ast.Node, previousLayers []ast.Node) ast.Node {
	for i, n := range *left {
		b, ok := n.(*ast.Binary)
		if !ok || (b.Tok.Lexeme != token.Plus && b.Tok.Lexeme != token.Multiply) {
			return nil
		}

		var matched []ast.Node
		for _, p := range previousLayers {
			if p == nil {
				continue
			}
			if sameNode(operand(b.Left), p) || sameNode(operand(b.Right), p) {
				matched = append(matched, p)
			}
		}
		fit := len(matched) > 0
		for _, c := range matched {
			if c.Token().Lexeme != b.Tok.Lexeme {
				fit = false
				break
			}
		}
		if !fit {
			continue
		}
		*left = append((*left)[:i:i], (*left)[i+1:]...)
		return n
	}
	return nil
}
