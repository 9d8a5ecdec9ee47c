// Package analyze wires lexer, parser, normalize, equiv and pipeline into
// the single stable entry point external collaborators use (spec.md §6):
// console/file reporting, JSON tree serialization, graph visualization and
// a REPL all sit on top of Analyze and never reach into the stage packages
// directly. Grounded on original_source/expression_data_builder.py's
// build_conveyor_simulations orchestration.
package analyze

import (
	"bytes"
	"sort"

	"github.com/Andrew1407/expression-parser/ast"
	"github.com/Andrew1407/expression-parser/calibration"
	"github.com/Andrew1407/expression-parser/canon"
	"github.com/Andrew1407/expression-parser/diag"
	"github.com/Andrew1407/expression-parser/equiv"
	"github.com/Andrew1407/expression-parser/funcs"
	"github.com/Andrew1407/expression-parser/internal/invariant"
	"github.com/Andrew1407/expression-parser/lexer"
	"github.com/Andrew1407/expression-parser/normalize"
	"github.com/Andrew1407/expression-parser/parser"
	"github.com/Andrew1407/expression-parser/pipeline"
	"github.com/Andrew1407/expression-parser/suggest"
	"github.com/Andrew1407/expression-parser/token"
)

// VariantKind labels how a Variant relates to the default CPT.
type VariantKind string

const (
	KindDefault        VariantKind = "default"
	KindDistributivity VariantKind = "distributivity"
	KindCommutativity  VariantKind = "commutativity"
)

// Variant is one simulated CPT: the default normalization, or one rewrite
// produced by a generator and re-normalized (SPEC_FULL.md §6,
// "Generator re-normalization").
type Variant struct {
	Kind       VariantKind
	Tree       ast.Node
	Simulation pipeline.SimulationData
}

// Result is the stable output contract of spec.md §6.
type Result struct {
	Tokens      []token.Token
	Diagnostics []diag.Diagnostic

	// ParseError is non-nil exactly when the syntactic family reported a
	// fatal error. Tree and Variants are unset in that case.
	ParseError *parser.Error
	// Suggestion holds a fuzzy "did you mean" candidate when ParseError's
	// Kind is parser.UndefinedFunction and a close function name exists.
	Suggestion string

	// Tree is the default CPT (spec.md §4.3). Absent for lexical errors and
	// parse errors; for empty input it holds the ast.Empty sentinel.
	Tree ast.Node

	// Variants is the ordered, deduplicated simulation list: the default
	// CPT first, then distributivity rewrites, then commutativity
	// rewrites, each compared against prior entries' stringified form and
	// dropped if identical (SPEC_FULL.md §6, "Result ordering"). Within the
	// distributivity and commutativity groups, candidates are ordered by
	// canon.Digest before WithMaxVariants truncation is applied, so which
	// variants survive a bound is a stable function of tree shape rather
	// than generator emission order (SPEC_FULL.md §4, "the stable ordering
	// key for truncation"). Nil for lexical/syntactic errors and for the
	// empty-input sentinel (spec.md §7: "If the empty-tree sentinel is
	// passed ... no variants are produced").
	Variants []Variant
}

// Config holds Analyze's tunables.
type Config struct {
	layers      int
	profile     calibration.Profile
	table       map[string]int
	maxVariants int
}

// Option configures Analyze, following the functional-option convention
// shared with lexer.Option and parser.Option.
type Option func(*Config)

// WithLayers sets the pipeline's layer count L. Must be positive; the
// default is 4.
func WithLayers(layers int) Option {
	return func(c *Config) { c.layers = layers }
}

// WithProfile overrides the tact-cost calibration profile.
func WithProfile(profile calibration.Profile) Option {
	return func(c *Config) { c.profile = profile }
}

// WithFunctionTable overrides the arity table used for lexing, parsing and
// suggestion candidates.
func WithFunctionTable(table map[string]int) Option {
	return func(c *Config) { c.table = table }
}

// WithMaxVariants bounds the number of reported variants (spec.md §5's
// resource bound). 0 (the default) means unlimited. The default CPT is
// always counted first, so truncation is stable across runs per the spec's
// deterministic-ordering contract.
func WithMaxVariants(n int) Option {
	return func(c *Config) { c.maxVariants = n }
}

// Analyze runs the full pipeline over source: lex, parse, normalize,
// generate equivalence variants, and simulate each on the conveyor model.
func Analyze(source string, opts ...Option) Result {
	cfg := Config{layers: 4, profile: calibration.Default, table: funcs.Table}
	for _, opt := range opts {
		opt(&cfg)
	}

	lexed := lexer.Lex(source, lexer.WithFunctionTable(cfg.table))
	if len(lexed.Diagnostics) > 0 {
		return Result{Tokens: lexed.Tokens, Diagnostics: lexed.Diagnostics}
	}

	tree, perr := parser.Parse(lexed.Tokens, parser.WithFunctionTable(cfg.table))
	if perr != nil {
		result := Result{Tokens: lexed.Tokens, ParseError: perr}
		if perr.Kind == parser.UndefinedFunction {
			// Built-in names keep funcs.Names order; other table names follow, sorted.
			candidates := make([]string, 0, len(cfg.table))
			for _, name := range funcs.Names() {
				if _, ok := cfg.table[name]; ok {
					candidates = append(candidates, name)
				}
			}
			var extra []string
			for name := range cfg.table {
				if !funcs.IsFunction(name) {
					extra = append(extra, name)
				}
			}
			sort.Strings(extra)
			candidates = append(candidates, extra...)
			if match, ok := suggest.Function(perr.Token.Lexeme, candidates); ok {
				result.Suggestion = match
			}
		}
		return result
	}

	if ast.IsEmpty(tree) {
		return Result{Tokens: lexed.Tokens, Tree: tree}
	}

	cpt := normalize.Normalize(tree)
	result := Result{Tokens: lexed.Tokens, Tree: cpt}
	result.Variants = simulateVariants(cpt, cfg)
	return result
}

func simulateVariants(cpt ast.Node, cfg Config) []Variant {
	seen := make(map[string]bool)
	var variants []Variant

	add := func(kind VariantKind, n ast.Node) {
		if cfg.maxVariants > 0 && len(variants) >= cfg.maxVariants {
			return
		}
		s := canon.Stringify(n)
		if seen[s] {
			return
		}
		seen[s] = true
		variants = append(variants, Variant{
			Kind:       kind,
			Tree:       n,
			Simulation: pipeline.Simulate(n, cfg.layers, cfg.profile),
		})
	}

	add(KindDefault, cpt)

	var distributivity []ast.Node
	for _, raw := range equiv.GenerateDistributivity(cpt) {
		distributivity = append(distributivity, normalize.Normalize(raw))
	}
	for _, n := range sortByDigest(distributivity) {
		add(KindDistributivity, n)
	}

	var commutativity []ast.Node
	for _, raw := range equiv.GenerateCommutativity(cpt) {
		commutativity = append(commutativity, normalize.Normalize(raw))
	}
	for _, n := range sortByDigest(commutativity) {
		add(KindCommutativity, n)
	}

	return variants
}

// sortByDigest orders nodes by their canon.Digest, giving WithMaxVariants
// truncation a stable key independent of generator emission order (spec.md
// §5); deduplication itself stays keyed on canon.Stringify.
// Two variants never share a digest unless they're structurally identical,
// in which case add's canon.Stringify dedup already collapses them before
// order matters.
func sortByDigest(nodes []ast.Node) []ast.Node {
	type keyed struct {
		node   ast.Node
		digest [32]byte
	}
	ks := make([]keyed, len(nodes))
	for i, n := range nodes {
		d, err := canon.Digest(n)
		invariant.Invariant(err == nil, "analyze: canon.Digest failed for a normalized variant: %v", err)
		ks[i] = keyed{node: n, digest: d}
	}
	sort.Slice(ks, func(i, j int) bool {
		return bytes.Compare(ks[i].digest[:], ks[j].digest[:]) < 0
	})
	out := make([]ast.Node, len(ks))
	for i, k := range ks {
		out[i] = k.node
	}
	return out
}
