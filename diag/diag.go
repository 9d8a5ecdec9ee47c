// Package diag implements the lexical diagnostic family (spec.md §7):
// aggregated, recoverable, one entry per source position.
package diag

import "fmt"

// Kind enumerates the lexical error kinds (spec.md §4.1).
type Kind int

const (
	UnknownSymbol Kind = iota
	InvalidOperator
	InvalidSymbol
	UnexpectedSymbol
	UnexpectedLeftParen
	UnexpectedRightParen
	UnexpectedDelimiter
)

func (k Kind) String() string {
	switch k {
	case UnknownSymbol:
		return "UnknownSymbol"
	case InvalidOperator:
		return "InvalidOperator"
	case InvalidSymbol:
		return "InvalidSymbol"
	case UnexpectedSymbol:
		return "UnexpectedSymbol"
	case UnexpectedLeftParen:
		return "UnexpectedLeftParen"
	case UnexpectedRightParen:
		return "UnexpectedRightParen"
	case UnexpectedDelimiter:
		return "UnexpectedDelimiter"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Diagnostic is one lexical-family error record.
type Diagnostic struct {
	Kind     Kind
	Message  string
	Symbol   string
	Position int
}

// String returns the message, which Bag.Add has already suffixed with the
// position.
func (d Diagnostic) String() string {
	return d.Message
}

// Bag accumulates diagnostics with at most one entry per source position,
// mirroring the source lexer's "filter by position before appending" guard.
type Bag struct {
	items Iterator
	seen  map[int]bool
}

// Iterator is the ordered diagnostic slice backing a Bag.
type Iterator = []Diagnostic

// Add appends a diagnostic unless a diagnostic at the same position has
// already been recorded.
func (b *Bag) Add(kind Kind, message, symbol string, position int) {
	if b.seen == nil {
		b.seen = make(map[int]bool)
	}
	if b.seen[position] {
		return
	}
	b.seen[position] = true
	b.items = append(b.items, Diagnostic{
		Kind:     kind,
		Message:  fmt.Sprintf("%s at position %d", message, position),
		Symbol:   symbol,
		Position: position,
	})
}

// Items returns the accumulated diagnostics in insertion order.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Len reports how many diagnostics have been recorded.
func (b *Bag) Len() int {
	return len(b.items)
}
