package diag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Andrew1407/expression-parser/diag"
)

func TestBagDeduplicatesByPosition(t *testing.T) {
	var bag diag.Bag
	bag.Add(diag.UnknownSymbol, "Unknown symbol", "@", 4)
	bag.Add(diag.InvalidSymbol, "Invalid symbol", "@", 4)
	bag.Add(diag.UnknownSymbol, "Unknown symbol", "#", 5)

	assert.Equal(t, 2, bag.Len())
	items := bag.Items()
	assert.Equal(t, diag.UnknownSymbol, items[0].Kind)
	assert.Equal(t, 4, items[0].Position)
	assert.Equal(t, 5, items[1].Position)
}

func TestBagPreservesInsertionOrder(t *testing.T) {
	var bag diag.Bag
	bag.Add(diag.UnknownSymbol, "a", "a", 2)
	bag.Add(diag.UnknownSymbol, "b", "b", 1)

	positions := make([]int, 0, 2)
	for _, d := range bag.Items() {
		positions = append(positions, d.Position)
	}
	assert.Equal(t, []int{2, 1}, positions)
}

func TestDiagnosticString(t *testing.T) {
	var bag diag.Bag
	bag.Add(diag.InvalidSymbol, `Invalid symbol "."`, ".", 4)
	assert.Equal(t, `Invalid symbol "." at position 4`, bag.Items()[0].String())
}
