package card_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minaorangina/belote/internal/card"
)

func TestNewDeckIsCompleteAndUnique(t *testing.T) {
	d := card.NewDeck()
	require.Len(t, d, 32)

	seen := map[card.Card]bool{}
	for _, c := range d {
		assert.False(t, seen[c], "duplicate card %v", c)
		seen[c] = true
	}
	assert.Len(t, seen, 32)
}

func TestShufflePreservesUniverse(t *testing.T) {
	d := card.NewDeck()
	before := map[card.Card]bool{}
	for _, c := range d {
		before[c] = true
	}

	d.Shuffle(rand.New(rand.NewSource(42)))

	require.Len(t, d, 32)
	for _, c := range d {
		assert.True(t, before[c])
		delete(before, c)
	}
	assert.Empty(t, before)
}

func TestDealRemovesFromDeck(t *testing.T) {
	d := card.NewDeck()
	hand := d.Deal(5)
	assert.Len(t, hand, 5)
	assert.Len(t, d, 27)

	rest := d.Deal(100)
	assert.Len(t, rest, 27)
	assert.Len(t, d, 0)
}
