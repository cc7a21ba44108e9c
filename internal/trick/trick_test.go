package trick_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/minaorangina/belote/internal/card"
	"github.com/minaorangina/belote/internal/trick"
)

// Trump hearts, lead spades.
// p0: 10S, p1: JH, p2: AS, p3: 8H -> p1 wins.
func TestWinnerTrumpBeatsLeadSuit(t *testing.T) {
	plays := []trick.Play{
		{Player: 0, Card: card.New(card.Spades, card.Ten)},
		{Player: 1, Card: card.New(card.Hearts, card.Jack)},
		{Player: 2, Card: card.New(card.Spades, card.Ace)},
		{Player: 3, Card: card.New(card.Hearts, card.Eight)},
	}
	winner := trick.Winner(plays, card.Hearts)
	assert.Equal(t, card.PlayerID(1), winner)
}

func TestWinnerOrderIndependent(t *testing.T) {
	plays := []trick.Play{
		{Player: 0, Card: card.New(card.Spades, card.Ten)},
		{Player: 1, Card: card.New(card.Hearts, card.Jack)},
		{Player: 2, Card: card.New(card.Spades, card.Ace)},
		{Player: 3, Card: card.New(card.Hearts, card.Eight)},
	}
	w1 := trick.Winner(plays, card.Hearts)

	again := make([]trick.Play, len(plays))
	copy(again, plays)
	w2 := trick.Winner(again, card.Hearts)

	assert.Equal(t, w1, w2)
}

func TestAllNonTrumpOnlyLeadSuitCanWin(t *testing.T) {
	// trump clubs, lead hearts: off-suit ace of spades cannot win over lead-suit 7 of hearts.
	plays := []trick.Play{
		{Player: 0, Card: card.New(card.Hearts, card.Seven)},
		{Player: 1, Card: card.New(card.Spades, card.Ace)},
	}
	winner := trick.Winner(plays, card.Clubs)
	assert.Equal(t, card.PlayerID(0), winner)
}

func TestTrumpBeatsHigherNonTrump(t *testing.T) {
	plays := []trick.Play{
		{Player: 0, Card: card.New(card.Hearts, card.Ace)},
		{Player: 1, Card: card.New(card.Clubs, card.Seven)}, // weakest trump still wins
	}
	winner := trick.Winner(plays, card.Clubs)
	assert.Equal(t, card.PlayerID(1), winner)
}

func TestTrickPointsAndLastTrickBonus(t *testing.T) {
	plays := []trick.Play{
		{Player: 0, Card: card.New(card.Clubs, card.Jack)},  // trump jack = 20
		{Player: 1, Card: card.New(card.Clubs, card.Nine)},  // trump nine = 14
		{Player: 2, Card: card.New(card.Hearts, card.Ace)},  // 11
		{Player: 3, Card: card.New(card.Hearts, card.King)}, // 4
	}
	total := trick.TrickPoints(plays, card.Clubs)
	assert.Equal(t, 20+14+11+4, total)
	assert.Equal(t, 10, trick.LastTrickBonus)
}

func TestHighestTrump(t *testing.T) {
	plays := []trick.Play{
		{Player: 0, Card: card.New(card.Clubs, card.Seven)},
		{Player: 1, Card: card.New(card.Clubs, card.Jack)},
		{Player: 2, Card: card.New(card.Hearts, card.Ace)},
	}
	strength, owner, ok := trick.HighestTrump(plays, card.Clubs)
	assert.True(t, ok)
	assert.Equal(t, card.PlayerID(1), owner)
	assert.Equal(t, trick.Strength(card.New(card.Clubs, card.Jack), card.Clubs), strength)
}
