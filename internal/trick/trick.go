// Package trick implements the two belote rank orderings, the per-card
// point tables, and trick-winner computation. It is pure: no mutation, no
// transport dependency, used only by internal/engine.
package trick

import "github.com/minaorangina/belote/internal/card"

// LastTrickBonus is added to the winner of the eighth trick of a deal.
const LastTrickBonus = 10

var nonTrumpStrength = map[card.Rank]int{
	card.Seven: 0,
	card.Eight: 1,
	card.Nine:  2,
	card.Jack:  3,
	card.Queen: 4,
	card.King:  5,
	card.Ten:   6,
	card.Ace:   7,
}

var trumpStrength = map[card.Rank]int{
	card.Seven: 0,
	card.Eight: 1,
	card.Queen: 2,
	card.King:  3,
	card.Ten:   4,
	card.Ace:   5,
	card.Nine:  6,
	card.Jack:  7,
}

var nonTrumpPoints = map[card.Rank]int{
	card.Seven: 0,
	card.Eight: 0,
	card.Nine:  0,
	card.Jack:  2,
	card.Queen: 3,
	card.King:  4,
	card.Ten:   10,
	card.Ace:   11,
}

var trumpPoints = map[card.Rank]int{
	card.Seven: 0,
	card.Eight: 0,
	card.Nine:  14,
	card.Jack:  20,
	card.Queen: 3,
	card.King:  4,
	card.Ten:   10,
	card.Ace:   11,
}

// IsTrump reports whether c belongs to the trump suit.
func IsTrump(c card.Card, trump card.Suit) bool {
	return c.Suit == trump
}

// Strength returns a card's rank strength within its own ordering context
// (trump ordering if it is trump, non-trump ordering otherwise). Strengths
// are only meaningfully comparable between two cards of the same suit, or
// between two trumps.
func Strength(c card.Card, trump card.Suit) int {
	if IsTrump(c, trump) {
		return trumpStrength[c.Rank]
	}
	return nonTrumpStrength[c.Rank]
}

// Points returns a single card's point value under the given trump suit.
func Points(c card.Card, trump card.Suit) int {
	if IsTrump(c, trump) {
		return trumpPoints[c.Rank]
	}
	return nonTrumpPoints[c.Rank]
}

// Play is one (player, card) entry in a trick.
type Play struct {
	Player card.PlayerID
	Card   card.Card
}

// Trick is an ordered sequence of up to four plays with a designated
// leader. It persists until the next card is played after completion, at
// which point the room/engine layer resets it.
type Trick struct {
	Leader card.PlayerID
	Plays  []Play
	Winner *card.PlayerID
}

// NewTrick starts a fresh, empty trick led by leader.
func NewTrick(leader card.PlayerID) *Trick {
	return &Trick{Leader: leader, Plays: make([]Play, 0, 4)}
}

// IsComplete reports whether all four seats have played to this trick.
func (t *Trick) IsComplete() bool {
	return len(t.Plays) == 4
}

// LeadSuit returns the suit of the first card played, or false if the
// trick has no plays yet.
func (t *Trick) LeadSuit() (card.Suit, bool) {
	if len(t.Plays) == 0 {
		return 0, false
	}
	return t.Plays[0].Card.Suit, true
}

// beats reports whether challenger currently beats incumbent: trump beats
// non-trump; among two trumps the higher trump-ordered card wins; among
// non-trumps only cards matching the lead suit can win, highest by
// non-trump ordering.
func beats(challenger, incumbent card.Card, leadSuit, trump card.Suit) bool {
	cTrump := IsTrump(challenger, trump)
	iTrump := IsTrump(incumbent, trump)

	if cTrump != iTrump {
		return cTrump
	}
	if cTrump && iTrump {
		return trumpStrength[challenger.Rank] > trumpStrength[incumbent.Rank]
	}

	cFollows := challenger.Suit == leadSuit
	iFollows := incumbent.Suit == leadSuit
	if cFollows != iFollows {
		return cFollows
	}
	if cFollows && iFollows {
		return nonTrumpStrength[challenger.Rank] > nonTrumpStrength[incumbent.Rank]
	}
	return false
}

// Winner computes the winning player of a (possibly partial) sequence of
// plays given the trump suit. It is a pure running-max fold: the same
// plays in the same order and the same trump always produce the same
// winner.
func Winner(plays []Play, trump card.Suit) card.PlayerID {
	leadSuit := plays[0].Card.Suit
	best := 0
	for i := 1; i < len(plays); i++ {
		if beats(plays[i].Card, plays[best].Card, leadSuit, trump) {
			best = i
		}
	}
	return plays[best].Player
}

// TrickPoints sums the point values of every card played in the trick
// under the given trump suit.
func TrickPoints(plays []Play, trump card.Suit) int {
	total := 0
	for _, p := range plays {
		total += Points(p.Card, trump)
	}
	return total
}

// HighestTrump returns the strength and owner of the strongest trump
// played so far, if any trump has been played.
func HighestTrump(plays []Play, trump card.Suit) (strength int, owner card.PlayerID, ok bool) {
	for _, p := range plays {
		if !IsTrump(p.Card, trump) {
			continue
		}
		s := trumpStrength[p.Card.Rank]
		if !ok || s > strength {
			strength, owner, ok = s, p.Player, true
		}
	}
	return
}
