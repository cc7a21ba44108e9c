// Package legality implements the belote legal-play predicate: fournir la
// couleur / couper à l'atout / surcouper / the partner-is-master
// exceptions. It is pure: it never mutates its inputs, and is safe to call
// repeatedly against the same state.
package legality

import (
	"github.com/minaorangina/belote/internal/card"
	"github.com/minaorangina/belote/internal/trick"
)

// Reason names why a proposed play is illegal. The zero value means legal.
type Reason string

const (
	OK             Reason = ""
	NotInHand      Reason = "not_in_hand"
	MustFollowSuit Reason = "must_follow_suit"
	MustTrump      Reason = "must_trump"
	MustOvertrump  Reason = "must_overtrump"
	MustUndertrump Reason = "must_undertrump"
)

// Verdict is the oracle's output.
type Verdict struct {
	Legal  bool
	Reason Reason
}

func legal() Verdict           { return Verdict{Legal: true} }
func illegal(r Reason) Verdict { return Verdict{Legal: false, Reason: r} }

func inHand(hand []card.Card, c card.Card) bool {
	for _, h := range hand {
		if h == c {
			return true
		}
	}
	return false
}

func hasSuit(hand []card.Card, suit card.Suit) bool {
	for _, h := range hand {
		if h.Suit == suit {
			return true
		}
	}
	return false
}

func hasStrongerTrump(hand []card.Card, trump card.Suit, threshold int) bool {
	for _, h := range hand {
		if trick.IsTrump(h, trump) && trick.Strength(h, trump) > threshold {
			return true
		}
	}
	return false
}

// Check applies the fournir/couper/surcouper/partner-is-master legality
// cascade. currentTrick holds
// the plays made so far in the trick in progress; pass an empty slice when
// the trick is absent or just completed (any card in hand is then legal).
// actor is the player proposing to play proposed from hand.
func Check(hand []card.Card, currentTrick []trick.Play, trump card.Suit, actor card.PlayerID, proposed card.Card) Verdict {
	if !inHand(hand, proposed) {
		return illegal(NotInHand)
	}
	if len(currentTrick) == 0 {
		return legal()
	}

	leadSuit := currentTrick[0].Card.Suit
	currentWinner := trick.Winner(currentTrick, trump)
	partnerWinning := card.SameTeam(currentWinner, actor)

	matchesLead := proposed.Suit == leadSuit
	hasLead := hasSuit(hand, leadSuit)
	hasTrump := hasSuit(hand, trump)
	highestTrumpStrength, highestTrumpOwner, trumpInTrick := trick.HighestTrump(currentTrick, trump)

	// Rule 1: card matches the lead suit.
	if matchesLead {
		if leadSuit != trump {
			return legal()
		}
		// Trump was led: rule 1b.
		if partnerWinning {
			return legal()
		}
		if trumpInTrick && hasStrongerTrump(hand, trump, highestTrumpStrength) {
			if trick.Strength(proposed, trump) > highestTrumpStrength {
				return legal()
			}
			return illegal(MustOvertrump)
		}
		return legal()
	}

	// Rule 2: off-suit but hand still has the lead suit.
	if hasLead {
		return illegal(MustFollowSuit)
	}

	// Rule 3: no lead suit, no trump: free discard.
	if !hasTrump {
		return legal()
	}

	// Rule 4: no lead suit, has trump, no trump played yet in this trick.
	if !trumpInTrick {
		if partnerWinning {
			return legal()
		}
		if proposed.Suit == trump {
			return legal()
		}
		return illegal(MustTrump)
	}

	// Rule 5: no lead suit, has trump, some trump already in trick.
	if card.SameTeam(highestTrumpOwner, actor) {
		return legal()
	}
	if hasStrongerTrump(hand, trump, highestTrumpStrength) {
		if proposed.Suit == trump && trick.Strength(proposed, trump) > highestTrumpStrength {
			return legal()
		}
		return illegal(MustOvertrump)
	}
	if proposed.Suit == trump {
		return legal()
	}
	return illegal(MustUndertrump)
}
