// Package engine implements the deterministic belote rule machine:
// dealing, the two-round bidding state machine, legal-play enforcement via
// internal/legality, trick resolution via internal/trick, scoring, and
// deal/match lifecycle.
package engine

import (
	"math/rand"

	"github.com/minaorangina/belote/internal/card"
	"github.com/minaorangina/belote/internal/trick"
)

// Phase is one of the four deal phases.
type Phase int

const (
	ChoosingTrumpFirstRound Phase = iota
	ChoosingTrumpSecondRound
	PlayingTricks
	Finished
)

func (p Phase) String() string {
	switch p {
	case ChoosingTrumpFirstRound:
		return "choosing_trump_first_round"
	case ChoosingTrumpSecondRound:
		return "choosing_trump_second_round"
	case PlayingTricks:
		return "playing_tricks"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

func (p Phase) isBidding() bool {
	return p == ChoosingTrumpFirstRound || p == ChoosingTrumpSecondRound
}

// Belote tracks the belote/rebelote declaration for a single deal.
type Belote struct {
	Holder *card.PlayerID `json:"holder,omitempty"`
	Stage  int            `json:"stage"`
	Points int            `json:"points"`
	Team   *card.Team     `json:"team,omitempty"`
}

// DealState is the full state of one deal in progress.
type DealState struct {
	Phase         Phase
	Dealer        card.PlayerID
	CurrentPlayer card.PlayerID

	Deck  card.Deck
	Hands [4][]card.Card

	TurnedCard    *card.Card
	ProposedTrump *card.Suit
	TrumpSuit     *card.Suit
	TrumpChooser  *card.PlayerID

	BiddingPlayer        *card.PlayerID
	PassesInCurrentRound int

	Trick *trick.Trick

	DealScores [2]int
	DealNumber int

	Belote Belote
}

// newDealState builds the start-of-deal state: fresh shuffled 32-card
// deck, 5 cards to each player, next card turned face-up, first bidding
// round opened to the left of the dealer.
func newDealState(dealer card.PlayerID, dealNumber int, rng *rand.Rand) *DealState {
	deck := card.NewDeck()
	deck.Shuffle(rng)

	d := &DealState{
		Phase:      ChoosingTrumpFirstRound,
		Dealer:     dealer,
		DealNumber: dealNumber,
	}

	for seat := card.PlayerID(0); seat < 4; seat++ {
		p := (dealer + 1 + seat) % 4
		d.Hands[p] = append(d.Hands[p], deck.Deal(5)...)
	}

	turned := deck.Deal(1)[0]
	d.TurnedCard = &turned
	proposed := turned.Suit
	d.ProposedTrump = &proposed

	d.Deck = deck

	bidder := card.Next(dealer)
	d.BiddingPlayer = &bidder
	d.CurrentPlayer = bidder
	d.PassesInCurrentRound = 0

	return d
}

// handOf returns the hand of a seat; never nil, may be empty.
func (d *DealState) handOf(p card.PlayerID) []card.Card {
	return d.Hands[p]
}

func removeCard(hand []card.Card, c card.Card) []card.Card {
	for i, h := range hand {
		if h == c {
			return append(hand[:i:i], hand[i+1:]...)
		}
	}
	return hand
}

func containsCard(hand []card.Card, c card.Card) bool {
	for _, h := range hand {
		if h == c {
			return true
		}
	}
	return false
}
