package engine

import "github.com/minaorangina/belote/internal/card"

// BidAction is a player's choice during a bidding round.
type BidAction int

const (
	Pass BidAction = iota
	Take
)

// Bid applies a bidding command. suit is only consulted for a second-round
// take; a first-round take always takes the turned card's suit, so suit
// is ignored in that case even if the caller sets it.
func (m *Match) Bid(p card.PlayerID, action BidAction, suit *card.Suit) *Error {
	d := m.Deal
	if d == nil || !d.Phase.isBidding() {
		return newError(CodePhaseError, "not in a bidding phase")
	}
	if d.BiddingPlayer == nil || *d.BiddingPlayer != p {
		return newError(CodeTurnError, "not this player's turn to bid")
	}

	switch action {
	case Take:
		return m.take(d, p, suit)
	case Pass:
		return m.pass(d, p)
	default:
		return newError(CodeBiddingError, "unknown bidding action")
	}
}

func (m *Match) take(d *DealState, p card.PlayerID, suit *card.Suit) *Error {
	if d.Phase == ChoosingTrumpFirstRound {
		m.takeTrump(d, p, *d.ProposedTrump)
		return nil
	}

	// Second round: a suit must be given and must differ from the
	// proposed (and already-declined) trump.
	if suit == nil {
		return newError(CodeBiddingError, "second-round take requires a suit")
	}
	if *suit == *d.ProposedTrump {
		return newError(CodeBiddingError, "second-round take must choose a suit other than the declined trump")
	}
	m.takeTrump(d, p, *suit)
	return nil
}

// takeTrump performs the second deal and transitions the deal into
// PlayingTricks. The turned card goes to the chooser; every seat (chooser
// included) is then topped up to 8 cards in dealer-relative order, in one
// batch per seat (3 cards to each other seat, 2 to the chooser) rather
// than the traditional 3-then-2 split.
func (m *Match) takeTrump(d *DealState, chooser card.PlayerID, trump card.Suit) {
	turned := *d.TurnedCard
	d.Hands[chooser] = append(d.Hands[chooser], turned)

	for i := card.PlayerID(0); i < 4; i++ {
		p := (d.Dealer + 1 + i) % 4
		need := 8 - len(d.Hands[p])
		if need > 0 {
			d.Hands[p] = append(d.Hands[p], d.Deck.Deal(need)...)
		}
	}

	trumpCopy := trump
	chooserCopy := chooser
	d.TrumpSuit = &trumpCopy
	d.TrumpChooser = &chooserCopy
	d.TurnedCard = nil
	d.ProposedTrump = nil
	d.Phase = PlayingTricks

	// The taker, having just fixed the trump, leads the first trick.
	d.CurrentPlayer = chooser
	d.BiddingPlayer = nil
	d.PassesInCurrentRound = 0
}

func (m *Match) pass(d *DealState, p card.PlayerID) *Error {
	d.PassesInCurrentRound++
	if d.PassesInCurrentRound < 4 {
		next := card.Next(p)
		d.BiddingPlayer = &next
		d.CurrentPlayer = next
		return nil
	}

	if d.Phase == ChoosingTrumpFirstRound {
		d.Phase = ChoosingTrumpSecondRound
		next := card.Next(d.Dealer)
		d.BiddingPlayer = &next
		d.CurrentPlayer = next
		d.PassesInCurrentRound = 0
		return nil
	}

	// Four passes in the second round: restart the whole deal with the
	// same dealer. Match-level scores are preserved.
	m.restartCurrentDeal()
	return nil
}
