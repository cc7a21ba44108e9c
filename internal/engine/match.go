package engine

import (
	"math/rand"

	"github.com/minaorangina/belote/internal/card"
)

// Match owns the sequence of deals at one table: match-level score
// accumulation, dealer rotation, and the PRNG used to shuffle each deal.
// The PRNG is an injected dependency so deals are deterministic in tests.
type Match struct {
	MatchScores [2]int
	Dealer      card.PlayerID
	DealNumber  int
	Deal        *DealState

	rng *rand.Rand
}

// NewMatch constructs a fresh match at a table. The first deal is dealt by
// seat 0; the dealer then rotates (dealer+1)%4 on every subsequent deal.
func NewMatch(rng *rand.Rand) *Match {
	return &Match{Dealer: 0, rng: rng}
}

// StartNextDeal replaces m.Deal with a fresh deal. On the very first call
// the dealer is seat 0; every subsequent call rotates the dealer before
// dealing.
func (m *Match) StartNextDeal() *DealState {
	if m.DealNumber > 0 {
		m.Dealer = card.Next(m.Dealer)
	}
	m.DealNumber++
	m.Deal = newDealState(m.Dealer, m.DealNumber, m.rng)
	return m.Deal
}

// restartCurrentDeal reshuffles and redeals with the same dealer and the
// same deal number, after four consecutive second-round passes.
// Match-level scores are untouched.
func (m *Match) restartCurrentDeal() *DealState {
	m.Deal = newDealState(m.Dealer, m.DealNumber, m.rng)
	return m.Deal
}

// mergeDealScores folds the just-finished deal's points into the running
// match totals.
func (m *Match) mergeDealScores() {
	m.MatchScores[0] += m.Deal.DealScores[0]
	m.MatchScores[1] += m.Deal.DealScores[1]
}
