package engine

import (
	"github.com/minaorangina/belote/internal/card"
	"github.com/minaorangina/belote/internal/legality"
	"github.com/minaorangina/belote/internal/trick"
)

// Play applies a play-card command.
func (m *Match) Play(p card.PlayerID, c card.Card) *Error {
	d := m.Deal
	if d == nil || d.Phase != PlayingTricks {
		return newError(CodePhaseError, "not in the playing-tricks phase")
	}
	if d.CurrentPlayer != p {
		return newError(CodeTurnError, "not this player's turn to play")
	}

	hand := d.handOf(p)

	var playsSoFar []trick.Play
	if d.Trick != nil && !d.Trick.IsComplete() {
		playsSoFar = d.Trick.Plays
	}

	verdict := legality.Check(hand, playsSoFar, *d.TrumpSuit, p, c)
	if !verdict.Legal {
		return newError(CodeRuleError, string(verdict.Reason))
	}

	d.Hands[p] = removeCard(hand, c)

	if d.Trick == nil || d.Trick.IsComplete() {
		d.Trick = trick.NewTrick(p)
	}
	d.Trick.Plays = append(d.Trick.Plays, trick.Play{Player: p, Card: c})

	if !d.Trick.IsComplete() {
		d.CurrentPlayer = card.Next(p)
		return nil
	}

	m.resolveTrick(d)
	return nil
}

func (m *Match) resolveTrick(d *DealState) {
	trump := *d.TrumpSuit
	winner := trick.Winner(d.Trick.Plays, trump)
	d.Trick.Winner = &winner
	d.CurrentPlayer = winner

	points := trick.TrickPoints(d.Trick.Plays, trump)
	team := card.TeamOf(winner)
	d.DealScores[int(team)] += points

	if d.handsAllEmpty() {
		d.DealScores[int(team)] += trick.LastTrickBonus
		if d.Belote.Stage == 2 && d.Belote.Team != nil {
			d.DealScores[int(*d.Belote.Team)] += d.Belote.Points
		}
		m.mergeDealScores()
		d.Phase = Finished
	}
}

func (d *DealState) handsAllEmpty() bool {
	for _, h := range d.Hands {
		if len(h) > 0 {
			return false
		}
	}
	return true
}

// AnnounceBelote applies a belote/rebelote announcement. The announcing
// player's hand is checked for the relevant trump card(s) rather than
// trusting the announcement outright.
func (m *Match) AnnounceBelote(p card.PlayerID) *Error {
	d := m.Deal
	if d == nil || d.Phase != PlayingTricks || d.TrumpSuit == nil {
		return newError(CodePhaseError, "belote can only be announced while playing tricks with a trump set")
	}

	trump := *d.TrumpSuit
	hand := d.handOf(p)
	hasKing := containsCard(hand, card.New(trump, card.King))
	hasQueen := containsCard(hand, card.New(trump, card.Queen))

	switch d.Belote.Stage {
	case 0:
		if !hasKing || !hasQueen {
			return newError(CodeRuleError, "must hold both the trump king and trump queen to announce belote")
		}
		holder := p
		team := card.TeamOf(p)
		d.Belote = Belote{Holder: &holder, Stage: 1, Points: 20, Team: &team}
		return nil
	case 1:
		if d.Belote.Holder == nil || *d.Belote.Holder != p {
			return newError(CodeRuleError, "only the belote holder may announce rebelote")
		}
		if !hasKing && !hasQueen {
			return newError(CodeRuleError, "must still hold the remaining trump king or queen to announce rebelote")
		}
		d.Belote.Stage = 2
		return nil
	default:
		return newError(CodeRuleError, "belote has already been fully announced this deal")
	}
}
