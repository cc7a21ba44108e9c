package protocol

import (
	"github.com/minaorangina/belote/internal/card"
	"github.com/minaorangina/belote/internal/engine"
	"github.com/minaorangina/belote/internal/room"
)

// PlayerSlot is one row of a room_update roster: `{id, nickname,
// seat|null}`.
type PlayerSlot struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	Seat     *int   `json:"seat"`
}

type RoomUpdatePayload struct {
	RoomCode string       `json:"roomCode"`
	Players  []PlayerSlot `json:"players"`
}

// NewRoomUpdate builds a room_update envelope from a room.RoomUpdate
// event.
func NewRoomUpdate(u room.RoomUpdate) Envelope {
	players := make([]PlayerSlot, 0, 4)
	for i, s := range u.Seats {
		if s == nil {
			continue
		}
		seat := i
		players = append(players, PlayerSlot{ID: s.ClientID, Nickname: s.Nickname, Seat: &seat})
	}
	return Encode(TypeRoomUpdate, RoomUpdatePayload{RoomCode: u.RoomCode, Players: players})
}

// BeloteState mirrors engine.Belote for the wire.
type BeloteState struct {
	Holder *card.PlayerID `json:"holder,omitempty"`
	Stage  int            `json:"stage"`
	Points int            `json:"points"`
	Team   *card.Team     `json:"team,omitempty"`
}

// TrickPlay mirrors trick.Play for the wire.
type TrickPlay struct {
	Player card.PlayerID `json:"player"`
	Card   card.Card     `json:"card"`
}

// TrickState mirrors trick.Trick for the wire.
type TrickState struct {
	Leader card.PlayerID  `json:"leader"`
	Plays  []TrickPlay    `json:"plays"`
	Winner *card.PlayerID `json:"winner,omitempty"`
}

// DealStateDTO is the full per-deal state broadcast to every client in a
// room, including every hand. Per-client masking of other players' hands
// is intentionally out of scope.
type DealStateDTO struct {
	Phase         string          `json:"phase"`
	Dealer        card.PlayerID   `json:"dealer"`
	CurrentPlayer card.PlayerID   `json:"currentPlayer"`
	Hands         [4][]card.Card  `json:"hands"`
	TurnedCard    *card.Card      `json:"turnedCard,omitempty"`
	ProposedTrump *card.Suit      `json:"proposedTrump,omitempty"`
	TrumpSuit     *card.Suit      `json:"trumpSuit,omitempty"`
	TrumpChooser  *card.PlayerID  `json:"trumpChooser,omitempty"`
	BiddingPlayer *card.PlayerID  `json:"biddingPlayer,omitempty"`
	Trick         *TrickState     `json:"trick,omitempty"`
	DealScores    [2]int          `json:"dealScores"`
	DealNumber    int             `json:"dealNumber"`
	Belote        BeloteState     `json:"belote"`
	MatchScores   [2]int          `json:"matchScores"`
}

func newTrickState(t *engine.DealState) *TrickState {
	if t.Trick == nil {
		return nil
	}
	plays := make([]TrickPlay, len(t.Trick.Plays))
	for i, p := range t.Trick.Plays {
		plays[i] = TrickPlay{Player: p.Player, Card: p.Card}
	}
	return &TrickState{Leader: t.Trick.Leader, Plays: plays, Winner: t.Trick.Winner}
}

// NewGameState builds a game_state envelope from a room.GameUpdate event.
func NewGameState(u room.GameUpdate) Envelope {
	d := u.Deal
	dto := DealStateDTO{
		Phase:         d.Phase.String(),
		Dealer:        d.Dealer,
		CurrentPlayer: d.CurrentPlayer,
		Hands:         d.Hands,
		TurnedCard:    d.TurnedCard,
		ProposedTrump: d.ProposedTrump,
		TrumpSuit:     d.TrumpSuit,
		TrumpChooser:  d.TrumpChooser,
		BiddingPlayer: d.BiddingPlayer,
		Trick:         newTrickState(d),
		DealScores:    d.DealScores,
		DealNumber:    d.DealNumber,
		Belote: BeloteState{
			Holder: d.Belote.Holder,
			Stage:  d.Belote.Stage,
			Points: d.Belote.Points,
			Team:   d.Belote.Team,
		},
	}
	if u.Match != nil {
		dto.MatchScores = u.Match.MatchScores
	}
	return Encode(TypeGameState, dto)
}

// ErrorPayload is the payload of an error envelope, sent only to the
// originating client.
type ErrorPayload struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// NewErrorEnvelope builds an error envelope from a ParseError.
func NewErrorEnvelope(reason string) Envelope {
	return Encode(TypeError, ErrorPayload{Message: reason})
}

// NewRoomErrorEnvelope builds an error envelope from a room.Error,
// carrying its taxonomy code.
func NewRoomErrorEnvelope(code, reason string) Envelope {
	return Encode(TypeError, ErrorPayload{Code: code, Message: reason})
}
