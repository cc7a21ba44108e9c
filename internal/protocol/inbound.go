package protocol

import (
	"encoding/json"
	"strings"

	"github.com/minaorangina/belote/internal/card"
	"github.com/minaorangina/belote/internal/engine"
)

// JoinRoomPayload is the payload of a join_room envelope.
type JoinRoomPayload struct {
	RoomCode string `json:"roomCode"`
	Nickname string `json:"nickname"`
}

// ParseJoinRoom validates and normalizes a join_room payload: the room
// code is uppercased and trimmed, and both fields must be non-empty.
func ParseJoinRoom(raw json.RawMessage) (JoinRoomPayload, *ParseError) {
	var p JoinRoomPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return p, newParseError("join_room: malformed payload: " + err.Error())
	}
	p.RoomCode = strings.ToUpper(strings.TrimSpace(p.RoomCode))
	p.Nickname = strings.TrimSpace(p.Nickname)
	if p.RoomCode == "" {
		return p, newParseError("join_room: roomCode is required")
	}
	if p.Nickname == "" {
		return p, newParseError("join_room: nickname is required")
	}
	return p, nil
}

// PlayCardPayload is the payload of a play_card envelope.
type PlayCardPayload struct {
	Card card.Card `json:"card"`
}

func ParsePlayCard(raw json.RawMessage) (PlayCardPayload, *ParseError) {
	var p PlayCardPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return p, newParseError("play_card: malformed payload: " + err.Error())
	}
	return p, nil
}

// ChooseTrumpPayload is the payload of a choose_trump envelope: either
// {"action":"take","suit":"♥"} (second round only needs suit) or
// {"action":"pass"}.
type ChooseTrumpPayload struct {
	Action string     `json:"action"`
	Suit   *card.Suit `json:"suit,omitempty"`
}

// ParseChooseTrump validates the action tag and translates it into the
// engine's BidAction.
func ParseChooseTrump(raw json.RawMessage) (engine.BidAction, *card.Suit, *ParseError) {
	var p ChooseTrumpPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return 0, nil, newParseError("choose_trump: malformed payload: " + err.Error())
	}
	switch p.Action {
	case "take":
		return engine.Take, p.Suit, nil
	case "pass":
		return engine.Pass, nil, nil
	default:
		return 0, nil, newParseError("choose_trump: action must be \"take\" or \"pass\"")
	}
}
