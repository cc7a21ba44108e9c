// Package protocol defines the wire envelopes: every message is a tagged
// `{type, payload}` object whose payload schema is validated per tag,
// rather than one flat struct carrying every field any message might need.
package protocol

import "encoding/json"

// Type is an envelope's discriminator tag.
type Type string

const (
	// Inbound
	TypeJoinRoom        Type = "join_room"
	TypeStartGame       Type = "start_game"
	TypePlayCard        Type = "play_card"
	TypeChooseTrump     Type = "choose_trump"
	TypeAnnounceBelote  Type = "announce_belote"

	// Outbound
	TypeRoomUpdate Type = "room_update"
	TypeGameState  Type = "game_state"
	TypeError      Type = "error"
)

// Envelope is both the inbound and outbound wire shape: a type tag plus a
// raw payload whose schema depends on Type.
type Envelope struct {
	Type    Type            `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ParseError is returned when an envelope is malformed, its type unknown,
// or its payload fails to match the schema for its type.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string { return e.Reason }

func newParseError(reason string) *ParseError {
	return &ParseError{Reason: reason}
}

// Encode builds an outbound envelope, panicking only on a programmer error
// (a payload type that cannot marshal), never on caller input.
func Encode(t Type, payload interface{}) Envelope {
	if payload == nil {
		return Envelope{Type: t}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		// payload is always one of this package's own outbound structs;
		// a marshal failure here is a bug in this package, not bad input.
		panic("protocol: failed to encode outbound payload: " + err.Error())
	}
	return Envelope{Type: t, Payload: raw}
}

// Decode parses the outer envelope from a raw inbound message. It does not
// validate the payload against its type's schema; callers use the
// Parse* helpers below for that.
func Decode(raw []byte) (Envelope, *ParseError) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, newParseError("malformed envelope: " + err.Error())
	}
	if env.Type == "" {
		return Envelope{}, newParseError("envelope missing \"type\"")
	}
	return env, nil
}
