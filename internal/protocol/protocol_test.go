package protocol_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minaorangina/belote/internal/card"
	"github.com/minaorangina/belote/internal/engine"
	"github.com/minaorangina/belote/internal/protocol"
)

func TestDecodeRejectsMissingType(t *testing.T) {
	_, err := protocol.Decode([]byte(`{"payload":{}}`))
	require.NotNil(t, err)
}

func TestDecodeRejectsMalformedJSON(t *testing.T) {
	_, err := protocol.Decode([]byte(`not json`))
	require.NotNil(t, err)
}

func TestParseJoinRoomNormalizesAndValidates(t *testing.T) {
	env, perr := protocol.Decode([]byte(`{"type":"join_room","payload":{"roomCode":" abcdef ","nickname":" Ada "}}`))
	require.Nil(t, perr)

	p, perr := protocol.ParseJoinRoom(env.Payload)
	require.Nil(t, perr)
	assert.Equal(t, "ABCDEF", p.RoomCode)
	assert.Equal(t, "Ada", p.Nickname)
}

func TestParseJoinRoomRejectsEmptyNickname(t *testing.T) {
	_, perr := protocol.ParseJoinRoom(json.RawMessage(`{"roomCode":"ABCDEF","nickname":"   "}`))
	require.NotNil(t, perr)
}

func TestParsePlayCardRoundTrips(t *testing.T) {
	raw := json.RawMessage(`{"card":{"suit":"♥","rank":"J"}}`)
	p, perr := protocol.ParsePlayCard(raw)
	require.Nil(t, perr)
	assert.Equal(t, card.New(card.Hearts, card.Jack), p.Card)
}

func TestParseChooseTrumpTake(t *testing.T) {
	action, suit, perr := protocol.ParseChooseTrump(json.RawMessage(`{"action":"take","suit":"♠"}`))
	require.Nil(t, perr)
	assert.Equal(t, engine.Take, action)
	require.NotNil(t, suit)
	assert.Equal(t, card.Spades, *suit)
}

func TestParseChooseTrumpPass(t *testing.T) {
	action, suit, perr := protocol.ParseChooseTrump(json.RawMessage(`{"action":"pass"}`))
	require.Nil(t, perr)
	assert.Equal(t, engine.Pass, action)
	assert.Nil(t, suit)
}

func TestParseChooseTrumpRejectsUnknownAction(t *testing.T) {
	_, _, perr := protocol.ParseChooseTrump(json.RawMessage(`{"action":"fold"}`))
	require.NotNil(t, perr)
}

func TestEncodeErrorEnvelope(t *testing.T) {
	env := protocol.NewErrorEnvelope("not your turn")
	assert.Equal(t, protocol.TypeError, env.Type)

	var payload protocol.ErrorPayload
	require.NoError(t, json.Unmarshal(env.Payload, &payload))
	assert.Equal(t, "not your turn", payload.Message)
}
