package card_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minaorangina/belote/internal/card"
)

func TestSuitSymbolRoundTrip(t *testing.T) {
	for _, s := range card.Suits {
		parsed, err := card.ParseSuit(s.Symbol())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
}

func TestRankShortRoundTrip(t *testing.T) {
	for _, r := range card.Ranks {
		parsed, err := card.ParseRank(r.Short())
		require.NoError(t, err)
		assert.Equal(t, r, parsed)
	}
}

func TestCardJSONRoundTrip(t *testing.T) {
	c := card.New(card.Hearts, card.Jack)
	b, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"suit":"♥","rank":"J"}`, string(b))

	var got card.Card
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, c, got)
}

func TestParseSuitUnknown(t *testing.T) {
	_, err := card.ParseSuit("x")
	assert.Error(t, err)
}

func TestParseRankUnknown(t *testing.T) {
	_, err := card.ParseRank("2")
	assert.Error(t, err)
}
