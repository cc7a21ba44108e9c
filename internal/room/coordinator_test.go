package room_test

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minaorangina/belote/internal/card"
	"github.com/minaorangina/belote/internal/engine"
	"github.com/minaorangina/belote/internal/room"
)

// fakeBroadcaster records every event handed to it, keyed by room code,
// instead of pushing bytes over a real connection.
type fakeBroadcaster struct {
	mu        sync.Mutex
	broadcast map[string][]interface{}
}

func newFakeBroadcaster() *fakeBroadcaster {
	return &fakeBroadcaster{broadcast: map[string][]interface{}{}}
}

func (f *fakeBroadcaster) Broadcast(roomCode string, event interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.broadcast[roomCode] = append(f.broadcast[roomCode], event)
}

func (f *fakeBroadcaster) last(roomCode string) interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	events := f.broadcast[roomCode]
	if len(events) == 0 {
		return nil
	}
	return events[len(events)-1]
}

func seatFour(t *testing.T, c *room.Coordinator, code string) {
	t.Helper()
	for i, id := range []string{"c0", "c1", "c2", "c3"} {
		err := c.Join(id, "player"+string(rune('0'+i)), code)
		require.Nil(t, err)
	}
}

func TestCreateRoomUniqueCodes(t *testing.T) {
	c := room.NewCoordinator(newFakeBroadcaster(), nil)
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		code := c.CreateRoom()
		assert.Len(t, code, 6)
		assert.False(t, seen[code], "room code collided")
		seen[code] = true
	}
}

func TestJoinCreatesRoomOnFirstUse(t *testing.T) {
	fb := newFakeBroadcaster()
	c := room.NewCoordinator(fb, nil)
	err := c.Join("client-1", "Ada", "FRESHCODE")
	require.Nil(t, err)

	update, ok := fb.last("FRESHCODE").(room.RoomUpdate)
	require.True(t, ok)
	assert.Equal(t, "client-1", update.Seats[0].ClientID)
}

func TestJoinFillsSeatsThenRejectsFifth(t *testing.T) {
	fb := newFakeBroadcaster()
	c := room.NewCoordinator(fb, nil)
	code := c.CreateRoom()

	seatFour(t, c, code)

	err := c.Join("client-5", "Eve", code)
	require.NotNil(t, err)
	assert.Equal(t, room.CodeRoomError, err.Code)

	update, ok := fb.last(code).(room.RoomUpdate)
	require.True(t, ok)
	for _, s := range update.Seats {
		assert.NotNil(t, s)
	}
}

func TestJoinMovesClientBetweenRooms(t *testing.T) {
	fb := newFakeBroadcaster()
	c := room.NewCoordinator(fb, nil)
	codeA := c.CreateRoom()
	codeB := c.CreateRoom()

	err := c.Join("client-1", "Ada", codeA)
	require.Nil(t, err)

	err = c.Join("client-1", "Ada", codeB)
	require.Nil(t, err)

	updateA, ok := fb.last(codeA).(room.RoomUpdate)
	require.True(t, ok)
	for _, s := range updateA.Seats {
		assert.Nil(t, s, "client-1 should have been removed from room A")
	}
}

func TestStartGameRequiresFourSeats(t *testing.T) {
	c := room.NewCoordinator(newFakeBroadcaster(), nil)
	code := c.CreateRoom()
	err := c.Join("client-1", "Ada", code)
	require.Nil(t, err)

	startErr := c.StartGame("client-1", code, rand.New(rand.NewSource(1)))
	require.NotNil(t, startErr)
	assert.Equal(t, room.CodeStateError, startErr.Code)
}

func TestStartGameDealsAndBroadcasts(t *testing.T) {
	fb := newFakeBroadcaster()
	c := room.NewCoordinator(fb, nil)
	code := c.CreateRoom()
	seatFour(t, c, code)

	err := c.StartGame("c0", code, rand.New(rand.NewSource(2)))
	require.Nil(t, err)

	update, ok := fb.last(code).(room.GameUpdate)
	require.True(t, ok)
	assert.Equal(t, engine.ChoosingTrumpFirstRound, update.Deal.Phase)
}

func TestBidRejectsClientNotSeated(t *testing.T) {
	c := room.NewCoordinator(newFakeBroadcaster(), nil)
	code := c.CreateRoom()
	seatFour(t, c, code)
	require.Nil(t, c.StartGame("c0", code, rand.New(rand.NewSource(3))))

	err := c.Bid("not-a-seat", code, engine.Pass, nil)
	require.NotNil(t, err)
	assert.Equal(t, room.CodeRoomError, err.Code)
}

func TestBidRejectsWrongTurnWithoutBroadcasting(t *testing.T) {
	fb := newFakeBroadcaster()
	c := room.NewCoordinator(fb, nil)
	code := c.CreateRoom()
	seatFour(t, c, code)
	require.Nil(t, c.StartGame("c0", code, rand.New(rand.NewSource(4))))

	before := len(fb.broadcast[code])

	// seat 0 dealt; bidding opens to seat 1 -> client "c1"
	err := c.Bid("c0", code, engine.Pass, nil)
	require.NotNil(t, err)
	assert.Equal(t, room.CodeTurnError, err.Code)

	assert.Len(t, fb.broadcast[code], before, "a rejected command must not be broadcast")
}

func TestFullBiddingAndPlayThroughCoordinator(t *testing.T) {
	fb := newFakeBroadcaster()
	c := room.NewCoordinator(fb, nil)
	code := c.CreateRoom()
	seatFour(t, c, code)
	require.Nil(t, c.StartGame("c0", code, rand.New(rand.NewSource(5))))

	clientBySeat := map[card.PlayerID]string{0: "c0", 1: "c1", 2: "c2", 3: "c3"}

	// first bidder is seat (dealer+1) = seat 1 -> "c1" (dealer starts at 0)
	require.Nil(t, c.Bid("c1", code, engine.Take, nil))

	update, ok := fb.last(code).(room.GameUpdate)
	require.True(t, ok)
	require.Equal(t, engine.PlayingTricks, update.Deal.Phase)

	current := update.Deal.CurrentPlayer
	hand := update.Deal.Hands[current]
	require.NotEmpty(t, hand)
	err := c.Play(clientBySeat[current], code, hand[0])
	assert.Nil(t, err)
}

func TestDisconnectEmptiesAndDeletesRoom(t *testing.T) {
	fb := newFakeBroadcaster()
	c := room.NewCoordinator(fb, nil)
	code := c.CreateRoom()

	err := c.Join("client-1", "Ada", code)
	require.Nil(t, err)

	c.Disconnect("client-1")

	// the room was deleted once empty, so joining the same code again
	// creates a brand new, empty room rather than reusing the old one.
	err = c.Join("client-2", "Bea", code)
	require.Nil(t, err)

	update, ok := fb.last(code).(room.RoomUpdate)
	require.True(t, ok)
	assert.Equal(t, "client-2", update.Seats[0].ClientID)
	assert.Nil(t, update.Seats[1])
}
