// Package room implements the room coordinator: room lifecycle, seat
// assignment, and dispatch of per-client commands into the single
// engine.Match each room owns.
package room

import (
	"crypto/rand"
	"fmt"
	"log"
	mrand "math/rand"
	"sync"

	"github.com/minaorangina/belote/internal/card"
	"github.com/minaorangina/belote/internal/engine"
)

// Broadcaster is implemented by the transport layer so this package never
// imports it back, avoiding a room<->transport import cycle. Broadcast
// delivers an event (a RoomUpdate or GameUpdate, which the implementation
// encodes) to every client currently seated in room code.
type Broadcaster interface {
	Broadcast(roomCode string, event interface{})
}

// RoomUpdate and GameUpdate are the two event shapes a Coordinator hands to
// its Broadcaster; internal/protocol builds the wire envelope around them.
type RoomUpdate struct {
	RoomCode string
	Seats    [4]*Seat
}

type GameUpdate struct {
	RoomCode string
	Deal     *engine.DealState
	Match    *engine.Match
}

// Coordinator owns the room registry. Its own lock guards only creation,
// lookup, and deletion of rooms and the client-to-room index; once a *Room is found, all further
// synchronization is that Room's own mutex.
type Coordinator struct {
	mu         sync.RWMutex
	rooms      map[string]*Room
	clientRoom map[string]string

	broadcaster Broadcaster
	logger      *log.Logger
}

func NewCoordinator(b Broadcaster, logger *log.Logger) *Coordinator {
	if logger == nil {
		logger = log.Default()
	}
	return &Coordinator{
		rooms:       map[string]*Room{},
		clientRoom:  map[string]string{},
		broadcaster: b,
		logger:      logger,
	}
}

// SetBroadcaster wires the transport layer in after construction, since
// the transport handler's own constructor typically needs a *Coordinator
// first (cmd/server's bootstrap resolves the cycle this way rather than
// requiring a two-phase Broadcaster interface).
func (c *Coordinator) SetBroadcaster(b Broadcaster) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.broadcaster = b
}

// NewRoomCode mints a fresh six-letter uppercase room code using
// crypto/rand, rather than reseeding math/rand's global source on every
// letter, which would be both unnecessary and, called concurrently from
// multiple goroutines, a data race.
func NewRoomCode() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	buf := make([]byte, 6)
	_, _ = rand.Read(buf)
	out := make([]byte, 6)
	for i, b := range buf {
		out[i] = letters[int(b)%len(letters)]
	}
	return string(out)
}

// CreateRoom allocates a fresh, empty room and returns its code. Nothing
// in the wire protocol calls this directly: rooms are ordinarily created
// lazily by the first Join against an unused code. CreateRoom exists for
// callers (tests, out-of-band tooling) that want a guaranteed-fresh code
// up front.
func (c *Coordinator) CreateRoom() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	code := NewRoomCode()
	for {
		if _, exists := c.rooms[code]; !exists {
			break
		}
		code = NewRoomCode()
	}
	c.rooms[code] = newRoom(code)
	c.logger.Printf("room %s created", code)
	return code
}

func (c *Coordinator) lookup(code string) (*Room, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.rooms[code]
	return r, ok
}

// getOrCreateRoom returns the room for code, creating an empty one if
// none exists yet.
func (c *Coordinator) getOrCreateRoom(code string) *Room {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.rooms[code]
	if !ok {
		r = newRoom(code)
		c.rooms[code] = r
		c.logger.Printf("room %s created", code)
	}
	return r
}

// Join seats a client in roomCode, creating the room if it does not yet
// exist. If the client was already seated somewhere else, that old seat
// is vacated first. The old room's lock and the target room's lock are
// never held at the same time, so two clients swapping rooms concurrently
// cannot deadlock on each other's mutex.
func (c *Coordinator) Join(clientID, nickname, roomCode string) *Error {
	if c.RoomOf(clientID) != roomCode {
		c.vacatePreviousRoom(clientID)
	}

	r := c.getOrCreateRoom(roomCode)

	r.mu.Lock()
	if !r.isFull() {
		if _, alreadySeated := r.findSeat(clientID); !alreadySeated {
			seat, ok := r.lowestEmptySeat()
			if !ok {
				r.mu.Unlock()
				return newError(CodeSeatError, "no seat assignable")
			}
			r.Seats[seat] = &Seat{ClientID: clientID, Nickname: nickname}
		}
	} else if _, alreadySeated := r.findSeat(clientID); !alreadySeated {
		r.mu.Unlock()
		return newError(CodeRoomError, "room is full")
	}
	roster := r.Roster()
	r.mu.Unlock()

	c.mu.Lock()
	c.clientRoom[clientID] = roomCode
	c.mu.Unlock()

	c.logger.Printf("client %s joined room %s", clientID, roomCode)
	c.broadcaster.Broadcast(roomCode, RoomUpdate{RoomCode: roomCode, Seats: roster})
	return nil
}

// vacatePreviousRoom removes clientID from whatever room it last occupied,
// deleting the room from the registry if that empties it, and broadcasts
// the updated roster for that room.
func (c *Coordinator) vacatePreviousRoom(clientID string) {
	c.mu.Lock()
	prevCode, had := c.clientRoom[clientID]
	if had {
		delete(c.clientRoom, clientID)
	}
	c.mu.Unlock()
	if !had {
		return
	}

	r, ok := c.lookup(prevCode)
	if !ok {
		return
	}

	r.mu.Lock()
	if seat, found := r.findSeat(clientID); found {
		r.Seats[seat] = nil
	}
	empty := r.isEmpty()
	roster := r.Roster()
	r.mu.Unlock()

	if empty {
		c.mu.Lock()
		delete(c.rooms, prevCode)
		c.mu.Unlock()
		c.logger.Printf("room %s emptied and removed", prevCode)
	}
	c.broadcaster.Broadcast(prevCode, RoomUpdate{RoomCode: prevCode, Seats: roster})
}

// Disconnect is Join's inverse, invoked when a client's transport
// connection closes. Mid-deal, the vacated seat is left empty and the
// in-progress DealState is untouched: if that seat's turn comes up, the
// deal waits until a later Join fills the empty seat, and the client
// seated there then acts for it.
func (c *Coordinator) Disconnect(clientID string) {
	c.vacatePreviousRoom(clientID)
}

// withRoom runs fn holding roomCode's room lock, translating "room does
// not exist" into CodeRoomError. fn is responsible for broadcasting any
// resulting update itself, before returning, while still holding the
// lock: the DealState and Match fn hands to the broadcaster are mutable,
// so the broadcast must complete before a second command for the same
// room can re-acquire the lock and mutate them out from under an
// in-flight encode.
func (c *Coordinator) withRoom(roomCode string, fn func(r *Room) *Error) *Error {
	r, ok := c.lookup(roomCode)
	if !ok {
		return newError(CodeRoomError, "no room with that code")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r)
}

func (c *Coordinator) seatOf(r *Room, clientID string) (card.PlayerID, *Error) {
	idx, ok := r.findSeat(clientID)
	if !ok {
		return 0, newError(CodeRoomError, "client is not seated in this room")
	}
	return card.PlayerID(idx), nil
}

// StartGame begins the match once all four seats are filled. rng is
// injected so callers (and tests) control determinism; production callers
// pass a process-level source.
func (c *Coordinator) StartGame(clientID, roomCode string, rng *mrand.Rand) *Error {
	return c.withRoom(roomCode, func(r *Room) *Error {
		if _, ok := r.findSeat(clientID); !ok {
			return newError(CodeRoomError, "client is not seated in this room")
		}
		if !r.isFull() {
			return newError(CodeStateError, "room is not fully seated")
		}
		if r.Match != nil && r.Match.Deal != nil && r.Match.Deal.Phase != engine.Finished {
			return newError(CodeRoomError, "a deal is already in progress")
		}
		if r.Match == nil {
			r.Match = engine.NewMatch(rng)
		}
		deal := r.Match.StartNextDeal()
		c.broadcaster.Broadcast(roomCode, GameUpdate{RoomCode: roomCode, Deal: deal, Match: r.Match})
		return nil
	})
}

// Bid dispatches a bidding command for clientID's seat.
func (c *Coordinator) Bid(clientID, roomCode string, action engine.BidAction, suit *card.Suit) *Error {
	return c.dispatch(clientID, roomCode, func(r *Room, seat card.PlayerID) *engine.Error {
		return r.Match.Bid(seat, action, suit)
	})
}

// Play dispatches a play-card command for clientID's seat.
func (c *Coordinator) Play(clientID, roomCode string, played card.Card) *Error {
	return c.dispatch(clientID, roomCode, func(r *Room, seat card.PlayerID) *engine.Error {
		return r.Match.Play(seat, played)
	})
}

// AnnounceBelote dispatches a belote/rebelote announcement for clientID's
// seat.
func (c *Coordinator) AnnounceBelote(clientID, roomCode string) *Error {
	return c.dispatch(clientID, roomCode, func(r *Room, seat card.PlayerID) *engine.Error {
		return r.Match.AnnounceBelote(seat)
	})
}

// dispatch is the common shape behind Bid/Play/AnnounceBelote: resolve the
// caller's seat, run one engine command under the room's lock, and
// broadcast the resulting deal state on success, all before the lock is
// released. A rejection is returned to the caller, who is responsible for
// reporting it to the rejected client; dispatch itself never writes to the
// wire, so a rejection is never also fanned out as a broadcast.
func (c *Coordinator) dispatch(clientID, roomCode string, fn func(r *Room, seat card.PlayerID) *engine.Error) *Error {
	return c.withRoom(roomCode, func(r *Room) *Error {
		seat, serr := c.seatOf(r, clientID)
		if serr != nil {
			return serr
		}
		if r.Match == nil || r.Match.Deal == nil {
			return newError(CodePhaseError, "no deal in progress")
		}
		if engErr := fn(r, seat); engErr != nil {
			rerr := fromEngineError(engErr)
			c.logger.Printf("room %s: rejected command from %s: %s", roomCode, clientID, rerr)
			return rerr
		}
		c.broadcaster.Broadcast(roomCode, GameUpdate{RoomCode: roomCode, Deal: r.Match.Deal, Match: r.Match})
		return nil
	})
}

// RoomOf returns the room code clientID currently occupies, or "" if the
// client is not seated anywhere.
func (c *Coordinator) RoomOf(clientID string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.clientRoom[clientID]
}

// ClientsIn returns the client ids currently seated in roomCode, in no
// particular order. Used by the transport layer to resolve a broadcast
// target list without reaching into Room internals itself. It reads the
// client-to-room index under the registry lock and never takes the room's
// own lock, so a broadcast made while that lock is held cannot deadlock.
func (c *Coordinator) ClientsIn(roomCode string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, 4)
	for id, code := range c.clientRoom {
		if code == roomCode {
			out = append(out, id)
		}
	}
	return out
}

func (c *Coordinator) String() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return fmt.Sprintf("Coordinator{%d rooms}", len(c.rooms))
}
