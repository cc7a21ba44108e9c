package room

import (
	"sync"
	"time"

	"github.com/minaorangina/belote/internal/engine"
)

// Seat is one of a room's four slots.
type Seat struct {
	ClientID string
	Nickname string
}

// Room is a single table: code, four seats, and an optional in-progress
// match. All content under Room is protected by mu, its own per-room
// single-writer critical section; the registry (which room codes exist)
// is protected separately by Coordinator's own lock.
type Room struct {
	mu sync.Mutex

	Code      string
	CreatedAt time.Time
	Seats     [4]*Seat
	Match     *engine.Match
}

func newRoom(code string) *Room {
	return &Room{Code: code, CreatedAt: time.Now(), Seats: [4]*Seat{}}
}

func (r *Room) seatedCount() int {
	n := 0
	for _, s := range r.Seats {
		if s != nil {
			n++
		}
	}
	return n
}

func (r *Room) isFull() bool {
	return r.seatedCount() == 4
}

func (r *Room) isEmpty() bool {
	return r.seatedCount() == 0
}

func (r *Room) findSeat(clientID string) (int, bool) {
	for i, s := range r.Seats {
		if s != nil && s.ClientID == clientID {
			return i, true
		}
	}
	return -1, false
}

func (r *Room) lowestEmptySeat() (int, bool) {
	for i, s := range r.Seats {
		if s == nil {
			return i, true
		}
	}
	return -1, false
}

// Roster returns a stable snapshot of seat occupancy for broadcast.
func (r *Room) Roster() [4]*Seat {
	return r.Seats
}
