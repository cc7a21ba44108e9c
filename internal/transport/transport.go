// Package transport is the session/transport adapter: it upgrades HTTP
// connections to websockets, assigns each connection an opaque client id,
// decodes inbound envelopes and dispatches them into a room.Coordinator,
// and implements room.Broadcaster to deliver outbound envelopes back out.
package transport

import (
	"log"
	"math/rand"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	uuid "github.com/satori/go.uuid"

	"github.com/minaorangina/belote/internal/protocol"
	"github.com/minaorangina/belote/internal/room"
)

// Session is one live connection: its server-generated id, declared
// nickname, and the underlying socket. writeMu serializes writes, since
// gorilla/websocket permits only one concurrent writer per connection
// (the coordinator may call Broadcast for a room from a different
// goroutine than this session's own read loop).
type Session struct {
	ID       string
	Nickname string

	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (s *Session) writeEnvelope(env protocol.Envelope) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.conn.WriteJSON(env); err != nil {
		log.Printf("transport: write to %s failed: %v", s.ID, err)
	}
}

// Handler upgrades incoming HTTP requests to websockets and owns the
// connection registry. It implements room.Broadcaster.
type Handler struct {
	coordinator *room.Coordinator
	upgrader    websocket.Upgrader

	mu       sync.RWMutex
	sessions map[string]*Session // client id -> session

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewHandler constructs a Handler. readBufferSize/writeBufferSize/
// allowedOrigin come from internal/config; rng is the root source every
// deal's own *rand.Rand (see dealRand) is seeded from.
func NewHandler(c *room.Coordinator, readBufferSize, writeBufferSize int, allowedOrigin string, rng *rand.Rand) *Handler {
	return &Handler{
		coordinator: c,
		sessions:    map[string]*Session{},
		rng:         rng,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  readBufferSize,
			WriteBufferSize: writeBufferSize,
			CheckOrigin: func(r *http.Request) bool {
				return allowedOrigin == "*" || r.Header.Get("Origin") == allowedOrigin
			},
		},
	}
}

// ServeHTTP upgrades the connection, registers a fresh session, and reads
// framed envelopes until the connection closes or errors.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("transport: upgrade failed: %v", err)
		return
	}

	sess := &Session{ID: uuid.NewV4().String(), conn: conn}
	h.mu.Lock()
	h.sessions[sess.ID] = sess
	h.mu.Unlock()

	defer h.handleDisconnect(sess)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("transport: connection %s closed unexpectedly: %v", sess.ID, err)
			}
			return
		}
		h.handleMessage(sess, raw)
	}
}

func (h *Handler) handleDisconnect(sess *Session) {
	h.mu.Lock()
	delete(h.sessions, sess.ID)
	h.mu.Unlock()
	h.coordinator.Disconnect(sess.ID)
	_ = sess.conn.Close()
}

func (h *Handler) handleMessage(sess *Session, raw []byte) {
	env, perr := protocol.Decode(raw)
	if perr != nil {
		sess.writeEnvelope(protocol.NewErrorEnvelope(perr.Error()))
		return
	}

	switch env.Type {
	case protocol.TypeJoinRoom:
		h.handleJoinRoom(sess, env)
	case protocol.TypeStartGame:
		h.handleStartGame(sess)
	case protocol.TypePlayCard:
		h.handlePlayCard(sess, env)
	case protocol.TypeChooseTrump:
		h.handleChooseTrump(sess, env)
	case protocol.TypeAnnounceBelote:
		h.handleAnnounceBelote(sess)
	default:
		sess.writeEnvelope(protocol.NewErrorEnvelope("unknown message type"))
	}
}

func (h *Handler) roomCodeOf(sess *Session) string {
	return h.coordinator.RoomOf(sess.ID)
}

// dealRand hands each StartGame call its own *rand.Rand, seeded off the
// handler's shared source under rngMu. math/rand.Rand is not safe for
// concurrent use, and two rooms can legitimately start a deal at the same
// instant from two different connections' read loops, so the shared source
// is only ever touched long enough to draw one seed.
func (h *Handler) dealRand() *rand.Rand {
	h.rngMu.Lock()
	seed := h.rng.Int63()
	h.rngMu.Unlock()
	return rand.New(rand.NewSource(seed))
}

func (h *Handler) handleJoinRoom(sess *Session, env protocol.Envelope) {
	p, perr := protocol.ParseJoinRoom(env.Payload)
	if perr != nil {
		sess.writeEnvelope(protocol.NewErrorEnvelope(perr.Error()))
		return
	}
	sess.Nickname = p.Nickname
	if rerr := h.coordinator.Join(sess.ID, p.Nickname, p.RoomCode); rerr != nil {
		sess.writeEnvelope(protocol.NewRoomErrorEnvelope(string(rerr.Code), rerr.Reason))
	}
}

func (h *Handler) handleStartGame(sess *Session) {
	roomCode := h.roomCodeOf(sess)
	if roomCode == "" {
		sess.writeEnvelope(protocol.NewRoomErrorEnvelope(string(room.CodeRoomError), "not in a room"))
		return
	}
	if err := h.coordinator.StartGame(sess.ID, roomCode, h.dealRand()); err != nil {
		sess.writeEnvelope(protocol.NewRoomErrorEnvelope(string(err.Code), err.Reason))
	}
}

func (h *Handler) handlePlayCard(sess *Session, env protocol.Envelope) {
	roomCode := h.roomCodeOf(sess)
	if roomCode == "" {
		sess.writeEnvelope(protocol.NewRoomErrorEnvelope(string(room.CodeRoomError), "not in a room"))
		return
	}
	p, perr := protocol.ParsePlayCard(env.Payload)
	if perr != nil {
		sess.writeEnvelope(protocol.NewErrorEnvelope(perr.Error()))
		return
	}
	if err := h.coordinator.Play(sess.ID, roomCode, p.Card); err != nil {
		sess.writeEnvelope(protocol.NewRoomErrorEnvelope(string(err.Code), err.Reason))
	}
}

func (h *Handler) handleChooseTrump(sess *Session, env protocol.Envelope) {
	roomCode := h.roomCodeOf(sess)
	if roomCode == "" {
		sess.writeEnvelope(protocol.NewRoomErrorEnvelope(string(room.CodeRoomError), "not in a room"))
		return
	}
	action, suit, perr := protocol.ParseChooseTrump(env.Payload)
	if perr != nil {
		sess.writeEnvelope(protocol.NewErrorEnvelope(perr.Error()))
		return
	}
	if err := h.coordinator.Bid(sess.ID, roomCode, action, suit); err != nil {
		sess.writeEnvelope(protocol.NewRoomErrorEnvelope(string(err.Code), err.Reason))
	}
}

func (h *Handler) handleAnnounceBelote(sess *Session) {
	roomCode := h.roomCodeOf(sess)
	if roomCode == "" {
		sess.writeEnvelope(protocol.NewRoomErrorEnvelope(string(room.CodeRoomError), "not in a room"))
		return
	}
	if err := h.coordinator.AnnounceBelote(sess.ID, roomCode); err != nil {
		sess.writeEnvelope(protocol.NewRoomErrorEnvelope(string(err.Code), err.Reason))
	}
}

// Broadcast implements room.Broadcaster: fan out an event to every
// currently-connected session in roomCode.
func (h *Handler) Broadcast(roomCode string, event interface{}) {
	env := h.encode(event)
	for _, sess := range h.sessionsIn(roomCode) {
		sess.writeEnvelope(env)
	}
}

func (h *Handler) sessionsIn(roomCode string) []*Session {
	ids := h.coordinator.ClientsIn(roomCode)
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*Session, 0, len(ids))
	for _, id := range ids {
		if sess, ok := h.sessions[id]; ok {
			out = append(out, sess)
		}
	}
	return out
}

func (h *Handler) encode(event interface{}) protocol.Envelope {
	switch e := event.(type) {
	case room.RoomUpdate:
		return protocol.NewRoomUpdate(e)
	case room.GameUpdate:
		return protocol.NewGameState(e)
	default:
		return protocol.NewErrorEnvelope("internal error: unrecognized event")
	}
}
