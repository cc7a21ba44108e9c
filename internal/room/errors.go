package room

import (
	"fmt"

	"github.com/minaorangina/belote/internal/engine"
)

// Code is the room/session slice of the error taxonomy. The engine's own
// Code values (phase/turn/rule/bidding/state) pass through unchanged;
// this package adds the transport-adjacent ones.
type Code string

const (
	CodeProtocolError Code = "protocol_error"
	CodeRoomError     Code = "room_error"
	CodeSeatError     Code = "seat_error"
	CodePhaseError    Code = Code(engine.CodePhaseError)
	CodeTurnError     Code = Code(engine.CodeTurnError)
	CodeRuleError     Code = Code(engine.CodeRuleError)
	CodeBiddingError  Code = Code(engine.CodeBiddingError)
	CodeStateError    Code = Code(engine.CodeStateError)
)

// Error is the typed rejection returned to the room coordinator's caller.
// Every rejected command is reported synchronously to its sender only; the
// room and its other clients are unaffected.
type Error struct {
	Code   Code
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Reason)
}

func newError(code Code, reason string) *Error {
	return &Error{Code: code, Reason: reason}
}

func fromEngineError(err *engine.Error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: Code(err.Code), Reason: err.Reason}
}
