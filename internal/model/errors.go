package model

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrNoPiece     = errors.New("no piece at from square")
	ErrOutOfBounds = errors.New("square out of bounds")
	ErrNotYourTurn = errors.New("not your turn")
	ErrGameOver    = errors.New("game is over")
	ErrGameFull    = errors.New("game is full")
	ErrNotInGame   = errors.New("player not in game")
	ErrStaleMove   = errors.New("position changed during search")
)

// InvariantError is the panic value for board states the engine can never
// legitimately produce: grid and registry disagreeing, a missing king, or a
// piece handed to a board it does not live on.
type InvariantError struct {
	msg string
}

func (e *InvariantError) Error() string {
	return "board invariant violated: " + e.msg
}

func invariantf(format string, args ...any) *InvariantError {
	return &InvariantError{msg: fmt.Sprintf(format, args...)}
}
