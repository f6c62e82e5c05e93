// Package bot holds the automated opponent: a fixed-depth minimax search over
// cloned boards scored by material.
package bot

import (
	"context"
	"errors"

	"github.com/benbeisheim/minimax-chess/internal/model"
)

// ErrNoMoves means the side to move is mated or stalemated; there is nothing to play.
var ErrNoMoves = errors.New("no move available")

// ChessBot is implemented by every automated opponent.
type ChessBot interface {
	BestMove(ctx context.Context, board *model.Board, side model.Color) (model.Move, error)
	Name() string
}

// PositionEvaluator scores a position from White's point of view.
type PositionEvaluator interface {
	Evaluate(board *model.Board, toMove model.Color) int
}
