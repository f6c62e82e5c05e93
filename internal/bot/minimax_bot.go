package bot

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/benbeisheim/minimax-chess/internal/model"
	"github.com/gofiber/fiber/v2/log"
)

// DefaultDepth is two plies: the root move and the opponent's reply.
const DefaultDepth = 2

// MinimaxBot searches every legal line to a fixed depth without pruning. It
// keeps no per-search state, so one value can serve many games at once.
type MinimaxBot struct {
	Depth     int
	Evaluator PositionEvaluator
}

func NewMinimaxBot(depth int) *MinimaxBot {
	if depth < 1 {
		depth = DefaultDepth
	}
	return &MinimaxBot{
		Depth:     depth,
		Evaluator: MaterialEvaluator{},
	}
}

func (b *MinimaxBot) Name() string {
	return fmt.Sprintf("Minimax Bot (depth %d)", b.Depth)
}

type search struct {
	ctx       context.Context
	evaluator PositionEvaluator
	nodes     int
}

// BestMove plays each root move on its own clone and keeps the one with the
// best minimax value for side: highest for White, lowest for Black. Moves are
// tried in GenerateMoves order and only a strictly better value replaces the
// current choice, so ties always resolve to the lowest origin square, then
// the lowest destination.
func (b *MinimaxBot) BestMove(ctx context.Context, board *model.Board, side model.Color) (model.Move, error) {
	start := time.Now()
	moves := board.GenerateMoves(side)
	if len(moves) == 0 {
		return model.Move{}, ErrNoMoves
	}

	s := &search{ctx: ctx, evaluator: b.Evaluator}
	best := moves[0]
	bestScore := 0
	for i, move := range moves {
		child := board.Clone()
		child.Execute(child.PieceAt(move.From), move.To)
		score, err := s.minimax(child, b.Depth-1, side.Other())
		if err != nil {
			return model.Move{}, err
		}
		if i == 0 || better(side, score, bestScore) {
			best, bestScore = move, score
		}
	}

	log.Debugf("bot: %s plays %s score=%d nodes=%d in %s", side, best, bestScore, s.nodes, time.Since(start))
	return best, nil
}

// Minimax returns the value of board with toMove to play, searched depth plies deep.
func (b *MinimaxBot) Minimax(ctx context.Context, board *model.Board, depth int, toMove model.Color) (int, error) {
	s := &search{ctx: ctx, evaluator: b.Evaluator}
	return s.minimax(board, depth, toMove)
}

func (s *search) minimax(board *model.Board, depth int, toMove model.Color) (int, error) {
	if err := s.ctx.Err(); err != nil {
		return 0, err
	}
	s.nodes++

	if depth <= 0 {
		return s.evaluator.Evaluate(board, toMove), nil
	}
	moves := board.GenerateMoves(toMove)
	if len(moves) == 0 {
		return s.evaluator.Evaluate(board, toMove), nil
	}

	best := math.MaxInt
	if toMove == model.White {
		best = math.MinInt
	}
	for _, move := range moves {
		child := board.Clone()
		child.Execute(child.PieceAt(move.From), move.To)
		score, err := s.minimax(child, depth-1, toMove.Other())
		if err != nil {
			return 0, err
		}
		if better(toMove, score, best) {
			best = score
		}
	}
	return best, nil
}

func better(side model.Color, score, than int) bool {
	if side == model.White {
		return score > than
	}
	return score < than
}
