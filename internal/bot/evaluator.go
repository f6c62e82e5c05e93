package bot

import "github.com/benbeisheim/minimax-chess/internal/model"

const (
	MateBonus  = 50
	CheckBonus = 10
)

// MaterialEvaluator scores White's material minus Black's, nudged against the
// side to move when it is in check and swamped when it is mated. A stalemate
// scores zero.
type MaterialEvaluator struct{}

func (MaterialEvaluator) Evaluate(board *model.Board, toMove model.Color) int {
	score := board.Material(model.White) - board.Material(model.Black)

	// bonuses go to the side that is not to move
	against := 1
	if toMove == model.White {
		against = -1
	}

	if inCheck, _ := board.IsInCheck(toMove); inCheck {
		if board.IsMate(toMove) {
			return score + against*MateBonus
		}
		return score + against*CheckBonus
	}
	if !board.HasLegalMoves(toMove) {
		return 0
	}
	return score
}
