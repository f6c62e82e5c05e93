package model

import (
	"fmt"
	"strings"
)

// BoardFromDiagram builds a board from eight rows of eight characters in the
// format Board.String prints: "PNBRQK" for White, lower case for Black, '.'
// for empty, row 0 first. Pawns on their start row, kings on their home
// square and rooks on a home corner are unmoved; every other piece is marked
// as having moved.
func BoardFromDiagram(rows ...string) (*Board, error) {
	if len(rows) != 8 {
		return nil, fmt.Errorf("diagram has %d rows, want 8", len(rows))
	}
	board := NewEmptyBoard()
	for row, line := range rows {
		line = strings.TrimSpace(line)
		if len(line) != 8 {
			return nil, fmt.Errorf("diagram row %d has %d squares, want 8", row, len(line))
		}
		for col := 0; col < 8; col++ {
			ch := line[col]
			if ch == '.' {
				continue
			}
			color := White
			if ch >= 'a' && ch <= 'z' {
				color = Black
				ch -= 'a' - 'A'
			}
			t := strings.IndexByte("PNBRQK", ch)
			if t < 0 {
				return nil, fmt.Errorf("diagram row %d col %d: unknown piece %q", row, col, line[col])
			}
			p := NewPiece(PieceType(t), color, Square{Row: row, Col: col})
			if !onHomeSquare(p) {
				p.markMoved()
			}
			board.Place(p)
		}
	}
	if err := board.Validate(); err != nil {
		return nil, err
	}
	return board, nil
}

func onHomeSquare(p *Piece) bool {
	homeRow, pawnRow := 7, 6
	if p.Color == Black {
		homeRow, pawnRow = 0, 1
	}
	switch p.Type {
	case Pawn:
		return p.Position.Row == pawnRow
	case King:
		return p.Position == Square{Row: homeRow, Col: 4}
	case Rook:
		return p.Position.Row == homeRow && (p.Position.Col == 0 || p.Position.Col == 7)
	}
	return false
}

// MustBoardFromDiagram panics on a malformed diagram.
func MustBoardFromDiagram(rows ...string) *Board {
	board, err := BoardFromDiagram(rows...)
	if err != nil {
		panic(err)
	}
	return board
}
