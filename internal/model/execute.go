package model

import (
	"fmt"
	"slices"
)

// Execute performs the move without any legality check: it removes a captured
// piece from grid and registry, relocates the mover, marks it moved, and brings
// the rook along when a king steps two files.
func (b *Board) Execute(p *Piece, to Square) Ply {
	b.mustOwn(p)
	ply := Ply{Piece: p.Type, Color: p.Color, From: p.Position, To: to}
	if captured := b.PieceAt(to); captured != nil {
		if captured.Color == p.Color {
			panic(invariantf("%s captures own %s", p, captured))
		}
		b.Remove(captured)
		ply.CapturedPiece = captured
	}
	b.Relocate(p, to)
	p.markMoved()
	if p.Type == King && abs(to.Col-ply.From.Col) == 2 {
		ply.CastleRookMove = b.castleRook(ply.From, to)
	}
	return ply
}

func (b *Board) castleRook(from, to Square) *CastleRookMove {
	rookCol, dir := 0, -1
	if to.Col > from.Col {
		rookCol, dir = 7, 1
	}
	rookSq := Square{Row: from.Row, Col: rookCol}
	rook := b.PieceAt(rookSq)
	if rook == nil || rook.Type != Rook {
		panic(invariantf("castle from %s: no rook on %s", from, rookSq))
	}
	dest := Square{Row: from.Row, Col: from.Col + dir}
	b.Relocate(rook, dest)
	rook.markMoved()
	return &CastleRookMove{From: rookSq, To: dest}
}

// ApplyMove validates and executes a move on the live board, then reports the
// status of the opponent.
func (b *Board) ApplyMove(p *Piece, to Square) (Outcome, error) {
	if p == nil {
		return Outcome{}, ErrNoPiece
	}
	if !to.InBounds() {
		return Outcome{}, fmt.Errorf("%w: %s", ErrOutOfBounds, to)
	}
	if !b.IsLegalMove(p, to) && !b.IsLegalCapture(p, to) {
		return Outcome{}, fmt.Errorf("%w: %s to %s", ErrIllegalMove, p, to)
	}

	ply := b.Execute(p, to)
	opponent := p.Color.Other()
	inCheck, _ := b.IsInCheck(opponent)
	out := Outcome{Ply: ply, Captured: ply.CapturedPiece, IsCheck: inCheck}
	if inCheck {
		out.IsMate = b.IsMate(opponent)
	} else {
		out.IsStalemate = !b.HasLegalMoves(opponent)
	}
	return out, nil
}

// GenerateMoves lists every legal move of color c ordered by origin square,
// then destination square.
func (b *Board) GenerateMoves(c Color) []Move {
	var moves []Move
	for _, p := range b.Pieces(c) {
		moves = b.appendPieceMoves(moves, p, false)
	}
	slices.SortFunc(moves, Move.Compare)
	return moves
}

// HasLegalMoves stops at the first legal move found.
func (b *Board) HasLegalMoves(c Color) bool {
	for _, p := range b.Pieces(c) {
		if len(b.appendPieceMoves(nil, p, true)) > 0 {
			return true
		}
	}
	return false
}

func (b *Board) appendPieceMoves(moves []Move, p *Piece, firstOnly bool) []Move {
	for _, o := range p.quiet.Union(p.capture).Offsets() {
		to := p.Position.Add(o)
		if !to.InBounds() {
			continue
		}
		if b.IsLegalMove(p, to) || b.IsLegalCapture(p, to) {
			moves = append(moves, Move{Piece: p, From: p.Position, To: to})
			if firstOnly {
				return moves
			}
		}
	}
	return moves
}
