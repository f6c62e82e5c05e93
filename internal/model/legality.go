package model

// IsLegalMove reports whether p may make a quiet move to the empty square to.
func (b *Board) IsLegalMove(p *Piece, to Square) bool {
	return b.isLegal(p, to, false)
}

// IsLegalCapture reports whether p may capture the enemy piece standing on to.
func (b *Board) IsLegalCapture(p *Piece, to Square) bool {
	return b.isLegal(p, to, true)
}

func (b *Board) isLegal(p *Piece, to Square, capture bool) bool {
	b.mustOwn(p)
	if !to.InBounds() {
		return false
	}

	occupant := b.PieceAt(to)
	offsets := p.quiet
	if capture {
		if occupant == nil || occupant.Color == p.Color {
			return false
		}
		offsets = p.capture
	} else if occupant != nil {
		return false
	}

	delta := to.Sub(p.Position)
	if !offsets.Has(delta) {
		return false
	}
	if p.Type != Knight && !b.pathClear(p.Position, to) {
		return false
	}
	if p.Type == King && !capture && abs(delta.DCol) == 2 && !b.canCastle(p, delta.DCol > 0) {
		return false
	}
	return !b.leavesKingInCheck(p, to)
}

// pathClear walks the unit steps strictly between from and to. Any occupant
// blocks, enemy or not: only the piece on the destination itself can be captured.
func (b *Board) pathClear(from, to Square) bool {
	step := Offset{DRow: sign(to.Row - from.Row), DCol: sign(to.Col - from.Col)}
	for sq := from.Add(step); sq != to; sq = sq.Add(step) {
		if b.PieceAt(sq) != nil {
			return false
		}
	}
	return true
}

// canCastle checks everything about a castle except the landing square, which
// the ordinary king-safety test covers: an unmoved rook of the king's color on
// the home corner, an empty corridor, no current check, and an unattacked
// crossing square.
func (b *Board) canCastle(king *Piece, kingside bool) bool {
	if king.HasMoved {
		return false
	}
	rookCol, dir := 0, -1
	if kingside {
		rookCol, dir = 7, 1
	}
	rook := b.PieceAt(Square{Row: king.Position.Row, Col: rookCol})
	if rook == nil || rook.Type != Rook || rook.Color != king.Color || rook.HasMoved {
		return false
	}
	if !b.pathClear(king.Position, rook.Position) {
		return false
	}
	if inCheck, _ := b.IsInCheck(king.Color); inCheck {
		return false
	}
	return !b.leavesKingInCheck(king, king.Position.Add(Offset{DCol: dir}))
}

// leavesKingInCheck plays the move on a scratch clone and asks whether the
// mover's own king is attacked afterwards.
func (b *Board) leavesKingInCheck(p *Piece, to Square) bool {
	scratch := b.Clone()
	scratch.Execute(scratch.PieceAt(p.Position), to)
	inCheck, _ := scratch.IsInCheck(p.Color)
	return inCheck
}

// LegalMoves returns the quiet destinations of p in row-major order.
func (b *Board) LegalMoves(p *Piece) []Square {
	var out []Square
	for _, o := range p.quiet.Offsets() {
		if to := p.Position.Add(o); b.IsLegalMove(p, to) {
			out = append(out, to)
		}
	}
	return out
}

// LegalCaptures returns the capture destinations of p in row-major order.
func (b *Board) LegalCaptures(p *Piece) []Square {
	var out []Square
	for _, o := range p.capture.Offsets() {
		if to := p.Position.Add(o); b.IsLegalCapture(p, to) {
			out = append(out, to)
		}
	}
	return out
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
