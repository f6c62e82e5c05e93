package model

// IsInCheck reports whether the king of color c is attacked, together with
// every attacking piece (two for a double check).
func (b *Board) IsInCheck(c Color) (bool, []*Piece) {
	checkers := b.attackers(b.King(c).Position, c)
	return len(checkers) > 0, checkers
}

// attackers finds the enemies of defender able to capture on target: knights
// from the eight fixed jumps, everything else as the first piece met on each
// of the eight rays out of target.
func (b *Board) attackers(target Square, defender Color) []*Piece {
	var found []*Piece
	for _, o := range knightOffsets {
		if p := b.PieceAt(target.Add(o)); p != nil && p.Color != defender && p.Type == Knight {
			found = append(found, p)
		}
	}
	for _, dir := range kingOffsets {
		for sq := target.Add(dir); sq.InBounds(); sq = sq.Add(dir) {
			p := b.PieceAt(sq)
			if p == nil {
				continue
			}
			if p.Color != defender && p.capture.Has(target.Sub(p.Position)) {
				found = append(found, p)
			}
			break
		}
	}
	return found
}

// IsMate reports whether c is in check with no king move, no capture of a
// checking piece and no block available.
func (b *Board) IsMate(c Color) bool {
	inCheck, checkers := b.IsInCheck(c)
	if !inCheck {
		return false
	}

	king := b.King(c)
	for _, o := range king.quiet.Union(king.capture).Offsets() {
		to := king.Position.Add(o)
		if b.IsLegalMove(king, to) || b.IsLegalCapture(king, to) {
			return false
		}
	}

	friends := b.Pieces(c)
	for _, checker := range checkers {
		for _, p := range friends {
			if p != king && b.IsLegalCapture(p, checker.Position) {
				return false
			}
		}
	}

	if len(checkers) == 1 && checkers[0].Type == Knight {
		return true
	}

	for _, checker := range checkers {
		for _, sq := range between(king.Position, checker.Position) {
			for _, p := range friends {
				if p != king && b.IsLegalMove(p, sq) {
					return false
				}
			}
		}
	}
	return true
}

// IsStalemate reports whether c is not in check but has no legal move.
func (b *Board) IsStalemate(c Color) bool {
	if inCheck, _ := b.IsInCheck(c); inCheck {
		return false
	}
	return !b.HasLegalMoves(c)
}

// between lists the squares strictly between two squares sharing a row,
// column or diagonal; nil otherwise.
func between(a, z Square) []Square {
	d := z.Sub(a)
	if d.DRow != 0 && d.DCol != 0 && abs(d.DRow) != abs(d.DCol) {
		return nil
	}
	step := Offset{DRow: sign(d.DRow), DCol: sign(d.DCol)}
	var out []Square
	for sq := a.Add(step); sq != z; sq = sq.Add(step) {
		out = append(out, sq)
	}
	return out
}
