package model

// Move is a generated (piece, destination) pair. Piece points into the board
// the move was generated on.
type Move struct {
	Piece *Piece `json:"-"`
	From  Square `json:"from"`
	To    Square `json:"to"`
}

// Compare orders moves by origin, then destination.
func (m Move) Compare(o Move) int {
	if c := m.From.Compare(o.From); c != 0 {
		return c
	}
	return m.To.Compare(o.To)
}

func (m Move) String() string {
	return m.From.String() + "-" + m.To.String()
}

type CastleRookMove struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

// Ply records one executed move.
type Ply struct {
	Piece          PieceType       `json:"piece"`
	Color          Color           `json:"color"`
	From           Square          `json:"from"`
	To             Square          `json:"to"`
	CapturedPiece  *Piece          `json:"capturedPiece"`
	CastleRookMove *CastleRookMove `json:"castleRookMove"`
}

// MovePair is one full move of the history: White's ply and Black's reply.
type MovePair struct {
	WhitePly *Ply `json:"whitePly"`
	BlackPly *Ply `json:"blackPly"`
}

type SimpleMove struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

// Outcome is what ApplyMove reports back: the ply, the captured piece if any,
// and the status of the side now to move.
type Outcome struct {
	Ply         Ply    `json:"ply"`
	Captured    *Piece `json:"captured"`
	IsCheck     bool   `json:"isCheck"`
	IsMate      bool   `json:"isMate"`
	IsStalemate bool   `json:"isStalemate"`
}
