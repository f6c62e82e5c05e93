package model

import "math/bits"

// Offset is a (Δrow, Δcol) displacement.
type Offset struct {
	DRow int `json:"dRow"`
	DCol int `json:"dCol"`
}

const offsetSpan = 15 // -7..7 on each axis

// OffsetSet is a bitset over every displacement that fits on the board.
// It is a plain value, so copying a Piece copies its sets.
type OffsetSet [4]uint64

func offsetIndex(o Offset) (int, bool) {
	if o.DRow < -7 || o.DRow > 7 || o.DCol < -7 || o.DCol > 7 {
		return 0, false
	}
	return (o.DRow+7)*offsetSpan + o.DCol + 7, true
}

func (s *OffsetSet) Add(o Offset) {
	if i, ok := offsetIndex(o); ok {
		s[i/64] |= 1 << (i % 64)
	}
}

func (s *OffsetSet) Remove(o Offset) {
	if i, ok := offsetIndex(o); ok {
		s[i/64] &^= 1 << (i % 64)
	}
}

func (s OffsetSet) Has(o Offset) bool {
	i, ok := offsetIndex(o)
	return ok && s[i/64]&(1<<(i%64)) != 0
}

func (s OffsetSet) Union(t OffsetSet) OffsetSet {
	for i := range s {
		s[i] |= t[i]
	}
	return s
}

func (s OffsetSet) Len() int {
	n := 0
	for _, w := range s {
		n += bits.OnesCount64(w)
	}
	return n
}

// Offsets lists the members ordered by Δrow, then Δcol.
func (s OffsetSet) Offsets() []Offset {
	out := make([]Offset, 0, s.Len())
	for w, word := range s {
		for word != 0 {
			i := w*64 + bits.TrailingZeros64(word)
			word &= word - 1
			out = append(out, Offset{DRow: i/offsetSpan - 7, DCol: i%offsetSpan - 7})
		}
	}
	return out
}

var (
	knightOffsets = []Offset{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = []Offset{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	straightDirs  = []Offset{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	diagonalDirs  = []Offset{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	castleOffsets = []Offset{{0, -2}, {0, 2}}
)

func setOf(offsets ...[]Offset) OffsetSet {
	var s OffsetSet
	for _, group := range offsets {
		for _, o := range group {
			s.Add(o)
		}
	}
	return s
}

// rays enumerates every scaled step along each direction.
func rays(dirs ...[]Offset) OffsetSet {
	var s OffsetSet
	for _, group := range dirs {
		for _, d := range group {
			for i := 1; i < 8; i++ {
				s.Add(Offset{DRow: d.DRow * i, DCol: d.DCol * i})
			}
		}
	}
	return s
}

// forward is the row direction a pawn of the color advances in.
func forward(c Color) int {
	if c == White {
		return -1
	}
	return 1
}

var (
	knightSet = setOf(knightOffsets)
	kingSet   = setOf(kingOffsets)
	bishopSet = rays(diagonalDirs)
	rookSet   = rays(straightDirs)
	queenSet  = rays(straightDirs, diagonalDirs)
)

func quietOffsets(t PieceType, c Color, moved bool) OffsetSet {
	switch t {
	case Pawn:
		dir := forward(c)
		s := setOf([]Offset{{DRow: dir}})
		if !moved {
			s.Add(Offset{DRow: 2 * dir})
		}
		return s
	case King:
		if moved {
			return kingSet
		}
		return kingSet.Union(setOf(castleOffsets))
	}
	return captureOffsets(t, c)
}

// captureOffsets differs from the quiet set only for pawns and for the
// castling offsets of an unmoved king, which never capture.
func captureOffsets(t PieceType, c Color) OffsetSet {
	switch t {
	case Pawn:
		dir := forward(c)
		return setOf([]Offset{{DRow: dir, DCol: -1}, {DRow: dir, DCol: 1}})
	case Knight:
		return knightSet
	case Bishop:
		return bishopSet
	case Rook:
		return rookSet
	case Queen:
		return queenSet
	case King:
		return kingSet
	}
	panic(invariantf("unknown piece type %d", t))
}
