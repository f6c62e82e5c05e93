package model

import (
	"fmt"
	"strings"
)

type Color int8

const (
	White Color = iota
	Black
)

const numColors = 2

func (c Color) Other() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, ok := ParseColor(string(text))
	if !ok {
		return fmt.Errorf("unknown color %q", text)
	}
	*c = parsed
	return nil
}

// ParseColor accepts "white" or "black".
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white":
		return White, true
	case "black":
		return Black, true
	}
	return White, false
}

type PieceType int8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

const numPieceTypes = 6

var pieceTypeNames = [numPieceTypes]string{"pawn", "knight", "bishop", "rook", "queen", "king"}

// material values; the king's is large so that losing it outweighs everything else
var pieceValues = [numPieceTypes]int{1, 3, 3, 5, 9, 100}

func (p PieceType) String() string {
	if p < 0 || int(p) >= numPieceTypes {
		return fmt.Sprintf("PieceType(%d)", int8(p))
	}
	return pieceTypeNames[p]
}

func (p PieceType) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *PieceType) UnmarshalText(text []byte) error {
	for i, name := range pieceTypeNames {
		if name == string(text) {
			*p = PieceType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown piece type %q", text)
}

// symbol is the diagram letter for the piece type, upper case.
func (p PieceType) symbol() byte {
	return "PNBRQK"[p]
}

// Square is a 0-indexed (row, col) pair. Row 0 is Black's back rank, col 0 is the a-file.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (s Square) InBounds() bool {
	return s.Row >= 0 && s.Row < 8 && s.Col >= 0 && s.Col < 8
}

func (s Square) Add(o Offset) Square {
	return Square{Row: s.Row + o.DRow, Col: s.Col + o.DCol}
}

// Sub returns the displacement that leads from o to s.
func (s Square) Sub(o Square) Offset {
	return Offset{DRow: s.Row - o.Row, DCol: s.Col - o.Col}
}

// Compare orders squares row-major.
func (s Square) Compare(o Square) int {
	if s.Row != o.Row {
		return s.Row - o.Row
	}
	return s.Col - o.Col
}

func (s Square) String() string {
	if !s.InBounds() {
		return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
	}
	return fmt.Sprintf("%c%d", 'a'+s.Col, 8-s.Row)
}

type Piece struct {
	Type     PieceType `json:"type"`
	Color    Color     `json:"color"`
	Position Square    `json:"position"`
	HasMoved bool      `json:"hasMoved"`

	quiet   OffsetSet
	capture OffsetSet
}

// NewPiece builds an unmoved piece with its offset sets selected for its type and color.
func NewPiece(t PieceType, c Color, pos Square) *Piece {
	return &Piece{
		Type:     t,
		Color:    c,
		Position: pos,
		quiet:    quietOffsets(t, c, false),
		capture:  captureOffsets(t, c),
	}
}

func (p *Piece) QuietOffsets() OffsetSet   { return p.quiet }
func (p *Piece) CaptureOffsets() OffsetSet { return p.capture }
func (p *Piece) Value() int                { return pieceValues[p.Type] }

// markMoved flips HasMoved once and drops the first-move-only offsets.
func (p *Piece) markMoved() {
	if p.HasMoved {
		return
	}
	p.HasMoved = true
	p.quiet = quietOffsets(p.Type, p.Color, true)
}

func (p *Piece) String() string {
	return fmt.Sprintf("%s %s@%s", p.Color, p.Type, p.Position)
}

// Board is the 8x8 grid together with the per-color, per-type registry of live
// pieces. Both views are only ever mutated through Place, Remove and Relocate.
type Board struct {
	grid   [8][8]*Piece
	pieces [numColors][numPieceTypes][]*Piece
}

func NewEmptyBoard() *Board {
	return &Board{}
}

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns the standard starting position, Black on rows 0-1 and White on rows 6-7.
func NewBoard() *Board {
	board := NewEmptyBoard()
	for col := 0; col < 8; col++ {
		board.Place(NewPiece(backRank[col], Black, Square{Row: 0, Col: col}))
		board.Place(NewPiece(Pawn, Black, Square{Row: 1, Col: col}))
		board.Place(NewPiece(Pawn, White, Square{Row: 6, Col: col}))
		board.Place(NewPiece(backRank[col], White, Square{Row: 7, Col: col}))
	}
	return board
}

// PieceAt returns nil for empty or out-of-bounds squares.
func (b *Board) PieceAt(sq Square) *Piece {
	if !sq.InBounds() {
		return nil
	}
	return b.grid[sq.Row][sq.Col]
}

func (b *Board) PiecesOf(c Color, t PieceType) []*Piece {
	return append([]*Piece(nil), b.pieces[c][t]...)
}

// Pieces lists every live piece of a color, pawns first and the king last.
func (b *Board) Pieces(c Color) []*Piece {
	var out []*Piece
	for t := range b.pieces[c] {
		out = append(out, b.pieces[c][t]...)
	}
	return out
}

// King panics unless exactly one king of the color is registered.
func (b *Board) King(c Color) *Piece {
	kings := b.pieces[c][King]
	if len(kings) != 1 {
		panic(invariantf("%s has %d kings", c, len(kings)))
	}
	return kings[0]
}

func (b *Board) Material(c Color) int {
	total := 0
	for t, set := range b.pieces[c] {
		total += pieceValues[t] * len(set)
	}
	return total
}

func (b *Board) Place(p *Piece) {
	if !p.Position.InBounds() {
		panic(invariantf("place %s: out of bounds", p))
	}
	if occupant := b.grid[p.Position.Row][p.Position.Col]; occupant != nil {
		panic(invariantf("place %s: square held by %s", p, occupant))
	}
	b.grid[p.Position.Row][p.Position.Col] = p
	b.pieces[p.Color][p.Type] = append(b.pieces[p.Color][p.Type], p)
}

func (b *Board) Remove(p *Piece) {
	b.mustOwn(p)
	b.grid[p.Position.Row][p.Position.Col] = nil
	set := b.pieces[p.Color][p.Type]
	for i, candidate := range set {
		if candidate == p {
			b.pieces[p.Color][p.Type] = append(set[:i:i], set[i+1:]...)
			return
		}
	}
	panic(invariantf("remove %s: missing from registry", p))
}

// Relocate moves p to an empty square. It does not touch HasMoved.
func (b *Board) Relocate(p *Piece, to Square) {
	b.mustOwn(p)
	if !to.InBounds() {
		panic(invariantf("relocate %s to %s: out of bounds", p, to))
	}
	if occupant := b.grid[to.Row][to.Col]; occupant != nil {
		panic(invariantf("relocate %s to %s: square held by %s", p, to, occupant))
	}
	b.grid[p.Position.Row][p.Position.Col] = nil
	p.Position = to
	b.grid[to.Row][to.Col] = p
}

// Clone deep-copies every piece and rebuilds grid and registry from the copies,
// so nothing is shared between the original and the clone.
func (b *Board) Clone() *Board {
	clone := &Board{}
	for c := range b.pieces {
		for t, set := range b.pieces[c] {
			if len(set) == 0 {
				continue
			}
			copies := make([]*Piece, len(set))
			for i, p := range set {
				cp := *p
				copies[i] = &cp
				clone.grid[cp.Position.Row][cp.Position.Col] = &cp
			}
			clone.pieces[c][t] = copies
		}
	}
	return clone
}

// Validate reports the first disagreement between grid and registry.
func (b *Board) Validate() error {
	seen := 0
	for c := range b.pieces {
		for t, set := range b.pieces[c] {
			for _, p := range set {
				if p.Color != Color(c) || p.Type != PieceType(t) {
					return fmt.Errorf("%s registered under %s %s", p, Color(c), PieceType(t))
				}
				if !p.Position.InBounds() || b.grid[p.Position.Row][p.Position.Col] != p {
					return fmt.Errorf("%s not on its grid square", p)
				}
				seen++
			}
		}
		if n := len(b.pieces[c][King]); n != 1 {
			return fmt.Errorf("%s has %d kings", Color(c), n)
		}
	}
	onGrid := 0
	for row := range b.grid {
		for col, p := range b.grid[row] {
			if p == nil {
				continue
			}
			if p.Position != (Square{Row: row, Col: col}) {
				return fmt.Errorf("%s stored at %s", p, Square{Row: row, Col: col})
			}
			onGrid++
		}
	}
	if onGrid != seen {
		return fmt.Errorf("grid holds %d pieces, registry %d", onGrid, seen)
	}
	return nil
}

func (b *Board) mustOwn(p *Piece) {
	if p == nil || !p.Position.InBounds() || b.grid[p.Position.Row][p.Position.Col] != p {
		panic(invariantf("piece %v does not belong to this board", p))
	}
}

// String draws the board row 0 first; upper case is White, '.' is empty.
func (b *Board) String() string {
	var sb strings.Builder
	for row := range b.grid {
		for _, p := range b.grid[row] {
			switch {
			case p == nil:
				sb.WriteByte('.')
			case p.Color == White:
				sb.WriteByte(p.Type.symbol())
			default:
				sb.WriteByte(p.Type.symbol() + 'a' - 'A')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

type BoardState struct {
	Board             [8][8]*Piece `json:"board"`
	BlackKingPosition Square       `json:"blackKingPosition"`
	WhiteKingPosition Square       `json:"whiteKingPosition"`
}

// Snapshot copies the board into a value safe to hand to other goroutines.
func (b *Board) Snapshot() *BoardState {
	state := &BoardState{
		WhiteKingPosition: b.King(White).Position,
		BlackKingPosition: b.King(Black).Position,
	}
	for row := range b.grid {
		for col, p := range b.grid[row] {
			if p != nil {
				cp := *p
				state.Board[row][col] = &cp
			}
		}
	}
	return state
}
