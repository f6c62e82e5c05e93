package model

import "testing"

func TestNewBoardLayout(t *testing.T) {
	b := NewBoard()
	if err := b.Validate(); err != nil {
		t.Fatalf("start position invalid: %v", err)
	}

	tests := []struct {
		square string
		t      PieceType
		c      Color
	}{
		{"e1", King, White},
		{"d1", Queen, White},
		{"a1", Rook, White},
		{"g1", Knight, White},
		{"c1", Bishop, White},
		{"e8", King, Black},
		{"d8", Queen, Black},
		{"h7", Pawn, Black},
		{"a2", Pawn, White},
	}
	for _, tt := range tests {
		p := b.PieceAt(sq(tt.square))
		if p == nil || p.Type != tt.t || p.Color != tt.c {
			t.Fatalf("%s: expected %s %s, got %v", tt.square, tt.c, tt.t, p)
		}
		if p.HasMoved {
			t.Fatalf("%s: expected unmoved piece", tt.square)
		}
	}

	for _, c := range []Color{White, Black} {
		if n := len(b.Pieces(c)); n != 16 {
			t.Fatalf("%s: expected 16 pieces, got %d", c, n)
		}
		if n := len(b.PiecesOf(c, Pawn)); n != 8 {
			t.Fatalf("%s: expected 8 pawns, got %d", c, n)
		}
	}
	if b.Material(White) != b.Material(Black) {
		t.Fatalf("material should be level at the start")
	}
}

func TestOffsetSets(t *testing.T) {
	b := NewBoard()
	tests := []struct {
		square  string
		quiet   int
		capture int
	}{
		{"a1", 28, 28},
		{"c1", 28, 28},
		{"d1", 56, 56},
		{"b1", 8, 8},
		{"e1", 10, 8},
		{"e2", 2, 2},
	}
	for _, tt := range tests {
		p := mustPiece(t, b, tt.square)
		if got := p.QuietOffsets().Len(); got != tt.quiet {
			t.Fatalf("%s: expected %d quiet offsets, got %d", tt.square, tt.quiet, got)
		}
		if got := p.CaptureOffsets().Len(); got != tt.capture {
			t.Fatalf("%s: expected %d capture offsets, got %d", tt.square, tt.capture, got)
		}
	}

	whitePawn := mustPiece(t, b, "e2")
	if !whitePawn.QuietOffsets().Has(Offset{DRow: -2}) || whitePawn.QuietOffsets().Has(Offset{DRow: 1}) {
		t.Fatalf("white pawn should advance toward row 0")
	}
	blackPawn := mustPiece(t, b, "e7")
	if !blackPawn.CaptureOffsets().Has(Offset{DRow: 1, DCol: -1}) {
		t.Fatalf("black pawn should capture toward row 7")
	}
	if mustPiece(t, b, "e1").CaptureOffsets().Has(Offset{DCol: 2}) {
		t.Fatalf("castling offsets must not be capture offsets")
	}
}

func TestFirstMoveDropsOffsets(t *testing.T) {
	b := NewBoard()
	pawn := mustPiece(t, b, "e2")
	play(t, b, "e2", "e3")
	if !pawn.HasMoved {
		t.Fatalf("expected pawn marked as moved")
	}
	if pawn.QuietOffsets().Has(Offset{DRow: -2}) {
		t.Fatalf("double step should be gone after the first move")
	}
	if b.IsLegalMove(pawn, sq("e5")) {
		t.Fatalf("moved pawn must not double step")
	}

	play(t, b, "e7", "e6")
	king := mustPiece(t, b, "e1")
	play(t, b, "e1", "e2")
	if king.QuietOffsets().Has(Offset{DCol: 2}) || king.QuietOffsets().Has(Offset{DCol: -2}) {
		t.Fatalf("castling offsets should be gone after the king moves")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := NewBoard()
	clone := b.Clone()
	if err := clone.Validate(); err != nil {
		t.Fatalf("clone invalid: %v", err)
	}
	if clone.PieceAt(sq("e2")) == b.PieceAt(sq("e2")) {
		t.Fatalf("clone shares piece pointers with the original")
	}

	clone.Execute(clone.PieceAt(sq("e2")), sq("e4"))
	clone.Execute(clone.PieceAt(sq("d7")), sq("d5"))
	clone.Execute(clone.PieceAt(sq("e4")), sq("d5"))

	if p := b.PieceAt(sq("e2")); p == nil || p.HasMoved {
		t.Fatalf("original e2 pawn disturbed: %v", p)
	}
	if b.PieceAt(sq("d5")) != nil || b.PieceAt(sq("e4")) != nil {
		t.Fatalf("original grid changed:\n%s", b)
	}
	if n := len(b.PiecesOf(Black, Pawn)); n != 8 {
		t.Fatalf("original registry lost a pawn: %d", n)
	}
	if n := len(clone.PiecesOf(Black, Pawn)); n != 7 {
		t.Fatalf("clone registry should have 7 black pawns, got %d", n)
	}
	if err := b.Validate(); err != nil {
		t.Fatalf("original invalid: %v", err)
	}
	if err := clone.Validate(); err != nil {
		t.Fatalf("clone invalid: %v", err)
	}
}

func TestMutationsKeepGridAndRegistryInSync(t *testing.T) {
	b := NewBoard()
	knight := mustPiece(t, b, "g1")
	b.Relocate(knight, sq("f3"))
	if b.PieceAt(sq("g1")) != nil || b.PieceAt(sq("f3")) != knight {
		t.Fatalf("relocate did not move the grid entry")
	}

	pawn := mustPiece(t, b, "a7")
	b.Remove(pawn)
	if b.PieceAt(sq("a7")) != nil {
		t.Fatalf("remove left the piece on the grid")
	}
	for _, p := range b.PiecesOf(Black, Pawn) {
		if p == pawn {
			t.Fatalf("remove left the piece in the registry")
		}
	}

	b.Place(NewPiece(Queen, White, sq("d4")))
	if n := len(b.PiecesOf(White, Queen)); n != 2 {
		t.Fatalf("expected 2 white queens, got %d", n)
	}
	if err := b.Validate(); err != nil {
		t.Fatalf("board invalid: %v", err)
	}
}

func TestInvariantViolationsPanic(t *testing.T) {
	b := NewBoard()
	expectInvariantPanic(t, func() { b.Place(NewPiece(Rook, White, sq("e2"))) })
	expectInvariantPanic(t, func() { b.Relocate(mustPiece(t, b, "e2"), sq("e7")) })
	expectInvariantPanic(t, func() { b.Remove(NewPiece(Pawn, White, sq("e4"))) })

	other := NewBoard()
	expectInvariantPanic(t, func() { b.IsLegalMove(other.PieceAt(sq("e2")), sq("e4")) })

	noKing := NewEmptyBoard()
	noKing.Place(NewPiece(King, Black, sq("e8")))
	expectInvariantPanic(t, func() { noKing.IsInCheck(White) })
}

func TestDiagramRoundTrip(t *testing.T) {
	rows := []string{
		"rnbqkbnr",
		"pppppppp",
		"........",
		"........",
		"........",
		"........",
		"PPPPPPPP",
		"RNBQKBNR",
	}
	b := MustBoardFromDiagram(rows...)
	want := ""
	for _, r := range rows {
		want += r + "\n"
	}
	if b.String() != want || NewBoard().String() != want {
		t.Fatalf("diagram mismatch:\n%s", b)
	}
	if !b.PieceAt(sq("b1")).HasMoved || b.PieceAt(sq("a1")).HasMoved || b.PieceAt(sq("e2")).HasMoved {
		t.Fatalf("diagram should leave only pawns, kings and corner rooks unmoved")
	}

	if _, err := BoardFromDiagram("........"); err == nil {
		t.Fatalf("expected error for short diagram")
	}
	if _, err := BoardFromDiagram(
		"....x...", "........", "........", "........",
		"........", "........", "........", "....K...",
	); err == nil {
		t.Fatalf("expected error for unknown piece letter")
	}
}
