package model

import (
	"errors"
	"testing"
)

// sq converts "e2" style names to squares.
func sq(name string) Square {
	return Square{Row: 8 - int(name[1]-'0'), Col: int(name[0] - 'a')}
}

func mustPiece(t *testing.T, b *Board, name string) *Piece {
	t.Helper()
	p := b.PieceAt(sq(name))
	if p == nil {
		t.Fatalf("no piece on %s\n%s", name, b)
	}
	return p
}

func play(t *testing.T, b *Board, from, to string) Outcome {
	t.Helper()
	out, err := b.ApplyMove(mustPiece(t, b, from), sq(to))
	if err != nil {
		t.Fatalf("%s-%s: %v\n%s", from, to, err, b)
	}
	return out
}

func expectInvariantPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected invariant panic")
		}
		var inv *InvariantError
		if err, ok := r.(error); !ok || !errors.As(err, &inv) {
			t.Fatalf("expected *InvariantError, got %v", r)
		}
	}()
	fn()
}
