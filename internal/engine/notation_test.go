package engine

import "testing"

func TestParseSquare(t *testing.T) {
	got, err := ParseSquare("e4")
	if err != nil {
		t.Fatalf("ParseSquare: %v", err)
	}
	if got != sq(3, 4) {
		t.Fatalf("ParseSquare(e4) = %+v", got)
	}
	for _, bad := range []string{"", "e", "e9", "i4", "e44"} {
		if _, err := ParseSquare(bad); err == nil {
			t.Fatalf("ParseSquare(%q) should fail", bad)
		}
	}
}

func TestSquareNameRoundTrip(t *testing.T) {
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			name := SquareName(sq(rank, file))
			back, err := ParseSquare(name)
			if err != nil || back != sq(rank, file) {
				t.Fatalf("round trip failed for %s", name)
			}
		}
	}
}

func TestParseCoordinateMove(t *testing.T) {
	mv, err := ParseCoordinateMove("e2e4")
	if err != nil {
		t.Fatalf("ParseCoordinateMove: %v", err)
	}
	if mv.From != sq(1, 4) || mv.To != sq(3, 4) || mv.Promotion != NoPiece {
		t.Fatalf("unexpected move: %+v", mv)
	}

	mv, err = ParseCoordinateMove("e7e8q")
	if err != nil {
		t.Fatalf("ParseCoordinateMove: %v", err)
	}
	if mv.Promotion != Queen {
		t.Fatalf("promotion = %v, want Queen", mv.Promotion)
	}

	for _, bad := range []string{"", "e2", "e2e9", "e7e8x", "e2e4qq"} {
		if _, err := ParseCoordinateMove(bad); err == nil {
			t.Fatalf("ParseCoordinateMove(%q) should fail", bad)
		}
	}
}

func TestFormatCoordinateMove(t *testing.T) {
	if got := FormatCoordinateMove(CoordinateMove{From: sq(1, 4), To: sq(3, 4)}); got != "e2e4" {
		t.Fatalf("FormatCoordinateMove = %q", got)
	}
	if got := FormatCoordinateMove(CoordinateMove{From: sq(6, 4), To: sq(7, 4), Promotion: Knight}); got != "e7e8n" {
		t.Fatalf("FormatCoordinateMove = %q", got)
	}
}
