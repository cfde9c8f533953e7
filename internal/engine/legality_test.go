package engine

import "testing"

func placed(pieces ...*Piece) *Board {
	b := NewBoard()
	for _, p := range pieces {
		b.Place(p)
	}
	return b
}

func sq(rank, file int) Square {
	return Square{Rank: rank, File: file}
}

func TestPawnGeometry(t *testing.T) {
	cases := []struct {
		name   string
		pieces []*Piece
		mover  Square
		dest   Square
		want   bool
	}{
		{
			name:   "single step",
			pieces: []*Piece{{Type: Pawn, Side: Home, Square: sq(1, 4)}},
			mover:  sq(1, 4), dest: sq(2, 4), want: true,
		},
		{
			name: "single step blocked",
			pieces: []*Piece{
				{Type: Pawn, Side: Home, Square: sq(1, 4)},
				{Type: Knight, Side: Away, Square: sq(2, 4)},
			},
			mover: sq(1, 4), dest: sq(2, 4), want: false,
		},
		{
			name:   "double step from start",
			pieces: []*Piece{{Type: Pawn, Side: Home, Square: sq(1, 4)}},
			mover:  sq(1, 4), dest: sq(3, 4), want: true,
		},
		{
			name:   "double step after moving",
			pieces: []*Piece{{Type: Pawn, Side: Home, Square: sq(2, 4), HasMoved: true}},
			mover:  sq(2, 4), dest: sq(4, 4), want: false,
		},
		{
			name: "double step through occupied square",
			pieces: []*Piece{
				{Type: Pawn, Side: Home, Square: sq(1, 4)},
				{Type: Knight, Side: Home, Square: sq(2, 4)},
			},
			mover: sq(1, 4), dest: sq(3, 4), want: false,
		},
		{
			name: "diagonal capture",
			pieces: []*Piece{
				{Type: Pawn, Side: Home, Square: sq(3, 4)},
				{Type: Rook, Side: Away, Square: sq(4, 5)},
			},
			mover: sq(3, 4), dest: sq(4, 5), want: true,
		},
		{
			name:   "diagonal to empty square",
			pieces: []*Piece{{Type: Pawn, Side: Home, Square: sq(3, 4)}},
			mover:  sq(3, 4), dest: sq(4, 5), want: false,
		},
		{
			name:   "backwards",
			pieces: []*Piece{{Type: Pawn, Side: Home, Square: sq(3, 4), HasMoved: true}},
			mover:  sq(3, 4), dest: sq(2, 4), want: false,
		},
		{
			name:   "away pawn moves down the board",
			pieces: []*Piece{{Type: Pawn, Side: Away, Square: sq(6, 4)}},
			mover:  sq(6, 4), dest: sq(5, 4), want: true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := placed(tc.pieces...)
			got := IsLegalGeometry(b, b.PieceAt(tc.mover), tc.dest)
			if got != tc.want {
				t.Fatalf("IsLegalGeometry = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestEnPassantGeometry(t *testing.T) {
	victim := &Piece{Type: Pawn, Side: Away, Square: sq(4, 3), HasMoved: true, JustDoubleStepped: true}
	capturer := &Piece{Type: Pawn, Side: Home, Square: sq(4, 4), HasMoved: true}
	b := placed(victim, capturer)
	if !IsLegalGeometry(b, capturer, sq(5, 3)) {
		t.Fatalf("en passant capture should be legal")
	}

	victim.JustDoubleStepped = false
	if IsLegalGeometry(b, capturer, sq(5, 3)) {
		t.Fatalf("en passant requires a fresh double step")
	}

	victim.JustDoubleStepped = true
	wrongRank := &Piece{Type: Pawn, Side: Home, Square: sq(3, 2), HasMoved: true}
	b2 := placed(&Piece{Type: Pawn, Side: Away, Square: sq(3, 3), HasMoved: true, JustDoubleStepped: true}, wrongRank)
	if IsLegalGeometry(b2, wrongRank, sq(4, 3)) {
		t.Fatalf("en passant only from the fifth rank")
	}
}

func TestSliderGeometry(t *testing.T) {
	rook := &Piece{Type: Rook, Side: Home, Square: sq(0, 0)}
	blocker := &Piece{Type: Pawn, Side: Home, Square: sq(0, 3)}
	enemy := &Piece{Type: Pawn, Side: Away, Square: sq(5, 0)}
	b := placed(rook, blocker, enemy)

	if !IsLegalGeometry(b, rook, sq(0, 2)) {
		t.Fatalf("rook should reach empty square before blocker")
	}
	if IsLegalGeometry(b, rook, sq(0, 3)) {
		t.Fatalf("rook cannot capture own pawn")
	}
	if IsLegalGeometry(b, rook, sq(0, 5)) {
		t.Fatalf("rook cannot pass through a piece")
	}
	if !IsLegalGeometry(b, rook, sq(5, 0)) {
		t.Fatalf("rook should capture enemy pawn")
	}
	if IsLegalGeometry(b, rook, sq(1, 1)) {
		t.Fatalf("rook cannot move diagonally")
	}

	bishop := &Piece{Type: Bishop, Side: Home, Square: sq(2, 2)}
	b2 := placed(bishop, &Piece{Type: Pawn, Side: Away, Square: sq(4, 4)})
	if !IsLegalGeometry(b2, bishop, sq(4, 4)) {
		t.Fatalf("bishop should capture along the diagonal")
	}
	if IsLegalGeometry(b2, bishop, sq(5, 5)) {
		t.Fatalf("bishop cannot pass through a piece")
	}
	if IsLegalGeometry(b2, bishop, sq(2, 5)) {
		t.Fatalf("bishop cannot move along a rank")
	}

	queen := &Piece{Type: Queen, Side: Home, Square: sq(3, 3)}
	b3 := placed(queen)
	if !IsLegalGeometry(b3, queen, sq(3, 7)) || !IsLegalGeometry(b3, queen, sq(7, 7)) {
		t.Fatalf("queen should move as rook and bishop")
	}
	if IsLegalGeometry(b3, queen, sq(5, 4)) {
		t.Fatalf("queen cannot move like a knight")
	}
}

func TestKnightGeometry(t *testing.T) {
	knight := &Piece{Type: Knight, Side: Home, Square: sq(3, 3)}
	b := placed(knight,
		&Piece{Type: Pawn, Side: Home, Square: sq(3, 4)},
		&Piece{Type: Pawn, Side: Home, Square: sq(4, 4)},
	)
	// Knights jump over the surrounding pawns.
	if !IsLegalGeometry(b, knight, sq(5, 4)) {
		t.Fatalf("knight should jump over adjacent pieces")
	}
	if IsLegalGeometry(b, knight, sq(5, 5)) {
		t.Fatalf("not a knight move")
	}
}

func TestKingGeometry(t *testing.T) {
	king := &Piece{Type: King, Side: Home, Square: sq(0, 4)}
	b := placed(king, &Piece{Type: Pawn, Side: Home, Square: sq(1, 4)})
	if !IsLegalGeometry(b, king, sq(0, 3)) {
		t.Fatalf("king should step one square")
	}
	if IsLegalGeometry(b, king, sq(1, 4)) {
		t.Fatalf("king cannot capture own pawn")
	}
	if IsLegalGeometry(b, king, sq(2, 4)) {
		t.Fatalf("king cannot step two squares")
	}
}

func TestCastleGeometry(t *testing.T) {
	king := &Piece{Type: King, Side: Home, Square: sq(0, 4)}
	rook := &Piece{Type: Rook, Side: Home, Square: sq(0, 7)}
	awayKing := &Piece{Type: King, Side: Away, Square: sq(7, 4)}
	b := placed(king, rook, awayKing)

	if !IsLegalGeometry(b, king, sq(0, 6)) {
		t.Fatalf("kingside castle should be legal")
	}

	rook.HasMoved = true
	if IsLegalGeometry(b, king, sq(0, 6)) {
		t.Fatalf("castle with a moved rook should be rejected")
	}
	rook.HasMoved = false

	b.Place(&Piece{Type: Bishop, Side: Home, Square: sq(0, 5)})
	if IsLegalGeometry(b, king, sq(0, 6)) {
		t.Fatalf("castle through an occupied square should be rejected")
	}
	b.Remove(sq(0, 5))

	// Enemy rook on the f-file attacks the king's transit square.
	b.Place(&Piece{Type: Rook, Side: Away, Square: sq(7, 5)})
	if IsLegalGeometry(b, king, sq(0, 6)) {
		t.Fatalf("castle through an attacked square should be rejected")
	}
	b.Remove(sq(7, 5))

	// Enemy rook on the e-file gives check.
	b.Place(&Piece{Type: Rook, Side: Away, Square: sq(5, 4)})
	if IsLegalGeometry(b, king, sq(0, 6)) {
		t.Fatalf("castle out of check should be rejected")
	}
}

func TestQueensideCastleGeometry(t *testing.T) {
	king := &Piece{Type: King, Side: Home, Square: sq(0, 4)}
	rook := &Piece{Type: Rook, Side: Home, Square: sq(0, 0)}
	awayKing := &Piece{Type: King, Side: Away, Square: sq(7, 4)}
	b := placed(king, rook, awayKing)

	if !IsLegalGeometry(b, king, sq(0, 2)) {
		t.Fatalf("queenside castle should be legal")
	}

	// The b1 square must be empty even though the king never crosses it.
	b.Place(&Piece{Type: Knight, Side: Home, Square: sq(0, 1)})
	if IsLegalGeometry(b, king, sq(0, 2)) {
		t.Fatalf("queenside castle with b1 occupied should be rejected")
	}
}
