package engine

import "fmt"

// ParseSquare converts algebraic notation ("e4") to a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return Square{}, fmt.Errorf("engine: invalid square %q", s)
	}
	sq := Square{Rank: int(s[1] - '1'), File: int(s[0] - 'a')}
	if !sq.OnBoard() {
		return Square{}, fmt.Errorf("engine: invalid square %q", s)
	}
	return sq, nil
}

// SquareName converts sq to algebraic notation. sq must be on the board.
func SquareName(sq Square) string {
	return string([]byte{byte('a' + sq.File), byte('1' + sq.Rank)})
}

// CoordinateMove is a move in plain coordinate notation, "e2e4" or "e7e8q"
// for promotions. It is the wire and storage form of a move.
type CoordinateMove struct {
	From      Square
	To        Square
	Promotion PieceType
}

// ParseCoordinateMove parses coordinate notation.
func ParseCoordinateMove(s string) (CoordinateMove, error) {
	if len(s) != 4 && len(s) != 5 {
		return CoordinateMove{}, fmt.Errorf("engine: invalid move %q", s)
	}
	from, err := ParseSquare(s[:2])
	if err != nil {
		return CoordinateMove{}, fmt.Errorf("engine: invalid move %q", s)
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return CoordinateMove{}, fmt.Errorf("engine: invalid move %q", s)
	}
	mv := CoordinateMove{From: from, To: to}
	if len(s) == 5 {
		switch s[4] {
		case 'q':
			mv.Promotion = Queen
		case 'r':
			mv.Promotion = Rook
		case 'b':
			mv.Promotion = Bishop
		case 'n':
			mv.Promotion = Knight
		default:
			return CoordinateMove{}, fmt.Errorf("engine: invalid move %q", s)
		}
	}
	return mv, nil
}

// FormatCoordinateMove renders mv in coordinate notation.
func FormatCoordinateMove(mv CoordinateMove) string {
	s := SquareName(mv.From) + SquareName(mv.To)
	switch mv.Promotion {
	case Queen:
		s += "q"
	case Rook:
		s += "r"
	case Bishop:
		s += "b"
	case Knight:
		s += "n"
	}
	return s
}
