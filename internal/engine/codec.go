package engine

import "strings"

// PositionKey is an opaque, comparable encoding of the legally relevant
// state of a position: piece placement, side to move, remaining castling
// rights and en-passant eligibility. Turn numbers and clocks are deliberately
// excluded so that repeats of the same position compare equal.
type PositionKey string

// FreezePosition encodes b into a PositionKey. Pieces are scanned in fixed
// board order, so equal positions always produce equal keys.
func FreezePosition(b *Board) PositionKey {
	var sb strings.Builder
	if b.ToMove == Home {
		sb.WriteByte('h')
	} else {
		sb.WriteByte('a')
	}
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			p := b.PieceAt(Square{Rank: rank, File: file})
			if p == nil {
				continue
			}
			sb.WriteByte(pieceAbbrev(p))
			sb.WriteByte('0' + byte(rank))
			sb.WriteByte('0' + byte(file))
			switch {
			case p.Type == Pawn && p.JustDoubleStepped:
				sb.WriteByte('X')
			case p.Type == Rook && rookRetainsCastling(b, p):
				sb.WriteByte('X')
			}
		}
	}
	return PositionKey(sb.String())
}

// rookRetainsCastling reports whether rook still carries a castling right:
// neither it nor its king has ever moved. Rights, not current legality;
// occupancy and attacked squares are transient and must not leak into the
// repetition key.
func rookRetainsCastling(b *Board, rook *Piece) bool {
	if rook.HasMoved {
		return false
	}
	return !b.King(rook.Side).HasMoved
}

func pieceAbbrev(p *Piece) byte {
	var c byte
	switch p.Type {
	case Pawn:
		c = 'p'
	case Rook:
		c = 'r'
	case Knight:
		c = 'n'
	case Bishop:
		c = 'b'
	case Queen:
		c = 'q'
	case King:
		c = 'k'
	}
	if p.Side == Home {
		c -= 'a' - 'A'
	}
	return c
}
