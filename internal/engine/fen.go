package engine

import (
	"strconv"
	"strings"
)

// FEN renders the game's current position in Forsyth-Edwards Notation.
// Home is rendered as White. The halfmove clock is derived from the
// irreversible-turn marker and the fullmove number from the ply count.
func (g *Game) FEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := g.board.PieceAt(Square{Rank: rank, File: file})
			if p == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteByte(fenPieceChar(p))
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if g.CurrentTurn == Home {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(g.fenCastling())

	sb.WriteByte(' ')
	sb.WriteString(g.fenEnPassant())

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(g.TurnNumber - g.LastIrreversibleTurn))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa((g.TurnNumber + 1) / 2))

	return sb.String()
}

func (g *Game) fenCastling() string {
	var sb strings.Builder
	type right struct {
		side     Side
		rookFile int
		symbol   byte
	}
	for _, r := range []right{
		{Home, 7, 'K'}, {Home, 0, 'Q'},
		{Away, 7, 'k'}, {Away, 0, 'q'},
	} {
		backRank := 0
		if r.side == Away {
			backRank = 7
		}
		king := g.board.PieceAt(Square{Rank: backRank, File: 4})
		rook := g.board.PieceAt(Square{Rank: backRank, File: r.rookFile})
		if king == nil || king.Type != King || king.Side != r.side || king.HasMoved {
			continue
		}
		if rook == nil || rook.Type != Rook || rook.Side != r.side || rook.HasMoved {
			continue
		}
		sb.WriteByte(r.symbol)
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

func (g *Game) fenEnPassant() string {
	for _, side := range [2]Side{Home, Away} {
		for _, p := range g.board.Pieces(side) {
			if p.Type == Pawn && p.JustDoubleStepped {
				target := Square{Rank: p.Square.Rank - side.Forward(), File: p.Square.File}
				return SquareName(target)
			}
		}
	}
	return "-"
}

func fenPieceChar(p *Piece) byte {
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
