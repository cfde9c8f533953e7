package engine

var (
	knightOffsets = [][2]int{
		{1, 2}, {2, 1}, {-1, 2}, {-2, 1},
		{1, -2}, {2, -1}, {-1, -2}, {-2, -1},
	}
	rookDirections = [][2]int{
		{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	}
	bishopDirections = [][2]int{
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	}
	royalDirections = append(append([][2]int{}, rookDirections...), bishopDirections...)
)

// LegalMoves enumerates every legal move for side. The result is recomputed
// fresh on each call and carries no ordering guarantee; callers needing
// determinism should sort explicitly.
func LegalMoves(b *Board, side Side) []Move {
	var moves []Move
	for _, p := range b.Pieces(side) {
		moves = append(moves, legalMovesFor(b, p)...)
	}
	return moves
}

func legalMovesFor(b *Board, p *Piece) []Move {
	var out []Move
	for _, mv := range pseudoMoves(b, p) {
		if mv.Special == SpecialCastle {
			// Castle geometry already excluded attacked squares.
			out = append(out, mv)
			continue
		}
		if MoveWouldExposeCheck(b, mv) {
			continue
		}
		out = append(out, mv)
	}
	return out
}

func pseudoMoves(b *Board, p *Piece) []Move {
	switch p.Type {
	case Pawn:
		return pawnMoves(b, p)
	case Rook:
		return slideMoves(b, p, rookDirections)
	case Knight:
		return offsetMoves(b, p, knightOffsets)
	case Bishop:
		return slideMoves(b, p, bishopDirections)
	case Queen:
		return slideMoves(b, p, royalDirections)
	case King:
		return kingMoves(b, p)
	}
	return nil
}

func pawnMoves(b *Board, p *Piece) []Move {
	// Forward rank delta, file delta.
	options := [4][2]int{{1, 0}, {2, 0}, {1, -1}, {1, 1}}
	var out []Move
	for _, opt := range options {
		dest := Square{
			Rank: p.Square.Rank + opt[0]*p.Side.Forward(),
			File: p.Square.File + opt[1],
		}
		if !dest.OnBoard() || !pawnGeometry(b, p, dest) {
			continue
		}
		mv := Move{From: p.Square, To: dest}
		switch {
		case opt[1] != 0 && b.PieceAt(dest) == nil:
			mv.Special = SpecialEnPassant
		case dest.Rank == promotionRank(p.Side):
			mv.Special = SpecialPromotion
		}
		out = append(out, mv)
	}
	return out
}

func promotionRank(side Side) int {
	if side == Home {
		return 7
	}
	return 0
}

func offsetMoves(b *Board, p *Piece, offsets [][2]int) []Move {
	var out []Move
	for _, off := range offsets {
		dest := Square{Rank: p.Square.Rank + off[0], File: p.Square.File + off[1]}
		if !dest.OnBoard() || friendlyAt(b, p.Side, dest) {
			continue
		}
		out = append(out, Move{From: p.Square, To: dest})
	}
	return out
}

// slideMoves walks outward per direction, stopping at the first obstruction
// and including that square when it holds an enemy piece.
func slideMoves(b *Board, p *Piece, directions [][2]int) []Move {
	var out []Move
	for _, dir := range directions {
		dest := p.Square
		for {
			dest = Square{Rank: dest.Rank + dir[0], File: dest.File + dir[1]}
			if !dest.OnBoard() {
				break
			}
			target := b.PieceAt(dest)
			if target != nil && target.Side == p.Side {
				break
			}
			out = append(out, Move{From: p.Square, To: dest})
			if target != nil {
				break
			}
		}
	}
	return out
}

func kingMoves(b *Board, p *Piece) []Move {
	out := offsetMoves(b, p, royalDirections)
	if !p.HasMoved {
		for _, file := range [2]int{2, 6} {
			dest := Square{Rank: p.Square.Rank, File: file}
			if castleGeometry(b, p, dest) {
				out = append(out, Move{From: p.Square, To: dest, Special: SpecialCastle})
			}
		}
	}
	return out
}
