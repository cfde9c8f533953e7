package engine

// IsLegalGeometry reports whether moving p to dest is geometrically legal:
// move shape plus occupancy (path clearance, no friendly piece on dest).
// It deliberately ignores whether the mover's own king would end up attacked;
// that is the check oracle's job.
func IsLegalGeometry(b *Board, p *Piece, dest Square) bool {
	return legalGeometry(b, p, dest, true)
}

// legalGeometry dispatches over the six piece types. allowCastle=false is the
// attack-testing mode used by the check oracle: a castle can never capture,
// and excluding it here is what keeps check detection non-recursive.
func legalGeometry(b *Board, p *Piece, dest Square, allowCastle bool) bool {
	if !dest.OnBoard() || dest == p.Square {
		return false
	}
	switch p.Type {
	case Pawn:
		return pawnGeometry(b, p, dest)
	case Rook:
		return rookGeometry(b, p, dest)
	case Knight:
		return knightGeometry(b, p, dest)
	case Bishop:
		return bishopGeometry(b, p, dest)
	case Queen:
		return queenGeometry(b, p, dest)
	case King:
		return kingGeometry(b, p, dest, allowCastle)
	}
	return false
}

func friendlyAt(b *Board, side Side, sq Square) bool {
	occupant := b.PieceAt(sq)
	return occupant != nil && occupant.Side == side
}

func pawnGeometry(b *Board, p *Piece, dest Square) bool {
	fileDelta := abs(dest.File - p.Square.File)
	rankDelta := (dest.Rank - p.Square.Rank) * p.Side.Forward()
	switch {
	case rankDelta == 1 && fileDelta == 0:
		return b.PieceAt(dest) == nil
	case rankDelta == 1 && fileDelta == 1:
		if victim := b.PieceAt(dest); victim != nil {
			return victim.Side != p.Side
		}
		return enPassantVictim(b, p, dest) != nil
	case rankDelta == 2 && fileDelta == 0:
		if p.HasMoved {
			return false
		}
		mid := Square{Rank: p.Square.Rank + p.Side.Forward(), File: dest.File}
		return b.PieceAt(mid) == nil && b.PieceAt(dest) == nil
	}
	return false
}

// enPassantVictim returns the pawn p would capture en passant by moving to
// dest, or nil when the capture is not available. The victim must have
// double-stepped on the immediately preceding turn.
func enPassantVictim(b *Board, p *Piece, dest Square) *Piece {
	epRank := 4
	if p.Side == Away {
		epRank = 3
	}
	if p.Square.Rank != epRank {
		return nil
	}
	victim := b.PieceAt(Square{Rank: p.Square.Rank, File: dest.File})
	if victim == nil || victim.Type != Pawn || victim.Side == p.Side || !victim.JustDoubleStepped {
		return nil
	}
	return victim
}

func rookGeometry(b *Board, p *Piece, dest Square) bool {
	rankDelta := dest.Rank - p.Square.Rank
	fileDelta := dest.File - p.Square.File
	if rankDelta != 0 && fileDelta != 0 {
		return false
	}
	return pathIsClear(b, p.Square, dest) && !friendlyAt(b, p.Side, dest)
}

func bishopGeometry(b *Board, p *Piece, dest Square) bool {
	if abs(dest.Rank-p.Square.Rank) != abs(dest.File-p.Square.File) {
		return false
	}
	return pathIsClear(b, p.Square, dest) && !friendlyAt(b, p.Side, dest)
}

func queenGeometry(b *Board, p *Piece, dest Square) bool {
	rankDelta := abs(dest.Rank - p.Square.Rank)
	fileDelta := abs(dest.File - p.Square.File)
	bishopsMove := rankDelta == fileDelta
	rooksMove := (rankDelta == 0) != (fileDelta == 0)
	if !bishopsMove && !rooksMove {
		return false
	}
	return pathIsClear(b, p.Square, dest) && !friendlyAt(b, p.Side, dest)
}

func knightGeometry(b *Board, p *Piece, dest Square) bool {
	rankDelta := abs(dest.Rank - p.Square.Rank)
	fileDelta := abs(dest.File - p.Square.File)
	if !(rankDelta == 1 && fileDelta == 2) && !(rankDelta == 2 && fileDelta == 1) {
		return false
	}
	return !friendlyAt(b, p.Side, dest)
}

func kingGeometry(b *Board, p *Piece, dest Square, allowCastle bool) bool {
	rankDelta := abs(dest.Rank - p.Square.Rank)
	fileDelta := abs(dest.File - p.Square.File)
	if rankDelta <= 1 && fileDelta <= 1 {
		return !friendlyAt(b, p.Side, dest)
	}
	if allowCastle {
		return castleGeometry(b, p, dest)
	}
	return false
}

// castleGeometry checks the full castling conditions: king and the relevant
// rook have never moved, every square strictly between them is empty, and the
// king's start, transit and destination squares are not attacked. The attack
// checks are delegated to the check oracle by simulating the king on each
// square, so a castle produced here is already fully legal.
func castleGeometry(b *Board, king *Piece, dest Square) bool {
	if king.Type != King || king.HasMoved || dest.Rank != king.Square.Rank {
		return false
	}
	var rookFile int
	var emptyFiles []int
	switch dest.File {
	case 2:
		rookFile, emptyFiles = 0, []int{1, 2, 3}
	case 6:
		rookFile, emptyFiles = 7, []int{5, 6}
	default:
		return false
	}
	rook := b.PieceAt(Square{Rank: dest.Rank, File: rookFile})
	if rook == nil || rook.Type != Rook || rook.Side != king.Side || rook.HasMoved {
		return false
	}
	for _, file := range emptyFiles {
		if b.PieceAt(Square{Rank: dest.Rank, File: file}) != nil {
			return false
		}
	}
	if KingIsAttacked(b, king.Side) {
		return false
	}
	transit := Square{Rank: dest.Rank, File: (king.Square.File + dest.File) / 2}
	for _, sq := range [2]Square{transit, dest} {
		if kingAttackedAt(b, king, sq) {
			return false
		}
	}
	return true
}

// pathIsClear walks one square at a time along the normalized direction from
// from to to, exclusive of both endpoints, and reports whether every
// intermediate square is empty.
func pathIsClear(b *Board, from, to Square) bool {
	rankStep := sign(to.Rank - from.Rank)
	fileStep := sign(to.File - from.File)
	steps := max(abs(to.Rank-from.Rank), abs(to.File-from.File))
	for i := 1; i < steps; i++ {
		sq := Square{Rank: from.Rank + i*rankStep, File: from.File + i*fileStep}
		if b.PieceAt(sq) != nil {
			return false
		}
	}
	return true
}
