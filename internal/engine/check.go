package engine

// KingIsAttacked reports whether side's king is attacked on b. The test is
// geometry-only: every enemy piece is asked whether it could legally reach
// the king's square, with castling excluded, so it never recurses back into
// check detection.
func KingIsAttacked(b *Board, side Side) bool {
	kingSq := b.King(side).Square
	for _, enemy := range b.Pieces(side.Other()) {
		if legalGeometry(b, enemy, kingSq, false) {
			return true
		}
	}
	return false
}

// MoveWouldExposeCheck applies mv to an independent clone of b and reports
// whether the moving side's king would be attacked afterwards. The clone is
// discarded, so no unwind of castling or en-passant side effects is ever
// needed. Castle moves are not passed through here; their geometry already
// rejects attacked start, transit and destination squares.
func MoveWouldExposeCheck(b *Board, mv Move) bool {
	if b.simulating {
		panic("engine: check simulation re-entered")
	}
	b.simulating = true
	defer func() { b.simulating = false }()

	p := b.PieceAt(mv.From)
	if p == nil {
		return true
	}
	sim := b.CloneForSimulation()
	if mv.Special == SpecialEnPassant {
		if victim := enPassantVictim(sim, sim.PieceAt(mv.From), mv.To); victim != nil {
			sim.Remove(victim.Square)
		}
	}
	sim.MovePiece(mv.From, mv.To)
	return KingIsAttacked(sim, p.Side)
}

// kingAttackedAt reports whether king would be attacked standing on sq.
// Used for castling transit squares.
func kingAttackedAt(b *Board, king *Piece, sq Square) bool {
	sim := b.CloneForSimulation()
	sim.MovePiece(king.Square, sq)
	return KingIsAttacked(sim, king.Side)
}
