package engine

// Gamemode is the capability a game variant provides to the state machine.
// Chess is the only implementation for now; future variants plug in here
// without touching the engine's call sites.
type Gamemode interface {
	// LayoutBoard puts the pieces on an empty board.
	LayoutBoard(b *Board)
	// ValidateMove resolves (from, to) for side into a fully legal move.
	ValidateMove(b *Board, side Side, from, to Square) (Move, bool)
	// LegalMoves enumerates every legal move for side.
	LegalMoves(b *Board, side Side) []Move
	// Execute applies a validated move and its side effects to the board.
	Execute(b *Board, mv Move, promotion PieceType) (MoveEffect, error)
	// IsTerminal evaluates the board for the side about to move. Draw rules
	// that need game history (repetition, fifty-move) live in the state
	// machine, not here.
	IsTerminal(b *Board, toMove Side) Conclusion
	// Freeze encodes the legally relevant position state.
	Freeze(b *Board) PositionKey
}

// MoveEffect reports what an executed move did, for history bookkeeping.
type MoveEffect struct {
	Captured bool
	PawnMove bool
}

// Chess implements standard chess.
type Chess struct{}

func (Chess) LayoutBoard(b *Board) {
	backRow := [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file, pt := range backRow {
		b.Place(&Piece{Type: pt, Side: Home, Square: Square{Rank: 0, File: file}})
		b.Place(&Piece{Type: pt, Side: Away, Square: Square{Rank: 7, File: file}})
	}
	for file := 0; file < 8; file++ {
		b.Place(&Piece{Type: Pawn, Side: Home, Square: Square{Rank: 1, File: file}})
		b.Place(&Piece{Type: Pawn, Side: Away, Square: Square{Rank: 6, File: file}})
	}
}

func (Chess) ValidateMove(b *Board, side Side, from, to Square) (Move, bool) {
	if !from.OnBoard() || !to.OnBoard() {
		return Move{}, false
	}
	p := b.PieceAt(from)
	if p == nil || p.Side != side {
		return Move{}, false
	}
	for _, mv := range legalMovesFor(b, p) {
		if mv.To == to {
			return mv, true
		}
	}
	return Move{}, false
}

func (Chess) LegalMoves(b *Board, side Side) []Move {
	return LegalMoves(b, side)
}

func (Chess) Execute(b *Board, mv Move, promotion PieceType) (MoveEffect, error) {
	var eff MoveEffect
	p := b.PieceAt(mv.From)
	if p == nil {
		return eff, ErrIllegalMove
	}
	if mv.Special == SpecialPromotion {
		switch promotion {
		case NoPiece:
			return eff, ErrPromotionRequired
		case Rook, Knight, Bishop, Queen:
		default:
			return eff, ErrInvalidPromotionPiece
		}
	}
	eff.PawnMove = p.Type == Pawn

	switch mv.Special {
	case SpecialCastle:
		rookFrom, rookTo := castleRookSquares(mv.To)
		rook := b.PieceAt(rookFrom)
		b.MovePiece(mv.From, mv.To)
		b.MovePiece(rookFrom, rookTo)
		rook.HasMoved = true
	case SpecialEnPassant:
		victim := enPassantVictim(b, p, mv.To)
		if victim == nil {
			return eff, ErrIllegalMove
		}
		b.Remove(victim.Square)
		eff.Captured = true
		b.MovePiece(mv.From, mv.To)
	default:
		if b.PieceAt(mv.To) != nil {
			eff.Captured = true
		}
		b.MovePiece(mv.From, mv.To)
	}

	doubleStepped := p.Type == Pawn && abs(mv.To.Rank-mv.From.Rank) == 2
	clearDoubleStepFlags(b)
	p.HasMoved = true
	p.JustDoubleStepped = doubleStepped
	if mv.Special == SpecialPromotion {
		p.Type = promotion
	}
	return eff, nil
}

func (Chess) IsTerminal(b *Board, toMove Side) Conclusion {
	if len(LegalMoves(b, toMove)) > 0 {
		return GameNotComplete
	}
	if KingIsAttacked(b, toMove) {
		return Checkmate
	}
	return Stalemate
}

func (Chess) Freeze(b *Board) PositionKey {
	return FreezePosition(b)
}

func castleRookSquares(kingDest Square) (from, to Square) {
	if kingDest.File == 2 {
		return Square{Rank: kingDest.Rank, File: 0}, Square{Rank: kingDest.Rank, File: 3}
	}
	return Square{Rank: kingDest.Rank, File: 7}, Square{Rank: kingDest.Rank, File: 5}
}

// clearDoubleStepFlags resets every pawn's en-passant eligibility; the mover
// re-sets its own flag afterwards if it just double-stepped.
func clearDoubleStepFlags(b *Board) {
	for _, side := range [2]Side{Home, Away} {
		for _, p := range b.Pieces(side) {
			p.JustDoubleStepped = false
		}
	}
}
