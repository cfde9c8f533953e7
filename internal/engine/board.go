package engine

// Board is the canonical piece placement for one game plus the side to move.
// It performs no rule checking of its own: all operations are total over the
// 8x8 domain and callers must range-check coordinates first.
type Board struct {
	squares [8][8]*Piece

	// ToMove is maintained by the game state machine and read by the
	// position codec.
	ToMove Side

	simulating bool
}

// NewBoard returns an empty board with Home to move.
func NewBoard() *Board {
	return &Board{ToMove: Home}
}

// PieceAt returns the piece on sq, or nil.
func (b *Board) PieceAt(sq Square) *Piece {
	return b.squares[sq.Rank][sq.File]
}

// Place puts p on its own square, replacing any occupant.
func (b *Board) Place(p *Piece) {
	b.squares[p.Square.Rank][p.Square.File] = p
}

// Remove clears sq.
func (b *Board) Remove(sq Square) {
	b.squares[sq.Rank][sq.File] = nil
}

// MovePiece relocates the piece on from to to. Pure relocation: any occupant
// of to is overwritten and no flags are touched.
func (b *Board) MovePiece(from, to Square) {
	p := b.squares[from.Rank][from.File]
	b.squares[from.Rank][from.File] = nil
	b.squares[to.Rank][to.File] = p
	if p != nil {
		p.Square = to
	}
}

// CloneForSimulation returns a fully independent copy of the board, so a
// hypothetical move can be applied and discarded without touching live state.
func (b *Board) CloneForSimulation() *Board {
	clone := &Board{ToMove: b.ToMove}
	for rank := range b.squares {
		for file, p := range b.squares[rank] {
			if p == nil {
				continue
			}
			cp := *p
			clone.squares[rank][file] = &cp
		}
	}
	return clone
}

// Pieces returns every piece belonging to side, in board-scan order.
func (b *Board) Pieces(side Side) []*Piece {
	var out []*Piece
	for rank := range b.squares {
		for _, p := range b.squares[rank] {
			if p != nil && p.Side == side {
				out = append(out, p)
			}
		}
	}
	return out
}

// King returns side's king. Exactly one exists per side while a game is
// ongoing; a board without one is a programming defect, not a game state.
func (b *Board) King(side Side) *Piece {
	for rank := range b.squares {
		for _, p := range b.squares[rank] {
			if p != nil && p.Side == side && p.Type == King {
				return p
			}
		}
	}
	panic("engine: board has no " + string(side) + " king")
}

// Snapshot returns a read-only copy of the placement for external rendering.
func (b *Board) Snapshot() map[Square]Piece {
	out := make(map[Square]Piece, 32)
	for rank := range b.squares {
		for _, p := range b.squares[rank] {
			if p != nil {
				out[p.Square] = *p
			}
		}
	}
	return out
}
