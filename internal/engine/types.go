package engine

// Side identifies one of the two players. Home moves first and plays up the
// board (increasing rank); Away plays down.
type Side string

const (
	Home Side = "home"
	Away Side = "away"
)

// Other returns the opponent of s.
func (s Side) Other() Side {
	if s == Home {
		return Away
	}
	return Home
}

// Forward returns the rank direction this side's pawns advance in.
func (s Side) Forward() int {
	if s == Home {
		return 1
	}
	return -1
}

// PieceType is a closed set; the rule set dispatches over exactly these six.
type PieceType string

const (
	// NoPiece is the zero value, used where a promotion type is optional.
	NoPiece PieceType = ""

	Pawn   PieceType = "pawn"
	Rook   PieceType = "rook"
	Knight PieceType = "knight"
	Bishop PieceType = "bishop"
	Queen  PieceType = "queen"
	King   PieceType = "king"
)

// Square is a board coordinate. Rank and file are both in [0,7]; rank 0 is
// Home's back rank.
type Square struct {
	Rank int `json:"rank"`
	File int `json:"file"`
}

// OnBoard reports whether sq is inside the 8x8 board.
func (sq Square) OnBoard() bool {
	return sq.Rank >= 0 && sq.Rank <= 7 && sq.File >= 0 && sq.File <= 7
}

// Piece is a single piece on a Board. Pieces are owned exclusively by their
// board; identity matters, since HasMoved feeds castling rights and
// JustDoubleStepped feeds en passant.
type Piece struct {
	Type              PieceType `json:"type"`
	Side              Side      `json:"side"`
	Square            Square    `json:"square"`
	HasMoved          bool      `json:"has_moved"`
	JustDoubleStepped bool      `json:"just_double_stepped"`
}

// Special marks the side effect a move carries beyond plain relocation.
type Special string

const (
	SpecialNone      Special = ""
	SpecialCastle    Special = "castle"
	SpecialEnPassant Special = "en_passant"
	SpecialPromotion Special = "promotion"
)

// Move is one legal move candidate as produced by the move generator.
type Move struct {
	From    Square  `json:"from"`
	To      Square  `json:"to"`
	Special Special `json:"special,omitempty"`
}

// Conclusion is the way a game finished, or GameNotComplete while it has not.
type Conclusion string

const (
	GameNotComplete      Conclusion = "game_not_complete"
	Checkmate            Conclusion = "checkmate"
	Stalemate            Conclusion = "stalemate"
	Resign               Conclusion = "resign"
	Timeout              Conclusion = "timeout"
	ThreefoldRepetition  Conclusion = "threefold_repetition"
	FiftyMoveRule        Conclusion = "fifty_move_rule"
	AgreedDraw           Conclusion = "agreed_draw"
)

// Winner is derived from the Conclusion plus whose turn it was.
type Winner string

const (
	NotDecided Winner = "not_decided"
	HomeWins   Winner = "home"
	AwayWins   Winner = "away"
	Draw       Winner = "draw"
)

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}
