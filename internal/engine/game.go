package engine

// GameState is the coarse lifecycle phase of a game.
type GameState string

const (
	AwaitingFirstMove GameState = "awaiting_first_move"
	InProgress        GameState = "in_progress"
	Concluded         GameState = "concluded"
)

// Game is the authoritative state machine for one match: board, turn
// bookkeeping, position history, draw offers and claims, and the clock.
// It is not safe for concurrent use; the owning layer serializes access.
type Game struct {
	// TurnNumber counts plies, starting at 1 for the first move.
	TurnNumber int
	// LastIrreversibleTurn is the TurnNumber reached by the most recent
	// capture or pawn move. The gap to TurnNumber drives the fifty-move rule.
	LastIrreversibleTurn int
	// CurrentTurn is the side expected to act next.
	CurrentTurn Side

	mode       Gamemode
	board      *Board
	clock      *Clock
	log        PositionLog
	conclusion Conclusion
	winner     Winner
	offers     map[Side]bool
	claim      Conclusion
}

// Option configures a Game at construction.
type Option func(*Game)

// WithTimeControl replaces the default (untimed) clock.
func WithTimeControl(tc TimeControl) Option {
	return func(g *Game) { g.clock = NewClock(tc) }
}

// WithPositionLog substitutes a caller-provided position store.
func WithPositionLog(log PositionLog) Option {
	return func(g *Game) { g.log = log }
}

// WithGamemode substitutes the game variant. Defaults to standard chess.
func WithGamemode(mode Gamemode) Option {
	return func(g *Game) { g.mode = mode }
}

// NewGame lays out a fresh game with Home to move. The starting position is
// recorded in the position log immediately, so a position revisited twice
// after the start already counts three occurrences.
func NewGame(opts ...Option) *Game {
	g := &Game{
		TurnNumber:           1,
		LastIrreversibleTurn: 1,
		CurrentTurn:          Home,
		mode:                 Chess{},
		clock:                NewClock(TimeControl{}),
		log:                  NewMemoryPositionLog(),
		conclusion:           GameNotComplete,
		winner:               NotDecided,
		claim:                GameNotComplete,
		offers:               map[Side]bool{Home: false, Away: false},
	}
	for _, opt := range opts {
		opt(g)
	}
	g.board = NewBoard()
	g.mode.LayoutBoard(g.board)
	g.log.Append(g.mode.Freeze(g.board))
	return g
}

// State reports the game's lifecycle phase.
func (g *Game) State() GameState {
	switch {
	case g.conclusion != GameNotComplete:
		return Concluded
	case g.TurnNumber == 1:
		return AwaitingFirstMove
	}
	return InProgress
}

// ApplyMove plays side's move from from to to. promotion names the piece a
// promoting pawn becomes and must be NoPiece otherwise. On success the turn
// passes, draw offers lapse and any newly available draw claim is recorded.
func (g *Game) ApplyMove(side Side, from, to Square, promotion PieceType) error {
	if g.conclusion != GameNotComplete {
		return ErrGameConcluded
	}
	if side != g.CurrentTurn {
		return ErrIllegalMove
	}
	mv, ok := g.mode.ValidateMove(g.board, side, from, to)
	if !ok {
		return ErrIllegalMove
	}
	eff, err := g.mode.Execute(g.board, mv, promotion)
	if err != nil {
		return err
	}

	g.TurnNumber++
	g.CurrentTurn = side.Other()
	g.board.ToMove = g.CurrentTurn
	if eff.Captured || eff.PawnMove {
		g.LastIrreversibleTurn = g.TurnNumber
	}

	key := g.mode.Freeze(g.board)
	g.log.Append(key)

	g.offers[Home] = false
	g.offers[Away] = false

	// Repetition and fifty-move draws are claims, not automatic results.
	g.claim = GameNotComplete
	switch {
	case g.log.Count(key) >= 3:
		g.claim = ThreefoldRepetition
	case g.TurnNumber-g.LastIrreversibleTurn >= 50:
		g.claim = FiftyMoveRule
	}

	if concl := g.mode.IsTerminal(g.board, g.CurrentTurn); concl != GameNotComplete {
		winner := Draw
		if concl == Checkmate {
			winner = winnerFor(side)
		}
		g.conclude(concl, winner)
	}
	return nil
}

// OfferDraw registers side's standing draw offer. Offering never ends the
// game by itself; the opponent accepts by claiming the agreed draw.
func (g *Game) OfferDraw(side Side) error {
	if g.conclusion != GameNotComplete {
		return ErrGameConcluded
	}
	g.offers[side] = true
	return nil
}

// ClaimDraw exercises a draw claim. An agreed draw requires a standing offer
// from the opponent; repetition and fifty-move claims must match the claim
// the last move made available. Anything else is rejected.
func (g *Game) ClaimDraw(side Side, reason Conclusion) error {
	if g.conclusion != GameNotComplete {
		return ErrGameConcluded
	}
	switch reason {
	case AgreedDraw:
		if !g.offers[side.Other()] {
			return ErrInvalidDrawClaim
		}
	case ThreefoldRepetition, FiftyMoveRule:
		if reason != g.claim {
			return ErrInvalidDrawClaim
		}
	default:
		return ErrInvalidDrawClaim
	}
	g.conclude(reason, Draw)
	return nil
}

// Resign ends the game with side losing. A resignation out of turn still
// consumes a ply and hands the turn to the resigner, so the final record
// shows the resigner on move.
func (g *Game) Resign(side Side) error {
	if g.conclusion != GameNotComplete {
		return ErrGameConcluded
	}
	if g.CurrentTurn != side {
		g.TurnNumber++
		g.CurrentTurn = side
		g.board.ToMove = side
	}
	g.conclude(Resign, winnerFor(side.Other()))
	return nil
}

// Timeout ends the game with side losing on time. The engine never watches
// the wall clock; the owning layer decides when a flag has fallen.
func (g *Game) Timeout(side Side) error {
	if g.conclusion != GameNotComplete {
		return ErrGameConcluded
	}
	g.conclude(Timeout, winnerFor(side.Other()))
	return nil
}

func (g *Game) conclude(reason Conclusion, winner Winner) {
	g.conclusion = reason
	g.winner = winner
}

// Conclusion reports how the game ended, or GameNotComplete.
func (g *Game) Conclusion() Conclusion {
	return g.conclusion
}

// Winner reports who won, or NotDecided while the game is running.
func (g *Game) Winner() Winner {
	return g.winner
}

// Clock returns the game's clock.
func (g *Game) Clock() *Clock {
	return g.clock
}

// OutstandingDrawClaim returns the draw claim the last move made available,
// or GameNotComplete when none is claimable.
func (g *Game) OutstandingDrawClaim() Conclusion {
	return g.claim
}

// OfferingDraw reports whether side has a standing draw offer.
func (g *Game) OfferingDraw(side Side) bool {
	return g.offers[side]
}

// InCheck reports whether the side to move is currently in check.
func (g *Game) InCheck() bool {
	return KingIsAttacked(g.board, g.CurrentTurn)
}

// LegalMoves enumerates the moves available to the side to move.
func (g *Game) LegalMoves() []Move {
	return g.mode.LegalMoves(g.board, g.CurrentTurn)
}

// BoardSnapshot returns a copy of the current placement.
func (g *Game) BoardSnapshot() map[Square]Piece {
	return g.board.Snapshot()
}

func winnerFor(side Side) Winner {
	if side == Home {
		return HomeWins
	}
	return AwayWins
}
