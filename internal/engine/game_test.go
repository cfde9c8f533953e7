package engine

import (
	"errors"
	"testing"
)

// promotionLayout is a variant with a minimal position: two kings and a home
// pawn one step from promotion.
type promotionLayout struct {
	Chess
}

func (promotionLayout) LayoutBoard(b *Board) {
	b.Place(&Piece{Type: King, Side: Home, Square: sq(0, 4)})
	b.Place(&Piece{Type: King, Side: Away, Square: sq(7, 4), HasMoved: true})
	b.Place(&Piece{Type: Pawn, Side: Home, Square: sq(6, 0), HasMoved: true})
}

func TestNewGameState(t *testing.T) {
	g := NewGame()
	if g.State() != AwaitingFirstMove {
		t.Fatalf("new game state = %v, want AwaitingFirstMove", g.State())
	}
	if g.CurrentTurn != Home || g.TurnNumber != 1 {
		t.Fatalf("new game should start at turn 1 with home to move")
	}
	playMoves(t, g, "e2e4")
	if g.State() != InProgress {
		t.Fatalf("state after first move = %v, want InProgress", g.State())
	}
	if g.CurrentTurn != Away || g.TurnNumber != 2 {
		t.Fatalf("turn should pass to away on turn 2")
	}
}

func TestMoveOutOfTurn(t *testing.T) {
	g := NewGame()
	if err := g.ApplyMove(Away, sq(6, 4), sq(4, 4), NoPiece); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("moving out of turn: got %v, want ErrIllegalMove", err)
	}
	if g.TurnNumber != 1 {
		t.Fatalf("rejected move must not consume a turn")
	}
}

func TestFoolsMate(t *testing.T) {
	g := NewGame()
	playMoves(t, g, "f2f3", "e7e5", "g2g4", "d8h4")

	if g.State() != Concluded {
		t.Fatalf("game should be over after the mating move")
	}
	if g.Conclusion() != Checkmate {
		t.Fatalf("conclusion = %v, want Checkmate", g.Conclusion())
	}
	if g.Winner() != AwayWins {
		t.Fatalf("winner = %v, want AwayWins", g.Winner())
	}
	if err := g.ApplyMove(Home, sq(1, 0), sq(2, 0), NoPiece); !errors.Is(err, ErrGameConcluded) {
		t.Fatalf("move after conclusion: got %v, want ErrGameConcluded", err)
	}
}

func TestStalemate(t *testing.T) {
	// Away king cornered on a8 by the home queen on c7 and king on b6,
	// but not in check.
	b := placed(
		&Piece{Type: King, Side: Away, Square: sq(7, 0), HasMoved: true},
		&Piece{Type: King, Side: Home, Square: sq(5, 1), HasMoved: true},
		&Piece{Type: Queen, Side: Home, Square: sq(6, 2)},
	)
	if got := (Chess{}).IsTerminal(b, Away); got != Stalemate {
		t.Fatalf("IsTerminal = %v, want Stalemate", got)
	}
}

func TestThreefoldRepetitionClaim(t *testing.T) {
	g := NewGame()

	// Shuffling the knights out and back revisits the starting position
	// twice, which makes three occurrences including the start itself.
	playMoves(t, g, "g1f3", "g8f6", "f3g1", "f6g8")
	if g.OutstandingDrawClaim() != GameNotComplete {
		t.Fatalf("two occurrences must not open a claim")
	}
	if err := g.ClaimDraw(Home, ThreefoldRepetition); !errors.Is(err, ErrInvalidDrawClaim) {
		t.Fatalf("premature claim: got %v, want ErrInvalidDrawClaim", err)
	}

	playMoves(t, g, "g1f3", "g8f6", "f3g1", "f6g8")
	if g.OutstandingDrawClaim() != ThreefoldRepetition {
		t.Fatalf("claim = %v, want ThreefoldRepetition", g.OutstandingDrawClaim())
	}
	if err := g.ClaimDraw(Home, FiftyMoveRule); !errors.Is(err, ErrInvalidDrawClaim) {
		t.Fatalf("wrong claim reason: got %v, want ErrInvalidDrawClaim", err)
	}
	if err := g.ClaimDraw(Home, ThreefoldRepetition); err != nil {
		t.Fatalf("ClaimDraw: %v", err)
	}
	if g.Conclusion() != ThreefoldRepetition || g.Winner() != Draw {
		t.Fatalf("conclusion = %v winner = %v, want threefold draw", g.Conclusion(), g.Winner())
	}
}

func TestClaimIsNotAutomatic(t *testing.T) {
	g := NewGame()
	playMoves(t, g,
		"g1f3", "g8f6", "f3g1", "f6g8",
		"g1f3", "g8f6", "f3g1", "f6g8",
	)
	if g.State() == Concluded {
		t.Fatalf("repetition alone must not end the game")
	}
	// Playing on is allowed; the claim lapses when the position moves on.
	playMoves(t, g, "e2e4")
	if g.OutstandingDrawClaim() != GameNotComplete {
		t.Fatalf("claim should lapse after a non-repeating move")
	}
}

func TestFiftyMoveClaim(t *testing.T) {
	g := NewGame()
	g.TurnNumber = 50
	g.LastIrreversibleTurn = 1
	playMoves(t, g, "g1f3")

	if g.OutstandingDrawClaim() != FiftyMoveRule {
		t.Fatalf("claim = %v, want FiftyMoveRule", g.OutstandingDrawClaim())
	}
	if err := g.ClaimDraw(Away, FiftyMoveRule); err != nil {
		t.Fatalf("ClaimDraw: %v", err)
	}
	if g.Conclusion() != FiftyMoveRule || g.Winner() != Draw {
		t.Fatalf("conclusion = %v winner = %v, want fifty-move draw", g.Conclusion(), g.Winner())
	}
}

func TestPawnMoveResetsFiftyMoveCount(t *testing.T) {
	g := NewGame()
	g.TurnNumber = 50
	g.LastIrreversibleTurn = 1
	playMoves(t, g, "e2e4")

	if g.OutstandingDrawClaim() != GameNotComplete {
		t.Fatalf("a pawn move must reset the fifty-move count")
	}
	if g.LastIrreversibleTurn != g.TurnNumber {
		t.Fatalf("pawn move should mark the current turn irreversible")
	}
}

func TestDrawOffers(t *testing.T) {
	g := NewGame()
	if err := g.OfferDraw(Home); err != nil {
		t.Fatalf("OfferDraw: %v", err)
	}
	if !g.OfferingDraw(Home) || g.OfferingDraw(Away) {
		t.Fatalf("only home should have a standing offer")
	}

	// A move withdraws standing offers.
	playMoves(t, g, "e2e4")
	if g.OfferingDraw(Home) {
		t.Fatalf("offers should lapse when a move is played")
	}

	if err := g.OfferDraw(Away); err != nil {
		t.Fatalf("OfferDraw: %v", err)
	}
	if g.State() == Concluded {
		t.Fatalf("an offer alone must not end the game")
	}
	// The offerer cannot accept their own offer.
	if err := g.ClaimDraw(Away, AgreedDraw); !errors.Is(err, ErrInvalidDrawClaim) {
		t.Fatalf("claiming one's own offer: got %v, want ErrInvalidDrawClaim", err)
	}
	if err := g.ClaimDraw(Home, AgreedDraw); err != nil {
		t.Fatalf("ClaimDraw: %v", err)
	}
	if g.Conclusion() != AgreedDraw || g.Winner() != Draw {
		t.Fatalf("accepting the offer should conclude an agreed draw")
	}
}

func TestAgreedDrawNeedsAnOffer(t *testing.T) {
	g := NewGame()
	if err := g.ClaimDraw(Home, AgreedDraw); !errors.Is(err, ErrInvalidDrawClaim) {
		t.Fatalf("claim without an offer: got %v, want ErrInvalidDrawClaim", err)
	}
	if g.State() == Concluded {
		t.Fatalf("rejected claim must not end the game")
	}
}

func TestResignOnOwnTurn(t *testing.T) {
	g := NewGame()
	if err := g.Resign(Home); err != nil {
		t.Fatalf("Resign: %v", err)
	}
	if g.TurnNumber != 1 || g.CurrentTurn != Home {
		t.Fatalf("resigning on one's own turn must not consume a ply")
	}
	if g.Conclusion() != Resign || g.Winner() != AwayWins {
		t.Fatalf("conclusion = %v winner = %v, want resign/away", g.Conclusion(), g.Winner())
	}
}

func TestResignOutOfTurn(t *testing.T) {
	g := NewGame()
	if err := g.Resign(Away); err != nil {
		t.Fatalf("Resign: %v", err)
	}
	// The turn passes to the resigner so the record shows them on move.
	if g.TurnNumber != 2 || g.CurrentTurn != Away {
		t.Fatalf("turn=%d current=%v, want the ply consumed and away on move", g.TurnNumber, g.CurrentTurn)
	}
	if g.Winner() != HomeWins {
		t.Fatalf("winner = %v, want HomeWins", g.Winner())
	}
}

func TestTimeout(t *testing.T) {
	g := NewGame()
	if err := g.Timeout(Home); err != nil {
		t.Fatalf("Timeout: %v", err)
	}
	if g.Conclusion() != Timeout || g.Winner() != AwayWins {
		t.Fatalf("conclusion = %v winner = %v, want timeout/away", g.Conclusion(), g.Winner())
	}
	if err := g.Timeout(Away); !errors.Is(err, ErrGameConcluded) {
		t.Fatalf("second timeout: got %v, want ErrGameConcluded", err)
	}
}

func TestPromotionErrors(t *testing.T) {
	g := NewGame(WithGamemode(promotionLayout{}))

	err := g.ApplyMove(Home, sq(6, 0), sq(7, 0), NoPiece)
	if !errors.Is(err, ErrPromotionRequired) {
		t.Fatalf("missing promotion piece: got %v, want ErrPromotionRequired", err)
	}
	if g.TurnNumber != 1 {
		t.Fatalf("failed promotion must not consume a turn")
	}
	if p, ok := g.BoardSnapshot()[sq(6, 0)]; !ok || p.Type != Pawn {
		t.Fatalf("failed promotion must leave the pawn in place")
	}

	err = g.ApplyMove(Home, sq(6, 0), sq(7, 0), King)
	if !errors.Is(err, ErrInvalidPromotionPiece) {
		t.Fatalf("promotion to king: got %v, want ErrInvalidPromotionPiece", err)
	}
	err = g.ApplyMove(Home, sq(6, 0), sq(7, 0), Pawn)
	if !errors.Is(err, ErrInvalidPromotionPiece) {
		t.Fatalf("promotion to pawn: got %v, want ErrInvalidPromotionPiece", err)
	}

	if err := g.ApplyMove(Home, sq(6, 0), sq(7, 0), Queen); err != nil {
		t.Fatalf("ApplyMove promote: %v", err)
	}
	if p, ok := g.BoardSnapshot()[sq(7, 0)]; !ok || p.Type != Queen {
		t.Fatalf("pawn should have become a queen on a8")
	}
}

func TestConcludedGuards(t *testing.T) {
	g := NewGame()
	if err := g.Resign(Home); err != nil {
		t.Fatalf("Resign: %v", err)
	}
	if err := g.OfferDraw(Away); !errors.Is(err, ErrGameConcluded) {
		t.Fatalf("OfferDraw after conclusion: got %v", err)
	}
	if err := g.ClaimDraw(Away, ThreefoldRepetition); !errors.Is(err, ErrGameConcluded) {
		t.Fatalf("ClaimDraw after conclusion: got %v", err)
	}
	if err := g.Resign(Away); !errors.Is(err, ErrGameConcluded) {
		t.Fatalf("Resign after conclusion: got %v", err)
	}
}
