package match

import (
	"context"
	"errors"

	"github.com/kasupel/kasupel/internal/engine"
	"github.com/kasupel/kasupel/pkg/gamedto"
)

// Describe builds the client view of a game, including the derived position
// and the legal moves for the side to play.
func (m *Manager) Describe(ctx context.Context, gameID string) (*gamedto.GameState, error) {
	g, err := m.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	eg, err := m.rebuild(g)
	if err != nil {
		return nil, err
	}

	state := &gamedto.GameState{
		ID:             g.ID,
		FEN:            eg.FEN(),
		Moves:          append([]string(nil), g.Moves...),
		Turn:           g.Turn,
		Status:         string(g.Status),
		Conclusion:     g.Conclusion,
		Winner:         g.Winner,
		HomeID:         g.HomeID,
		HomeName:       g.HomeName,
		AwayID:         g.AwayID,
		AwayName:       g.AwayName,
		HomeOffersDraw: g.HomeOffersDraw,
		AwayOffersDraw: g.AwayOffersDraw,
		DrawClaim:      g.DrawClaim,
	}
	if g.Status == StatusActive {
		state.InCheck = eg.InCheck()
		for _, mv := range eg.LegalMoves() {
			cm := engine.CoordinateMove{From: mv.From, To: mv.To}
			state.LegalMoves = append(state.LegalMoves, engine.FormatCoordinateMove(cm))
		}
	}
	if timed(g) {
		state.Clock = &gamedto.ClockState{
			HomeRemainingMs: g.HomeRemainingMs,
			AwayRemainingMs: g.AwayRemainingMs,
			LastTurnAt:      g.LastTurnAt,
		}
	}
	return state, nil
}

// ErrorDTO maps engine and match errors onto stable client error codes.
func ErrorDTO(err error) gamedto.Error {
	switch {
	case errors.Is(err, ErrGameNotFound):
		return gamedto.Error{Code: gamedto.CodeGameNotFound, Message: "game not found"}
	case errors.Is(err, ErrNotParticipant):
		return gamedto.Error{Code: gamedto.CodeNotParticipant, Message: "you are not in this game"}
	case errors.Is(err, ErrNotYourTurn):
		return gamedto.Error{Code: gamedto.CodeNotYourTurn, Message: "it is not your turn"}
	case errors.Is(err, engine.ErrIllegalMove):
		return gamedto.Error{Code: gamedto.CodeIllegalMove, Message: "illegal move"}
	case errors.Is(err, engine.ErrPromotionRequired):
		return gamedto.Error{Code: gamedto.CodePromotionRequired, Message: "promotion piece required"}
	case errors.Is(err, engine.ErrInvalidPromotionPiece):
		return gamedto.Error{Code: gamedto.CodeInvalidPromotionPiece, Message: "invalid promotion piece"}
	case errors.Is(err, engine.ErrInvalidDrawClaim):
		return gamedto.Error{Code: gamedto.CodeInvalidDrawClaim, Message: "invalid draw claim"}
	case errors.Is(err, engine.ErrGameConcluded), errors.Is(err, ErrGameNotActive):
		return gamedto.Error{Code: gamedto.CodeGameConcluded, Message: "game already concluded"}
	}
	return gamedto.Error{Code: gamedto.CodeInternal, Message: err.Error()}
}
