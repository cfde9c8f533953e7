package gamedto

import "time"

// ClockState is one side's remaining budget in milliseconds.
type ClockState struct {
	HomeRemainingMs int64     `json:"home_remaining_ms"`
	AwayRemainingMs int64     `json:"away_remaining_ms"`
	LastTurnAt      time.Time `json:"last_turn_at"`
}

// GameState is the full client view of a match.
type GameState struct {
	ID    string   `json:"id"`
	FEN   string   `json:"fen"`
	Moves []string `json:"moves"`
	Turn  string   `json:"turn"`

	Status     string `json:"status"`
	Conclusion string `json:"conclusion,omitempty"`
	Winner     string `json:"winner,omitempty"`

	HomeID   string `json:"home_id"`
	HomeName string `json:"home_name"`
	AwayID   string `json:"away_id"`
	AwayName string `json:"away_name"`

	InCheck    bool     `json:"in_check"`
	LegalMoves []string `json:"legal_moves,omitempty"`

	HomeOffersDraw bool   `json:"home_offers_draw"`
	AwayOffersDraw bool   `json:"away_offers_draw"`
	DrawClaim      string `json:"draw_claim,omitempty"`

	Clock *ClockState `json:"clock,omitempty"`
}
