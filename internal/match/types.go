package match

import (
	"errors"
	"time"
)

// Status represents a match lifecycle state.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusFinished Status = "FINISHED"
	StatusDraw     Status = "DRAW"
)

var (
	ErrGameNotFound   = errors.New("game not found")
	ErrNotParticipant = errors.New("user not in game")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrGameNotActive  = errors.New("game not active")
	ErrInvalidArgs    = errors.New("invalid arguments")
)

// TimeControlSpec is the stored form of a time control, in milliseconds so
// the JSON stays stable across clients.
type TimeControlSpec struct {
	InitialMs    int64 `json:"initial_ms"`
	IncrementMs  int64 `json:"increment_ms"`
	FixedExtraMs int64 `json:"fixed_extra_ms"`
}

// Game is the persisted state of a match. The move list in coordinate
// notation is the source of truth; everything else is derived from replaying
// it and kept here for indexing and presentation.
type Game struct {
	ID    string   `json:"id"`
	Moves []string `json:"moves"`
	Turn  string   `json:"turn"`

	Status     Status `json:"status"`
	Winner     string `json:"winner,omitempty"`
	Conclusion string `json:"conclusion,omitempty"`

	HomeID   string `json:"home_id"`
	HomeName string `json:"home_name"`
	AwayID   string `json:"away_id"`
	AwayName string `json:"away_name"`

	TimeControl     TimeControlSpec `json:"time_control"`
	HomeRemainingMs int64           `json:"home_remaining_ms"`
	AwayRemainingMs int64           `json:"away_remaining_ms"`
	LastTurnAt      time.Time       `json:"last_turn_at"`

	HomeOffersDraw bool   `json:"home_offers_draw"`
	AwayOffersDraw bool   `json:"away_offers_draw"`
	DrawClaim      string `json:"draw_claim,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
