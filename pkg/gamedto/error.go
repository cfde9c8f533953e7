// Package gamedto holds the wire-level shapes shared with clients. It has no
// dependencies on the engine or the match manager.
package gamedto

import "fmt"

// Error is a client-facing failure with a stable numeric code. Codes in the
// 23xx range cover game-play failures.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("game error %d", e.Code)
}

const (
	CodeGameNotFound          = 2310
	CodeNotParticipant        = 2311
	CodeNotYourTurn           = 2312
	CodeIllegalMove           = 2313
	CodePromotionRequired     = 2314
	CodeInvalidPromotionPiece = 2315
	CodeGameConcluded         = 2316
	CodeInvalidDrawClaim      = 2322
	CodeInternal              = 2399
)
