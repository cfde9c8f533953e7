package engine

import "errors"

// Typed results of the mutating operations. Every error is surfaced verbatim
// to the caller; nothing is retried internally.
var (
	ErrIllegalMove           = errors.New("illegal move")
	ErrPromotionRequired     = errors.New("promotion piece required")
	ErrInvalidPromotionPiece = errors.New("invalid promotion piece")
	ErrInvalidDrawClaim      = errors.New("invalid draw claim")
	ErrGameConcluded         = errors.New("game already concluded")
)
