package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrAdmissionDenied = errors.New("session limit reached")
	ErrGameFinished    = errors.New("game is already finished")
	ErrNotYourTurn     = errors.New("it's not your turn")
	ErrOpponentBusy    = errors.New("opponent reply is in flight")
	ErrInvalidMove     = errors.New("invalid move")
)

// Opponent service taxonomy.
var (
	ErrServiceUnavailable = errors.New("opponent service unavailable")
	ErrStrategyFailure    = errors.New("opponent strategy failure")
	ErrNoValidMoves       = errors.New("no valid moves available")
	ErrConfiguration      = errors.New("opponent service configuration error")
	ErrTimeout            = errors.New("opponent computation timed out")
)

// OpponentThinkingError - terminal failure of the opponent reply after the
// fallback/retry policy is exhausted. The human move that preceded it stays
// applied.
type OpponentThinkingError struct {
	Attempts int
	Last     error
}

func (that *OpponentThinkingError) Error() string {
	return fmt.Sprintf("opponent failed to reply after %d attempts: %v", that.Attempts, that.Last)
}

func (that *OpponentThinkingError) Unwrap() error {
	return that.Last
}
