package apperror

import (
	"errors"
	"net/http"

	"gorm.io/gorm"
)

// Sentinel errors for the business-rule taxonomy. Services wrap these with
// fmt.Errorf("...: %w", ...) and controllers map them to HTTP status codes
// with Status.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// ErrIncorrectAnswer signals a wrong answer submission. No state changes.
	ErrIncorrectAnswer = errors.New("incorrect answer")

	// ErrContestCompleted signals that the user's question number has no
	// matching order item. Terminal state, not a failure.
	ErrContestCompleted = errors.New("contest completed")
)

// Status maps an error to the HTTP status code it should be surfaced with.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict), errors.Is(err, gorm.ErrDuplicatedKey):
		return http.StatusConflict
	case errors.Is(err, ErrValidation), errors.Is(err, ErrIncorrectAnswer):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
