package errorx

import (
	"errors"
	"net/http"
)

// FromError maps a service error onto the business error the HTTP layer
// renders. ok is false for unexpected errors, which are internal.
func FromError(err error) (*BusinessError, bool) {
	var be *BusinessError
	if errors.As(err, &be) {
		return be, true
	}

	switch {
	case errors.Is(err, ErrCartNotFound), errors.Is(err, ErrOrderNotFound):
		return NewBusinessError(http.StatusNotFound, err.Error()).Wrap(err), true
	case errors.Is(err, ErrEmptyCartCommit), errors.Is(err, ErrConfirmMismatch), errors.Is(err, ErrUnknownCommand):
		return NewBusinessError(http.StatusBadRequest, err.Error()).Wrap(err), true
	case errors.Is(err, ErrInvalidCartState):
		return NewBusinessError(http.StatusConflict, err.Error()).Wrap(err), true
	}
	return nil, false
}
