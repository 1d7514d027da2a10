package errorx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{ErrCartNotFound, http.StatusNotFound},
		{fmt.Errorf("lookup: %w", ErrOrderNotFound), http.StatusNotFound},
		{ErrEmptyCartCommit, http.StatusBadRequest},
		{fmt.Errorf("%w: rice is not in the cart", ErrConfirmMismatch), http.StatusBadRequest},
		{fmt.Errorf("%w: confirm from BUILDING", ErrInvalidCartState), http.StatusConflict},
		{NewBusinessError(http.StatusTeapot, "custom"), http.StatusTeapot},
	}
	for _, tc := range tests {
		t.Run(tc.err.Error(), func(t *testing.T) {
			be, ok := FromError(tc.err)
			require.True(t, ok)
			assert.Equal(t, tc.code, be.Code)
			assert.Equal(t, tc.err.Error(), be.Message)
		})
	}
}

func TestFromErrorUnexpected(t *testing.T) {
	_, ok := FromError(errors.New("connection refused"))
	assert.False(t, ok)
}

func TestBusinessErrorUnwrap(t *testing.T) {
	be := NewBusinessError(http.StatusBadRequest, "bad").WithDetail("customer_id", "required").Wrap(ErrEmptyCartCommit)
	assert.ErrorIs(t, be, ErrEmptyCartCommit)
	assert.Len(t, be.Details, 1)
}
