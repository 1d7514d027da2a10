package errorx

import "errors"

// Business errors surfaced to the HTTP layer
var (
	ErrCartNotFound     = errors.New("cart not found")
	ErrInvalidCartState = errors.New("cart is not in a state that allows this operation")
	ErrEmptyCartCommit  = errors.New("cart has no available lines to commit")
	ErrConfirmMismatch  = errors.New("confirmed items do not match the cart")
	ErrOrderNotFound    = errors.New("order not found")
	ErrUnknownCommand   = errors.New("could not understand the request")
)

// BusinessError error with an HTTP-ish code and field details
type BusinessError struct {
	Code    int
	Message string
	Details []ErrorDetail
	Err     error
}

// ErrorDetail one offending field or line
type ErrorDetail struct {
	Path string
	Info string
}

func (e *BusinessError) Error() string {
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a business error
func NewBusinessError(code int, message string) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
	}
}

// WithDetail appends a detail and returns e for chaining
func (e *BusinessError) WithDetail(path, info string) *BusinessError {
	e.Details = append(e.Details, ErrorDetail{Path: path, Info: info})
	return e
}

// Wrap attaches the underlying sentinel so errors.Is keeps working
func (e *BusinessError) Wrap(err error) *BusinessError {
	e.Err = err
	return e
}
