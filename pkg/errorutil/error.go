package errorutil

import (
	"errors"
	"fmt"
)

// Error carries a retryable flag so queue consumers can decide between
// redelivery and burying a job.
type Error struct {
	Code       int    `json:"code"`
	Message    string `json:"message"`
	Retryable  bool   `json:"retryable"`
	DevDetails string `json:"dev_details,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// Retriable transient failures: network, storage unavailable
func Retriable(message string) *Error {
	return &Error{Code: 500, Message: message, Retryable: true}
}

// RetriableWithDetails transient failure with developer details
func RetriableWithDetails(message string, details string) *Error {
	return &Error{Code: 500, Message: message, Retryable: true, DevDetails: details}
}

// NonRetriable malformed input or broken business rules
func NonRetriable(message string) *Error {
	return &Error{Code: 400, Message: message, Retryable: false}
}

// NonRetriableWithDetails non-retryable failure with developer details
func NonRetriableWithDetails(message string, details string) *Error {
	return &Error{Code: 400, Message: message, Retryable: false, DevDetails: details}
}

// Wrap converts any error into *Error; unknown errors are non-retryable
func Wrap(err error) *Error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return e
	}

	return &Error{
		Code:       500,
		Message:    err.Error(),
		Retryable:  false,
		DevDetails: fmt.Sprintf("%+v", err),
	}
}

// IsRetryable reports whether err asks for redelivery
func IsRetryable(err error) bool {
	if e := Wrap(err); e != nil {
		return e.Retryable
	}
	return false
}
