package domain

import "errors"

var (
	ErrNotFound     = errors.New("Record not found")
	ErrUnauthorized = errors.New("Unauthorized")
	ErrUpstream     = errors.New("Upstream service failure")
)

// ValidationError reports a request that is missing or has malformed fields.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Invalid returns a *ValidationError with the given message.
func Invalid(message string) error {
	return &ValidationError{Message: message}
}
