package reviewcodes

import "errors"

var (
	ErrInvalidCode        = errors.New("Invalid Review Code")
	ErrCodeAlreadyUsed    = errors.New("This code has already been used!")
	ErrCodeSpaceExhausted = errors.New("Could not generate a unique review code")
)
