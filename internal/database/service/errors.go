package service

import (
	"errors"
)

// ValidationError is a rejected input. Message is safe to show to the user.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AuthenticationError is a failed credential check. Message is safe to show
// to the user.
type AuthenticationError struct {
	Code    string
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// Signup and note validation errors
var (
	ErrAccountExists    = &ValidationError{Code: "ACCOUNT_EXISTS", Message: "Account already exists. Please log in."}
	ErrEmailTooShort    = &ValidationError{Code: "EMAIL_TOO_SHORT", Message: "Email must be more than 4 characters."}
	ErrEmailTooLong     = &ValidationError{Code: "EMAIL_TOO_LONG", Message: "Email must be at most 150 characters."}
	ErrNameTooShort     = &ValidationError{Code: "NAME_TOO_SHORT", Message: "Name must be more than 1 characters."}
	ErrNameTooLong      = &ValidationError{Code: "NAME_TOO_LONG", Message: "Name must be at most 150 characters."}
	ErrPasswordMismatch = &ValidationError{Code: "PASSWORD_MISMATCH", Message: "Passwords do not match."}
	ErrPasswordTooShort = &ValidationError{Code: "PASSWORD_TOO_SHORT", Message: "Passwords must be at least 8 characters."}
	ErrPasswordTooLong  = &ValidationError{Code: "PASSWORD_TOO_LONG", Message: "Passwords must be at most 72 bytes."}
	ErrEmptyContent     = &ValidationError{Code: "EMPTY_CONTENT", Message: "Note is empty."}
	ErrNoteTooLong      = &ValidationError{Code: "NOTE_TOO_LONG", Message: "Note must be at most 1000 characters."}
)

// Login errors
var (
	ErrNoSuchUser        = &AuthenticationError{Code: "NO_SUCH_USER", Message: "No such user. Please sign up"}
	ErrIncorrectPassword = &AuthenticationError{Code: "INCORRECT_PASSWORD", Message: "Incorrect password"}
)

// Service errors
var (
	ErrIntegrity      = errors.New("integrity constraint violated")
	ErrInvalidSession = errors.New("invalid or expired session")
)

// UserMessage returns the user-facing text for err and whether err carries one
func UserMessage(err error) (string, bool) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message, true
	}
	var authErr *AuthenticationError
	if errors.As(err, &authErr) {
		return authErr.Message, true
	}
	return "", false
}
