package user

import "errors"

var (
	// ErrEmailTaken is returned when the signup email already has an account.
	ErrEmailTaken = errors.New("email is already registered")
	// ErrInvalidCredentials is returned for a bad email/password pair.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNotFound is returned when the user does not exist.
	ErrNotFound = errors.New("user not found")
)
