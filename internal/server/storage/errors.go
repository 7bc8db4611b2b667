package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this username already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrTokenNotFound indicates that refresh token was not found
	ErrTokenNotFound = errors.New("refresh token not found")

	// ErrRecordNotFound indicates that record was not found in the user's collection
	ErrRecordNotFound = errors.New("record not found")

	// ErrVersionConflict indicates that update was based on a stale record version
	ErrVersionConflict = errors.New("record version conflict")
)
