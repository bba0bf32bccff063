package domain

import "errors"

var (
	// ErrSessionExpired indicates the server no longer recognizes the session.
	ErrSessionExpired = errors.New("session expired")

	// ErrEmptyBody indicates the user submitted a body that is empty after trimming.
	ErrEmptyBody = errors.New("body cannot be empty")
)
