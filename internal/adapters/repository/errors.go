package repository

import "errors"

// Sentinel kinds for session store errors.
var (
	ErrNotFound     = errors.New("session not found")
	ErrSessionLimit = errors.New("session limit reached")
	ErrInvalidID    = errors.New("invalid session id")
)
