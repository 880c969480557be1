package service

import "errors"

// Sentinel errors returned by the service. Errors from the domain packages
// (session, profile, repository) pass through wrapped.
var (
	ErrNotStarted     = errors.New("service not started")
	ErrEmptyMessage   = errors.New("message is empty")
	ErrMessageTooLong = errors.New("message too long")
	ErrBackpressure   = errors.New("reply queue full")
)
