// Package repository keeps session state in memory.
//
// Sessions live only as long as the process; nothing is persisted.
package repository

import (
	"context"

	"github.com/okian/mindease/internal/domain/session"
)

// Store provides read/write access to session state.
type Store interface {
	// Get returns the session, or ErrNotFound.
	Get(ctx context.Context, id string) (session.State, error)

	// GetOrCreate returns the session, creating it in its initial state if
	// needed. created reports whether a new session was made.
	GetOrCreate(ctx context.Context, id string) (st session.State, created bool, err error)

	// Dispatch applies an action atomically and returns the new state. On
	// error the stored state is unchanged.
	Dispatch(ctx context.Context, id string, a session.Action) (session.State, error)

	// Count returns the number of live sessions.
	Count(ctx context.Context) int
}
