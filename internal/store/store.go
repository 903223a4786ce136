// Package store defines the persistence boundary for the assistant's local
// state: the directory of registered users, the current-identity pointer and
// per-user transcripts. Implementations live under internal/store/<driver>/
// (memstore, sqlitestore). The orchestrator and services take a Store rather
// than reaching for ambient storage, so tests substitute memstore freely.
package store

import (
	"context"

	"github.com/Osisami00/Nelfund-Project/internal/model"
)

// Store exposes the three collections the assistant persists.
type Store interface {
	Directory() Directory
	Current() Current
	Transcripts() Transcripts
}

// Directory maps canonical phone numbers to registered users. It grows
// monotonically; nothing in the assistant ever prunes it.
type Directory interface {
	// Put inserts or replaces the entry for u.Phone. Replacement is how
	// login persists a refreshed session token.
	Put(ctx context.Context, u *model.User) error
	// GetByPhone returns the entry for a canonical phone number, or
	// model.ErrNotFound.
	GetByPhone(ctx context.Context, phone string) (*model.User, error)
	// All returns every directory entry.
	All(ctx context.Context) ([]*model.User, error)
}

// Current is the persisted pointer to the active user. At most one at a
// time; absence means no active identity.
type Current interface {
	Set(ctx context.Context, u *model.User) error
	// Get returns the active user, or model.ErrNotFound when none is set.
	Get(ctx context.Context) (*model.User, error)
	Clear(ctx context.Context) error
}

// Transcripts holds per-user message histories keyed by user ID (stable
// across logins; a guest's ephemeral ID gives it an isolated namespace).
type Transcripts interface {
	// Append adds m to the end of userID's transcript.
	Append(ctx context.Context, userID string, m *model.Message) error
	// List returns the transcript in insertion order; empty when none.
	List(ctx context.Context, userID string) ([]*model.Message, error)
	// Clear deletes the transcript wholesale.
	Clear(ctx context.Context, userID string) error
}
