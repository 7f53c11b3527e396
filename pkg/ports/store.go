package ports

import (
	"context"

	"github.com/blocksecure/tradedesk/pkg/domain"
)

// SessionStore persists per-user conversation sessions, keyed by user ID.
type SessionStore interface {
	// Save stores or replaces the session for its user ID.
	Save(ctx context.Context, session *domain.Session) error

	// Load retrieves the session for a user ID.
	// Returns domain.ErrSessionNotFound if none exists.
	Load(ctx context.Context, userID string) (*domain.Session, error)

	// Delete removes the session for a user ID. Deleting a missing session
	// is not an error.
	Delete(ctx context.Context, userID string) error

	// List returns the user IDs of all stored sessions.
	List(ctx context.Context) ([]string, error)
}
