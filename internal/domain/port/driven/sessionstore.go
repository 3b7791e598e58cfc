package driven

import (
	"context"

	"github.com/ericfisherdev/ojcli/internal/domain/model"
)

// SessionStore defines the driven port for durable session persistence.
// Sessions are short-lived platform state and live apart from the long-lived
// credential store.
type SessionStore interface {
	// Load returns the persisted session, or nil when none exists. Missing,
	// corrupt, partial, or version-mismatched data all load as nil — never an
	// error, because re-authentication is always a safe fallback.
	Load(ctx context.Context) (*model.Session, error)

	// Save persists the session atomically; a cancelled write leaves the
	// previous state intact.
	Save(ctx context.Context, s *model.Session) error

	// Invalidate removes any persisted session.
	Invalidate(ctx context.Context) error
}
