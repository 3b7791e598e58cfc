package driven

import (
	"context"
)

// CredentialStore defines the driven port for encrypted credential
// persistence. The adapter layer handles encryption; this interface operates
// on plaintext values at the domain boundary. All operations return
// ErrCredentialUnavailable when the underlying store cannot be used.
type CredentialStore interface {
	// Set stores or replaces the credential value for service/key.
	Set(ctx context.Context, service, key, value string) error

	// Get retrieves the plaintext value for service/key.
	// Returns ("", nil) when no such credential exists.
	Get(ctx context.Context, service, key string) (string, error)

	// Delete removes all credentials for the given service.
	Delete(ctx context.Context, service string) error
}
