package driven

import "errors"

// Error taxonomy for the session and cache core. Adapters classify underlying
// failures into exactly one of these sentinels (wrapped with operation
// context) so that callers can select recovery behavior with errors.Is.
var (
	// ErrCredentialUnavailable means the secure credential store cannot be
	// used at all (no encryption key, storage inaccessible). Fatal to any
	// operation that needs a login; requires user action.
	ErrCredentialUnavailable = errors.New("credential store unavailable: set OJCLI_SECRET_KEY")

	// ErrNotAuthenticated means no session exists and no stored credential is
	// available to establish one. Recovered by running the login command.
	ErrNotAuthenticated = errors.New("not authenticated: run ojcli login")

	// ErrAuthenticationFailed means the platform rejected the session and the
	// single re-login attempt also failed. Terminal for the call; the stored
	// credential is likely wrong.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrNetworkUnavailable means transport-level failures persisted through
	// the bounded retry budget.
	ErrNetworkUnavailable = errors.New("network unavailable")

	// ErrProtocol means the platform answered with a payload the client does
	// not understand. Never retried; retrying cannot fix a shape mismatch.
	ErrProtocol = errors.New("unexpected platform response")

	// ErrCacheCorruption means local cache storage was unreadable. Callers
	// treat it as a cache miss; a remote re-fetch is always a valid fallback.
	ErrCacheCorruption = errors.New("cache corrupted")
)
