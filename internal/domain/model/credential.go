package model

import "time"

// Credential holds a stored platform login. Service identifies the remote
// system ("leetcode"), and Key identifies the credential type within that
// service ("username", "password"). Values exist in plaintext only at the
// domain boundary; the storage adapter encrypts them at rest.
type Credential struct {
	ID        int64
	Service   string
	Key       string
	Value     string
	UpdatedAt time.Time
}
