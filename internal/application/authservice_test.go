package application

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/ojcli/internal/domain/port/driven"
)

// memCreds is an in-memory CredentialStore.
type memCreds struct {
	mu   sync.Mutex
	vals map[string]string
}

func newMemCreds() *memCreds {
	return &memCreds{vals: make(map[string]string)}
}

func (c *memCreds) Set(_ context.Context, service, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals[service+"/"+key] = value
	return nil
}

func (c *memCreds) Get(_ context.Context, service, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.vals[service+"/"+key], nil
}

func (c *memCreds) Delete(_ context.Context, service string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.vals {
		if strings.HasPrefix(k, service+"/") {
			delete(c.vals, k)
		}
	}
	return nil
}

var _ driven.CredentialStore = (*memCreds)(nil)

// authJudge extends fakeJudge with programmable login behavior.
type authJudge struct {
	fakeJudge
	loginErr    error
	logoutCalls int
}

func (j *authJudge) Login(context.Context) error { return j.loginErr }

func (j *authJudge) Logout(context.Context) error {
	j.logoutCalls++
	return nil
}

func TestAuthLogin_StoresCredentialOnSuccess(t *testing.T) {
	creds := newMemCreds()
	svc := NewAuthService(creds, &authJudge{}, "judge")

	require.NoError(t, svc.Login(context.Background(), "alice", "s3cret"))

	u, _ := creds.Get(context.Background(), "judge", "username")
	p, _ := creds.Get(context.Background(), "judge", "password")
	assert.Equal(t, "alice", u)
	assert.Equal(t, "s3cret", p)
}

func TestAuthLogin_RemovesRejectedCredential(t *testing.T) {
	creds := newMemCreds()
	judge := &authJudge{loginErr: driven.ErrAuthenticationFailed}
	svc := NewAuthService(creds, judge, "judge")

	err := svc.Login(context.Background(), "alice", "wrong")
	require.Error(t, err)
	assert.True(t, errors.Is(err, driven.ErrAuthenticationFailed))

	u, _ := creds.Get(context.Background(), "judge", "username")
	p, _ := creds.Get(context.Background(), "judge", "password")
	assert.Empty(t, u)
	assert.Empty(t, p)
}

func TestAuthLogin_KeepsCredentialOnTransientFailure(t *testing.T) {
	// A network outage during validation is not a rejection; the stored
	// credential may be perfectly valid and must survive.
	creds := newMemCreds()
	judge := &authJudge{loginErr: driven.ErrNetworkUnavailable}
	svc := NewAuthService(creds, judge, "judge")

	err := svc.Login(context.Background(), "alice", "s3cret")
	require.Error(t, err)
	assert.True(t, errors.Is(err, driven.ErrNetworkUnavailable))

	u, _ := creds.Get(context.Background(), "judge", "username")
	p, _ := creds.Get(context.Background(), "judge", "password")
	assert.Equal(t, "alice", u)
	assert.Equal(t, "s3cret", p)
}

func TestAuthLogin_RejectsEmptyInput(t *testing.T) {
	svc := NewAuthService(newMemCreds(), &authJudge{}, "judge")

	assert.Error(t, svc.Login(context.Background(), "", "pw"))
	assert.Error(t, svc.Login(context.Background(), "alice", ""))
}

func TestAuthLogout_ClearsSessionAndCredential(t *testing.T) {
	creds := newMemCreds()
	judge := &authJudge{}
	svc := NewAuthService(creds, judge, "judge")
	require.NoError(t, svc.Login(context.Background(), "alice", "s3cret"))

	require.NoError(t, svc.Logout(context.Background()))

	assert.Equal(t, 1, judge.logoutCalls)
	u, _ := creds.Get(context.Background(), "judge", "username")
	assert.Empty(t, u)
}
