package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ericfisherdev/ojcli/internal/domain/port/driven"
)

// AuthService owns the credential lifecycle: created on login, destroyed on
// logout, read-only everywhere else.
type AuthService struct {
	creds   driven.CredentialStore
	client  driven.JudgeClient
	service string // Credential-store service name.
}

// NewAuthService creates an AuthService storing credentials under the given
// service name.
func NewAuthService(creds driven.CredentialStore, client driven.JudgeClient, service string) *AuthService {
	return &AuthService{
		creds:   creds,
		client:  client,
		service: service,
	}
}

// Login stores the credential and validates it by establishing a fresh
// session. A rejected credential is removed again so later calls fail with
// ErrNotAuthenticated instead of retrying a known-bad login; any other login
// failure (network down, protocol mismatch) keeps the credential, since it
// may well be valid.
func (a *AuthService) Login(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("login: username and password are required")
	}

	if err := a.creds.Set(ctx, a.service, "username", username); err != nil {
		return err
	}
	if err := a.creds.Set(ctx, a.service, "password", password); err != nil {
		return err
	}

	if err := a.client.Login(ctx); err != nil {
		if errors.Is(err, driven.ErrAuthenticationFailed) {
			if delErr := a.creds.Delete(ctx, a.service); delErr != nil {
				slog.Error("remove rejected credential", "error", delErr)
			}
		}
		return err
	}

	slog.Info("logged in", "username", username)
	return nil
}

// Logout invalidates the session and destroys the stored credential.
func (a *AuthService) Logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		return err
	}
	if err := a.creds.Delete(ctx, a.service); err != nil {
		return err
	}

	slog.Info("logged out")
	return nil
}
