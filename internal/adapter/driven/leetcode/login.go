package leetcode

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/ericfisherdev/ojcli/internal/domain/model"
	"github.com/ericfisherdev/ojcli/internal/domain/port/driven"
)

// credService is the credential-store service name for the platform login.
const credService = "leetcode"

// Login discards any current session and establishes a fresh one from the
// stored credential.
func (c *Client) Login(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.session = nil
	_, err := c.loginLocked(ctx)
	return err
}

// Logout drops the in-memory session and removes the persisted one.
func (c *Client) Logout(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.session = nil
	return c.sessions.Invalidate(ctx)
}

// loginLocked performs the two-step login flow: prime a CSRF cookie from the
// login page, then post the credential form. Callers must hold c.mu — the
// lock is what guarantees at most one login attempt runs at a time.
// The credential value is never logged.
func (c *Client) loginLocked(ctx context.Context) (*model.Session, error) {
	username, err := c.creds.Get(ctx, credService, "username")
	if err != nil {
		return nil, err
	}
	password, err := c.creds.Get(ctx, credService, "password")
	if err != nil {
		return nil, err
	}
	if username == "" || password == "" {
		return nil, driven.ErrNotAuthenticated
	}

	reqID := uuid.NewString()
	slog.Info("logging in", "username", username, "request_id", reqID)

	page, err := c.roundTrip(ctx, epLoginPage, c.baseURL+epLoginPage.path, "", nil, nil, reqID)
	if err != nil {
		return nil, err
	}

	boot := &model.Session{}
	for _, ck := range page.cookies {
		boot.Cookies = append(boot.Cookies, model.Cookie{Name: ck.Name, Value: ck.Value})
	}
	boot.CSRFToken = boot.Cookie(csrfCookieName)
	if boot.CSRFToken == "" {
		return nil, fmt.Errorf("login: no csrf cookie on login page: %w", driven.ErrProtocol)
	}

	form := url.Values{
		"csrfmiddlewaretoken": {boot.CSRFToken},
		"login":               {username},
		"password":            {password},
	}
	resp, err := c.roundTrip(ctx, epLogin, c.baseURL+epLogin.path, c.baseURL+epLogin.referer,
		[]byte(form.Encode()), boot, reqID)
	if err != nil {
		return nil, err
	}

	sess := &model.Session{
		Cookies:       append([]model.Cookie(nil), boot.Cookies...),
		EstablishedAt: time.Now().UTC(),
	}
	updates := make([]model.Cookie, 0, len(resp.cookies))
	for _, ck := range resp.cookies {
		updates = append(updates, model.Cookie{Name: ck.Name, Value: ck.Value})
	}
	sess.MergeCookies(updates)
	sess.CSRFToken = sess.Cookie(csrfCookieName)

	if sess.Cookie(sessionCookieName) == "" || !sess.Valid() {
		return nil, fmt.Errorf("login rejected for %q: %w", username, driven.ErrAuthenticationFailed)
	}

	if err := c.sessions.Save(ctx, sess); err != nil {
		slog.Error("persist fresh session", "error", err)
	}
	c.session = sess
	slog.Info("login succeeded", "username", username, "request_id", reqID)

	return sess, nil
}
