// Package leetcode implements the JudgeClient port against the platform's
// cookie-session HTTP API. The client owns session lifecycle: load-on-first-
// use from the session store, login from stored credentials, expiry detection
// with a single re-login remediation, and persistence of server cookie
// refreshes.
package leetcode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/gregjones/httpcache"

	"github.com/ericfisherdev/ojcli/internal/domain/model"
	"github.com/ericfisherdev/ojcli/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.JudgeClient = (*Client)(nil)

// sessionCookieName is the platform cookie whose presence marks a login as
// successful.
const sessionCookieName = "LEETCODE_SESSION"

// csrfCookieName carries the token that must be echoed in the x-csrftoken
// header on every request.
const csrfCookieName = "csrftoken"

// Options configures a Client. Zero values fall back to defaults; the expiry
// signal and retry constants are deliberately configuration, not constants,
// since they are platform behavior that shifts over time.
type Options struct {
	BaseURL          string
	Timeout          time.Duration // Per-request bound; default 30s.
	TransportRetries uint64        // Additional attempts after a transport failure; default 2.
	BackoffInitial   time.Duration // First retry delay; default 250ms.
	Categories       []string      // Problem list categories; default ["algorithms"].
	HTTPClient       *http.Client  // Test injection; default is an ETag-caching client.
}

// Client is the authenticated HTTP gateway to the problem platform.
type Client struct {
	baseURL          string
	http             *http.Client
	creds            driven.CredentialStore
	sessions         driven.SessionStore
	timeout          time.Duration
	transportRetries uint64
	backoffInitial   time.Duration
	categories       []string

	// mu is the single-slot guard around the session pointer and the login
	// sequence: concurrent expiry-triggered re-logins serialize here instead
	// of racing and invalidating each other's fresh tokens. A published
	// Session is immutable; cookie refreshes install a new value rather than
	// mutating in place, so in-flight calls read their session lock-free.
	mu      sync.Mutex
	session *model.Session
}

// NewClient creates a Client using the given credential and session stores.
func NewClient(creds driven.CredentialStore, sessions driven.SessionStore, opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://leetcode.com"
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.TransportRetries == 0 {
		opts.TransportRetries = 2
	}
	if opts.BackoffInitial == 0 {
		opts.BackoffInitial = 250 * time.Millisecond
	}
	if len(opts.Categories) == 0 {
		opts.Categories = []string{"algorithms"}
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		// ETag-conditional caching below the session layer; cookies are
		// managed by this client, not a cookie jar.
		httpClient = &http.Client{Transport: httpcache.NewMemoryCacheTransport()}
	}
	// Login redirects are an auth signal, not something to follow.
	httpClient.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	return &Client{
		baseURL:          opts.BaseURL,
		http:             httpClient,
		creds:            creds,
		sessions:         sessions,
		timeout:          opts.Timeout,
		transportRetries: opts.TransportRetries,
		backoffInitial:   opts.BackoffInitial,
		categories:       opts.Categories,
	}
}

// callClass partitions call outcomes for the failure decision table.
type callClass int

const (
	classOK callClass = iota
	classTransient
	classAuth
	classProtocol
)

// callPolicy is the decision table for failure handling: transient transport
// failures are retried with backoff, an auth rejection gets exactly one
// re-login remediation, and protocol mismatches are surfaced immediately
// because retrying cannot fix a payload-shape disagreement.
var callPolicy = map[callClass]struct {
	retryTransport bool
	reloginOnce    bool
}{
	classOK:        {},
	classTransient: {retryTransport: true},
	classAuth:      {reloginOnce: true},
	classProtocol:  {},
}

// classify maps a response status to its failure class. Session expiry shows
// up either as an explicit 401/403 or as a redirect to the login page.
func classify(r *rawResponse) callClass {
	switch {
	case r.status == http.StatusOK:
		return classOK
	case r.status == http.StatusUnauthorized || r.status == http.StatusForbidden:
		return classAuth
	case r.status >= 300 && r.status < 400 && bytes.Contains([]byte(r.header.Get("Location")), []byte("/accounts/login")):
		return classAuth
	case r.status == http.StatusTooManyRequests || r.status >= 500:
		return classTransient
	default:
		return classProtocol
	}
}

// rawResponse is a fully-read HTTP response.
type rawResponse struct {
	status  int
	header  http.Header
	cookies []*http.Cookie
	body    []byte
}

// call runs the full gateway algorithm for one endpoint: ensure a session,
// issue the request with bounded transport retries, remediate one auth
// rejection with a single re-login, and absorb cookie refreshes on success.
func (c *Client) call(ctx context.Context, ep endpoint, url, referer string, body []byte) ([]byte, error) {
	sess, err := c.ensureSession(ctx)
	if err != nil {
		return nil, err
	}

	reqID := uuid.NewString()
	relogged := false
	for {
		resp, err := c.roundTrip(ctx, ep, url, referer, body, sess, reqID)
		if err != nil {
			return nil, err
		}

		cls := classify(resp)
		switch cls {
		case classOK:
			c.absorbCookies(ctx, sess, resp.cookies)
			return resp.body, nil
		case classAuth:
			if !callPolicy[cls].reloginOnce || relogged {
				return nil, fmt.Errorf("%s: session rejected twice: %w", ep.name, driven.ErrAuthenticationFailed)
			}
			relogged = true
			slog.Info("session rejected, re-authenticating", "endpoint", ep.name, "request_id", reqID)
			sess, err = c.relogin(ctx, sess)
			if err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("%s: unexpected status %d: %w", ep.name, resp.status, driven.ErrProtocol)
		}
	}
}

// roundTrip issues the request, retrying transport-class failures with
// exponential backoff up to the configured bound. Any other outcome is
// returned to call for classification.
func (c *Client) roundTrip(ctx context.Context, ep endpoint, url, referer string, body []byte, sess *model.Session, reqID string) (*rawResponse, error) {
	var resp *rawResponse

	op := func() error {
		r, err := c.once(ctx, ep, url, referer, body, sess, reqID)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			slog.Warn("transport failure", "endpoint", ep.name, "request_id", reqID, "error", err)
			return err
		}
		if callPolicy[classify(r)].retryTransport {
			slog.Warn("transient status", "endpoint", ep.name, "request_id", reqID, "status", r.status)
			return fmt.Errorf("status %d", r.status)
		}
		resp = r
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.backoffInitial
	err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(bo, c.transportRetries), ctx))
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%s: %w", ep.name, ctx.Err())
		}
		return nil, fmt.Errorf("%s: %w: %w", ep.name, driven.ErrNetworkUnavailable, err)
	}

	return resp, nil
}

// once performs a single HTTP attempt with the per-request timeout, session
// cookies, and CSRF header attached.
func (c *Client) once(ctx context.Context, ep endpoint, url, referer string, body []byte, sess *model.Session, reqID string) (*rawResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, ep.method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Origin", c.baseURL)
	req.Header.Set("x-request-id", reqID)
	if referer != "" {
		req.Header.Set("Referer", referer)
	} else {
		req.Header.Set("Referer", c.baseURL)
	}
	if ep.contentType != "" {
		req.Header.Set("Content-Type", ep.contentType)
	}
	if sess != nil {
		for _, ck := range sess.Cookies {
			req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
		}
		req.Header.Set("x-csrftoken", sess.CSRFToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return &rawResponse{
		status:  resp.StatusCode,
		header:  resp.Header,
		cookies: resp.Cookies(),
		body:    data,
	}, nil
}

// ensureSession returns the current session, loading it from the session
// store on first use and logging in from stored credentials when absent.
func (c *Client) ensureSession(ctx context.Context) (*model.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session.Valid() {
		return c.session, nil
	}

	if sess, err := c.sessions.Load(ctx); err == nil && sess.Valid() {
		c.session = sess
		return sess, nil
	}

	return c.loginLocked(ctx)
}

// relogin discards the rejected session and performs one login. When another
// goroutine already replaced the session while this one waited on the lock,
// its fresh session is reused instead of logging in again.
func (c *Client) relogin(ctx context.Context, rejected *model.Session) (*model.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session != rejected && c.session.Valid() {
		return c.session, nil
	}

	c.session = nil
	if err := c.sessions.Invalidate(ctx); err != nil {
		slog.Warn("invalidate stored session", "error", err)
	}

	return c.loginLocked(ctx)
}

// absorbCookies merges server-sent cookie updates into a fresh copy of the
// current session, installs it as the new session, and persists it. The
// session the call used is never mutated; concurrent calls keep reading their
// own snapshot. Dropping a cookie refresh silently would degrade every
// subsequent call, so persistence failures are logged loudly even though the
// in-memory swap still takes effect.
func (c *Client) absorbCookies(ctx context.Context, sess *model.Session, cookies []*http.Cookie) {
	if len(cookies) == 0 {
		return
	}

	updates := make([]model.Cookie, 0, len(cookies))
	for _, ck := range cookies {
		updates = append(updates, model.Cookie{Name: ck.Name, Value: ck.Value})
	}

	c.mu.Lock()
	base := c.session
	if !base.Valid() {
		base = sess
	}
	merged := base.Clone()
	merged.MergeCookies(updates)
	if v := merged.Cookie(csrfCookieName); v != "" {
		merged.CSRFToken = v
	}
	c.session = merged
	c.mu.Unlock()

	if err := c.sessions.Save(ctx, merged); err != nil {
		slog.Error("persist refreshed session", "error", err)
	}
}

// FetchProblemList retrieves summary rows for every configured category.
func (c *Client) FetchProblemList(ctx context.Context) ([]model.Problem, error) {
	var all []model.Problem
	for _, category := range c.categories {
		raw, err := c.call(ctx, epProblemList, c.baseURL+fmt.Sprintf(epProblemList.path, category), "", nil)
		if err != nil {
			return nil, err
		}

		problems, err := parseProblemList(raw, category)
		if err != nil {
			return nil, fmt.Errorf("problem list %q: %w", category, err)
		}
		all = append(all, problems...)
	}
	return all, nil
}

// FetchProblemRaw retrieves the raw statement payload for one problem via the
// GraphQL questionData query.
func (c *Client) FetchProblemRaw(ctx context.Context, slug string) ([]byte, error) {
	body, err := json.Marshal(map[string]any{
		"operationName": "questionData",
		"query":         questionDataQuery,
		"variables":     map[string]string{"titleSlug": slug},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal question query: %w", err)
	}

	referer := c.baseURL + "/problems/" + slug + "/"
	raw, err := c.call(ctx, epGraphQL, c.baseURL+epGraphQL.path, referer, body)
	if err != nil {
		return nil, fmt.Errorf("fetch problem %q: %w", slug, err)
	}
	return raw, nil
}

// FetchDailySlug returns the slug of today's daily challenge.
func (c *Client) FetchDailySlug(ctx context.Context) (string, error) {
	body, err := json.Marshal(map[string]any{
		"operationName": "questionOfToday",
		"query":         questionOfTodayQuery,
		"variables":     map[string]string{},
	})
	if err != nil {
		return "", fmt.Errorf("marshal daily query: %w", err)
	}

	raw, err := c.call(ctx, epGraphQL, c.baseURL+epGraphQL.path, "", body)
	if err != nil {
		return "", fmt.Errorf("fetch daily challenge: %w", err)
	}

	var resp struct {
		Data struct {
			Active struct {
				Question struct {
					TitleSlug string `json:"titleSlug"`
				} `json:"question"`
			} `json:"activeDailyCodingChallengeQuestion"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil || resp.Data.Active.Question.TitleSlug == "" {
		return "", fmt.Errorf("fetch daily challenge: %w", driven.ErrProtocol)
	}

	return resp.Data.Active.Question.TitleSlug, nil
}

// Submit sends code for judging and returns the platform's submission id.
func (c *Client) Submit(ctx context.Context, slug string, problemID int64, lang, code string) (int64, error) {
	body, err := json.Marshal(map[string]any{
		"question_id": problemID,
		"lang":        lang,
		"typed_code":  code,
	})
	if err != nil {
		return 0, fmt.Errorf("marshal submission: %w", err)
	}

	url := c.baseURL + fmt.Sprintf(epSubmit.path, slug)
	referer := c.baseURL + fmt.Sprintf(epSubmit.referer, slug)
	raw, err := c.call(ctx, epSubmit, url, referer, body)
	if err != nil {
		return 0, fmt.Errorf("submit %q: %w", slug, err)
	}

	var resp struct {
		SubmissionID int64 `json:"submission_id"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil || resp.SubmissionID == 0 {
		return 0, fmt.Errorf("submit %q: %w", slug, driven.ErrProtocol)
	}

	return resp.SubmissionID, nil
}

// CheckSubmission polls the judge for a submission's current state. It
// returns (nil, nil) while the judge is still running (state PENDING or
// STARTED); a SUCCESS state is always a finished judgment, even when the
// numeric status falls outside the known verdict set.
func (c *Client) CheckSubmission(ctx context.Context, submissionID int64) (*model.SubmissionResult, error) {
	url := c.baseURL + fmt.Sprintf(epCheckSubmission.path, submissionID)
	raw, err := c.call(ctx, epCheckSubmission, url, "", nil)
	if err != nil {
		return nil, fmt.Errorf("check submission %d: %w", submissionID, err)
	}

	var resp struct {
		State         string `json:"state"`
		StatusCode    int    `json:"status_code"`
		StatusRuntime string `json:"status_runtime"`
		StatusMemory  string `json:"status_memory"`
		Lang          string `json:"lang"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil || resp.State == "" {
		return nil, fmt.Errorf("check submission %d: %w", submissionID, driven.ErrProtocol)
	}

	if resp.State != "SUCCESS" {
		return nil, nil
	}

	return &model.SubmissionResult{
		Verdict:     verdictFromStatusCode(resp.StatusCode),
		Language:    resp.Lang,
		Runtime:     resp.StatusRuntime,
		Memory:      resp.StatusMemory,
		SubmittedAt: time.Now().UTC(),
	}, nil
}

// verdictFromStatusCode maps the judge's numeric status to a Verdict. Codes
// without an enum member (12 memory limit, 13 output limit, 16/21 internal)
// report VerdictUnknown; the SUCCESS state already marks them finished.
func verdictFromStatusCode(code int) model.Verdict {
	switch code {
	case 10:
		return model.VerdictAccepted
	case 11:
		return model.VerdictWrongAnswer
	case 14:
		return model.VerdictTimeLimitExceeded
	case 15:
		return model.VerdictRuntimeError
	case 20:
		return model.VerdictCompileError
	default:
		return model.VerdictUnknown
	}
}
