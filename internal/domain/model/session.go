package model

import "time"

// Cookie is a single session cookie name/value pair. Order matters: cookies
// are replayed to the platform in the order they were received.
type Cookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Session holds the short-lived authenticated state required for API calls:
// the platform's session cookies plus the CSRF token echoed in a request
// header. A Session is either fully populated or absent; a partial session
// (missing token or empty jar) is treated as no session at all.
type Session struct {
	Cookies       []Cookie  `json:"cookies"`
	CSRFToken     string    `json:"csrf_token"`
	EstablishedAt time.Time `json:"established_at"`
}

// Valid reports whether the session carries everything a request needs.
func (s *Session) Valid() bool {
	return s != nil && len(s.Cookies) > 0 && s.CSRFToken != ""
}

// Clone returns a deep copy with its own cookie jar, so merging updates into
// the copy leaves the original untouched.
func (s *Session) Clone() *Session {
	return &Session{
		Cookies:       append([]Cookie(nil), s.Cookies...),
		CSRFToken:     s.CSRFToken,
		EstablishedAt: s.EstablishedAt,
	}
}

// MergeCookies applies server-sent cookie updates, replacing values for
// existing names and appending new ones in arrival order.
func (s *Session) MergeCookies(updates []Cookie) {
	for _, u := range updates {
		replaced := false
		for i := range s.Cookies {
			if s.Cookies[i].Name == u.Name {
				s.Cookies[i].Value = u.Value
				replaced = true
				break
			}
		}
		if !replaced {
			s.Cookies = append(s.Cookies, u)
		}
	}
}

// Cookie returns the value for the named cookie, or "" when absent.
func (s *Session) Cookie(name string) string {
	for _, c := range s.Cookies {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}
