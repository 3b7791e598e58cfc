package model

import "time"

// Problem represents a coding problem cached locally from the remote platform.
// ID is the platform's stable numeric identifier; Slug is the URL-safe name
// used by the problem-detail and submit endpoints.
type Problem struct {
	ID         int64
	FrontendID int64 // Display number shown by the platform; differs from ID on some problems.
	Slug       string
	Title      string
	Difficulty Difficulty
	Category   string
	Percent    float64 // Acceptance rate, 0-100.
	Locked     bool
	Starred    bool
	Status     string // Platform-reported progress marker ("ac", "notac", "").
	HasFile    bool   // Whether a local code file has been generated for this problem.
	Statement  string // Raw statement payload as returned by the platform (JSON).
	Tags       []string
	FetchedAt  time.Time

	// Stale marks a record served from cache after a failed forced refresh.
	// Transient; never persisted.
	Stale bool

	Submissions []SubmissionResult
}

// Fresh reports whether the record was fetched within the given window.
func (p Problem) Fresh(window time.Duration) bool {
	return time.Since(p.FetchedAt) < window
}
