package model

import "time"

// SubmissionResult records one judged submission for a problem. Results are
// append-only: once written they are never mutated.
type SubmissionResult struct {
	ID          int64
	ProblemID   int64
	Verdict     Verdict
	Language    string
	Runtime     string // Platform-reported runtime ("12 ms"); empty when unavailable.
	Memory      string // Platform-reported memory usage; empty when unavailable.
	SubmittedAt time.Time
}

// Accepted reports whether the submission passed all tests.
func (s SubmissionResult) Accepted() bool {
	return s.Verdict == VerdictAccepted
}
