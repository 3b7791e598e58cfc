package driven

import (
	"context"

	"github.com/ericfisherdev/ojcli/internal/domain/model"
)

// JudgeClient defines the driven port for authenticated calls against the
// remote problem platform. Implementations own session attachment, expiry
// detection, the single re-login remediation, and bounded transport retries;
// callers only see the error taxonomy in errors.go.
type JudgeClient interface {
	// FetchProblemList retrieves summary rows for every problem the platform
	// lists. Summaries carry no statement payload.
	FetchProblemList(ctx context.Context) ([]model.Problem, error)

	// FetchProblemRaw retrieves the raw statement payload for one problem.
	// The caller is responsible for parsing it into a Problem.
	FetchProblemRaw(ctx context.Context, slug string) ([]byte, error)

	// FetchDailySlug returns the slug of today's daily challenge.
	FetchDailySlug(ctx context.Context) (string, error)

	// Submit sends code for judging and returns the platform's submission id.
	Submit(ctx context.Context, slug string, problemID int64, lang, code string) (int64, error)

	// CheckSubmission polls the judge for a submission's current state. A nil
	// result with a nil error means the judge is still running; a non-nil
	// result is always a finished judgment, whatever its verdict.
	CheckSubmission(ctx context.Context, submissionID int64) (*model.SubmissionResult, error)

	// Login discards any current session and establishes a fresh one from the
	// stored credential.
	Login(ctx context.Context) error

	// Logout invalidates the current session locally and in the session store.
	Logout(ctx context.Context) error
}

// StatementParser turns a raw problem payload into a Problem and re-derives
// display artifacts from the cached payload. Parse failures are protocol
// errors: the payload shape did not match this client's version.
type StatementParser interface {
	ParseProblem(raw []byte) (model.Problem, error)

	// StatementText renders the cached statement as plain terminal text.
	StatementText(p *model.Problem) (string, error)

	// Snippet returns the starter code for the given language slug.
	Snippet(p *model.Problem, langSlug string) (string, error)

	// SampleInput returns the problem's sample test input.
	SampleInput(p *model.Problem) (string, error)
}
