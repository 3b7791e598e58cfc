package driven

import (
	"context"

	"github.com/ericfisherdev/ojcli/internal/domain/model"
)

// ProblemFilter narrows a List query. Zero-value fields are ignored.
type ProblemFilter struct {
	Difficulty model.Difficulty
	Tag        string
	Keyword    string // Substring match against slug and title.
	Category   string
	Starred    bool // When true, only starred problems.
	Status     string
}

// ProblemStore defines the driven port for the local problem cache.
type ProblemStore interface {
	// GetBySlug retrieves a cached problem. Returns nil, nil on a clean miss.
	// Unreadable rows are reported as ErrCacheCorruption; callers treat that
	// as a miss.
	GetBySlug(ctx context.Context, slug string) (*model.Problem, error)

	// GetByID retrieves a cached problem by its numeric platform id.
	// Returns nil, nil on a clean miss.
	GetByID(ctx context.Context, id int64) (*model.Problem, error)

	// Upsert inserts or refreshes a problem. An existing row is replaced only
	// when the incoming FetchedAt is not older than the stored one; freshness
	// never regresses.
	Upsert(ctx context.Context, p model.Problem) error

	// AppendSubmission appends an immutable result to the problem's history.
	AppendSubmission(ctx context.Context, problemID int64, sub model.SubmissionResult) error

	// Submissions returns the problem's submission history, oldest first.
	Submissions(ctx context.Context, problemID int64) ([]model.SubmissionResult, error)

	// List returns cached problems matching the filter, ordered by id. Each
	// call runs a fresh query.
	List(ctx context.Context, f ProblemFilter) ([]model.Problem, error)

	// SetStarred toggles the local star marker for a problem.
	SetStarred(ctx context.Context, id int64, starred bool) error

	// SetHasFile records whether a local code file exists for the problem.
	SetHasFile(ctx context.Context, id int64, hasFile bool) error
}
