package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ericfisherdev/ojcli/internal/domain/model"
	"github.com/ericfisherdev/ojcli/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ProblemStore = (*ProblemRepo)(nil)

// ProblemRepo is the SQLite implementation of the ProblemStore port.
// Timestamps are stored as unix nanoseconds so the freshness guard can
// compare them inside the upsert statement.
type ProblemRepo struct {
	db *DB
}

// NewProblemRepo creates a ProblemRepo backed by the given DB.
func NewProblemRepo(db *DB) *ProblemRepo {
	return &ProblemRepo{db: db}
}

const problemColumns = `id, frontend_id, slug, title, difficulty, category, percent,
	locked, starred, has_file, status, statement, tags, fetched_at`

// Upsert inserts or refreshes a problem row. On conflict the row is replaced
// only when the incoming fetched_at is not older than the stored one, so a
// slow fetch completing after a newer one cannot regress freshness. The
// locally-owned starred and has_file flags are preserved across refreshes.
func (r *ProblemRepo) Upsert(ctx context.Context, p model.Problem) error {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("marshal tags for %q: %w", p.Slug, err)
	}

	const query = `
		INSERT INTO problems (
			id, frontend_id, slug, title, difficulty, category, percent,
			locked, starred, has_file, status, statement, tags, fetched_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			frontend_id = excluded.frontend_id,
			slug = excluded.slug,
			title = excluded.title,
			difficulty = excluded.difficulty,
			category = excluded.category,
			percent = excluded.percent,
			locked = excluded.locked,
			status = excluded.status,
			statement = CASE WHEN excluded.statement != '' THEN excluded.statement ELSE problems.statement END,
			tags = excluded.tags,
			fetched_at = excluded.fetched_at
		WHERE excluded.fetched_at >= problems.fetched_at
	`

	_, err = r.db.Writer.ExecContext(ctx, query,
		p.ID, p.FrontendID, p.Slug, p.Title, string(p.Difficulty), p.Category, p.Percent,
		boolToInt(p.Locked), boolToInt(p.Starred), boolToInt(p.HasFile),
		p.Status, p.Statement, string(tagsJSON), p.FetchedAt.UTC().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("upsert problem %q: %w", p.Slug, err)
	}

	return nil
}

// GetBySlug retrieves a problem and its submission history by slug.
// Returns nil, nil on a clean miss.
func (r *ProblemRepo) GetBySlug(ctx context.Context, slug string) (*model.Problem, error) {
	query := `SELECT ` + problemColumns + ` FROM problems WHERE slug = ?`
	return r.getOne(ctx, query, slug)
}

// GetByID retrieves a problem and its submission history by platform id.
// Returns nil, nil on a clean miss.
func (r *ProblemRepo) GetByID(ctx context.Context, id int64) (*model.Problem, error) {
	query := `SELECT ` + problemColumns + ` FROM problems WHERE id = ?`
	return r.getOne(ctx, query, id)
}

func (r *ProblemRepo) getOne(ctx context.Context, query string, arg any) (*model.Problem, error) {
	p, err := scanProblem(r.db.Reader.QueryRowContext(ctx, query, arg))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get problem %v: %w: %w", arg, driven.ErrCacheCorruption, err)
	}

	subs, err := r.Submissions(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Submissions = subs

	return p, nil
}

// AppendSubmission appends one immutable result to a problem's history.
func (r *ProblemRepo) AppendSubmission(ctx context.Context, problemID int64, sub model.SubmissionResult) error {
	const query = `
		INSERT INTO submissions (problem_id, verdict, language, runtime, memory, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Writer.ExecContext(ctx, query,
		problemID, string(sub.Verdict), sub.Language, sub.Runtime, sub.Memory,
		sub.SubmittedAt.UTC().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("append submission for problem %d: %w", problemID, err)
	}

	return nil
}

// Submissions returns a problem's submission history, oldest first.
func (r *ProblemRepo) Submissions(ctx context.Context, problemID int64) ([]model.SubmissionResult, error) {
	const query = `
		SELECT id, problem_id, verdict, language, runtime, memory, submitted_at
		FROM submissions
		WHERE problem_id = ?
		ORDER BY id
	`

	rows, err := r.db.Reader.QueryContext(ctx, query, problemID)
	if err != nil {
		return nil, fmt.Errorf("list submissions for problem %d: %w: %w", problemID, driven.ErrCacheCorruption, err)
	}
	defer rows.Close()

	var subs []model.SubmissionResult
	for rows.Next() {
		var s model.SubmissionResult
		var verdict string
		var submittedAt int64
		if err := rows.Scan(&s.ID, &s.ProblemID, &verdict, &s.Language, &s.Runtime, &s.Memory, &submittedAt); err != nil {
			return nil, fmt.Errorf("scan submission: %w: %w", driven.ErrCacheCorruption, err)
		}
		s.Verdict = model.Verdict(verdict)
		s.SubmittedAt = time.Unix(0, submittedAt).UTC()
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions for problem %d: %w: %w", problemID, driven.ErrCacheCorruption, err)
	}

	return subs, nil
}

// List returns cached problems matching the filter, ordered by id. Submission
// histories are not loaded for list queries.
func (r *ProblemRepo) List(ctx context.Context, f driven.ProblemFilter) ([]model.Problem, error) {
	query := `SELECT ` + problemColumns + ` FROM problems`
	var conds []string
	var args []any

	if f.Difficulty != "" {
		conds = append(conds, "difficulty = ?")
		args = append(args, string(f.Difficulty))
	}
	if f.Tag != "" {
		// Tags are a JSON array of strings; match the quoted element.
		conds = append(conds, "tags LIKE ?")
		args = append(args, `%"`+f.Tag+`"%`)
	}
	if f.Keyword != "" {
		conds = append(conds, "(slug LIKE ? OR title LIKE ?)")
		kw := "%" + f.Keyword + "%"
		args = append(args, kw, kw)
	}
	if f.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, f.Category)
	}
	if f.Starred {
		conds = append(conds, "starred = 1")
	}
	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, f.Status)
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.db.Reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list problems: %w: %w", driven.ErrCacheCorruption, err)
	}
	defer rows.Close()

	var problems []model.Problem
	for rows.Next() {
		p, err := scanProblem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan problem: %w: %w", driven.ErrCacheCorruption, err)
		}
		problems = append(problems, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate problems: %w: %w", driven.ErrCacheCorruption, err)
	}

	if problems == nil {
		problems = []model.Problem{}
	}

	return problems, nil
}

// SetStarred toggles the local star marker.
func (r *ProblemRepo) SetStarred(ctx context.Context, id int64, starred bool) error {
	const query = `UPDATE problems SET starred = ? WHERE id = ?`
	if _, err := r.db.Writer.ExecContext(ctx, query, boolToInt(starred), id); err != nil {
		return fmt.Errorf("set starred for problem %d: %w", id, err)
	}
	return nil
}

// SetHasFile records whether a local code file exists for the problem.
func (r *ProblemRepo) SetHasFile(ctx context.Context, id int64, hasFile bool) error {
	const query = `UPDATE problems SET has_file = ? WHERE id = ?`
	if _, err := r.db.Writer.ExecContext(ctx, query, boolToInt(hasFile), id); err != nil {
		return fmt.Errorf("set has_file for problem %d: %w", id, err)
	}
	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for shared scan logic.
type scanner interface {
	Scan(dest ...any) error
}

func scanProblem(row scanner) (*model.Problem, error) {
	var p model.Problem
	var difficulty, tagsJSON string
	var locked, starred, hasFile int
	var fetchedAt int64

	err := row.Scan(
		&p.ID, &p.FrontendID, &p.Slug, &p.Title, &difficulty, &p.Category, &p.Percent,
		&locked, &starred, &hasFile, &p.Status, &p.Statement, &tagsJSON, &fetchedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Difficulty = model.Difficulty(difficulty)
	p.Locked = locked != 0
	p.Starred = starred != 0
	p.HasFile = hasFile != 0
	p.FetchedAt = time.Unix(0, fetchedAt).UTC()

	if err := json.Unmarshal([]byte(tagsJSON), &p.Tags); err != nil {
		return nil, fmt.Errorf("unmarshal tags: %w", err)
	}

	return &p, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
