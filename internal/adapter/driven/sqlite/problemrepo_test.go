package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/ojcli/internal/domain/model"
	"github.com/ericfisherdev/ojcli/internal/domain/port/driven"
)

func sampleProblem(fetchedAt time.Time) model.Problem {
	return model.Problem{
		ID:         1,
		FrontendID: 1,
		Slug:       "two-sum",
		Title:      "Two Sum",
		Difficulty: model.DifficultyEasy,
		Category:   "algorithms",
		Percent:    48.5,
		Status:     "notac",
		Statement:  `{"content":"<p>Given an array...</p>"}`,
		Tags:       []string{"array", "hash-table"},
		FetchedAt:  fetchedAt,
	}
}

func TestProblemRepo_UpsertGetRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProblemRepo(db)
	ctx := context.Background()

	fetchedAt := time.Now().UTC()
	p := sampleProblem(fetchedAt)
	require.NoError(t, repo.Upsert(ctx, p))

	got, err := repo.GetBySlug(ctx, "two-sum")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, p.Slug, got.Slug)
	assert.Equal(t, p.Title, got.Title)
	assert.Equal(t, p.Difficulty, got.Difficulty)
	assert.Equal(t, p.Category, got.Category)
	assert.Equal(t, p.Percent, got.Percent)
	assert.Equal(t, p.Status, got.Status)
	assert.Equal(t, p.Statement, got.Statement)
	assert.Equal(t, p.Tags, got.Tags)
	assert.Equal(t, fetchedAt.UnixNano(), got.FetchedAt.UnixNano())
}

func TestProblemRepo_GetMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProblemRepo(db)

	got, err := repo.GetBySlug(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProblemRepo_UpsertOlderFetchedAtIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProblemRepo(db)
	ctx := context.Background()

	now := time.Now().UTC()
	fresh := sampleProblem(now)
	fresh.Title = "Two Sum (fresh)"
	require.NoError(t, repo.Upsert(ctx, fresh))

	stale := sampleProblem(now.Add(-time.Hour))
	stale.Title = "Two Sum (stale)"
	require.NoError(t, repo.Upsert(ctx, stale))

	got, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Two Sum (fresh)", got.Title)
	assert.Equal(t, now.UnixNano(), got.FetchedAt.UnixNano())
}

func TestProblemRepo_UpsertNewerReplaces(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProblemRepo(db)
	ctx := context.Background()

	t0 := time.Now().UTC().Add(-time.Hour)
	require.NoError(t, repo.Upsert(ctx, sampleProblem(t0)))

	t1 := t0.Add(30 * time.Minute)
	updated := sampleProblem(t1)
	updated.Percent = 50.1
	require.NoError(t, repo.Upsert(ctx, updated))

	got, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 50.1, got.Percent)
	assert.Equal(t, t1.UnixNano(), got.FetchedAt.UnixNano())
}

func TestProblemRepo_RefreshPreservesLocalFlagsAndStatement(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProblemRepo(db)
	ctx := context.Background()

	t0 := time.Now().UTC().Add(-time.Hour)
	detail := sampleProblem(t0)
	require.NoError(t, repo.Upsert(ctx, detail))
	require.NoError(t, repo.SetStarred(ctx, 1, true))
	require.NoError(t, repo.SetHasFile(ctx, 1, true))

	// A list refresh carries no statement payload.
	summary := sampleProblem(t0.Add(time.Minute))
	summary.Statement = ""
	require.NoError(t, repo.Upsert(ctx, summary))

	got, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, got.Starred)
	assert.True(t, got.HasFile)
	assert.Equal(t, detail.Statement, got.Statement)
}

func TestProblemRepo_AppendSubmissionOrdering(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProblemRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, sampleProblem(time.Now().UTC())))

	first := model.SubmissionResult{
		ProblemID:   1,
		Verdict:     model.VerdictWrongAnswer,
		Language:    "golang",
		SubmittedAt: time.Now().UTC().Add(-time.Minute),
	}
	second := model.SubmissionResult{
		ProblemID:   1,
		Verdict:     model.VerdictAccepted,
		Language:    "golang",
		Runtime:     "4 ms",
		Memory:      "4.1 MB",
		SubmittedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.AppendSubmission(ctx, 1, first))
	require.NoError(t, repo.AppendSubmission(ctx, 1, second))

	subs, err := repo.Submissions(ctx, 1)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, model.VerdictWrongAnswer, subs[0].Verdict)
	assert.Equal(t, model.VerdictAccepted, subs[1].Verdict)
	assert.Equal(t, "4 ms", subs[1].Runtime)

	got, err := repo.GetBySlug(ctx, "two-sum")
	require.NoError(t, err)
	assert.Len(t, got.Submissions, 2)
}

func TestProblemRepo_ListFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProblemRepo(db)
	ctx := context.Background()
	now := time.Now().UTC()

	easy := sampleProblem(now)
	require.NoError(t, repo.Upsert(ctx, easy))

	hard := model.Problem{
		ID:         4,
		FrontendID: 4,
		Slug:       "median-of-two-sorted-arrays",
		Title:      "Median of Two Sorted Arrays",
		Difficulty: model.DifficultyHard,
		Category:   "algorithms",
		Tags:       []string{"array", "binary-search"},
		FetchedAt:  now,
	}
	require.NoError(t, repo.Upsert(ctx, hard))

	byDifficulty, err := repo.List(ctx, driven.ProblemFilter{Difficulty: model.DifficultyHard})
	require.NoError(t, err)
	require.Len(t, byDifficulty, 1)
	assert.Equal(t, "median-of-two-sorted-arrays", byDifficulty[0].Slug)

	byTag, err := repo.List(ctx, driven.ProblemFilter{Tag: "hash-table"})
	require.NoError(t, err)
	require.Len(t, byTag, 1)
	assert.Equal(t, "two-sum", byTag[0].Slug)

	byKeyword, err := repo.List(ctx, driven.ProblemFilter{Keyword: "median"})
	require.NoError(t, err)
	require.Len(t, byKeyword, 1)

	all, err := repo.List(ctx, driven.ProblemFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	none, err := repo.List(ctx, driven.ProblemFilter{Keyword: "graph"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestProblemRepo_SetStarred(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProblemRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, sampleProblem(time.Now().UTC())))
	require.NoError(t, repo.SetStarred(ctx, 1, true))

	starred, err := repo.List(ctx, driven.ProblemFilter{Starred: true})
	require.NoError(t, err)
	require.Len(t, starred, 1)

	require.NoError(t, repo.SetStarred(ctx, 1, false))
	starred, err = repo.List(ctx, driven.ProblemFilter{Starred: true})
	require.NoError(t, err)
	assert.Empty(t, starred)
}
