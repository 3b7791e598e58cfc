package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ericfisherdev/ojcli/internal/domain/model"
	"github.com/ericfisherdev/ojcli/internal/domain/port/driven"
)

// SubmitService sends solutions for judging and records the results in the
// problem's local submission history.
type SubmitService struct {
	client       driven.JudgeClient
	store        driven.ProblemStore
	pollInterval time.Duration
}

// NewSubmitService creates a SubmitService. pollInterval controls how often
// the judge is polled for a pending verdict; zero selects one second.
func NewSubmitService(client driven.JudgeClient, store driven.ProblemStore, pollInterval time.Duration) *SubmitService {
	if pollInterval == 0 {
		pollInterval = time.Second
	}
	return &SubmitService{
		client:       client,
		store:        store,
		pollInterval: pollInterval,
	}
}

// Submit sends code for judging, polls until the judge finishes or the
// context is cancelled, and appends the result to the problem's history.
// Cancellation during polling returns the context error without recording a
// result; the platform keeps the submission either way.
func (s *SubmitService) Submit(ctx context.Context, p *model.Problem, lang, code string) (*model.SubmissionResult, error) {
	submissionID, err := s.client.Submit(ctx, p.Slug, p.ID, lang, code)
	if err != nil {
		return nil, err
	}
	slog.Info("submission accepted by judge", "slug", p.Slug, "submission_id", submissionID)

	result, err := s.await(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	result.ProblemID = p.ID

	if err := s.store.AppendSubmission(ctx, p.ID, *result); err != nil {
		// The verdict is still valid; only the local history lost it.
		slog.Error("record submission result", "slug", p.Slug, "error", err)
	}

	return result, nil
}

// await polls the judge until it reports a finished judgment. A nil result
// means the judge is still running.
func (s *SubmitService) await(ctx context.Context, submissionID int64) (*model.SubmissionResult, error) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		result, err := s.client.CheckSubmission(ctx, submissionID)
		if err != nil {
			return nil, err
		}
		if result != nil {
			return result, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("awaiting verdict for submission %d: %w", submissionID, ctx.Err())
		case <-ticker.C:
		}
	}
}
