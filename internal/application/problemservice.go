// Package application contains use-case orchestration services.
package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/ericfisherdev/ojcli/internal/domain/model"
	"github.com/ericfisherdev/ojcli/internal/domain/port/driven"
)

// ProblemService is the cache coordinator: it answers problem requests from
// the local cache when allowed and funnels misses and forced refreshes
// through the judge client, deduplicating concurrent fetches per slug.
type ProblemService struct {
	client driven.JudgeClient
	parser driven.StatementParser
	store  driven.ProblemStore

	// group collapses concurrent fetches for the same slug into one
	// underlying gateway call; the duplicates share its result.
	group singleflight.Group
}

// NewProblemService creates a ProblemService with all required dependencies.
func NewProblemService(client driven.JudgeClient, parser driven.StatementParser, store driven.ProblemStore) *ProblemService {
	return &ProblemService{
		client: client,
		parser: parser,
		store:  store,
	}
}

// Fetch returns the problem for slug under the given freshness policy.
// Concurrent calls for the same slug share one in-flight fetch whatever their
// policies, so the platform sees at most one request per slug at a time; the
// winning caller's context and policy drive the underlying call.
func (s *ProblemService) Fetch(ctx context.Context, slug string, policy model.Freshness) (*model.Problem, error) {
	v, err, _ := s.group.Do(slug, func() (any, error) {
		return s.fetch(ctx, slug, policy)
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.Problem), nil
}

// fetch runs the single-fetch state machine: cache check, then on miss or
// forced refresh a gateway fetch, parse, and upsert. A failed forced refresh
// falls back to the cached record marked stale rather than failing the
// caller; a miss with no fallback propagates the gateway error unchanged.
func (s *ProblemService) fetch(ctx context.Context, slug string, policy model.Freshness) (*model.Problem, error) {
	cached, err := s.store.GetBySlug(ctx, slug)
	if err != nil {
		// Unreadable cache degrades to a miss; the remote re-fetch below is
		// always a valid fallback.
		slog.Warn("cache read failed, treating as miss", "slug", slug, "error", err)
		cached = nil
	}

	// A summary row from a list sync has no statement payload and does not
	// satisfy a problem fetch.
	hit := cached != nil && cached.Statement != ""
	if policy == model.UseCacheIfPresent && hit {
		return cached, nil
	}

	raw, err := s.client.FetchProblemRaw(ctx, slug)
	if err != nil {
		if hit {
			slog.Warn("refresh failed, serving stale cache", "slug", slug, "error", err)
			stale := *cached
			stale.Stale = true
			return &stale, nil
		}
		return nil, err
	}

	p, err := s.parser.ParseProblem(raw)
	if err != nil {
		return nil, fmt.Errorf("fetch %q: %w", slug, err)
	}
	p.FetchedAt = time.Now().UTC()

	if err := s.store.Upsert(ctx, p); err != nil {
		// The caller still gets a usable record; only the next invocation
		// pays for the lost cache write.
		slog.Error("cache write failed", "slug", slug, "error", err)
		return &p, nil
	}

	// Re-read so the caller sees the merged row (locally-owned flags survive
	// a refresh).
	merged, err := s.store.GetBySlug(ctx, slug)
	if err == nil && merged != nil {
		return merged, nil
	}
	return &p, nil
}

// Daily fetches today's daily challenge under the given policy.
func (s *ProblemService) Daily(ctx context.Context, policy model.Freshness) (*model.Problem, error) {
	slug, err := s.client.FetchDailySlug(ctx)
	if err != nil {
		return nil, err
	}
	return s.Fetch(ctx, slug, policy)
}

// Sync refreshes the cached problem list from the platform. Existing detail
// rows keep their statements; only summary fields move forward.
func (s *ProblemService) Sync(ctx context.Context) (int, error) {
	problems, err := s.client.FetchProblemList(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	for _, p := range problems {
		p.FetchedAt = now
		if err := s.store.Upsert(ctx, p); err != nil {
			return 0, fmt.Errorf("sync problem %q: %w", p.Slug, err)
		}
	}

	slog.Info("problem list synced", "count", len(problems))
	return len(problems), nil
}

// List returns cached problems matching the filter, syncing the list from
// the platform first when the cache is empty.
func (s *ProblemService) List(ctx context.Context, f driven.ProblemFilter) ([]model.Problem, error) {
	problems, err := s.store.List(ctx, f)
	if err != nil {
		slog.Warn("cache list failed, treating as empty", "error", err)
		problems = nil
	}
	if len(problems) > 0 {
		return problems, nil
	}

	// Distinguish "nothing matches" from "never synced".
	all, err := s.store.List(ctx, driven.ProblemFilter{})
	if err == nil && len(all) > 0 {
		return []model.Problem{}, nil
	}

	if _, err := s.Sync(ctx); err != nil {
		return nil, err
	}
	return s.store.List(ctx, f)
}

// Star toggles the local star marker for a cached problem.
func (s *ProblemService) Star(ctx context.Context, slug string, starred bool) error {
	p, err := s.store.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("problem %q is not cached", slug)
	}
	return s.store.SetStarred(ctx, p.ID, starred)
}
