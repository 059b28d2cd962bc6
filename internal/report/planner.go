package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/withoutfanfare/developer-test/internal/domain"
	"github.com/withoutfanfare/developer-test/internal/store"
	"golang.org/x/sync/errgroup"
)

// PlanResult is everything the store returns for one report window.
type PlanResult struct {
	Tasks      []domain.Task
	Aggregates domain.Aggregates
}

// Planner issues the fixed set of store queries behind a report.
type Planner struct {
	store    store.ReportStore
	parallel bool
	logger   *slog.Logger
}

// PlannerOption configures a Planner.
type PlannerOption func(*Planner)

// WithParallelQueries runs the five store calls concurrently.
func WithParallelQueries(enabled bool) PlannerOption {
	return func(p *Planner) { p.parallel = enabled }
}

// WithPlannerLogger sets the planner's logger.
func WithPlannerLogger(logger *slog.Logger) PlannerOption {
	return func(p *Planner) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPlanner creates a Planner over s.
func NewPlanner(s store.ReportStore, opts ...PlannerOption) (*Planner, error) {
	if s == nil {
		return nil, fmt.Errorf("report store cannot be nil")
	}
	p := &Planner{store: s, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With(slog.String("component", "report_planner"))
	return p, nil
}

// Plan fetches the task list and the four aggregate maps for req. Any
// store failure aborts the whole plan; no partial result is returned.
func (p *Planner) Plan(ctx context.Context, req domain.ReportRequest) (*PlanResult, error) {
	res := &PlanResult{Aggregates: domain.EmptyAggregates()}

	steps := []func(context.Context) error{
		func(ctx context.Context) (err error) {
			res.Tasks, err = p.store.FetchTasksInRange(ctx, req.Start, req.End, req.UserFilter)
			return wrapStep("fetch tasks", err)
		},
		func(ctx context.Context) (err error) {
			res.Aggregates.Categories, err = p.store.CategoryAggregates(ctx, req.Start, req.End)
			return wrapStep("category aggregates", err)
		},
		func(ctx context.Context) (err error) {
			res.Aggregates.Users, err = p.store.UserAggregates(ctx, req.Start, req.End)
			return wrapStep("user aggregates", err)
		},
		func(ctx context.Context) (err error) {
			res.Aggregates.Priorities, err = p.store.PriorityCounts(ctx, req.Start, req.End)
			return wrapStep("priority counts", err)
		},
		func(ctx context.Context) (err error) {
			res.Aggregates.Statuses, err = p.store.StatusCounts(ctx, req.Start, req.End)
			return wrapStep("status counts", err)
		},
	}

	if p.parallel {
		g, gctx := errgroup.WithContext(ctx)
		for _, step := range steps {
			g.Go(func() error { return step(gctx) })
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for _, step := range steps {
			if err := step(ctx); err != nil {
				return nil, err
			}
		}
	}

	normalize(res)
	p.logger.Debug("report plan complete",
		slog.Int("task_count", len(res.Tasks)),
		slog.Int("category_count", len(res.Aggregates.Categories)),
		slog.Bool("parallel", p.parallel))
	return res, nil
}

func wrapStep(step string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", step, err)
}

// normalize replaces nil results from a store with empty values.
func normalize(res *PlanResult) {
	if res.Tasks == nil {
		res.Tasks = []domain.Task{}
	}
	empty := domain.EmptyAggregates()
	if res.Aggregates.Categories == nil {
		res.Aggregates.Categories = empty.Categories
	}
	if res.Aggregates.Users == nil {
		res.Aggregates.Users = empty.Users
	}
	if res.Aggregates.Priorities == nil {
		res.Aggregates.Priorities = empty.Priorities
	}
	if res.Aggregates.Statuses == nil {
		res.Aggregates.Statuses = empty.Statuses
	}
}
