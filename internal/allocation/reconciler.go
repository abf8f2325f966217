package allocation

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"team-allocation-service/internal/domain"
)

const DefaultConcurrency = 8

// Assigner performs the remote membership operations. Both calls must be
// idempotent. Unassign receives the team being edited so the implementation
// can refuse to detach a member that has meanwhile moved elsewhere.
type Assigner interface {
	Assign(ctx context.Context, memberID domain.MemberID, teamID domain.TeamID) error
	Unassign(ctx context.Context, memberID domain.MemberID, teamID domain.TeamID) error
}

type Operation string

const (
	OpAssign   Operation = "assign"
	OpUnassign Operation = "unassign"
)

type Failure struct {
	MemberID domain.MemberID
	Op       Operation
	Err      error
}

// Result describes one save. Added and Removed only list requests that
// succeeded; everything else is in Failures.
type Result struct {
	TeamID   domain.TeamID
	Added    []domain.MemberID
	Removed  []domain.MemberID
	Failures []Failure
}

// Err combines all failures, or returns nil when every request succeeded.
func (r Result) Err() error {
	var err error
	for _, f := range r.Failures {
		err = multierr.Append(err, fmt.Errorf("%s %s: %w", f.Op, f.MemberID, f.Err))
	}
	return err
}

type Reconciler struct {
	assigner    Assigner
	logger      *slog.Logger
	metrics     *Metrics
	concurrency int
}

type Option func(*Reconciler)

func WithConcurrency(n int) Option {
	return func(r *Reconciler) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(r *Reconciler) {
		r.metrics = m
	}
}

func NewReconciler(assigner Assigner, logger *slog.Logger, opts ...Option) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Reconciler{
		assigner:    assigner,
		logger:      logger,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reconcile brings the membership of teamID from previous to edited.
func (r *Reconciler) Reconcile(ctx context.Context, teamID domain.TeamID, previous, edited []domain.MemberID) Result {
	return r.Apply(ctx, teamID, Compute(previous, edited))
}

// Apply issues one request per id in diff and waits for all of them. A failed
// request does not stop the others and nothing is rolled back.
func (r *Reconciler) Apply(ctx context.Context, teamID domain.TeamID, diff Diff) Result {
	result := Result{
		TeamID:  teamID,
		Added:   []domain.MemberID{},
		Removed: []domain.MemberID{},
	}
	if diff.Empty() {
		return result
	}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(r.concurrency)

	record := func(op Operation, id domain.MemberID, err error) {
		mu.Lock()
		defer mu.Unlock()

		if err != nil {
			result.Failures = append(result.Failures, Failure{MemberID: id, Op: op, Err: err})
			return
		}
		if op == OpAssign {
			result.Added = append(result.Added, id)
		} else {
			result.Removed = append(result.Removed, id)
		}
	}

	for _, id := range diff.ToAdd {
		g.Go(func() error {
			err := r.run(ctx, OpAssign, teamID, id, func(ctx context.Context) error {
				return r.assigner.Assign(ctx, id, teamID)
			})
			record(OpAssign, id, err)
			return nil
		})
	}
	for _, id := range diff.ToRemove {
		g.Go(func() error {
			err := r.run(ctx, OpUnassign, teamID, id, func(ctx context.Context) error {
				return r.assigner.Unassign(ctx, id, teamID)
			})
			record(OpUnassign, id, err)
			return nil
		})
	}
	_ = g.Wait()

	slices.Sort(result.Added)
	slices.Sort(result.Removed)
	slices.SortFunc(result.Failures, func(a, b Failure) int {
		if c := cmp.Compare(a.Op, b.Op); c != 0 {
			return c
		}
		return cmp.Compare(a.MemberID, b.MemberID)
	})

	r.logger.InfoContext(ctx, "team membership reconciled",
		"team_id", teamID,
		"added", len(result.Added),
		"removed", len(result.Removed),
		"failed", len(result.Failures),
	)

	return result
}

func (r *Reconciler) run(ctx context.Context, op Operation, teamID domain.TeamID, id domain.MemberID, call func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		r.metrics.observe(op, Outcome(err), 0)
		return err
	}

	started := time.Now()
	err := call(ctx)
	r.metrics.observe(op, Outcome(err), time.Since(started))

	if err != nil {
		r.logger.WarnContext(ctx, "membership request failed",
			"op", op,
			"team_id", teamID,
			"member_id", id,
			"outcome", Outcome(err),
			"error", err,
		)
	}

	return err
}
