package allocation

import (
	"context"
	"testing"

	"team-allocation-service/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

type stubAssigner struct {
	err error
}

func (s stubAssigner) Assign(context.Context, domain.MemberID, domain.TeamID) error {
	return s.err
}

func (s stubAssigner) Unassign(context.Context, domain.MemberID, domain.TeamID) error {
	return s.err
}

func TestMetricsCountOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	ok := NewReconciler(stubAssigner{}, nil, WithMetrics(metrics))
	ok.Reconcile(context.Background(), "alpha", []domain.MemberID{"A"}, []domain.MemberID{"B", "C"})

	failing := NewReconciler(stubAssigner{err: &NotFoundError{MemberID: "D", Err: domain.ErrNotFound}}, nil, WithMetrics(metrics))
	failing.Reconcile(context.Background(), "alpha", nil, []domain.MemberID{"D"})

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.operations.WithLabelValues("assign", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.operations.WithLabelValues("unassign", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.operations.WithLabelValues("assign", "not_found")))
}

func TestNewMetricsReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()

	first := NewMetrics(reg)
	second := NewMetrics(reg)

	assert.Same(t, first.operations, second.operations)
	assert.Same(t, first.duration, second.duration)
}
