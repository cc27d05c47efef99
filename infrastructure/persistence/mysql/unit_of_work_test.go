package mysql

import (
	"context"
	"testing"

	"shopcore/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRecorder struct {
	id string
}

func (r *stubRecorder) AggregateID() string              { return r.id }
func (r *stubRecorder) PullEvents() []shared.DomainEvent { return nil }

func TestRegisterAppendsToContextCollector(t *testing.T) {
	uow := &UnitOfWork{}
	collector := &eventCollector{}
	ctx := context.WithValue(context.Background(), collectorKey{}, collector)

	first := &stubRecorder{id: "o-1"}
	second := &stubRecorder{id: "o-2"}
	uow.Register(ctx, first)
	uow.Register(ctx, second)

	require.Len(t, collector.recorders, 2)
	assert.Same(t, first, collector.recorders[0])
	assert.Same(t, second, collector.recorders[1])
}

func TestRegisterOutsideTransactionIsNoOp(t *testing.T) {
	uow := &UnitOfWork{}

	assert.NotPanics(t, func() {
		uow.Register(context.Background(), &stubRecorder{id: "o-1"})
	})
}

func TestRegisterKeepsConcurrentTransactionsApart(t *testing.T) {
	uow := &UnitOfWork{}

	collectorA := &eventCollector{}
	collectorB := &eventCollector{}
	ctxA := context.WithValue(context.Background(), collectorKey{}, collectorA)
	ctxB := context.WithValue(context.Background(), collectorKey{}, collectorB)

	// Interleaved registrations from two in-flight transactions must
	// land in their own collectors.
	uow.Register(ctxA, &stubRecorder{id: "a-1"})
	uow.Register(ctxB, &stubRecorder{id: "b-1"})
	uow.Register(ctxA, &stubRecorder{id: "a-2"})

	require.Len(t, collectorA.recorders, 2)
	require.Len(t, collectorB.recorders, 1)
	assert.Equal(t, "a-1", collectorA.recorders[0].AggregateID())
	assert.Equal(t, "a-2", collectorA.recorders[1].AggregateID())
	assert.Equal(t, "b-1", collectorB.recorders[0].AggregateID())
}
