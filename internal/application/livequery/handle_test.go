package livequery

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/domain/entity"
)

type fakeSubscription struct {
	events chan *entity.ChangeEvent
	closed atomic.Bool
	once   sync.Once
}

func (s *fakeSubscription) Events() <-chan *entity.ChangeEvent { return s.events }

func (s *fakeSubscription) Close() error {
	s.once.Do(func() { s.closed.Store(true) })
	return nil
}

type fakeSubscriber struct {
	sub *fakeSubscription
	err error
}

func (f *fakeSubscriber) Subscribe(_ context.Context, _ entity.Collection, _ uuid.UUID) (adapter.Subscription, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sub, nil
}

func newFakeSubscriber() *fakeSubscriber {
	return &fakeSubscriber{sub: &fakeSubscription{events: make(chan *entity.ChangeEvent)}}
}

func counterQuery(counter *atomic.Int64) Query[int64] {
	return Query[int64]{
		Collection: entity.CollectionTransactions,
		OwnerID:    uuid.New(),
		Load: func(ctx context.Context, _ *entity.ChangeEvent) (int64, error) {
			return counter.Add(1), nil
		},
	}
}

func receive(t *testing.T, updates <-chan int64) int64 {
	t.Helper()
	select {
	case v, ok := <-updates:
		require.True(t, ok, "updates channel closed")
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return 0
	}
}

func TestOpen_DeliversInitialSnapshot(t *testing.T) {
	var counter atomic.Int64
	subscriber := newFakeSubscriber()

	handle, err := Open(context.Background(), subscriber, counterQuery(&counter))
	require.NoError(t, err)
	defer handle.Cancel()

	assert.Equal(t, int64(1), receive(t, handle.Updates()))
}

func TestOpen_ReloadsOnEvent(t *testing.T) {
	var counter atomic.Int64
	subscriber := newFakeSubscriber()

	handle, err := Open(context.Background(), subscriber, counterQuery(&counter))
	require.NoError(t, err)
	defer handle.Cancel()

	assert.Equal(t, int64(1), receive(t, handle.Updates()))

	subscriber.sub.events <- entity.NewChangeEvent(entity.CollectionTransactions, entity.OperationCreated, "x", uuid.New())
	assert.Equal(t, int64(2), receive(t, handle.Updates()))
}

func TestHandle_PushKeepsLatestSnapshot(t *testing.T) {
	h := &Handle[int]{updates: make(chan int, 1)}

	h.push(1)
	h.push(2)
	h.push(3)

	assert.Equal(t, 3, <-h.updates)
	select {
	case v := <-h.updates:
		t.Fatalf("expected no stale snapshot, got %d", v)
	default:
	}
}

func TestHandle_CancelClosesUpdates(t *testing.T) {
	var counter atomic.Int64
	subscriber := newFakeSubscriber()

	handle, err := Open(context.Background(), subscriber, counterQuery(&counter))
	require.NoError(t, err)

	receive(t, handle.Updates())
	handle.Cancel()
	handle.Cancel()

	_, ok := <-handle.Updates()
	assert.False(t, ok)
	assert.True(t, subscriber.sub.closed.Load())
}

func TestHandle_StopsWhenContextEnds(t *testing.T) {
	var counter atomic.Int64
	subscriber := newFakeSubscriber()
	ctx, cancel := context.WithCancel(context.Background())

	handle, err := Open(ctx, subscriber, counterQuery(&counter))
	require.NoError(t, err)

	cancel()
	select {
	case <-handle.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("handle did not stop after context cancellation")
	}
	assert.True(t, subscriber.sub.closed.Load())
}

func TestOpen_Errors(t *testing.T) {
	t.Run("subscribe failure", func(t *testing.T) {
		subscriber := &fakeSubscriber{err: errors.New("redis down")}
		var counter atomic.Int64

		_, err := Open(context.Background(), subscriber, counterQuery(&counter))
		assert.ErrorContains(t, err, "redis down")
		assert.Zero(t, counter.Load())
	})

	t.Run("initial load failure releases subscription", func(t *testing.T) {
		subscriber := newFakeSubscriber()
		query := Query[int]{
			Collection: entity.CollectionGoals,
			OwnerID:    uuid.New(),
			Load: func(ctx context.Context, _ *entity.ChangeEvent) (int, error) {
				return 0, errors.New("db down")
			},
		}

		_, err := Open(context.Background(), subscriber, query)
		assert.ErrorContains(t, err, "db down")
		assert.True(t, subscriber.sub.closed.Load())
	})
}
