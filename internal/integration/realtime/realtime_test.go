package realtime

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecooy/backend/internal/application/livequery"
	"github.com/ecooy/backend/internal/domain/entity"
)

func newFeed(t *testing.T) (*RedisChangeFeed, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisChangeFeed(client, "test:changes"), server
}

func nextEvent(t *testing.T, events <-chan *entity.ChangeEvent) *entity.ChangeEvent {
	t.Helper()
	select {
	case event, ok := <-events:
		require.True(t, ok, "events channel closed")
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change event")
		return nil
	}
}

func TestRedisChangeFeed_Channel(t *testing.T) {
	feed, _ := newFeed(t)
	owner := uuid.MustParse("11111111-1111-1111-1111-111111111111")

	assert.Equal(t, "test:changes:goals:11111111-1111-1111-1111-111111111111", feed.Channel(entity.CollectionGoals, owner))
}

func TestRedisChangeFeed_PublishSubscribe(t *testing.T) {
	feed, _ := newFeed(t)
	ctx := context.Background()
	owner := uuid.New()

	sub, err := feed.Subscribe(ctx, entity.CollectionTransactions, owner)
	require.NoError(t, err)
	defer sub.Close()

	other := entity.NewChangeEvent(entity.CollectionTransactions, entity.OperationCreated, "other", uuid.New())
	require.NoError(t, feed.Publish(ctx, other))

	mine := entity.NewChangeEvent(entity.CollectionTransactions, entity.OperationDeleted, "tx-1", owner)
	require.NoError(t, feed.Publish(ctx, mine))

	got := nextEvent(t, sub.Events())
	assert.Equal(t, "tx-1", got.DocumentID)
	assert.Equal(t, entity.OperationDeleted, got.Operation)
	assert.Equal(t, owner, got.OwnerID)
}

func TestRedisChangeFeed_SkipsMalformedPayload(t *testing.T) {
	feed, server := newFeed(t)
	ctx := context.Background()
	owner := uuid.New()

	sub, err := feed.Subscribe(ctx, entity.CollectionGoals, owner)
	require.NoError(t, err)
	defer sub.Close()

	server.Publish(feed.Channel(entity.CollectionGoals, owner), "{not json")
	require.NoError(t, feed.Publish(ctx, entity.NewChangeEvent(entity.CollectionGoals, entity.OperationUpdated, "g-1", owner)))

	assert.Equal(t, "g-1", nextEvent(t, sub.Events()).DocumentID)
}

func TestRedisChangeFeed_CloseEndsEvents(t *testing.T) {
	feed, _ := newFeed(t)
	sub, err := feed.Subscribe(context.Background(), entity.CollectionProfiles, uuid.New())
	require.NoError(t, err)

	require.NoError(t, sub.Close())
	_ = sub.Close()

	select {
	case _, ok := <-sub.Events():
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("events channel was not closed")
	}
}

func TestRedisChangeFeed_SubscribeFailsWhenRedisDown(t *testing.T) {
	feed, server := newFeed(t)
	server.Close()

	_, err := feed.Subscribe(context.Background(), entity.CollectionGoals, uuid.New())
	assert.Error(t, err)
}

func TestRedisChangeFeed_DrivesLiveQuery(t *testing.T) {
	feed, _ := newFeed(t)
	ctx := context.Background()
	owner := uuid.New()
	loads := 0

	handle, err := livequery.Open(ctx, feed, livequery.Query[int]{
		Collection: entity.CollectionNotifications,
		OwnerID:    owner,
		Load: func(ctx context.Context, _ *entity.ChangeEvent) (int, error) {
			loads++
			return loads, nil
		},
	})
	require.NoError(t, err)
	defer handle.Cancel()

	assert.Equal(t, 1, <-handle.Updates())

	require.NoError(t, feed.Publish(ctx, entity.NewChangeEvent(entity.CollectionNotifications, entity.OperationCreated, "n-1", owner)))

	select {
	case v := <-handle.Updates():
		assert.Equal(t, 2, v)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for refreshed snapshot")
	}
}

type stubPublisher struct {
	calls int
	err   error
}

func (s *stubPublisher) Publish(context.Context, *entity.ChangeEvent) error {
	s.calls++
	return s.err
}

func TestFanoutPublisher(t *testing.T) {
	ok := &stubPublisher{}
	failing := &stubPublisher{err: errors.New("broker down")}
	fanout := NewFanoutPublisher(failing, nil, ok)

	err := fanout.Publish(context.Background(), entity.NewChangeEvent(entity.CollectionGoals, entity.OperationCreated, "g", uuid.New()))

	assert.ErrorContains(t, err, "broker down")
	assert.Equal(t, 1, ok.calls)
	assert.Equal(t, 1, failing.calls)
	assert.NoError(t, NewFanoutPublisher().Publish(context.Background(), &entity.ChangeEvent{}))
}
