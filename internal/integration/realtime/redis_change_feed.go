// Package realtime implements the change feed behind live queries on Redis pub/sub.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/domain/entity"
)

// subscriptionBuffer is the number of decoded events held per subscription.
const subscriptionBuffer = 16

// RedisChangeFeed publishes and subscribes to change events on per-owner channels.
type RedisChangeFeed struct {
	client *redis.Client
	prefix string
}

// NewRedisChangeFeed creates a new RedisChangeFeed instance.
func NewRedisChangeFeed(client *redis.Client, prefix string) *RedisChangeFeed {
	return &RedisChangeFeed{
		client: client,
		prefix: prefix,
	}
}

// Channel returns the pub/sub channel of an owner's collection.
func (f *RedisChangeFeed) Channel(collection entity.Collection, ownerID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:%s", f.prefix, collection, ownerID)
}

// Publish sends the event to the owner's channel.
func (f *RedisChangeFeed) Publish(ctx context.Context, event *entity.ChangeEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal change event: %w", err)
	}
	if err := f.client.Publish(ctx, f.Channel(event.Collection, event.OwnerID), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish change event: %w", err)
	}
	return nil
}

// Subscribe opens a subscription and waits for Redis to confirm it.
func (f *RedisChangeFeed) Subscribe(ctx context.Context, collection entity.Collection, ownerID uuid.UUID) (adapter.Subscription, error) {
	channel := f.Channel(collection, ownerID)
	pubsub := f.client.Subscribe(ctx, channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}

	sub := &redisSubscription{
		pubsub:  pubsub,
		channel: channel,
		events:  make(chan *entity.ChangeEvent, subscriptionBuffer),
		done:    make(chan struct{}),
	}
	go sub.forward(pubsub.Channel())
	return sub, nil
}

type redisSubscription struct {
	pubsub   *redis.PubSub
	channel  string
	events   chan *entity.ChangeEvent
	done     chan struct{}
	once     sync.Once
	closeErr error
}

func (s *redisSubscription) Events() <-chan *entity.ChangeEvent {
	return s.events
}

func (s *redisSubscription) Close() error {
	s.once.Do(func() {
		close(s.done)
		s.closeErr = s.pubsub.Close()
	})
	return s.closeErr
}

func (s *redisSubscription) forward(messages <-chan *redis.Message) {
	defer close(s.events)
	for {
		select {
		case <-s.done:
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			var event entity.ChangeEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				slog.Warn("dropping malformed change event", "channel", s.channel, "error", err)
				continue
			}
			select {
			case s.events <- &event:
			case <-s.done:
				return
			}
		}
	}
}
