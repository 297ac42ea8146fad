// Package livequery turns change subscriptions into streams of query snapshots.
package livequery

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/domain/entity"
)

// Loader runs the watched query. It is called with a nil event for the
// initial snapshot and again with every change event received.
type Loader[T any] func(ctx context.Context, event *entity.ChangeEvent) (T, error)

// Query describes what a Handle watches.
type Query[T any] struct {
	Collection entity.Collection
	OwnerID    uuid.UUID
	Load       Loader[T]
}

// Handle is an open live query. Snapshots are delivered on Updates; when the
// consumer falls behind only the most recent snapshot is kept.
type Handle[T any] struct {
	updates chan T
	cancel  context.CancelFunc
	done    chan struct{}
	once    sync.Once
}

// Open subscribes to the query's collection, loads the initial snapshot and
// starts pushing fresh snapshots. The handle stops when ctx ends or Cancel is
// called; Updates is closed afterwards.
func Open[T any](ctx context.Context, subscriber adapter.ChangeSubscriber, query Query[T]) (*Handle[T], error) {
	ctx, cancel := context.WithCancel(ctx)

	sub, err := subscriber.Subscribe(ctx, query.Collection, query.OwnerID)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", query.Collection, err)
	}

	initial, err := query.Load(ctx, nil)
	if err != nil {
		_ = sub.Close()
		cancel()
		return nil, fmt.Errorf("failed to load initial snapshot: %w", err)
	}

	h := &Handle[T]{
		updates: make(chan T, 1),
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	h.push(initial)

	go h.run(ctx, sub, query)

	return h, nil
}

// Updates yields snapshots until the handle is cancelled.
func (h *Handle[T]) Updates() <-chan T {
	return h.updates
}

// Cancel stops the live query and waits for it to release its subscription.
// It is safe to call more than once.
func (h *Handle[T]) Cancel() {
	h.once.Do(h.cancel)
	<-h.done
}

// Done is closed once the handle has stopped.
func (h *Handle[T]) Done() <-chan struct{} {
	return h.done
}

func (h *Handle[T]) run(ctx context.Context, sub adapter.Subscription, query Query[T]) {
	defer close(h.done)
	defer close(h.updates)
	defer func() {
		if err := sub.Close(); err != nil {
			slog.Warn("Failed to close change subscription", "collection", query.Collection, "error", err)
		}
	}()

	events := sub.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			snapshot, err := query.Load(ctx, event)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				slog.Warn("Failed to refresh live query",
					"collection", query.Collection,
					"owner_id", query.OwnerID,
					"operation", event.Operation,
					"error", err)
				continue
			}
			h.push(snapshot)
		}
	}
}

// push replaces any snapshot the consumer has not read yet.
func (h *Handle[T]) push(snapshot T) {
	select {
	case h.updates <- snapshot:
		return
	default:
	}
	select {
	case <-h.updates:
	default:
	}
	select {
	case h.updates <- snapshot:
	default:
	}
}
