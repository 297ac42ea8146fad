package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/ecooy/backend/internal/domain/entity"
)

// ChangePublisher announces document writes to interested parties.
type ChangePublisher interface {
	// Publish delivers the event. Callers treat failures as non-fatal.
	Publish(ctx context.Context, event *entity.ChangeEvent) error
}

// ChangeSubscriber opens per-owner subscriptions to a collection.
type ChangeSubscriber interface {
	// Subscribe starts receiving the owner's change events for a collection.
	// The subscription is live once Subscribe returns.
	Subscribe(ctx context.Context, collection entity.Collection, ownerID uuid.UUID) (Subscription, error)
}

// Subscription is an open change stream.
type Subscription interface {
	// Events yields change events until the subscription is closed.
	Events() <-chan *entity.ChangeEvent

	// Close stops the stream. It is safe to call more than once.
	Close() error
}
