package realtime

import (
	"context"
	"errors"

	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/domain/entity"
)

// FanoutPublisher delivers every event to each configured publisher.
type FanoutPublisher struct {
	publishers []adapter.ChangePublisher
}

// NewFanoutPublisher creates a FanoutPublisher. Nil publishers are ignored.
func NewFanoutPublisher(publishers ...adapter.ChangePublisher) *FanoutPublisher {
	f := &FanoutPublisher{}
	for _, p := range publishers {
		if p != nil {
			f.publishers = append(f.publishers, p)
		}
	}
	return f
}

// Publish tries every publisher and joins their errors.
func (f *FanoutPublisher) Publish(ctx context.Context, event *entity.ChangeEvent) error {
	var errs []error
	for _, p := range f.publishers {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
