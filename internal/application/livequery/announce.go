package livequery

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/domain/entity"
)

// Announce publishes a change event after a successful write. Failures are
// logged and never returned: the write already happened.
func Announce(
	ctx context.Context,
	publisher adapter.ChangePublisher,
	collection entity.Collection,
	operation entity.ChangeOperation,
	documentID string,
	ownerID uuid.UUID,
) {
	if publisher == nil {
		return
	}
	event := entity.NewChangeEvent(collection, operation, documentID, ownerID)
	if err := publisher.Publish(ctx, event); err != nil {
		slog.Warn("Failed to publish change event",
			"collection", collection,
			"operation", operation,
			"document_id", documentID,
			"owner_id", ownerID,
			"error", err)
	}
}
