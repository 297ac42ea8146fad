package notification

import (
	"context"

	"github.com/google/uuid"

	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/application/livequery"
	"github.com/ecooy/backend/internal/domain/entity"
)

func publishNotificationChange(ctx context.Context, publisher adapter.ChangePublisher, op entity.ChangeOperation, documentID string, ownerID uuid.UUID) {
	livequery.Announce(ctx, publisher, entity.CollectionNotifications, op, documentID, ownerID)
}
