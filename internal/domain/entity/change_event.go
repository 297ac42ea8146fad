package entity

import (
	"time"

	"github.com/google/uuid"
)

// Collection names a family of documents that can be watched.
type Collection string

const (
	CollectionTransactions  Collection = "transactions"
	CollectionGoals         Collection = "goals"
	CollectionProfiles      Collection = "profiles"
	CollectionNotifications Collection = "notifications"
	CollectionSessions      Collection = "sessions"
)

// ChangeOperation describes what happened to a document.
type ChangeOperation string

const (
	OperationCreated   ChangeOperation = "created"
	OperationUpdated   ChangeOperation = "updated"
	OperationDeleted   ChangeOperation = "deleted"
	OperationSignedIn  ChangeOperation = "signed_in"
	OperationSignedOut ChangeOperation = "signed_out"
	OperationRefreshed ChangeOperation = "refreshed"
)

// ChangeEvent is emitted after every successful write.
type ChangeEvent struct {
	Collection Collection      `json:"collection"`
	Operation  ChangeOperation `json:"operation"`
	DocumentID string          `json:"document_id"`
	OwnerID    uuid.UUID       `json:"owner_id"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// NewChangeEvent creates a ChangeEvent stamped with the current time.
func NewChangeEvent(collection Collection, operation ChangeOperation, documentID string, ownerID uuid.UUID) *ChangeEvent {
	return &ChangeEvent{
		Collection: collection,
		Operation:  operation,
		DocumentID: documentID,
		OwnerID:    ownerID,
		OccurredAt: time.Now().UTC(),
	}
}

// RoutingKey is the broker routing key for the event.
func (e *ChangeEvent) RoutingKey() string {
	return string(e.Collection) + "." + string(e.Operation)
}
