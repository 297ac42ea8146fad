package adapter

import (
	"context"
	"time"

	"github.com/ecooy/backend/internal/domain/entity"
)

// EmailQueueRepository persists the outbound mail of welcome, reset,
// goal and salary-day messages until the worker delivers them.
type EmailQueueRepository interface {
	Enqueue(ctx context.Context, job *entity.EmailJob) error

	// DueJobs returns pending jobs scheduled at or before now, oldest first.
	// Rows with an unknown template kind are skipped.
	DueJobs(ctx context.Context, now time.Time, limit int) ([]*entity.EmailJob, error)

	Save(ctx context.Context, job *entity.EmailJob) error

	// CancelPending fails every job still pending for the recipient and
	// returns how many were cancelled.
	CancelPending(ctx context.Context, recipientEmail, reason string) (int64, error)
}
