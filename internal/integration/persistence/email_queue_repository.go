// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/domain/entity"
	domainerror "github.com/ecooy/backend/internal/domain/error"
	"github.com/ecooy/backend/internal/integration/persistence/model"
)

type emailQueueRepository struct {
	db *gorm.DB
}

// NewEmailQueueRepository creates a new email queue repository instance.
func NewEmailQueueRepository(db *gorm.DB) adapter.EmailQueueRepository {
	return &emailQueueRepository{db: db}
}

func (r *emailQueueRepository) Enqueue(ctx context.Context, job *entity.EmailJob) error {
	if !job.TemplateType.IsValid() {
		return domainerror.NewEmailError(
			domainerror.ErrCodeInvalidTemplate,
			fmt.Sprintf("cannot queue %q email", job.TemplateType),
			domainerror.ErrInvalidTemplate,
		)
	}

	row, err := model.EmailQueueModelFromEntity(job)
	if err == nil {
		err = r.db.WithContext(ctx).Create(row).Error
	}
	if err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			fmt.Sprintf("failed to store %s email", job.TemplateType),
			err,
		)
	}
	return nil
}

func (r *emailQueueRepository) DueJobs(ctx context.Context, now time.Time, limit int) ([]*entity.EmailJob, error) {
	var rows []model.EmailQueueModel
	err := r.db.WithContext(ctx).
		Where("status = ? AND scheduled_at <= ?", entity.EmailStatusPending, now.UTC()).
		Order("scheduled_at ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	jobs := make([]*entity.EmailJob, 0, len(rows))
	for i := range rows {
		job, err := rows[i].ToEntity()
		if err != nil {
			slog.Warn("skipping malformed email job", "job_id", rows[i].ID, "error", err)
			continue
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func (r *emailQueueRepository) Save(ctx context.Context, job *entity.EmailJob) error {
	row, err := model.EmailQueueModelFromEntity(job)
	if err != nil {
		return fmt.Errorf("failed to encode email job: %w", err)
	}
	return r.db.WithContext(ctx).Save(row).Error
}

func (r *emailQueueRepository) CancelPending(ctx context.Context, recipientEmail, reason string) (int64, error) {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&model.EmailQueueModel{}).
		Where("recipient_email = ? AND status = ?", recipientEmail, entity.EmailStatusPending).
		Updates(map[string]any{
			"status":       string(entity.EmailStatusFailed),
			"last_error":   reason,
			"processed_at": &now,
		})
	return result.RowsAffected, result.Error
}
