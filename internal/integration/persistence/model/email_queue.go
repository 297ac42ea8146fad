package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/ecooy/backend/internal/domain/entity"
	domainerror "github.com/ecooy/backend/internal/domain/error"
)

// EmailQueueModel is one outbound message in the email_queue table.
// TemplateData holds the render variables as a JSON object.
type EmailQueueModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TemplateType   string     `gorm:"type:varchar(50);not null"`
	RecipientEmail string     `gorm:"type:varchar(255);not null;index:idx_email_queue_recipient"`
	RecipientName  string     `gorm:"type:varchar(255)"`
	Subject        string     `gorm:"type:varchar(500);not null"`
	TemplateData   string     `gorm:"type:jsonb;not null;default:'{}'"`
	Status         string     `gorm:"type:varchar(20);not null;default:'pending';index:idx_email_queue_pending,priority:1"`
	Attempts       int        `gorm:"not null;default:0"`
	MaxAttempts    int        `gorm:"not null;default:3"`
	LastError      string     `gorm:"type:text"`
	ResendID       string     `gorm:"type:varchar(100)"`
	CreatedAt      time.Time  `gorm:"not null"`
	ScheduledAt    time.Time  `gorm:"not null;index:idx_email_queue_pending,priority:2"`
	ProcessedAt    *time.Time `gorm:"type:timestamptz"`
}

// TableName returns the table name for the EmailQueueModel.
func (EmailQueueModel) TableName() string {
	return "email_queue"
}

// ToEntity decodes the row. A template kind the worker cannot render or
// render variables that are not a JSON object make the row malformed.
func (m *EmailQueueModel) ToEntity() (*entity.EmailJob, error) {
	templateType := entity.EmailTemplateType(m.TemplateType)
	if !templateType.IsValid() {
		return nil, domainerror.NewMalformedDocumentError(collectionEmailQueue, m.ID.String(), "unknown template "+m.TemplateType)
	}

	data := map[string]any{}
	if m.TemplateData != "" {
		if err := json.Unmarshal([]byte(m.TemplateData), &data); err != nil || data == nil {
			return nil, domainerror.NewMalformedDocumentError(collectionEmailQueue, m.ID.String(), "template data is not an object")
		}
	}

	return &entity.EmailJob{
		ID:             m.ID,
		TemplateType:   templateType,
		RecipientEmail: m.RecipientEmail,
		RecipientName:  m.RecipientName,
		Subject:        m.Subject,
		TemplateData:   data,
		Status:         entity.EmailStatus(m.Status),
		Attempts:       m.Attempts,
		MaxAttempts:    m.MaxAttempts,
		LastError:      m.LastError,
		ResendID:       m.ResendID,
		CreatedAt:      m.CreatedAt,
		ScheduledAt:    m.ScheduledAt,
		ProcessedAt:    m.ProcessedAt,
	}, nil
}

// EmailQueueModelFromEntity encodes a job for storage.
func EmailQueueModelFromEntity(job *entity.EmailJob) (*EmailQueueModel, error) {
	data := job.TemplateData
	if data == nil {
		data = map[string]any{}
	}
	encoded, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &EmailQueueModel{
		ID:             job.ID,
		TemplateType:   string(job.TemplateType),
		RecipientEmail: job.RecipientEmail,
		RecipientName:  job.RecipientName,
		Subject:        job.Subject,
		TemplateData:   string(encoded),
		Status:         string(job.Status),
		Attempts:       job.Attempts,
		MaxAttempts:    job.MaxAttempts,
		LastError:      job.LastError,
		ResendID:       job.ResendID,
		CreatedAt:      job.CreatedAt,
		ScheduledAt:    job.ScheduledAt,
		ProcessedAt:    job.ProcessedAt,
	}, nil
}
