package email

import (
	"context"
	"log/slog"
	"time"

	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/domain/entity"
	domainerror "github.com/ecooy/backend/internal/domain/error"
	"github.com/ecooy/backend/internal/integration/email/templates"
)

// Worker processes the email queue and sends emails.
type Worker struct {
	queue        adapter.EmailQueueRepository
	sender       adapter.EmailSender
	renderer     *templates.Renderer
	pollInterval time.Duration
	batchSize    int
	now          func() time.Time
}

// WorkerConfig holds configuration for the email worker.
type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval: 5 * time.Second,
		BatchSize:    10,
	}
}

// NewWorker creates a new email worker.
func NewWorker(queue adapter.EmailQueueRepository, sender adapter.EmailSender, renderer *templates.Renderer, config WorkerConfig) *Worker {
	defaults := DefaultWorkerConfig()
	if config.PollInterval <= 0 {
		config.PollInterval = defaults.PollInterval
	}
	if config.BatchSize <= 0 {
		config.BatchSize = defaults.BatchSize
	}
	return &Worker{
		queue:        queue,
		sender:       sender,
		renderer:     renderer,
		pollInterval: config.PollInterval,
		batchSize:    config.BatchSize,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Start runs the worker loop until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) error {
	slog.Info("email worker started",
		"poll_interval", w.pollInterval,
		"batch_size", w.batchSize,
	)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.processBatch(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("email worker shutting down")
			return nil
		case <-ticker.C:
			w.processBatch(ctx)
		}
	}
}

// ProcessNow processes one batch immediately.
func (w *Worker) ProcessNow(ctx context.Context) {
	w.processBatch(ctx)
}

func (w *Worker) processBatch(ctx context.Context) {
	jobs, err := w.queue.DueJobs(ctx, w.now(), w.batchSize)
	if err != nil {
		slog.Error("failed to get pending email jobs", "error", err)
		return
	}

	if len(jobs) == 0 {
		return
	}

	slog.Debug("processing email batch", "count", len(jobs))

	now := w.now()
	for _, job := range jobs {
		if ctx.Err() != nil {
			return
		}
		if !job.IsReadyToProcess(now) {
			continue
		}
		w.processJob(ctx, job)
	}
}

func (w *Worker) processJob(ctx context.Context, job *entity.EmailJob) {
	logger := slog.With(
		"job_id", job.ID,
		"template", job.TemplateType,
		"recipient", job.RecipientEmail,
	)

	job.MarkProcessing()
	if err := w.queue.Save(ctx, job); err != nil {
		logger.Error("failed to mark job as processing", "error", err)
		return
	}

	html, text, err := w.renderTemplate(job)
	if err != nil {
		logger.Error("failed to render email template", "error", err)
		w.handleFailure(ctx, job, err, true)
		return
	}

	result, err := w.sender.Send(ctx, adapter.SendEmailInput{
		To:      job.RecipientEmail,
		Name:    job.RecipientName,
		Subject: job.Subject,
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		logger.Error("failed to send email", "error", err)

		w.handleFailure(ctx, job, err, domainerror.IsPermanentEmailFailure(err))
		return
	}

	job.MarkSent(result.ResendID)
	if err := w.queue.Save(ctx, job); err != nil {
		logger.Error("failed to mark job as sent", "error", err)
		return
	}

	logger.Info("email sent", "resend_id", result.ResendID)
}

func (w *Worker) renderTemplate(job *entity.EmailJob) (string, string, error) {
	var data any
	switch job.TemplateType {
	case entity.TemplatePasswordReset:
		data = templates.PasswordResetData{
			UserName:  getString(job.TemplateData, "user_name"),
			ResetURL:  getString(job.TemplateData, "reset_url"),
			ExpiresIn: getString(job.TemplateData, "expires_in"),
		}
	case entity.TemplateWelcome:
		data = templates.WelcomeData{
			UserName: getString(job.TemplateData, "user_name"),
			AppURL:   getString(job.TemplateData, "app_url"),
		}
	case entity.TemplateGoalReached:
		data = templates.GoalReachedData{
			UserName:     getString(job.TemplateData, "user_name"),
			GoalName:     getString(job.TemplateData, "goal_name"),
			TargetAmount: getString(job.TemplateData, "target_amount"),
			SavedAmount:  getString(job.TemplateData, "saved_amount"),
			AppURL:       getString(job.TemplateData, "app_url"),
		}
	case entity.TemplateSalaryDay:
		data = templates.SalaryDayData{
			UserName:      getString(job.TemplateData, "user_name"),
			Salary:        getString(job.TemplateData, "salary"),
			FixedExpenses: getString(job.TemplateData, "fixed_expenses"),
			Available:     getString(job.TemplateData, "available"),
			AppURL:        getString(job.TemplateData, "app_url"),
		}
	default:
		return "", "", domainerror.NewEmailError(
			domainerror.ErrCodeInvalidTemplate,
			"unknown template type",
			domainerror.ErrInvalidTemplate,
		)
	}

	html, text, err := w.renderer.Render(string(job.TemplateType), data)
	if err != nil {
		return "", "", domainerror.NewEmailError(
			domainerror.ErrCodeTemplateRenderFailed,
			"failed to render template",
			err,
		)
	}
	return html, text, nil
}

func (w *Worker) handleFailure(ctx context.Context, job *entity.EmailJob, err error, permanent bool) {
	job.MarkFailed(err, permanent)

	if updateErr := w.queue.Save(ctx, job); updateErr != nil {
		slog.Error("failed to update job after failure",
			"job_id", job.ID,
			"error", updateErr,
		)
	}

	if job.Status == entity.EmailStatusFailed {
		slog.Warn("email job permanently failed",
			"job_id", job.ID,
			"attempts", job.Attempts,
			"last_error", job.LastError,
		)
		return
	}
	slog.Info("email job scheduled for retry",
		"job_id", job.ID,
		"attempts", job.Attempts,
		"scheduled_at", job.ScheduledAt,
	)
}

func getString(data map[string]any, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}
