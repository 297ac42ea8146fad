package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/domain/entity"
	"github.com/ecooy/backend/internal/domain/valueobject"
)

// SalaryReminderTitle is the title of the payment notification created on salary day.
const SalaryReminderTitle = "Dia do pagamento!"

// SalaryReminderUseCase notifies users whose salary falls on the current day.
type SalaryReminderUseCase struct {
	profileRepo      adapter.ProfileRepository
	notificationRepo adapter.NotificationRepository
	emailService     adapter.EmailService
	publisher        adapter.ChangePublisher
	now              func() time.Time
}

// NewSalaryReminderUseCase creates a new SalaryReminderUseCase instance.
func NewSalaryReminderUseCase(
	profileRepo adapter.ProfileRepository,
	notificationRepo adapter.NotificationRepository,
	emailService adapter.EmailService,
	publisher adapter.ChangePublisher,
) *SalaryReminderUseCase {
	return &SalaryReminderUseCase{
		profileRepo:      profileRepo,
		notificationRepo: notificationRepo,
		emailService:     emailService,
		publisher:        publisher,
		now:              time.Now,
	}
}

// WithClock replaces the time source.
func (uc *SalaryReminderUseCase) WithClock(now func() time.Time) *SalaryReminderUseCase {
	uc.now = now
	return uc
}

// Execute sends at most one reminder per user per day and returns how many were sent.
func (uc *SalaryReminderUseCase) Execute(ctx context.Context) (int, error) {
	now := uc.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	profiles, err := uc.profileRepo.FindBySalaryDay(ctx, SalaryDaysFor(now))
	if err != nil {
		return 0, fmt.Errorf("failed to find salary day profiles: %w", err)
	}

	sent := 0
	for _, profile := range profiles {
		if err := ctx.Err(); err != nil {
			return sent, err
		}

		exists, err := uc.notificationRepo.ExistsSince(ctx, profile.UserID, entity.NotificationTypePayment, SalaryReminderTitle, startOfDay)
		if err != nil {
			slog.Error("failed to check salary reminder",
				"user_id", profile.UserID.String(),
				"error", err,
			)
			continue
		}
		if exists {
			continue
		}

		if err := uc.remind(ctx, profile, now); err != nil {
			slog.Error("failed to create salary reminder",
				"user_id", profile.UserID.String(),
				"error", err,
			)
			continue
		}
		sent++
	}

	return sent, nil
}

func (uc *SalaryReminderUseCase) remind(ctx context.Context, profile *entity.Profile, now time.Time) error {
	salary := decimal.Zero
	if profile.Salary != nil {
		salary = *profile.Salary
	}
	fixed := decimal.Zero
	if profile.FixedExpenses != nil {
		fixed = *profile.FixedExpenses
	}
	available := salary.Sub(fixed)

	message := "Hoje é dia de receber. Registre seu salário e planeje o mês."
	if salary.IsPositive() {
		message = fmt.Sprintf("Hoje cai seu salário de %s. Após os gastos fixos, restam %s para o mês.",
			valueobject.FormatCurrency(salary), valueobject.FormatCurrency(available))
	}

	notification := entity.NewNotification(profile.UserID, entity.NotificationTypePayment, SalaryReminderTitle, message)
	notification.Date = now.UTC()
	if err := uc.notificationRepo.Create(ctx, notification); err != nil {
		return err
	}
	publishNotificationChange(ctx, uc.publisher, entity.OperationCreated, notification.ID.String(), profile.UserID)

	if uc.emailService != nil && profile.Email != "" {
		if err := uc.emailService.QueueSalaryDayEmail(ctx, adapter.QueueSalaryDayInput{
			UserEmail:     profile.Email,
			UserName:      profile.DisplayName,
			Salary:        valueobject.FormatCurrency(salary),
			FixedExpenses: valueobject.FormatCurrency(fixed),
			Available:     valueobject.FormatCurrency(available),
		}); err != nil {
			slog.Warn("failed to queue salary day email",
				"user_id", profile.UserID.String(),
				"error", err,
			)
		}
	}
	return nil
}

// SalaryDaysFor returns the salary days that land on the given date.
// On the last day of a month every later day is included too.
func SalaryDaysFor(date time.Time) []int {
	day := date.Day()
	lastDay := time.Date(date.Year(), date.Month()+1, 0, 0, 0, 0, 0, date.Location()).Day()
	if day < lastDay {
		return []int{day}
	}

	days := make([]int, 0, entity.MaxSalaryDay-day+1)
	for d := day; d <= entity.MaxSalaryDay; d++ {
		days = append(days, d)
	}
	return days
}
