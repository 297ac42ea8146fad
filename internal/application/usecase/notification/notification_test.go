package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/domain/entity"
	domainerror "github.com/ecooy/backend/internal/domain/error"
)

type fakeNotificationRepo struct {
	items []*entity.Notification
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *entity.Notification) error {
	r.items = append(r.items, n)
	return nil
}

func (r *fakeNotificationRepo) FindByOwner(_ context.Context, userID uuid.UUID, unreadOnly bool) ([]*entity.Notification, error) {
	var result []*entity.Notification
	for _, n := range r.items {
		if n.UserID == userID && (!unreadOnly || !n.IsRead) {
			result = append(result, n)
		}
	}
	return result, nil
}

func (r *fakeNotificationRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Notification, error) {
	for _, n := range r.items {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, domainerror.ErrNotificationNotFound
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id uuid.UUID) error {
	for _, n := range r.items {
		if n.ID == id {
			n.IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) MarkAllRead(_ context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for _, n := range r.items {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	unread, _ := r.FindByOwner(ctx, userID, true)
	return int64(len(unread)), nil
}

func (r *fakeNotificationRepo) ExistsSince(_ context.Context, userID uuid.UUID, notificationType entity.NotificationType, title string, since time.Time) (bool, error) {
	for _, n := range r.items {
		if n.UserID == userID && n.Type == notificationType && n.Title == title && !n.Date.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

type fakeProfileRepo struct {
	profiles []*entity.Profile
	lastDays []int
}

func (r *fakeProfileRepo) Create(context.Context, *entity.Profile) error { return nil }

func (r *fakeProfileRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.Profile, error) {
	for _, p := range r.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, domainerror.ErrProfileNotFound
}

func (r *fakeProfileRepo) Update(context.Context, *entity.Profile) error { return nil }

func (r *fakeProfileRepo) FindBySalaryDay(_ context.Context, days []int) ([]*entity.Profile, error) {
	r.lastDays = days
	var result []*entity.Profile
	for _, p := range r.profiles {
		if p.SalaryDay == nil {
			continue
		}
		for _, d := range days {
			if *p.SalaryDay == d {
				result = append(result, p)
				break
			}
		}
	}
	return result, nil
}

type fakeTransactionRepo struct {
	items []*entity.Transaction
}

func (r *fakeTransactionRepo) Create(context.Context, *entity.Transaction) error { return nil }

func (r *fakeTransactionRepo) FindByID(context.Context, uuid.UUID) (*entity.Transaction, error) {
	return nil, domainerror.ErrTransactionNotFound
}

func (r *fakeTransactionRepo) FindByOwner(context.Context, uuid.UUID, entity.TransactionFilter) ([]*entity.Transaction, error) {
	return r.items, nil
}

func (r *fakeTransactionRepo) Update(context.Context, *entity.Transaction) error { return nil }

func (r *fakeTransactionRepo) Delete(context.Context, uuid.UUID) error { return nil }

func (r *fakeTransactionRepo) DeleteByOwner(context.Context, uuid.UUID) error { return nil }

type fakeGoalRepo struct {
	items []*entity.Goal
}

func (r *fakeGoalRepo) Create(context.Context, *entity.Goal) error { return nil }

func (r *fakeGoalRepo) FindByID(context.Context, uuid.UUID) (*entity.Goal, error) {
	return nil, domainerror.ErrGoalNotFound
}

func (r *fakeGoalRepo) FindByOwner(context.Context, uuid.UUID) ([]*entity.Goal, error) {
	return r.items, nil
}

func (r *fakeGoalRepo) Update(context.Context, *entity.Goal) error { return nil }

func (r *fakeGoalRepo) AddToCurrentAmount(context.Context, uuid.UUID, decimal.Decimal) (*entity.Goal, error) {
	return nil, domainerror.ErrGoalNotFound
}

func (r *fakeGoalRepo) Delete(context.Context, uuid.UUID) error { return nil }

type fakeTipGenerator struct {
	available bool
	tip       *adapter.Tip
	err       error
	calls     int
}

func (g *fakeTipGenerator) GenerateTip(context.Context, *adapter.TipRequest) (*adapter.Tip, error) {
	g.calls++
	return g.tip, g.err
}

func (g *fakeTipGenerator) IsAvailable() bool { return g.available }

type fakeEmailService struct {
	salaryEmails []adapter.QueueSalaryDayInput
}

func (s *fakeEmailService) QueuePasswordResetEmail(context.Context, adapter.QueuePasswordResetInput) error {
	return nil
}

func (s *fakeEmailService) QueueWelcomeEmail(context.Context, adapter.QueueWelcomeInput) error {
	return nil
}

func (s *fakeEmailService) QueueGoalReachedEmail(context.Context, adapter.QueueGoalReachedInput) error {
	return nil
}

func (s *fakeEmailService) QueueSalaryDayEmail(_ context.Context, input adapter.QueueSalaryDayInput) error {
	s.salaryEmails = append(s.salaryEmails, input)
	return nil
}

func profileWithSalary(day int, salary, fixed int64) *entity.Profile {
	p := entity.NewProfile(&entity.User{ID: uuid.New(), Email: "ana@example.com", Name: "Ana"})
	s := decimal.NewFromInt(salary)
	f := decimal.NewFromInt(fixed)
	p.Salary = &s
	p.FixedExpenses = &f
	p.SalaryDay = &day
	return p
}

func TestMarkRead(t *testing.T) {
	owner := uuid.New()
	repo := &fakeNotificationRepo{}
	n := entity.NewNotification(owner, entity.NotificationTypeTip, "Dica", "Economize")
	require.NoError(t, repo.Create(context.Background(), n))

	uc := NewMarkReadUseCase(repo, nil)

	err := uc.Execute(context.Background(), n.ID, uuid.New())
	var notificationErr *domainerror.NotificationError
	require.True(t, errors.As(err, &notificationErr))
	assert.Equal(t, domainerror.ErrCodeNotificationNotFound, notificationErr.Code)
	assert.False(t, n.IsRead)

	require.NoError(t, uc.Execute(context.Background(), n.ID, owner))
	assert.True(t, n.IsRead)
}

func TestMarkAllReadAndList(t *testing.T) {
	owner := uuid.New()
	repo := &fakeNotificationRepo{}
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(context.Background(), entity.NewNotification(owner, entity.NotificationTypeTip, "Dica", "x")))
	}

	out, err := NewListNotificationsUseCase(repo).Execute(context.Background(), owner, false)
	require.NoError(t, err)
	assert.Len(t, out.Notifications, 3)
	assert.Equal(t, int64(3), out.Unread)

	updated, err := NewMarkAllReadUseCase(repo, nil).Execute(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, int64(3), updated)

	out, err = NewListNotificationsUseCase(repo).Execute(context.Background(), owner, true)
	require.NoError(t, err)
	assert.Empty(t, out.Notifications)
	assert.Equal(t, int64(0), out.Unread)
}

func TestGenerateTip(t *testing.T) {
	profile := profileWithSalary(5, 3000, 1000)
	transactions := &fakeTransactionRepo{items: []*entity.Transaction{
		entity.NewTransaction(profile.UserID, "Salário", decimal.NewFromInt(100), entity.TransactionTypeIncome, "Geral", ""),
		entity.NewTransaction(profile.UserID, "Mercado", decimal.NewFromInt(150), entity.TransactionTypeExpense, "Alimentação", ""),
	}}

	t.Run("uses generator when available", func(t *testing.T) {
		notifications := &fakeNotificationRepo{}
		generator := &fakeTipGenerator{available: true, tip: &adapter.Tip{Title: "IA", Message: "Dica gerada"}}
		uc := NewGenerateTipUseCase(&fakeProfileRepo{profiles: []*entity.Profile{profile}}, transactions, &fakeGoalRepo{}, notifications, generator, nil)

		n, err := uc.Execute(context.Background(), profile.UserID)
		require.NoError(t, err)
		assert.Equal(t, "IA", n.Title)
		assert.Equal(t, entity.NotificationTypeTip, n.Type)
		assert.Len(t, notifications.items, 1)
	})

	t.Run("falls back to heuristics on failure", func(t *testing.T) {
		generator := &fakeTipGenerator{available: true, err: errors.New("quota")}
		uc := NewGenerateTipUseCase(&fakeProfileRepo{profiles: []*entity.Profile{profile}}, transactions, &fakeGoalRepo{}, &fakeNotificationRepo{}, generator, nil)

		n, err := uc.Execute(context.Background(), profile.UserID)
		require.NoError(t, err)
		assert.Equal(t, 1, generator.calls)
		assert.Equal(t, "Saldo negativo", n.Title)
	})

	t.Run("missing profile", func(t *testing.T) {
		uc := NewGenerateTipUseCase(&fakeProfileRepo{}, transactions, &fakeGoalRepo{}, &fakeNotificationRepo{}, nil, nil)

		_, err := uc.Execute(context.Background(), uuid.New())
		assert.ErrorIs(t, err, domainerror.ErrTipGenerationFailed)
	})
}

func TestHeuristicTip(t *testing.T) {
	salary := decimal.NewFromInt(1000)
	highFixed := decimal.NewFromInt(700)

	tests := []struct {
		name     string
		request  *adapter.TipRequest
		expected string
	}{
		{
			name:     "negative balance",
			request:  &adapter.TipRequest{Balance: decimal.NewFromInt(-10)},
			expected: "Saldo negativo",
		},
		{
			name:     "high fixed expenses",
			request:  &adapter.TipRequest{Salary: &salary, FixedExpenses: &highFixed},
			expected: "Gastos fixos altos",
		},
		{
			name: "dominant category",
			request: &adapter.TipRequest{
				Expenses: decimal.NewFromInt(100),
				ExpensesByCategory: map[string]decimal.Decimal{
					"Lazer":      decimal.NewFromInt(80),
					"Transporte": decimal.NewFromInt(20),
				},
			},
			expected: "Atenção a Lazer",
		},
		{
			name:     "open goal",
			request:  &adapter.TipRequest{Balance: decimal.NewFromInt(50), OpenGoals: []string{"Viagem"}},
			expected: "Invista nas suas metas",
		},
		{
			name:     "default",
			request:  &adapter.TipRequest{},
			expected: "Reserva de emergência",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HeuristicTip(tt.request).Title)
		})
	}
}

func TestSalaryDaysFor(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		expected []int
	}{
		{"mid month", time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC), []int{15}},
		{"end of long month", time.Date(2024, 3, 31, 9, 0, 0, 0, time.UTC), []int{31}},
		{"end of leap february", time.Date(2024, 2, 29, 9, 0, 0, 0, time.UTC), []int{29, 30, 31}},
		{"end of april", time.Date(2024, 4, 30, 9, 0, 0, 0, time.UTC), []int{30, 31}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SalaryDaysFor(tt.date))
		})
	}
}

func TestSalaryReminder_OncePerDay(t *testing.T) {
	onTheDay := profileWithSalary(31, 3000, 1000)
	otherDay := profileWithSalary(10, 2000, 0)
	profiles := &fakeProfileRepo{profiles: []*entity.Profile{onTheDay, otherDay}}
	notifications := &fakeNotificationRepo{}
	emails := &fakeEmailService{}
	clock := func() time.Time { return time.Date(2024, 2, 29, 9, 0, 0, 0, time.UTC) }

	uc := NewSalaryReminderUseCase(profiles, notifications, emails, nil).WithClock(clock)

	sent, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, []int{29, 30, 31}, profiles.lastDays)
	require.Len(t, notifications.items, 1)
	assert.Equal(t, onTheDay.UserID, notifications.items[0].UserID)
	assert.Equal(t, entity.NotificationTypePayment, notifications.items[0].Type)
	require.Len(t, emails.salaryEmails, 1)
	assert.Equal(t, "R$ 2.000,00", emails.salaryEmails[0].Available)

	sent, err = uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
	assert.Len(t, notifications.items, 1)
}
