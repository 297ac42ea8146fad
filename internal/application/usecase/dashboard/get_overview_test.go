package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ecooy/backend/internal/domain/entity"
	domainerror "github.com/ecooy/backend/internal/domain/error"
)

type stubTransactions struct{ items []*entity.Transaction }

func (s *stubTransactions) Create(context.Context, *entity.Transaction) error { return nil }
func (s *stubTransactions) FindByID(context.Context, uuid.UUID) (*entity.Transaction, error) {
	return nil, domainerror.ErrTransactionNotFound
}
func (s *stubTransactions) FindByOwner(context.Context, uuid.UUID, entity.TransactionFilter) ([]*entity.Transaction, error) {
	return s.items, nil
}
func (s *stubTransactions) Update(context.Context, *entity.Transaction) error { return nil }
func (s *stubTransactions) Delete(context.Context, uuid.UUID) error          { return nil }
func (s *stubTransactions) DeleteByOwner(context.Context, uuid.UUID) error   { return nil }

type stubProfiles struct{ profile *entity.Profile }

func (s *stubProfiles) Create(context.Context, *entity.Profile) error { return nil }
func (s *stubProfiles) FindByUserID(context.Context, uuid.UUID) (*entity.Profile, error) {
	if s.profile == nil {
		return nil, domainerror.ErrProfileNotFound
	}
	return s.profile, nil
}
func (s *stubProfiles) Update(context.Context, *entity.Profile) error { return nil }
func (s *stubProfiles) FindBySalaryDay(context.Context, []int) ([]*entity.Profile, error) {
	return nil, nil
}

type stubGoals struct{ items []*entity.Goal }

func (s *stubGoals) Create(context.Context, *entity.Goal) error { return nil }
func (s *stubGoals) FindByID(context.Context, uuid.UUID) (*entity.Goal, error) {
	return nil, domainerror.ErrGoalNotFound
}
func (s *stubGoals) FindByOwner(context.Context, uuid.UUID) ([]*entity.Goal, error) {
	return s.items, nil
}
func (s *stubGoals) Update(context.Context, *entity.Goal) error { return nil }
func (s *stubGoals) AddToCurrentAmount(context.Context, uuid.UUID, decimal.Decimal) (*entity.Goal, error) {
	return nil, domainerror.ErrGoalNotFound
}
func (s *stubGoals) Delete(context.Context, uuid.UUID) error { return nil }

type stubNotifications struct{ unread int64 }

func (s *stubNotifications) Create(context.Context, *entity.Notification) error { return nil }
func (s *stubNotifications) FindByOwner(context.Context, uuid.UUID, bool) ([]*entity.Notification, error) {
	return nil, nil
}
func (s *stubNotifications) FindByID(context.Context, uuid.UUID) (*entity.Notification, error) {
	return nil, domainerror.ErrNotificationNotFound
}
func (s *stubNotifications) MarkRead(context.Context, uuid.UUID) error { return nil }
func (s *stubNotifications) MarkAllRead(context.Context, uuid.UUID) (int64, error) {
	return 0, nil
}
func (s *stubNotifications) CountUnread(context.Context, uuid.UUID) (int64, error) {
	return s.unread, nil
}
func (s *stubNotifications) ExistsSince(context.Context, uuid.UUID, entity.NotificationType, string, time.Time) (bool, error) {
	return false, nil
}

func TestGetOverview(t *testing.T) {
	userID := uuid.New()
	profile := entity.NewProfile(&entity.User{ID: userID, Email: "ana@example.com", Name: "Ana"})
	salary := decimal.NewFromInt(3000)
	fixed := decimal.NewFromInt(1000)
	day := 31
	profile.Salary = &salary
	profile.FixedExpenses = &fixed
	profile.SalaryDay = &day

	transactions := &stubTransactions{items: []*entity.Transaction{
		entity.NewTransaction(userID, "Salário", decimal.NewFromInt(3000), entity.TransactionTypeIncome, "Geral", "2024-02-01"),
		entity.NewTransaction(userID, "Mercado", decimal.NewFromInt(300), entity.TransactionTypeExpense, "Alimentação", "2024-02-02"),
		entity.NewTransaction(userID, "Cinema", decimal.NewFromInt(100), entity.TransactionTypeExpense, "Lazer", "2024-02-03"),
	}}

	reached := entity.NewGoal(userID, "Reserva", "", decimal.NewFromInt(10), nil)
	reached.CurrentAmount = decimal.NewFromInt(10)
	open := entity.NewGoal(userID, "Viagem", "", decimal.NewFromInt(1000), nil)

	uc := NewGetOverviewUseCase(transactions, &stubProfiles{profile: profile}, &stubGoals{items: []*entity.Goal{reached, open}}, &stubNotifications{unread: 2}).
		WithClock(func() time.Time { return time.Date(2024, 2, 10, 8, 0, 0, 0, time.UTC) })

	overview, err := uc.Execute(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !overview.Summary.Balance.Equal(decimal.NewFromInt(2600)) {
		t.Errorf("expected balance 2600, got %s", overview.Summary.Balance)
	}
	if overview.CommittedBudget == nil || !overview.CommittedBudget.Equal(decimal.NewFromInt(1600)) {
		t.Errorf("expected committed budget 1600, got %v", overview.CommittedBudget)
	}
	expectedDate := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	if overview.NextSalaryDate == nil || !overview.NextSalaryDate.Equal(expectedDate) {
		t.Errorf("expected next salary date %s, got %v", expectedDate, overview.NextSalaryDate)
	}
	if overview.Goals.Total != 2 || overview.Goals.Reached != 1 {
		t.Errorf("unexpected goal counts %+v", overview.Goals)
	}
	if overview.UnreadNotifications != 2 {
		t.Errorf("expected 2 unread, got %d", overview.UnreadNotifications)
	}
	if len(overview.CategoryBreakdown) != 2 || overview.CategoryBreakdown[0].Category != "Alimentação" {
		t.Errorf("unexpected breakdown %+v", overview.CategoryBreakdown)
	}
	if overview.CategoryBreakdown[0].Percentage != 75 {
		t.Errorf("expected 75%%, got %v", overview.CategoryBreakdown[0].Percentage)
	}
}

func TestGetOverview_NoSalary(t *testing.T) {
	userID := uuid.New()
	profile := entity.NewProfile(&entity.User{ID: userID, Email: "ana@example.com", Name: "Ana"})

	overview, err := NewGetOverviewUseCase(&stubTransactions{}, &stubProfiles{profile: profile}, &stubGoals{}, &stubNotifications{}).
		Execute(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if overview.CommittedBudget != nil || overview.NextSalaryDate != nil {
		t.Error("expected no budget and no salary date without salary settings")
	}
	if len(overview.CategoryBreakdown) != 0 {
		t.Error("expected empty breakdown")
	}
}

func TestGetOverview_MissingProfile(t *testing.T) {
	_, err := NewGetOverviewUseCase(&stubTransactions{}, &stubProfiles{}, &stubGoals{}, &stubNotifications{}).
		Execute(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("expected error")
	}
}
