// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/domain/entity"
	domainerror "github.com/ecooy/backend/internal/domain/error"
	"github.com/ecooy/backend/internal/domain/valueobject"
)

// CategoryBreakdownItem is the expense total of one category.
type CategoryBreakdownItem struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage float64         `json:"percentage"`
}

// GoalCounts summarizes the owner's goals.
type GoalCounts struct {
	Total   int `json:"total"`
	Reached int `json:"reached"`
}

// Overview is everything the home screen shows at once.
type Overview struct {
	Summary             valueobject.LedgerSummary `json:"summary"`
	Salary              *decimal.Decimal          `json:"salary"`
	FixedExpenses       *decimal.Decimal          `json:"fixed_expenses"`
	CommittedBudget     *decimal.Decimal          `json:"committed_budget"`
	NextSalaryDate      *time.Time                `json:"next_salary_date"`
	CategoryBreakdown   []CategoryBreakdownItem   `json:"category_breakdown"`
	Goals               GoalCounts                `json:"goals"`
	UnreadNotifications int64                     `json:"unread_notifications"`
}

// GetOverviewUseCase aggregates the dashboard overview.
type GetOverviewUseCase struct {
	transactionRepo  adapter.TransactionRepository
	profileRepo      adapter.ProfileRepository
	goalRepo         adapter.GoalRepository
	notificationRepo adapter.NotificationRepository
	now              func() time.Time
}

// NewGetOverviewUseCase creates a new GetOverviewUseCase instance.
func NewGetOverviewUseCase(
	transactionRepo adapter.TransactionRepository,
	profileRepo adapter.ProfileRepository,
	goalRepo adapter.GoalRepository,
	notificationRepo adapter.NotificationRepository,
) *GetOverviewUseCase {
	return &GetOverviewUseCase{
		transactionRepo:  transactionRepo,
		profileRepo:      profileRepo,
		goalRepo:         goalRepo,
		notificationRepo: notificationRepo,
		now:              time.Now,
	}
}

// WithClock replaces the time source used for the next salary date.
func (uc *GetOverviewUseCase) WithClock(now func() time.Time) *GetOverviewUseCase {
	uc.now = now
	return uc
}

// Execute builds the overview for userID.
func (uc *GetOverviewUseCase) Execute(ctx context.Context, userID uuid.UUID) (*Overview, error) {
	profile, err := uc.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerror.ErrProfileNotFound) {
			return nil, domainerror.NewProfileError(
				domainerror.ErrCodeProfileNotFound,
				"profile not found",
				domainerror.ErrProfileNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}

	transactions, err := uc.transactionRepo.FindByOwner(ctx, userID, entity.TransactionFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	goals, err := uc.goalRepo.FindByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}

	unread, err := uc.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count notifications: %w", err)
	}

	records := make([]valueobject.LedgerRecord, 0, len(transactions))
	for _, t := range transactions {
		records = append(records, valueobject.LedgerRecord{Amount: t.Amount, Type: string(t.Type)})
	}
	summary := valueobject.Summarize(records)

	overview := &Overview{
		Summary:             summary,
		Salary:              profile.Salary,
		FixedExpenses:       profile.FixedExpenses,
		CommittedBudget:     CommittedBudget(profile, summary),
		NextSalaryDate:      profile.NextSalaryDate(uc.now()),
		CategoryBreakdown:   Breakdown(transactions),
		UnreadNotifications: unread,
	}

	overview.Goals.Total = len(goals)
	for _, g := range goals {
		if g.IsReached() {
			overview.Goals.Reached++
		}
	}

	return overview, nil
}

// CommittedBudget returns salary - fixed expenses - expenses, or nil without a salary.
func CommittedBudget(profile *entity.Profile, summary valueobject.LedgerSummary) *decimal.Decimal {
	if profile.Salary == nil {
		return nil
	}
	budget := profile.Salary.Sub(summary.Expenses)
	if profile.FixedExpenses != nil {
		budget = budget.Sub(*profile.FixedExpenses)
	}
	return &budget
}

// Breakdown groups expenses by category, largest first.
func Breakdown(transactions []*entity.Transaction) []CategoryBreakdownItem {
	totals := make(map[string]decimal.Decimal)
	total := decimal.Zero
	for _, t := range transactions {
		if t.IsIncome() {
			continue
		}
		totals[t.Category] = totals[t.Category].Add(t.Amount)
		total = total.Add(t.Amount)
	}

	items := make([]CategoryBreakdownItem, 0, len(totals))
	for category, amount := range totals {
		pct := 0.0
		if total.IsPositive() {
			pct = amount.Div(total).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
		}
		items = append(items, CategoryBreakdownItem{
			Category:   category,
			Amount:     amount,
			Percentage: pct,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if !items[i].Amount.Equal(items[j].Amount) {
			return items[i].Amount.GreaterThan(items[j].Amount)
		}
		return items[i].Category < items[j].Category
	})
	return items
}
