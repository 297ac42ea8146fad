package notification

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ecooy/backend/internal/application/adapter"
	"github.com/ecooy/backend/internal/domain/entity"
	domainerror "github.com/ecooy/backend/internal/domain/error"
	"github.com/ecooy/backend/internal/domain/valueobject"
)

// GenerateTipUseCase creates a tip notification from the user's finances.
// It asks the configured TipGenerator first and falls back to HeuristicTip.
type GenerateTipUseCase struct {
	profileRepo      adapter.ProfileRepository
	transactionRepo  adapter.TransactionRepository
	goalRepo         adapter.GoalRepository
	notificationRepo adapter.NotificationRepository
	tipGenerator     adapter.TipGenerator
	publisher        adapter.ChangePublisher
}

// NewGenerateTipUseCase creates a new GenerateTipUseCase instance.
func NewGenerateTipUseCase(
	profileRepo adapter.ProfileRepository,
	transactionRepo adapter.TransactionRepository,
	goalRepo adapter.GoalRepository,
	notificationRepo adapter.NotificationRepository,
	tipGenerator adapter.TipGenerator,
	publisher adapter.ChangePublisher,
) *GenerateTipUseCase {
	return &GenerateTipUseCase{
		profileRepo:      profileRepo,
		transactionRepo:  transactionRepo,
		goalRepo:         goalRepo,
		notificationRepo: notificationRepo,
		tipGenerator:     tipGenerator,
		publisher:        publisher,
	}
}

// Execute builds the snapshot, produces a tip and stores it as a notification.
func (uc *GenerateTipUseCase) Execute(ctx context.Context, userID uuid.UUID) (*entity.Notification, error) {
	request, err := uc.buildRequest(ctx, userID)
	if err != nil {
		return nil, domainerror.NewNotificationError(
			domainerror.ErrCodeTipGenerationFailed,
			"could not load financial data",
			fmt.Errorf("%w: %v", domainerror.ErrTipGenerationFailed, err),
		)
	}

	tip := uc.generate(ctx, request)

	notification := entity.NewNotification(userID, entity.NotificationTypeTip, tip.Title, tip.Message)
	if err := uc.notificationRepo.Create(ctx, notification); err != nil {
		return nil, fmt.Errorf("failed to create tip notification: %w", err)
	}

	publishNotificationChange(ctx, uc.publisher, entity.OperationCreated, notification.ID.String(), userID)

	return notification, nil
}

func (uc *GenerateTipUseCase) generate(ctx context.Context, request *adapter.TipRequest) *adapter.Tip {
	if uc.tipGenerator != nil && uc.tipGenerator.IsAvailable() {
		tip, err := uc.tipGenerator.GenerateTip(ctx, request)
		if err == nil && tip != nil && tip.Title != "" && tip.Message != "" {
			return tip
		}
		slog.Warn("tip generator failed, using heuristics", "error", err)
	}
	return HeuristicTip(request)
}

func (uc *GenerateTipUseCase) buildRequest(ctx context.Context, userID uuid.UUID) (*adapter.TipRequest, error) {
	profile, err := uc.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	transactions, err := uc.transactionRepo.FindByOwner(ctx, userID, entity.TransactionFilter{})
	if err != nil {
		return nil, err
	}

	goals, err := uc.goalRepo.FindByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	records := make([]valueobject.LedgerRecord, 0, len(transactions))
	byCategory := make(map[string]decimal.Decimal)
	for _, t := range transactions {
		records = append(records, valueobject.LedgerRecord{Amount: t.Amount, Type: string(t.Type)})
		if !t.IsIncome() {
			byCategory[t.Category] = byCategory[t.Category].Add(t.Amount)
		}
	}
	summary := valueobject.Summarize(records)

	var openGoals []string
	for _, g := range goals {
		if !g.IsReached() {
			openGoals = append(openGoals, g.Name)
		}
	}

	return &adapter.TipRequest{
		DisplayName:        profile.DisplayName,
		Income:             summary.Income,
		Expenses:           summary.Expenses,
		Balance:            summary.Balance,
		Salary:             profile.Salary,
		FixedExpenses:      profile.FixedExpenses,
		ExpensesByCategory: byCategory,
		OpenGoals:          openGoals,
	}, nil
}

// HeuristicTip picks a rule-based tip for the snapshot.
func HeuristicTip(request *adapter.TipRequest) *adapter.Tip {
	if request.Balance.IsNegative() {
		return &adapter.Tip{
			Title:   "Saldo negativo",
			Message: fmt.Sprintf("Suas despesas superam suas receitas em %s. Revise os gastos não essenciais deste mês.", valueobject.FormatCurrency(request.Balance.Neg())),
		}
	}

	if request.Salary != nil && request.FixedExpenses != nil && request.Salary.IsPositive() {
		ratio := request.FixedExpenses.Div(*request.Salary)
		if ratio.GreaterThan(decimal.NewFromFloat(0.5)) {
			return &adapter.Tip{
				Title:   "Gastos fixos altos",
				Message: fmt.Sprintf("Seus gastos fixos consomem %s%% do salário. O ideal é manter abaixo de 50%%.", ratio.Mul(decimal.NewFromInt(100)).Round(0).String()),
			}
		}
	}

	if category, amount, ok := topCategory(request.ExpensesByCategory); ok && request.Expenses.IsPositive() {
		share := amount.Div(request.Expenses)
		if share.GreaterThan(decimal.NewFromFloat(0.4)) {
			return &adapter.Tip{
				Title:   "Atenção a " + category,
				Message: fmt.Sprintf("A categoria %s concentra %s das suas despesas. Defina um limite para ela.", category, valueobject.FormatCurrency(amount)),
			}
		}
	}

	if len(request.OpenGoals) > 0 && request.Balance.IsPositive() {
		return &adapter.Tip{
			Title:   "Invista nas suas metas",
			Message: fmt.Sprintf("Você tem %s de saldo. Que tal depositar uma parte na meta \"%s\"?", valueobject.FormatCurrency(request.Balance), request.OpenGoals[0]),
		}
	}

	return &adapter.Tip{
		Title:   "Reserva de emergência",
		Message: "Guarde pelo menos 10% de cada receita para montar uma reserva de emergência.",
	}
}

func topCategory(byCategory map[string]decimal.Decimal) (string, decimal.Decimal, bool) {
	names := make([]string, 0, len(byCategory))
	for name := range byCategory {
		names = append(names, name)
	}
	sort.Strings(names)

	var (
		best   string
		amount decimal.Decimal
		found  bool
	)
	for _, name := range names {
		if !found || byCategory[name].GreaterThan(amount) {
			best, amount, found = name, byCategory[name], true
		}
	}
	return best, amount, found
}
