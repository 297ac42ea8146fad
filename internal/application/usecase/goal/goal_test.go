package goal

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

type fakeGoalRepo struct {
	items map[uuid.UUID]*entity.Goal
}

func newFakeGoalRepo() *fakeGoalRepo {
	return &fakeGoalRepo{items: map[uuid.UUID]*entity.Goal{}}
}

func (r *fakeGoalRepo) Create(_ context.Context, g *entity.Goal) error {
	copied := *g
	r.items[g.ID] = &copied
	return nil
}

func (r *fakeGoalRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Goal, error) {
	g, ok := r.items[id]
	if !ok {
		return nil, domainerror.ErrGoalNotFound
	}
	copied := *g
	return &copied, nil
}

func (r *fakeGoalRepo) FindByOwner(_ context.Context, userID uuid.UUID) ([]*entity.Goal, error) {
	var goals []*entity.Goal
	for _, g := range r.items {
		if g.UserID == userID {
			copied := *g
			goals = append(goals, &copied)
		}
	}
	return goals, nil
}

func (r *fakeGoalRepo) Update(_ context.Context, g *entity.Goal) error {
	stored := r.items[g.ID]
	current := stored.CurrentAmount
	copied := *g
	copied.CurrentAmount = current
	r.items[g.ID] = &copied
	return nil
}

func (r *fakeGoalRepo) AddToCurrentAmount(_ context.Context, id uuid.UUID, amount decimal.Decimal) (*entity.Goal, error) {
	g, ok := r.items[id]
	if !ok {
		return nil, domainerror.ErrGoalNotFound
	}
	g.CurrentAmount = g.CurrentAmount.Add(amount)
	copied := *g
	return &copied, nil
}

func (r *fakeGoalRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

type fakeProfileRepo struct {
	profile *entity.Profile
}

func (r *fakeProfileRepo) Create(context.Context, *entity.Profile) error { return nil }

func (r *fakeProfileRepo) FindByUserID(context.Context, uuid.UUID) (*entity.Profile, error) {
	if r.profile == nil {
		return nil, domainerror.ErrProfileNotFound
	}
	return r.profile, nil
}

func (r *fakeProfileRepo) Update(context.Context, *entity.Profile) error { return nil }

func (r *fakeProfileRepo) FindBySalaryDay(context.Context, []int) ([]*entity.Profile, error) {
	return nil, nil
}

type fakeNotificationRepo struct {
	created []*entity.Notification
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *entity.Notification) error {
	r.created = append(r.created, n)
	return nil
}

func (r *fakeNotificationRepo) FindByOwner(context.Context, uuid.UUID, bool) ([]*entity.Notification, error) {
	return r.created, nil
}

func (r *fakeNotificationRepo) FindByID(context.Context, uuid.UUID) (*entity.Notification, error) {
	return nil, domainerror.ErrNotificationNotFound
}

func (r *fakeNotificationRepo) MarkRead(context.Context, uuid.UUID) error { return nil }

func (r *fakeNotificationRepo) MarkAllRead(context.Context, uuid.UUID) (int64, error) { return 0, nil }

func (r *fakeNotificationRepo) CountUnread(context.Context, uuid.UUID) (int64, error) { return 0, nil }

func (r *fakeNotificationRepo) ExistsSince(context.Context, uuid.UUID, entity.NotificationType, string, time.Time) (bool, error) {
	return false, nil
}

type fakeEmailService struct {
	goalEmails []adapter.QueueGoalReachedInput
}

func (s *fakeEmailService) QueuePasswordResetEmail(context.Context, adapter.QueuePasswordResetInput) error {
	return nil
}

func (s *fakeEmailService) QueueWelcomeEmail(context.Context, adapter.QueueWelcomeInput) error {
	return nil
}

func (s *fakeEmailService) QueueGoalReachedEmail(_ context.Context, input adapter.QueueGoalReachedInput) error {
	s.goalEmails = append(s.goalEmails, input)
	return nil
}

func (s *fakeEmailService) QueueSalaryDayEmail(context.Context, adapter.QueueSalaryDayInput) error {
	return nil
}

type recordingPublisher struct {
	events []*entity.ChangeEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event *entity.ChangeEvent) error {
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) count(collection entity.Collection) int {
	n := 0
	for _, e := range p.events {
		if e.Collection == collection {
			n++
		}
	}
	return n
}

func goalCode(t *testing.T, err error) domainerror.GoalErrorCode {
	t.Helper()
	var goalErr *domainerror.GoalError
	require.True(t, errors.As(err, &goalErr), "expected GoalError, got %v", err)
	return goalErr.Code
}

func TestCreateGoal(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name     string
		input    CreateGoalInput
		expected domainerror.GoalErrorCode
	}{
		{
			name:     "blank name",
			input:    CreateGoalInput{UserID: userID, Name: "  ", TargetAmount: decimal.NewFromInt(100)},
			expected: domainerror.ErrCodeEmptyGoalName,
		},
		{
			name:     "zero target",
			input:    CreateGoalInput{UserID: userID, Name: "Viagem", TargetAmount: decimal.Zero},
			expected: domainerror.ErrCodeInvalidTargetAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewCreateGoalUseCase(newFakeGoalRepo(), nil)
			_, err := uc.Execute(context.Background(), tt.input)
			assert.Equal(t, tt.expected, goalCode(t, err))
		})
	}

	t.Run("defaults", func(t *testing.T) {
		publisher := &recordingPublisher{}
		uc := NewCreateGoalUseCase(newFakeGoalRepo(), publisher)
		blank := " "

		goal, err := uc.Execute(context.Background(), CreateGoalInput{
			UserID:       userID,
			Name:         " Viagem ",
			TargetAmount: decimal.NewFromInt(5000),
			Deadline:     &blank,
		})
		require.NoError(t, err)
		assert.Equal(t, "Viagem", goal.Name)
		assert.Equal(t, entity.DefaultCategory, goal.Category)
		assert.Nil(t, goal.Deadline)
		assert.True(t, goal.CurrentAmount.IsZero())
		assert.Equal(t, 1, publisher.count(entity.CollectionGoals))
	})
}

func TestUpdateGoal_KeepsCurrentAmount(t *testing.T) {
	repo := newFakeGoalRepo()
	owner := uuid.New()
	goal, err := NewCreateGoalUseCase(repo, nil).Execute(context.Background(), CreateGoalInput{
		UserID: owner, Name: "Carro", TargetAmount: decimal.NewFromInt(1000),
	})
	require.NoError(t, err)
	_, err = repo.AddToCurrentAmount(context.Background(), goal.ID, decimal.NewFromInt(300))
	require.NoError(t, err)

	target := decimal.NewFromInt(2000)
	updated, err := NewUpdateGoalUseCase(repo, nil).Execute(context.Background(), UpdateGoalInput{
		GoalID: goal.ID, UserID: owner, TargetAmount: &target,
	})
	require.NoError(t, err)
	assert.True(t, updated.TargetAmount.Equal(target))

	stored, _ := repo.FindByID(context.Background(), goal.ID)
	assert.True(t, stored.CurrentAmount.Equal(decimal.NewFromInt(300)))

	_, err = NewUpdateGoalUseCase(repo, nil).Execute(context.Background(), UpdateGoalInput{
		GoalID: goal.ID, UserID: uuid.New(),
	})
	assert.Equal(t, domainerror.ErrCodeUnauthorizedGoalAccess, goalCode(t, err))
}

func TestDeposit_ReachedExactlyOnce(t *testing.T) {
	repo := newFakeGoalRepo()
	owner := uuid.New()
	notifications := &fakeNotificationRepo{}
	emails := &fakeEmailService{}
	publisher := &recordingPublisher{}
	profiles := &fakeProfileRepo{profile: &entity.Profile{UserID: owner, Email: "ana@example.com", DisplayName: "Ana"}}

	goal, err := NewCreateGoalUseCase(repo, nil).Execute(context.Background(), CreateGoalInput{
		UserID: owner, Name: "Reserva", TargetAmount: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	uc := NewDepositUseCase(repo, profiles, notifications, emails, publisher)

	steps := []struct {
		amount  int64
		reached bool
		saved   int64
	}{
		{60, false, 60},
		{40, true, 100},
		{25, false, 125},
	}

	for _, step := range steps {
		out, err := uc.Execute(context.Background(), DepositInput{
			GoalID: goal.ID, UserID: owner, Amount: decimal.NewFromInt(step.amount),
		})
		require.NoError(t, err)
		assert.Equal(t, step.reached, out.ReachedNow)
		assert.True(t, out.Goal.CurrentAmount.Equal(decimal.NewFromInt(step.saved)))
	}

	require.Len(t, notifications.created, 1)
	assert.Equal(t, entity.NotificationTypeGoal, notifications.created[0].Type)
	require.Len(t, emails.goalEmails, 1)
	assert.Equal(t, "ana@example.com", emails.goalEmails[0].UserEmail)
	assert.Equal(t, 3, publisher.count(entity.CollectionGoals))
	assert.Equal(t, 1, publisher.count(entity.CollectionNotifications))
}

func TestDeposit_Validation(t *testing.T) {
	repo := newFakeGoalRepo()
	owner := uuid.New()
	goal, _ := NewCreateGoalUseCase(repo, nil).Execute(context.Background(), CreateGoalInput{
		UserID: owner, Name: "Reserva", TargetAmount: decimal.NewFromInt(100),
	})
	uc := NewDepositUseCase(repo, &fakeProfileRepo{}, &fakeNotificationRepo{}, nil, nil)

	_, err := uc.Execute(context.Background(), DepositInput{GoalID: goal.ID, UserID: owner, Amount: decimal.Zero})
	assert.Equal(t, domainerror.ErrCodeInvalidDepositAmount, goalCode(t, err))

	_, err = uc.Execute(context.Background(), DepositInput{GoalID: uuid.New(), UserID: owner, Amount: decimal.NewFromInt(1)})
	assert.Equal(t, domainerror.ErrCodeGoalNotFound, goalCode(t, err))

	_, err = uc.Execute(context.Background(), DepositInput{GoalID: goal.ID, UserID: uuid.New(), Amount: decimal.NewFromInt(1)})
	assert.Equal(t, domainerror.ErrCodeUnauthorizedGoalAccess, goalCode(t, err))
}

func TestListAndDeleteGoals(t *testing.T) {
	repo := newFakeGoalRepo()
	owner := uuid.New()
	create := NewCreateGoalUseCase(repo, nil)
	reached, _ := create.Execute(context.Background(), CreateGoalInput{UserID: owner, Name: "A", TargetAmount: decimal.NewFromInt(10)})
	_, _ = create.Execute(context.Background(), CreateGoalInput{UserID: owner, Name: "B", TargetAmount: decimal.NewFromInt(10)})
	_, _ = repo.AddToCurrentAmount(context.Background(), reached.ID, decimal.NewFromInt(10))

	out, err := NewListGoalsUseCase(repo).Execute(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Total)
	assert.Equal(t, 1, out.Reached)

	require.NoError(t, NewDeleteGoalUseCase(repo, nil).Execute(context.Background(), reached.ID, owner))
	_, err = NewGetGoalUseCase(repo).Execute(context.Background(), reached.ID, owner)
	assert.Equal(t, domainerror.ErrCodeGoalNotFound, goalCode(t, err))
}
