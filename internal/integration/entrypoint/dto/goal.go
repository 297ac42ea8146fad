package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ecooy/backend/internal/application/usecase/goal"
	"github.com/ecooy/backend/internal/domain/entity"
)

// CreateGoalRequest represents the request body for goal creation.
type CreateGoalRequest struct {
	Name         string           `json:"name" binding:"required"`
	Category     string           `json:"category"`
	TargetAmount *decimal.Decimal `json:"target_amount" binding:"required"`
	Deadline     *string          `json:"deadline,omitempty"`
}

// UpdateGoalRequest represents the request body for goal update.
type UpdateGoalRequest struct {
	Name         *string          `json:"name,omitempty"`
	Category     *string          `json:"category,omitempty"`
	TargetAmount *decimal.Decimal `json:"target_amount,omitempty"`
	Deadline     *string          `json:"deadline,omitempty"`
}

// DepositRequest represents the request body for a goal deposit.
type DepositRequest struct {
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	DisplayAmount *string          `json:"display_amount,omitempty"`
}

// GoalResponse represents a single goal in API responses.
type GoalResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"uid"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	TargetAmount  string    `json:"target_amount"`
	CurrentAmount string    `json:"current_amount"`
	Remaining     string    `json:"remaining"`
	Progress      float64   `json:"progress"`
	Reached       bool      `json:"reached"`
	Deadline      *string   `json:"deadline,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// GoalListResponse is one goals query snapshot.
type GoalListResponse struct {
	Goals   []GoalResponse `json:"goals"`
	Total   int            `json:"total"`
	Reached int            `json:"reached"`
}

// DepositResponse represents the result of a deposit.
type DepositResponse struct {
	Goal       GoalResponse `json:"goal"`
	ReachedNow bool         `json:"reached_now"`
}

// ToGoalResponse converts a domain Goal to a GoalResponse DTO.
func ToGoalResponse(g *entity.Goal) GoalResponse {
	progress, _ := g.Progress().Float64()
	return GoalResponse{
		ID:            g.ID.String(),
		UserID:        g.UserID.String(),
		Name:          g.Name,
		Category:      g.Category,
		TargetAmount:  formatAmount(g.TargetAmount),
		CurrentAmount: formatAmount(g.CurrentAmount),
		Remaining:     formatAmount(g.Remaining()),
		Progress:      progress,
		Reached:       g.IsReached(),
		Deadline:      g.Deadline,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}

// ToGoalListResponse converts a list snapshot to its DTO.
func ToGoalListResponse(output *goal.ListGoalsOutput) GoalListResponse {
	items := make([]GoalResponse, 0, len(output.Goals))
	for _, g := range output.Goals {
		items = append(items, ToGoalResponse(g))
	}
	return GoalListResponse{
		Goals:   items,
		Total:   output.Total,
		Reached: output.Reached,
	}
}
