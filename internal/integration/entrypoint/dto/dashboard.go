package dto

import (
	"time"

	"github.com/ecooy/backend/internal/application/usecase/dashboard"
)

// CategoryBreakdownResponse is the expense total of one category.
type CategoryBreakdownResponse struct {
	Category   string  `json:"category"`
	Amount     string  `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// GoalCountsResponse summarizes goals on the dashboard.
type GoalCountsResponse struct {
	Total   int `json:"total"`
	Reached int `json:"reached"`
}

// OverviewResponse represents the dashboard overview.
type OverviewResponse struct {
	Summary             SummaryResponse             `json:"summary"`
	Salary              *string                     `json:"salary"`
	FixedExpenses       *string                     `json:"fixed_expenses"`
	CommittedBudget     *string                     `json:"committed_budget"`
	NextSalaryDate      *string                     `json:"next_salary_date"`
	CategoryBreakdown   []CategoryBreakdownResponse `json:"category_breakdown"`
	Goals               GoalCountsResponse          `json:"goals"`
	UnreadNotifications int64                       `json:"unread_notifications"`
}

// ToOverviewResponse converts the overview to its DTO.
func ToOverviewResponse(o *dashboard.Overview) OverviewResponse {
	breakdown := make([]CategoryBreakdownResponse, 0, len(o.CategoryBreakdown))
	for _, item := range o.CategoryBreakdown {
		breakdown = append(breakdown, CategoryBreakdownResponse{
			Category:   item.Category,
			Amount:     formatAmount(item.Amount),
			Percentage: item.Percentage,
		})
	}

	var nextSalary *string
	if o.NextSalaryDate != nil {
		s := o.NextSalaryDate.Format(time.DateOnly)
		nextSalary = &s
	}

	return OverviewResponse{
		Summary:             ToSummaryResponse(o.Summary),
		Salary:              formatOptionalAmount(o.Salary),
		FixedExpenses:       formatOptionalAmount(o.FixedExpenses),
		CommittedBudget:     formatOptionalAmount(o.CommittedBudget),
		NextSalaryDate:      nextSalary,
		CategoryBreakdown:   breakdown,
		Goals:               GoalCountsResponse{Total: o.Goals.Total, Reached: o.Goals.Reached},
		UnreadNotifications: o.UnreadNotifications,
	}
}
