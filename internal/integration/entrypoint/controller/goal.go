package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ecooy/backend/internal/application/usecase/goal"
	domainerror "github.com/ecooy/backend/internal/domain/error"
	"github.com/ecooy/backend/internal/integration/entrypoint/dto"
)

// GoalController handles savings goal endpoints.
type GoalController struct {
	listUseCase    *goal.ListGoalsUseCase
	createUseCase  *goal.CreateGoalUseCase
	getUseCase     *goal.GetGoalUseCase
	updateUseCase  *goal.UpdateGoalUseCase
	deleteUseCase  *goal.DeleteGoalUseCase
	depositUseCase *goal.DepositUseCase
	watchUseCase   *goal.WatchGoalsUseCase
	heartbeat      time.Duration
}

// NewGoalController creates a new goal controller instance.
func NewGoalController(
	listUseCase *goal.ListGoalsUseCase,
	createUseCase *goal.CreateGoalUseCase,
	getUseCase *goal.GetGoalUseCase,
	updateUseCase *goal.UpdateGoalUseCase,
	deleteUseCase *goal.DeleteGoalUseCase,
	depositUseCase *goal.DepositUseCase,
	watchUseCase *goal.WatchGoalsUseCase,
	heartbeat time.Duration,
) *GoalController {
	return &GoalController{
		listUseCase:    listUseCase,
		createUseCase:  createUseCase,
		getUseCase:     getUseCase,
		updateUseCase:  updateUseCase,
		deleteUseCase:  deleteUseCase,
		depositUseCase: depositUseCase,
		watchUseCase:   watchUseCase,
		heartbeat:      heartbeat,
	}
}

// List handles GET /goals requests.
func (c *GoalController) List(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalListResponse(output))
}

// Create handles POST /goals requests.
func (c *GoalController) Create(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeMissingGoalFields),
			Details: err.Error(),
		})
		return
	}

	created, err := c.createUseCase.Execute(ctx.Request.Context(), goal.CreateGoalInput{
		UserID:       userID,
		Name:         req.Name,
		Category:     req.Category,
		TargetAmount: *req.TargetAmount,
		Deadline:     req.Deadline,
	})
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToGoalResponse(created))
}

// Get handles GET /goals/:id requests.
func (c *GoalController) Get(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	goalID, ok := parseIDParam(ctx, "goal")
	if !ok {
		return
	}

	found, err := c.getUseCase.Execute(ctx.Request.Context(), goalID, userID)
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(found))
}

// Update handles PATCH /goals/:id requests.
func (c *GoalController) Update(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	goalID, ok := parseIDParam(ctx, "goal")
	if !ok {
		return
	}

	var req dto.UpdateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	updated, err := c.updateUseCase.Execute(ctx.Request.Context(), goal.UpdateGoalInput{
		GoalID:       goalID,
		UserID:       userID,
		Name:         req.Name,
		Category:     req.Category,
		TargetAmount: req.TargetAmount,
		Deadline:     req.Deadline,
	})
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(updated))
}

// Delete handles DELETE /goals/:id requests.
func (c *GoalController) Delete(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	goalID, ok := parseIDParam(ctx, "goal")
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), goalID, userID); err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Deposit handles POST /goals/:id/deposit requests.
func (c *GoalController) Deposit(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	goalID, ok := parseIDParam(ctx, "goal")
	if !ok {
		return
	}

	var req dto.DepositRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	amount, ok := dto.ResolveAmount(req.Amount, req.DisplayAmount)
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Amount is required",
			Code:  string(domainerror.ErrCodeMissingGoalFields),
		})
		return
	}

	output, err := c.depositUseCase.Execute(ctx.Request.Context(), goal.DepositInput{
		GoalID: goalID,
		UserID: userID,
		Amount: amount,
	})
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DepositResponse{
		Goal:       dto.ToGoalResponse(output.Goal),
		ReachedNow: output.ReachedNow,
	})
}

// Stream handles GET /goals/stream requests.
func (c *GoalController) Stream(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	handle, err := c.watchUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	streamSnapshots(ctx, handle, c.heartbeat, dto.ToGoalListResponse, nil)
}

// handleGoalError handles goal errors and returns appropriate HTTP responses.
func (c *GoalController) handleGoalError(ctx *gin.Context, err error) {
	var goalErr *domainerror.GoalError
	if errors.As(err, &goalErr) {
		ctx.JSON(getStatusCodeForGoalError(goalErr.Code), dto.ErrorResponse{
			Error: goalErr.Message,
			Code:  string(goalErr.Code),
		})
		return
	}

	handleCommonError(ctx, err)
}

// getStatusCodeForGoalError maps goal error codes to HTTP status codes.
func getStatusCodeForGoalError(code domainerror.GoalErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidTargetAmount,
		domainerror.ErrCodeInvalidDepositAmount,
		domainerror.ErrCodeEmptyGoalName,
		domainerror.ErrCodeGoalNameTooLong,
		domainerror.ErrCodeMissingGoalFields:
		return http.StatusBadRequest
	case domainerror.ErrCodeGoalNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeUnauthorizedGoalAccess:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
