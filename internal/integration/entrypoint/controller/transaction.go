package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ecooy/backend/internal/application/usecase/transaction"
	"github.com/ecooy/backend/internal/domain/entity"
	domainerror "github.com/ecooy/backend/internal/domain/error"
	"github.com/ecooy/backend/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	listUseCase    *transaction.ListTransactionsUseCase
	createUseCase  *transaction.CreateTransactionUseCase
	getUseCase     *transaction.GetTransactionUseCase
	updateUseCase  *transaction.UpdateTransactionUseCase
	deleteUseCase  *transaction.DeleteTransactionUseCase
	summaryUseCase *transaction.GetSummaryUseCase
	watchUseCase   *transaction.WatchTransactionsUseCase
	heartbeat      time.Duration
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	createUseCase *transaction.CreateTransactionUseCase,
	getUseCase *transaction.GetTransactionUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
	summaryUseCase *transaction.GetSummaryUseCase,
	watchUseCase *transaction.WatchTransactionsUseCase,
	heartbeat time.Duration,
) *TransactionController {
	return &TransactionController{
		listUseCase:    listUseCase,
		createUseCase:  createUseCase,
		getUseCase:     getUseCase,
		updateUseCase:  updateUseCase,
		deleteUseCase:  deleteUseCase,
		summaryUseCase: summaryUseCase,
		watchUseCase:   watchUseCase,
		heartbeat:      heartbeat,
	}
}

// Categories handles GET /transactions/categories requests.
func (c *TransactionController) Categories(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.CategoriesResponse{
		Categories: entity.PresetCategories,
		Default:    entity.DefaultCategory,
	})
}

// List handles GET /transactions requests.
// Optional query parameters: type (income|expense) and limit.
func (c *TransactionController) List(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	input := transaction.ListTransactionsInput{UserID: userID}

	if typeStr := ctx.Query("type"); typeStr != "" {
		txType := entity.TransactionType(typeStr)
		if !txType.IsValid() {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Type must be income or expense",
				Code:  string(domainerror.ErrCodeInvalidTransactionType),
			})
			return
		}
		input.Type = &txType
	}

	if limitStr := ctx.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Limit must be a non-negative integer",
			})
			return
		}
		input.Limit = limit
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output))
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeMissingTransactionFields),
			Details: err.Error(),
		})
		return
	}

	amount, ok := dto.ResolveAmount(req.Amount, req.DisplayAmount)
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Amount is required",
			Code:  string(domainerror.ErrCodeMissingTransactionFields),
		})
		return
	}

	created, err := c.createUseCase.Execute(ctx.Request.Context(), transaction.CreateTransactionInput{
		UserID:      userID,
		Description: req.Description,
		Amount:      amount,
		Type:        entity.TransactionType(req.Type),
		Category:    req.Category,
		Date:        req.Date,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(created))
}

// Get handles GET /transactions/:id requests.
func (c *TransactionController) Get(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	txID, ok := parseIDParam(ctx, "transaction")
	if !ok {
		return
	}

	found, err := c.getUseCase.Execute(ctx.Request.Context(), txID, userID)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(found))
}

// Update handles PATCH /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	txID, ok := parseIDParam(ctx, "transaction")
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	input := transaction.UpdateTransactionInput{
		TransactionID: txID,
		UserID:        userID,
		Description:   req.Description,
		Category:      req.Category,
		Date:          req.Date,
	}
	if amount, ok := dto.ResolveAmount(req.Amount, req.DisplayAmount); ok {
		input.Amount = &amount
	}
	if req.Type != nil {
		txType := entity.TransactionType(*req.Type)
		input.Type = &txType
	}

	updated, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(updated))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	txID, ok := parseIDParam(ctx, "transaction")
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), txID, userID); err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Summary handles GET /transactions/summary requests.
func (c *TransactionController) Summary(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	summary, err := c.summaryUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSummaryResponse(summary))
}

// Stream handles GET /transactions/stream requests.
func (c *TransactionController) Stream(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	handle, err := c.watchUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	streamSnapshots(ctx, handle, c.heartbeat, dto.ToTransactionListResponse, nil)
}

// handleTransactionError handles transaction errors and returns appropriate HTTP responses.
func (c *TransactionController) handleTransactionError(ctx *gin.Context, err error) {
	var txErr *domainerror.TransactionError
	if errors.As(err, &txErr) {
		ctx.JSON(getStatusCodeForTransactionError(txErr.Code), dto.ErrorResponse{
			Error: txErr.Message,
			Code:  string(txErr.Code),
		})
		return
	}

	handleCommonError(ctx, err)
}

// getStatusCodeForTransactionError maps transaction error codes to HTTP status codes.
func getStatusCodeForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidTransactionType,
		domainerror.ErrCodeInvalidTransactionDate,
		domainerror.ErrCodeInvalidTransactionAmount,
		domainerror.ErrCodeEmptyDescription,
		domainerror.ErrCodeDescriptionTooLong,
		domainerror.ErrCodeEmptyCategory,
		domainerror.ErrCodeCategoryTooLong,
		domainerror.ErrCodeMissingTransactionFields:
		return http.StatusBadRequest
	case domainerror.ErrCodeTransactionNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotAuthorizedTransaction:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
