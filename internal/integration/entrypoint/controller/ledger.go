package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecooy/backend/internal/application/usecase/transaction"
	"github.com/ecooy/backend/internal/domain/valueobject"
	"github.com/ecooy/backend/internal/integration/entrypoint/dto"
)

// LedgerController exposes the money formatting helpers and the summary
// reducer for records the client holds.
type LedgerController struct {
	summarizeUseCase *transaction.SummarizeRecordsUseCase
}

// NewLedgerController creates a new ledger controller instance.
func NewLedgerController(summarizeUseCase *transaction.SummarizeRecordsUseCase) *LedgerController {
	return &LedgerController{
		summarizeUseCase: summarizeUseCase,
	}
}

// Format handles GET /money/format?digits= requests.
func (c *LedgerController) Format(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.FormatMoneyResponse{
		Display: valueobject.FormatForDisplay(ctx.Query("digits")),
	})
}

// Parse handles GET /money/parse?display= requests.
func (c *LedgerController) Parse(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.ParseMoneyResponse{
		Amount: valueobject.ParseFromDisplay(ctx.Query("display")),
	})
}

// Summarize handles POST /ledger/summary requests.
func (c *LedgerController) Summarize(ctx *gin.Context) {
	var records []valueobject.LedgerRecord
	if err := ctx.ShouldBindJSON(&records); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Body must be an array of records",
			Details: err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSummaryResponse(c.summarizeUseCase.Execute(records)))
}
