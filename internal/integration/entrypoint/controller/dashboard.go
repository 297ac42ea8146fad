package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecooy/backend/internal/application/usecase/dashboard"
	domainerror "github.com/ecooy/backend/internal/domain/error"
	"github.com/ecooy/backend/internal/integration/entrypoint/dto"
)

// DashboardController handles dashboard endpoints.
type DashboardController struct {
	overviewUseCase *dashboard.GetOverviewUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(overviewUseCase *dashboard.GetOverviewUseCase) *DashboardController {
	return &DashboardController{
		overviewUseCase: overviewUseCase,
	}
}

// Overview handles GET /dashboard/overview requests.
func (c *DashboardController) Overview(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	overview, err := c.overviewUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOverviewResponse(overview))
}

func (c *DashboardController) handleDashboardError(ctx *gin.Context, err error) {
	var profileErr *domainerror.ProfileError
	if errors.As(err, &profileErr) {
		ctx.JSON(getStatusCodeForProfileError(profileErr.Code), dto.ErrorResponse{
			Error: profileErr.Message,
			Code:  string(profileErr.Code),
		})
		return
	}

	handleCommonError(ctx, err)
}
