package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecooy/backend/internal/application/usecase/auth"
	"github.com/ecooy/backend/internal/application/usecase/profile"
	"github.com/ecooy/backend/internal/domain/entity"
	domainerror "github.com/ecooy/backend/internal/domain/error"
	"github.com/ecooy/backend/internal/integration/entrypoint/dto"
)

// UserController handles the signed-in user's profile and account.
type UserController struct {
	getProfileUseCase        *profile.GetProfileUseCase
	updateSettingsUseCase    *profile.UpdateSettingsUseCase
	setThemeUseCase          *profile.SetThemeUseCase
	toggleThemeUseCase       *profile.ToggleThemeUseCase
	updateDisplayNameUseCase *auth.UpdateDisplayNameUseCase
	deleteAccountUseCase     *auth.DeleteAccountUseCase
}

// NewUserController creates a new user controller instance.
func NewUserController(
	getProfileUseCase *profile.GetProfileUseCase,
	updateSettingsUseCase *profile.UpdateSettingsUseCase,
	setThemeUseCase *profile.SetThemeUseCase,
	toggleThemeUseCase *profile.ToggleThemeUseCase,
	updateDisplayNameUseCase *auth.UpdateDisplayNameUseCase,
	deleteAccountUseCase *auth.DeleteAccountUseCase,
) *UserController {
	return &UserController{
		getProfileUseCase:        getProfileUseCase,
		updateSettingsUseCase:    updateSettingsUseCase,
		setThemeUseCase:          setThemeUseCase,
		toggleThemeUseCase:       toggleThemeUseCase,
		updateDisplayNameUseCase: updateDisplayNameUseCase,
		deleteAccountUseCase:     deleteAccountUseCase,
	}
}

// GetProfile handles GET /users/me requests.
func (c *UserController) GetProfile(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	p, err := c.getProfileUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		c.handleUserError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProfileResponse(p))
}

// UpdateDisplayName handles PATCH /users/me/display-name requests.
func (c *UserController) UpdateDisplayName(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateDisplayNameRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeInvalidDisplayName),
		})
		return
	}

	session, err := c.updateDisplayNameUseCase.Execute(ctx.Request.Context(), auth.UpdateDisplayNameInput{
		UserID:      userID,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		c.handleUserError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SessionResponse{Session: session})
}

// UpdateProfile handles PATCH /users/me/profile requests.
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	p, err := c.updateSettingsUseCase.Execute(ctx.Request.Context(), profile.UpdateSettingsInput{
		UserID:        userID,
		Salary:        req.Salary,
		SalaryDay:     req.SalaryDay,
		FixedExpenses: req.FixedExpenses,
		PhotoURL:      req.PhotoURL,
	})
	if err != nil {
		c.handleUserError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProfileResponse(p))
}

// SetTheme handles PUT /users/me/theme requests.
func (c *UserController) SetTheme(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.SetThemeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Theme must be light or dark",
			Code:  string(domainerror.ErrCodeInvalidTheme),
		})
		return
	}

	p, err := c.setThemeUseCase.Execute(ctx.Request.Context(), userID, entity.Theme(req.Theme))
	if err != nil {
		c.handleUserError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProfileResponse(p))
}

// ToggleTheme handles POST /users/me/theme/toggle requests.
func (c *UserController) ToggleTheme(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	p, err := c.toggleThemeUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		c.handleUserError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProfileResponse(p))
}

// DeleteAccount handles DELETE /users/me requests.
func (c *UserController) DeleteAccount(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.DeleteAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	_, err := c.deleteAccountUseCase.Execute(ctx.Request.Context(), auth.DeleteAccountInput{
		UserID:       userID,
		Password:     req.Password,
		Confirmation: req.Confirmation,
	})
	if err != nil {
		c.handleUserError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *UserController) handleUserError(ctx *gin.Context, err error) {
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

// getStatusCodeForProfileError maps profile error codes to HTTP status codes.
func getStatusCodeForProfileError(code domainerror.ProfileErrorCode) int {
	switch code {
	case domainerror.ErrCodeProfileNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidSalaryDay,
		domainerror.ErrCodeNegativeAmount,
		domainerror.ErrCodeInvalidTheme:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
