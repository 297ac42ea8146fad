package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ecooy/backend/internal/application/usecase/notification"
	domainerror "github.com/ecooy/backend/internal/domain/error"
	"github.com/ecooy/backend/internal/integration/entrypoint/dto"
)

// NotificationController handles notification endpoints.
type NotificationController struct {
	listUseCase        *notification.ListNotificationsUseCase
	markReadUseCase    *notification.MarkReadUseCase
	markAllReadUseCase *notification.MarkAllReadUseCase
	generateTipUseCase *notification.GenerateTipUseCase
	watchUseCase       *notification.WatchNotificationsUseCase
	heartbeat          time.Duration
}

// NewNotificationController creates a new notification controller instance.
func NewNotificationController(
	listUseCase *notification.ListNotificationsUseCase,
	markReadUseCase *notification.MarkReadUseCase,
	markAllReadUseCase *notification.MarkAllReadUseCase,
	generateTipUseCase *notification.GenerateTipUseCase,
	watchUseCase *notification.WatchNotificationsUseCase,
	heartbeat time.Duration,
) *NotificationController {
	return &NotificationController{
		listUseCase:        listUseCase,
		markReadUseCase:    markReadUseCase,
		markAllReadUseCase: markAllReadUseCase,
		generateTipUseCase: generateTipUseCase,
		watchUseCase:       watchUseCase,
		heartbeat:          heartbeat,
	}
}

// List handles GET /notifications requests. ?unread=true keeps unread ones only.
func (c *NotificationController) List(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), userID, ctx.Query("unread") == "true")
	if err != nil {
		c.handleNotificationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToNotificationListResponse(output))
}

// MarkRead handles PATCH /notifications/:id/read requests.
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	notificationID, ok := parseIDParam(ctx, "notification")
	if !ok {
		return
	}

	if err := c.markReadUseCase.Execute(ctx.Request.Context(), notificationID, userID); err != nil {
		c.handleNotificationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Notification marked as read"})
}

// MarkAllRead handles POST /notifications/read-all requests.
func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	updated, err := c.markAllReadUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		c.handleNotificationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MarkAllReadResponse{Updated: updated})
}

// GenerateTip handles POST /notifications/tips requests.
func (c *NotificationController) GenerateTip(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	tip, err := c.generateTipUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		c.handleNotificationError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToNotificationResponse(tip))
}

// Stream handles GET /notifications/stream requests.
func (c *NotificationController) Stream(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	handle, err := c.watchUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		c.handleNotificationError(ctx, err)
		return
	}

	streamSnapshots(ctx, handle, c.heartbeat, dto.ToNotificationListResponse, nil)
}

func (c *NotificationController) handleNotificationError(ctx *gin.Context, err error) {
	var notificationErr *domainerror.NotificationError
	if errors.As(err, &notificationErr) {
		status := http.StatusInternalServerError
		if notificationErr.Code == domainerror.ErrCodeNotificationNotFound {
			status = http.StatusNotFound
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: notificationErr.Message,
			Code:  string(notificationErr.Code),
		})
		return
	}

	handleCommonError(ctx, err)
}
