package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stackit/stackit/internal/app/models/dto"
	"github.com/stackit/stackit/internal/app/services"
	"github.com/stackit/stackit/internal/middleware"
	"github.com/stackit/stackit/internal/pkg/helpers"
)

// NotificationController handles notification reads
type NotificationController struct {
	notificationService services.NotificationService
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService services.NotificationService) *NotificationController {
	return &NotificationController{notificationService: notificationService}
}

// GetNotifications handles listing the caller's notifications
// @Summary List notifications
// @Description Retrieves the caller's notifications newest first, enriched with question titles
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size (max 100)" default(10)
// @Success 200 {object} dto.APIResponse "Notifications retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /notifications [get]
func (c *NotificationController) GetNotifications(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)

	notifications, pagination, err := c.notificationService.GetNotifications(
		ctx, middleware.CurrentUserID(ctx), page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{
		"notifications": notifications,
		"pagination":    pagination,
	}))
}

// GetUnreadCount handles reading the unread counter
// @Summary Get unread notification count
// @Description Returns how many of the caller's notifications are unread
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UnreadCountResponse} "Unread count"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /notifications/unread-count [get]
func (c *NotificationController) GetUnreadCount(ctx *gin.Context) {
	count, err := c.notificationService.GetUnreadCount(ctx, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(count))
}

// MarkRead handles marking one notification as read
// @Summary Mark a notification read
// @Description Marks one of the caller's notifications as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} dto.APIResponse "Notification marked read"
// @Failure 400 {object} dto.ErrorResponse "Invalid notification ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Notification not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /notifications/{id}/read [put]
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.notificationService.MarkRead(ctx, id, middleware.CurrentUserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Notification marked read"))
}

// MarkAllRead handles marking every notification as read
// @Summary Mark all notifications read
// @Description Marks all of the caller's notifications as read and returns how many changed
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Notifications marked read"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /notifications/read-all [put]
func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	updated, err := c.notificationService.MarkAllRead(ctx, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"updated": updated}))
}

// DeleteNotification handles removing one notification
// @Summary Delete a notification
// @Description Removes one of the caller's notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} dto.APIResponse "Notification deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid notification ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Notification not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /notifications/{id} [delete]
func (c *NotificationController) DeleteNotification(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.notificationService.DeleteNotification(ctx, id, middleware.CurrentUserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Notification deleted"))
}
