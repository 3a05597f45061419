package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stackit/stackit/internal/app/models/dto"
	"github.com/stackit/stackit/internal/app/services"
	"github.com/stackit/stackit/internal/middleware"
	"github.com/stackit/stackit/internal/pkg/helpers"
)

// AdminController handles moderation and platform administration
type AdminController struct {
	adminService services.AdminService
	logger       zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService services.AdminService, logger zerolog.Logger) *AdminController {
	return &AdminController{adminService: adminService, logger: logger}
}

// GetUsers handles listing all users
// @Summary List users
// @Description Retrieves all user accounts with pagination (admin only)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size (max 100)" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.UserListResponse} "Users retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/users [get]
func (c *AdminController) GetUsers(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)

	users, err := c.adminService.GetUsers(ctx, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(users))
}

// DeleteUser handles removing a user account
// @Summary Delete a user
// @Description Removes a user account and all of their content (admin only)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse "User deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID or self-targeting action"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/users/{id} [delete]
func (c *AdminController) DeleteUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.adminService.DeleteUser(ctx, middleware.CurrentUserID(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "User deleted successfully"))
}

// ToggleAdmin handles granting or revoking admin rights
// @Summary Grant or revoke admin rights
// @Description Sets the admin flag on a user account (admin only)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.ToggleAdminRequest true "Admin flag"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Admin flag updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request or self-targeting action"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/users/{id}/admin [put]
func (c *AdminController) ToggleAdmin(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ToggleAdminRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	user, err := c.adminService.ToggleAdmin(ctx, middleware.CurrentUserID(ctx), id, *req.Grant)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(user))
}

// DeleteQuestion handles removing any question
// @Summary Delete a question
// @Description Removes a question regardless of author (admin only)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Success 200 {object} dto.APIResponse "Question deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid question ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/questions/{id} [delete]
func (c *AdminController) DeleteQuestion(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.adminService.DeleteQuestion(ctx, middleware.CurrentUserID(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Question deleted successfully"))
}

// DeleteAnswer handles removing any answer
// @Summary Delete an answer
// @Description Removes an answer regardless of author (admin only)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Answer ID"
// @Success 200 {object} dto.APIResponse "Answer deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid answer ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Failure 404 {object} dto.ErrorResponse "Answer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/answers/{id} [delete]
func (c *AdminController) DeleteAnswer(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.adminService.DeleteAnswer(ctx, middleware.CurrentUserID(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Answer deleted successfully"))
}

// DeletePost handles removing any post
// @Summary Delete a post
// @Description Removes a community post regardless of author (admin only)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse "Post deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid post ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/posts/{id} [delete]
func (c *AdminController) DeletePost(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.adminService.DeletePost(ctx, middleware.CurrentUserID(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Post deleted successfully"))
}

// GetAnalytics handles reading the platform analytics snapshot
// @Summary Get platform analytics
// @Description Returns platform-wide content and activity counts (admin only)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.AnalyticsResponse} "Analytics retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/analytics [get]
func (c *AdminController) GetAnalytics(ctx *gin.Context) {
	analytics, err := c.adminService.GetAnalytics(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(analytics))
}

// GetLogs handles listing the moderation audit trail
// @Summary List admin action logs
// @Description Retrieves the moderation audit trail newest first (admin only)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size (max 100)" default(10)
// @Param adminId query int false "Restrict to one admin's actions"
// @Success 200 {object} dto.APIResponse{data=dto.AdminLogListResponse} "Logs retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/logs [get]
func (c *AdminController) GetLogs(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)

	var adminID *int64
	if raw := ctx.Query("adminId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid adminId parameter").WithField("adminId")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
			return
		}
		adminID = &id
	}

	logs, err := c.adminService.GetLogs(ctx, adminID, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(logs))
}
