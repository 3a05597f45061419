package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stackit/stackit/internal/app/models/dto"
	"github.com/stackit/stackit/internal/app/services"
	"github.com/stackit/stackit/internal/middleware"
)

// ChatController handles AI assistant requests
type ChatController struct {
	chatService services.ChatService
}

// NewChatController creates a new ChatController
func NewChatController(chatService services.ChatService) *ChatController {
	return &ChatController{chatService: chatService}
}

// Ask handles a prompt to the AI assistant
// @Summary Ask the AI assistant
// @Description Forwards a prompt to the AI assistant and returns the generated reply
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChatRequest true "Prompt"
// @Success 200 {object} dto.APIResponse{data=dto.ChatResponse} "Reply generated"
// @Failure 400 {object} dto.ErrorResponse "Invalid or oversized prompt"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 503 {object} dto.ErrorResponse "Assistant unavailable"
// @Router /chat [post]
func (c *ChatController) Ask(ctx *gin.Context) {
	var req dto.ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	reply, err := c.chatService.Ask(ctx, middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(reply))
}
