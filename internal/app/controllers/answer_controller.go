package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stackit/stackit/internal/app/models/dto"
	"github.com/stackit/stackit/internal/app/services"
	"github.com/stackit/stackit/internal/middleware"
)

// AnswerController handles answer related operations
type AnswerController struct {
	answerService services.AnswerService
}

// NewAnswerController creates a new AnswerController
func NewAnswerController(answerService services.AnswerService) *AnswerController {
	return &AnswerController{answerService: answerService}
}

// CreateAnswer handles posting an answer to a question
// @Summary Answer a question
// @Description Posts an answer; the question's author is notified unless answering their own question
// @Tags answers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Param request body dto.CreateAnswerRequest true "Answer content"
// @Success 201 {object} dto.APIResponse{data=dto.AnswerResponse} "Answer created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /questions/{id}/answers [post]
func (c *AnswerController) CreateAnswer(ctx *gin.Context) {
	questionID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	answer, err := c.answerService.CreateAnswer(ctx, questionID, middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(answer))
}

// UpdateAnswer handles editing an answer
// @Summary Update an answer
// @Description Edits answer content; author or admin only
// @Tags answers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Answer ID"
// @Param request body dto.UpdateAnswerRequest true "New content"
// @Success 200 {object} dto.APIResponse{data=dto.AnswerResponse} "Answer updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Failure 404 {object} dto.ErrorResponse "Answer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /answers/{id} [put]
func (c *AnswerController) UpdateAnswer(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	answer, err := c.answerService.UpdateAnswer(ctx, id,
		middleware.CurrentUserID(ctx), middleware.CurrentUserIsAdmin(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(answer))
}

// AcceptAnswer handles marking an answer as accepted
// @Summary Accept an answer
// @Description Marks an answer as the accepted one for its question; question author only. Accepting another answer moves the acceptance.
// @Tags answers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Param answerId path int true "Answer ID"
// @Success 200 {object} dto.APIResponse "Answer accepted"
// @Failure 400 {object} dto.ErrorResponse "Answer does not belong to the question"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Only the question author may accept"
// @Failure 404 {object} dto.ErrorResponse "Question or answer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /questions/{id}/answers/{answerId}/accept [post]
func (c *AnswerController) AcceptAnswer(ctx *gin.Context) {
	questionID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	answerID, ok := parseIDParam(ctx, "answerId")
	if !ok {
		return
	}

	err := c.answerService.AcceptAnswer(ctx, questionID, answerID, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Answer accepted"))
}

// DeleteAnswer handles removing an answer
// @Summary Delete an answer
// @Description Removes an answer with its votes and notifications; author or admin only
// @Tags answers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Answer ID"
// @Success 200 {object} dto.APIResponse "Answer deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid answer ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Failure 404 {object} dto.ErrorResponse "Answer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /answers/{id} [delete]
func (c *AnswerController) DeleteAnswer(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	err := c.answerService.DeleteAnswer(ctx, id,
		middleware.CurrentUserID(ctx), middleware.CurrentUserIsAdmin(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Answer deleted"))
}
