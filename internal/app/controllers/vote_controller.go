package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stackit/stackit/internal/app/models/dto"
	"github.com/stackit/stackit/internal/app/services"
	"github.com/stackit/stackit/internal/middleware"
)

// VoteController handles voting on questions and answers
type VoteController struct {
	voteService services.VoteService
}

// NewVoteController creates a new VoteController
func NewVoteController(voteService services.VoteService) *VoteController {
	return &VoteController{voteService: voteService}
}

// VoteQuestion handles voting on a question
// @Summary Vote on a question
// @Description Casts a vote; repeating the same direction removes it, the opposite direction flips it
// @Tags votes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Param request body dto.CastVoteRequest true "Vote direction"
// @Success 200 {object} dto.APIResponse{data=dto.VoteStatusResponse} "Vote state after the operation"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /questions/{id}/vote [post]
func (c *VoteController) VoteQuestion(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CastVoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	status, err := c.voteService.VoteQuestion(ctx, id, middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(status))
}

// VoteAnswer handles voting on an answer
// @Summary Vote on an answer
// @Description Casts a vote; repeating the same direction removes it, the opposite direction flips it
// @Tags votes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Answer ID"
// @Param request body dto.CastVoteRequest true "Vote direction"
// @Success 200 {object} dto.APIResponse{data=dto.VoteStatusResponse} "Vote state after the operation"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Answer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /answers/{id}/vote [post]
func (c *VoteController) VoteAnswer(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CastVoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	status, err := c.voteService.VoteAnswer(ctx, id, middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(status))
}

// GetQuestionVoteStatus reports the caller's vote on a question
// @Summary Get question vote status
// @Description Returns the caller's current vote and the question's tally
// @Tags votes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Success 200 {object} dto.APIResponse{data=dto.VoteStatusResponse} "Vote status"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /questions/{id}/vote [get]
func (c *VoteController) GetQuestionVoteStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	status, err := c.voteService.GetQuestionVoteStatus(ctx, id, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(status))
}

// GetAnswerVoteStatus reports the caller's vote on an answer
// @Summary Get answer vote status
// @Description Returns the caller's current vote and the answer's tally
// @Tags votes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Answer ID"
// @Success 200 {object} dto.APIResponse{data=dto.VoteStatusResponse} "Vote status"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Answer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /answers/{id}/vote [get]
func (c *VoteController) GetAnswerVoteStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	status, err := c.voteService.GetAnswerVoteStatus(ctx, id, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(status))
}
