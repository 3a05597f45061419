package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stackit/stackit/internal/app/models/dto"
	"github.com/stackit/stackit/internal/app/services"
	"github.com/stackit/stackit/internal/middleware"
	"github.com/stackit/stackit/internal/pkg/helpers"
)

// QuestionController handles question related operations
type QuestionController struct {
	questionService services.QuestionService
}

// NewQuestionController creates a new QuestionController
func NewQuestionController(questionService services.QuestionService) *QuestionController {
	return &QuestionController{questionService: questionService}
}

// GetQuestions handles listing questions with filters
// @Summary List questions
// @Description Retrieves questions with optional search, tag and unanswered filters, newest first
// @Tags questions
// @Produce json
// @Param search query string false "Search in title and description"
// @Param tags query string false "Comma-separated tag filter (matched with overlap)"
// @Param filter query string false "newest or unanswered" Enums(newest, unanswered)
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size (max 100)" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.QuestionListResponse} "Questions retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /questions [get]
func (c *QuestionController) GetQuestions(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)

	filter := &dto.QuestionFilterRequest{
		Filter:   ctx.DefaultQuery("filter", dto.QuestionFilterNewest),
		Page:     page,
		PageSize: pageSize,
	}
	if search := ctx.Query("search"); search != "" {
		filter.Search = &search
	}
	if tags := ctx.Query("tags"); tags != "" {
		filter.Tags = strings.Split(tags, ",")
	}

	response, err := c.questionService.GetQuestions(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// GetQuestionByID handles retrieving one question with its answers
// @Summary Get question by ID
// @Description Retrieves a question with its ordered answers and bumps the view counter
// @Tags questions
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} dto.APIResponse{data=dto.QuestionDetailResponse} "Question retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid question ID"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /questions/{id} [get]
func (c *QuestionController) GetQuestionByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	question, err := c.questionService.GetQuestionByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(question))
}

// CreateQuestion handles asking a question
// @Summary Ask a question
// @Description Creates a question; the description is sanitized rich text
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateQuestionRequest true "Question data"
// @Success 201 {object} dto.APIResponse{data=dto.QuestionDetailResponse} "Question created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	var req dto.CreateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	question, err := c.questionService.CreateQuestion(ctx, middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(question))
}

// UpdateQuestion handles editing a question
// @Summary Update a question
// @Description Edits title, description or tags; author or admin only
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Param request body dto.UpdateQuestionRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.QuestionDetailResponse} "Question updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /questions/{id} [put]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	question, err := c.questionService.UpdateQuestion(ctx, id,
		middleware.CurrentUserID(ctx), middleware.CurrentUserIsAdmin(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(question))
}

// DeleteQuestion handles removing a question
// @Summary Delete a question
// @Description Removes a question with its answers, votes and notifications; author or admin only
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Success 200 {object} dto.APIResponse "Question deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid question ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /questions/{id} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	err := c.questionService.DeleteQuestion(ctx, id,
		middleware.CurrentUserID(ctx), middleware.CurrentUserIsAdmin(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Question deleted"))
}

// parseIDParam reads a positive integer path parameter, writing a 400
// response when it does not parse
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid ID parameter").
			WithField(name)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return 0, false
	}
	return id, true
}
