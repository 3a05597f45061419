package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stackit/stackit/internal/app/models/dto"
	"github.com/stackit/stackit/internal/app/services"
	"github.com/stackit/stackit/internal/middleware"
	"github.com/stackit/stackit/internal/pkg/helpers"
)

// PostController handles community post operations
type PostController struct {
	postService services.PostService
}

// NewPostController creates a new PostController
func NewPostController(postService services.PostService) *PostController {
	return &PostController{postService: postService}
}

// GetPosts handles listing posts with filters
// @Summary List posts
// @Description Retrieves community posts with optional search and tag filters, newest first. Each post carries its full comments and likes.
// @Tags posts
// @Produce json
// @Param search query string false "Search in title and content"
// @Param tags query string false "Comma-separated tag filter"
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size (max 100)" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PostListResponse} "Posts retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts [get]
func (c *PostController) GetPosts(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)

	filter := &dto.PostFilterRequest{
		Page:     page,
		PageSize: pageSize,
	}
	if search := ctx.Query("search"); search != "" {
		filter.Search = &search
	}
	if tags := ctx.Query("tags"); tags != "" {
		filter.Tags = strings.Split(tags, ",")
	}

	response, err := c.postService.GetPosts(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// GetPostByID handles retrieving one post
// @Summary Get post by ID
// @Description Retrieves a post with its comments and likes
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.PostResponse} "Post retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid post ID"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts/{id} [get]
func (c *PostController) GetPostByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	post, err := c.postService.GetPostByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(post))
}

// CreatePost handles publishing a post with optional media attachments
// @Summary Create a post
// @Description Publishes a community post; images (max 5) and videos (max 2) arrive as multipart parts
// @Tags posts
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Post title"
// @Param content formData string true "Post content"
// @Param codeSnippet formData string false "Code snippet"
// @Param language formData string false "Snippet language"
// @Param tags formData []string false "Tags (max 5)"
// @Param images formData file false "Image attachments"
// @Param videos formData file false "Video attachments"
// @Success 201 {object} dto.APIResponse{data=dto.PostResponse} "Post created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request or attachment limits exceeded"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts [post]
func (c *PostController) CreatePost(ctx *gin.Context) {
	var req dto.CreatePostRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	images := form.File["images"]
	videos := form.File["videos"]

	post, err := c.postService.CreatePost(ctx, middleware.CurrentUserID(ctx), &req, images, videos)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(post))
}

// UpdatePost handles editing a post
// @Summary Update a post
// @Description Edits text fields of a post; attachments are immutable. Author or admin only.
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body dto.UpdatePostRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.PostResponse} "Post updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts/{id} [put]
func (c *PostController) UpdatePost(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	post, err := c.postService.UpdatePost(ctx, id,
		middleware.CurrentUserID(ctx), middleware.CurrentUserIsAdmin(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(post))
}

// DeletePost handles removing a post
// @Summary Delete a post
// @Description Removes a post with its comments, likes and stored attachments; author or admin only
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse "Post deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid post ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts/{id} [delete]
func (c *PostController) DeletePost(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	err := c.postService.DeletePost(ctx, id,
		middleware.CurrentUserID(ctx), middleware.CurrentUserIsAdmin(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Post deleted"))
}

// ToggleLike handles liking or unliking a post
// @Summary Toggle a like
// @Description Likes the post when not liked, removes the like otherwise
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.LikeStatusResponse} "Like state after the toggle"
// @Failure 400 {object} dto.ErrorResponse "Invalid post ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts/{id}/like [post]
func (c *PostController) ToggleLike(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	status, err := c.postService.ToggleLike(ctx, id, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(status))
}

// AddComment handles commenting on a post
// @Summary Comment on a post
// @Description Adds a comment to a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body dto.CreateCommentRequest true "Comment content"
// @Success 201 {object} dto.APIResponse{data=dto.CommentResponse} "Comment created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts/{id}/comments [post]
func (c *PostController) AddComment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	comment, err := c.postService.AddComment(ctx, id, middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(comment))
}

// SharePost handles bumping the share counter
// @Summary Share a post
// @Description Increments the post's share counter and returns the new count
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse "Share recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid post ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts/{id}/share [post]
func (c *PostController) SharePost(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	shares, err := c.postService.SharePost(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"shares": shares}))
}
