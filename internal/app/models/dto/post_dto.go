package dto

import (
	"time"

	"github.com/stackit/stackit/internal/app/models"
)

// CreatePostRequest represents a community post submission. Media files
// arrive as multipart parts next to these fields.
type CreatePostRequest struct {
	Title       string   `form:"title" binding:"required,min=3,max=200"`
	Content     string   `form:"content" binding:"required"`
	CodeSnippet *string  `form:"codeSnippet"`
	Language    *string  `form:"language"`
	Tags        []string `form:"tags" binding:"max=5"`
}

// UpdatePostRequest represents a partial post update
type UpdatePostRequest struct {
	Title       *string  `json:"title,omitempty" binding:"omitempty,min=3,max=200"`
	Content     *string  `json:"content,omitempty"`
	CodeSnippet *string  `json:"codeSnippet,omitempty"`
	Language    *string  `json:"language,omitempty"`
	Tags        []string `json:"tags,omitempty" binding:"omitempty,max=5"`
}

// CreateCommentRequest represents a comment on a post
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// PostFilterRequest carries list parameters
type PostFilterRequest struct {
	Search   *string
	Tags     []string
	Page     int
	PageSize int
}

// CommentResponse is the comment read model with its author summary
type CommentResponse struct {
	ID        int64                `json:"id"`
	PostID    int64                `json:"postId"`
	Content   string               `json:"content"`
	Author    *UserSummaryResponse `json:"author"`
	CreatedAt time.Time            `json:"createdAt"`
}

// LikeResponse is one like entry of a post
type LikeResponse struct {
	UserID    int64     `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// PostResponse is the post read model: author summary plus nested comments
// (each with author), nested likes, and counts of each
type PostResponse struct {
	ID           int64                `json:"id"`
	Title        string               `json:"title"`
	Content      string               `json:"content"`
	CodeSnippet  *string              `json:"codeSnippet,omitempty"`
	Language     *string              `json:"language,omitempty"`
	Tags         []string             `json:"tags"`
	ImageURLs    []string             `json:"imageUrls"`
	VideoURLs    []string             `json:"videoUrls"`
	Author       *UserSummaryResponse `json:"author"`
	Comments     []CommentResponse    `json:"comments"`
	Likes        []LikeResponse       `json:"likes"`
	CommentCount int                  `json:"commentCount"`
	LikeCount    int                  `json:"likeCount"`
	Shares       int                  `json:"shares"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

// PostListResponse wraps a page of posts
type PostListResponse struct {
	Posts          []PostResponse `json:"posts"`
	PaginationInfo PaginationInfo `json:"pagination"`
}

// LikeStatusResponse reports the like state after a toggle
type LikeStatusResponse struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"likeCount"`
}

// FromComment converts a comment model to its read model
func FromComment(comment *models.PostComment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		PostID:    comment.PostID,
		Content:   comment.Content,
		Author:    FromUserSummary(comment.Author),
		CreatedAt: comment.CreatedAt,
	}
}

// FromPost converts a post model with nested rows to its read model
func FromPost(post *models.Post) PostResponse {
	tags := post.Tags
	if tags == nil {
		tags = []string{}
	}
	images := post.ImageURLs
	if images == nil {
		images = []string{}
	}
	videos := post.VideoURLs
	if videos == nil {
		videos = []string{}
	}

	comments := make([]CommentResponse, 0, len(post.Comments))
	for i := range post.Comments {
		comments = append(comments, FromComment(&post.Comments[i]))
	}

	likes := make([]LikeResponse, 0, len(post.LikeEntries))
	for _, like := range post.LikeEntries {
		likes = append(likes, LikeResponse{UserID: like.UserID, CreatedAt: like.CreatedAt})
	}

	return PostResponse{
		ID:           post.ID,
		Title:        post.Title,
		Content:      post.Content,
		CodeSnippet:  post.CodeSnippet,
		Language:     post.Language,
		Tags:         tags,
		ImageURLs:    images,
		VideoURLs:    videos,
		Author:       FromUserSummary(post.Author),
		Comments:     comments,
		Likes:        likes,
		CommentCount: len(comments),
		LikeCount:    len(likes),
		Shares:       post.Shares,
		CreatedAt:    post.CreatedAt,
		UpdatedAt:    post.UpdatedAt,
	}
}
