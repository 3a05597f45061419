package services

import (
	"context"
	"mime/multipart"

	"github.com/rs/zerolog"
	"github.com/stackit/stackit/internal/app/models"
	"github.com/stackit/stackit/internal/app/models/dto"
	"github.com/stackit/stackit/internal/app/repositories"
	"github.com/stackit/stackit/internal/pkg/apperrors"
	"github.com/stackit/stackit/internal/pkg/filestorage"
	"github.com/stackit/stackit/internal/pkg/helpers"
	"github.com/stackit/stackit/internal/pkg/sanitize"
)

// Producer-enforced attachment limits
const (
	MaxPostTags   = 5
	MaxPostImages = 5
	MaxPostVideos = 2
)

// PostService defines the interface for community post operations
type PostService interface {
	GetPosts(ctx context.Context, filter *dto.PostFilterRequest) (*dto.PostListResponse, error)
	GetPostByID(ctx context.Context, id int64) (*dto.PostResponse, error)
	CreatePost(ctx context.Context, userID int64, req *dto.CreatePostRequest, images, videos []*multipart.FileHeader) (*dto.PostResponse, error)
	UpdatePost(ctx context.Context, id, userID int64, isAdmin bool, req *dto.UpdatePostRequest) (*dto.PostResponse, error)
	DeletePost(ctx context.Context, id, userID int64, isAdmin bool) error
	ToggleLike(ctx context.Context, postID, userID int64) (*dto.LikeStatusResponse, error)
	AddComment(ctx context.Context, postID, userID int64, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	SharePost(ctx context.Context, postID int64) (int, error)
}

// postServiceImpl implements PostService
type postServiceImpl struct {
	postRepo    *repositories.PostRepository
	userRepo    *repositories.UserRepository
	fileStorage *filestorage.LocalStorage
	logger      zerolog.Logger
}

// NewPostService creates a new PostService
func NewPostService(
	postRepo *repositories.PostRepository,
	userRepo *repositories.UserRepository,
	fileStorage *filestorage.LocalStorage,
	logger zerolog.Logger,
) PostService {
	return &postServiceImpl{
		postRepo:    postRepo,
		userRepo:    userRepo,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

// GetPosts retrieves posts with filtering and pagination
func (s *postServiceImpl) GetPosts(ctx context.Context, filter *dto.PostFilterRequest) (*dto.PostListResponse, error) {
	repoFilter := repositories.PostFilter{
		Tags:     filter.Tags,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
	if filter.Search != nil {
		repoFilter.Search = *filter.Search
	}

	posts, total, err := s.postRepo.List(ctx, repoFilter)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list posts")
		return nil, err
	}

	responses := make([]dto.PostResponse, 0, len(posts))
	for i := range posts {
		responses = append(responses, dto.FromPost(&posts[i]))
	}

	return &dto.PostListResponse{
		Posts:          responses,
		PaginationInfo: helpers.NewPaginationInfo(total, filter.Page, filter.PageSize),
	}, nil
}

// GetPostByID retrieves a post with its comments and likes
func (s *postServiceImpl) GetPostByID(ctx context.Context, id int64) (*dto.PostResponse, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := dto.FromPost(post)
	return &resp, nil
}

// CreatePost publishes a community post. Tag and attachment limits are
// checked before any file is written, so a rejected post leaves no orphan
// files behind.
func (s *postServiceImpl) CreatePost(ctx context.Context, userID int64, req *dto.CreatePostRequest, images, videos []*multipart.FileHeader) (*dto.PostResponse, error) {
	tags := normalizeTags(req.Tags)
	if len(tags) > MaxPostTags {
		return nil, apperrors.ErrTooManyTags
	}
	if len(images) > MaxPostImages || len(videos) > MaxPostVideos {
		return nil, apperrors.ErrTooManyAttachments
	}

	imageURLs, err := s.saveAttachments(images, filestorage.ImageSubdir)
	if err != nil {
		return nil, err
	}
	videoURLs, err := s.saveAttachments(videos, filestorage.VideoSubdir)
	if err != nil {
		s.removeAttachments(imageURLs)
		return nil, err
	}

	post := &models.Post{
		Title:       req.Title,
		Content:     sanitize.HTML(req.Content),
		CodeSnippet: req.CodeSnippet,
		Language:    req.Language,
		AuthorID:    userID,
		Tags:        tags,
		ImageURLs:   imageURLs,
		VideoURLs:   videoURLs,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to create post")
		s.removeAttachments(imageURLs)
		s.removeAttachments(videoURLs)
		return nil, err
	}

	s.logger.Info().Int64("postID", post.ID).Int64("userID", userID).Msg("Post created")

	return s.GetPostByID(ctx, post.ID)
}

// UpdatePost edits a post. Only the author or an admin may edit; attachments
// are immutable after creation.
func (s *postServiceImpl) UpdatePost(ctx context.Context, id, userID int64, isAdmin bool, req *dto.UpdatePostRequest) (*dto.PostResponse, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != userID && !isAdmin {
		return nil, apperrors.ErrPermissionDenied
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = sanitize.HTML(*req.Content)
	}
	if req.CodeSnippet != nil {
		post.CodeSnippet = req.CodeSnippet
	}
	if req.Language != nil {
		post.Language = req.Language
	}
	if req.Tags != nil {
		tags := normalizeTags(req.Tags)
		if len(tags) > MaxPostTags {
			return nil, apperrors.ErrTooManyTags
		}
		post.Tags = tags
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return s.GetPostByID(ctx, id)
}

// DeletePost removes a post, its comments, likes and stored attachments.
// Only the author or an admin may delete.
func (s *postServiceImpl) DeletePost(ctx context.Context, id, userID int64, isAdmin bool) error {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if post.AuthorID != userID && !isAdmin {
		return apperrors.ErrPermissionDenied
	}

	if err := s.postRepo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Int64("postID", id).Msg("Failed to delete post")
		return err
	}

	s.removeAttachments(post.ImageURLs)
	s.removeAttachments(post.VideoURLs)

	s.logger.Info().Int64("postID", id).Msg("Post deleted")
	return nil
}

// ToggleLike flips the user's like on the post
func (s *postServiceImpl) ToggleLike(ctx context.Context, postID, userID int64) (*dto.LikeStatusResponse, error) {
	liked, likeCount, err := s.postRepo.ToggleLike(ctx, postID, userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("postID", postID).Msg("Failed to toggle like")
		return nil, err
	}

	return &dto.LikeStatusResponse{Liked: liked, LikeCount: likeCount}, nil
}

// AddComment comments on a post
func (s *postServiceImpl) AddComment(ctx context.Context, postID, userID int64, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	comment := &models.PostComment{
		PostID:   postID,
		AuthorID: userID,
		Content:  sanitize.HTML(req.Content),
	}

	if err := s.postRepo.AddComment(ctx, comment); err != nil {
		s.logger.Error().Err(err).Int64("postID", postID).Msg("Failed to add comment")
		return nil, err
	}

	author, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	comment.Author = author

	resp := dto.FromComment(comment)
	return &resp, nil
}

// SharePost bumps the share counter and returns the new count
func (s *postServiceImpl) SharePost(ctx context.Context, postID int64) (int, error) {
	return s.postRepo.IncrementShares(ctx, postID)
}

func (s *postServiceImpl) saveAttachments(files []*multipart.FileHeader, subdir string) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, file := range files {
		url, err := s.fileStorage.SaveFileWithPath(file, subdir)
		if err != nil {
			s.logger.Error().Err(err).Str("filename", file.Filename).Msg("Failed to store attachment")
			s.removeAttachments(urls)
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (s *postServiceImpl) removeAttachments(urls []string) {
	for _, url := range urls {
		if err := s.fileStorage.DeleteFile(url); err != nil {
			s.logger.Warn().Err(err).Str("url", url).Msg("Failed to remove stored attachment")
		}
	}
}
