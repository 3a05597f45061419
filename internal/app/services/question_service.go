package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/stackit/stackit/internal/app/models"
	"github.com/stackit/stackit/internal/app/models/dto"
	"github.com/stackit/stackit/internal/app/repositories"
	"github.com/stackit/stackit/internal/pkg/apperrors"
	"github.com/stackit/stackit/internal/pkg/helpers"
	"github.com/stackit/stackit/internal/pkg/sanitize"
)

// QuestionService defines the interface for question operations
type QuestionService interface {
	GetQuestions(ctx context.Context, filter *dto.QuestionFilterRequest) (*dto.QuestionListResponse, error)
	GetQuestionByID(ctx context.Context, id int64) (*dto.QuestionDetailResponse, error)
	CreateQuestion(ctx context.Context, userID int64, req *dto.CreateQuestionRequest) (*dto.QuestionDetailResponse, error)
	UpdateQuestion(ctx context.Context, id, userID int64, isAdmin bool, req *dto.UpdateQuestionRequest) (*dto.QuestionDetailResponse, error)
	DeleteQuestion(ctx context.Context, id, userID int64, isAdmin bool) error
}

// questionServiceImpl implements QuestionService
type questionServiceImpl struct {
	questionRepo *repositories.QuestionRepository
	logger       zerolog.Logger
}

// NewQuestionService creates a new QuestionService
func NewQuestionService(questionRepo *repositories.QuestionRepository, logger zerolog.Logger) QuestionService {
	return &questionServiceImpl{
		questionRepo: questionRepo,
		logger:       logger,
	}
}

// GetQuestions retrieves questions with filtering and pagination
func (s *questionServiceImpl) GetQuestions(ctx context.Context, filter *dto.QuestionFilterRequest) (*dto.QuestionListResponse, error) {
	repoFilter := repositories.QuestionFilter{
		Tags:       filter.Tags,
		Unanswered: filter.Filter == dto.QuestionFilterUnanswered,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
	}
	if filter.Search != nil {
		repoFilter.Search = *filter.Search
	}

	questions, total, err := s.questionRepo.List(ctx, repoFilter)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list questions")
		return nil, err
	}

	responses := make([]dto.QuestionResponse, 0, len(questions))
	for i := range questions {
		responses = append(responses, dto.FromQuestion(&questions[i]))
	}

	return &dto.QuestionListResponse{
		Questions:      responses,
		PaginationInfo: helpers.NewPaginationInfo(total, filter.Page, filter.PageSize),
	}, nil
}

// GetQuestionByID retrieves a question with its ordered answers. The view
// counter is bumped asynchronously; a detail read never waits on or fails
// because of the counter write.
func (s *questionServiceImpl) GetQuestionByID(ctx context.Context, id int64) (*dto.QuestionDetailResponse, error) {
	question, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), viewCountTimeout)
		defer cancel()
		if err := s.questionRepo.IncrementViews(ctx, id); err != nil {
			s.logger.Warn().Err(err).Int64("questionID", id).Msg("Failed to increment view count")
		}
	}()

	return dto.FromQuestionDetail(question), nil
}

// CreateQuestion asks a new question. The description is rich text and gets
// sanitized before storage.
func (s *questionServiceImpl) CreateQuestion(ctx context.Context, userID int64, req *dto.CreateQuestionRequest) (*dto.QuestionDetailResponse, error) {
	question := &models.Question{
		Title:       req.Title,
		Description: sanitize.HTML(req.Description),
		AuthorID:    userID,
		Tags:        normalizeTags(req.Tags),
	}

	if err := s.questionRepo.Create(ctx, question); err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to create question")
		return nil, err
	}

	s.logger.Info().Int64("questionID", question.ID).Int64("userID", userID).Msg("Question created")

	// Read back directly; creating a question must not count as a view.
	created, err := s.questionRepo.GetByID(ctx, question.ID)
	if err != nil {
		return nil, err
	}

	return dto.FromQuestionDetail(created), nil
}

// UpdateQuestion edits a question. Only the author or an admin may edit.
func (s *questionServiceImpl) UpdateQuestion(ctx context.Context, id, userID int64, isAdmin bool, req *dto.UpdateQuestionRequest) (*dto.QuestionDetailResponse, error) {
	question, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if question.AuthorID != userID && !isAdmin {
		return nil, apperrors.ErrPermissionDenied
	}

	if req.Title != nil {
		question.Title = *req.Title
	}
	if req.Description != nil {
		question.Description = sanitize.HTML(*req.Description)
	}
	if req.Tags != nil {
		question.Tags = normalizeTags(req.Tags)
	}

	if err := s.questionRepo.Update(ctx, question); err != nil {
		return nil, err
	}

	updated, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return dto.FromQuestionDetail(updated), nil
}

// DeleteQuestion removes a question and everything hanging off it. Only the
// author or an admin may delete.
func (s *questionServiceImpl) DeleteQuestion(ctx context.Context, id, userID int64, isAdmin bool) error {
	authorID, err := s.questionRepo.GetAuthorID(ctx, id)
	if err != nil {
		return err
	}

	if authorID != userID && !isAdmin {
		return apperrors.ErrPermissionDenied
	}

	if err := s.questionRepo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Int64("questionID", id).Msg("Failed to delete question")
		return err
	}

	s.logger.Info().Int64("questionID", id).Int64("userID", userID).Msg("Question deleted")
	return nil
}
