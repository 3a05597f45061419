package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/stackit/stackit/internal/app/models"
	"github.com/stackit/stackit/internal/app/models/dto"
	"github.com/stackit/stackit/internal/app/repositories"
	"github.com/stackit/stackit/internal/pkg/apperrors"
)

// VoteService defines the interface for vote operations
type VoteService interface {
	VoteQuestion(ctx context.Context, questionID, userID int64, req *dto.CastVoteRequest) (*dto.VoteStatusResponse, error)
	VoteAnswer(ctx context.Context, answerID, userID int64, req *dto.CastVoteRequest) (*dto.VoteStatusResponse, error)
	GetQuestionVoteStatus(ctx context.Context, questionID, userID int64) (*dto.VoteStatusResponse, error)
	GetAnswerVoteStatus(ctx context.Context, answerID, userID int64) (*dto.VoteStatusResponse, error)
}

// voteServiceImpl implements VoteService
type voteServiceImpl struct {
	voteRepo *repositories.VoteRepository
	logger   zerolog.Logger
}

// NewVoteService creates a new VoteService
func NewVoteService(voteRepo *repositories.VoteRepository, logger zerolog.Logger) VoteService {
	return &voteServiceImpl{
		voteRepo: voteRepo,
		logger:   logger,
	}
}

// VoteQuestion casts, toggles off, or flips the user's vote on a question
func (s *voteServiceImpl) VoteQuestion(ctx context.Context, questionID, userID int64, req *dto.CastVoteRequest) (*dto.VoteStatusResponse, error) {
	return s.cast(ctx, userID, repositories.VoteTarget{QuestionID: &questionID}, req)
}

// VoteAnswer casts, toggles off, or flips the user's vote on an answer
func (s *voteServiceImpl) VoteAnswer(ctx context.Context, answerID, userID int64, req *dto.CastVoteRequest) (*dto.VoteStatusResponse, error) {
	return s.cast(ctx, userID, repositories.VoteTarget{AnswerID: &answerID}, req)
}

func (s *voteServiceImpl) cast(ctx context.Context, userID int64, target repositories.VoteTarget, req *dto.CastVoteRequest) (*dto.VoteStatusResponse, error) {
	vote, tally, err := s.voteRepo.Cast(ctx, userID, target, models.VoteType(req.VoteType))
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to cast vote")
		return nil, err
	}

	status := &dto.VoteStatusResponse{Votes: tally}
	if vote != nil {
		voteType := string(vote.VoteType)
		status.VoteType = &voteType
	}

	return status, nil
}

// GetQuestionVoteStatus returns the user's current vote on a question and
// the question's tally
func (s *voteServiceImpl) GetQuestionVoteStatus(ctx context.Context, questionID, userID int64) (*dto.VoteStatusResponse, error) {
	return s.status(ctx, userID, repositories.VoteTarget{QuestionID: &questionID})
}

// GetAnswerVoteStatus returns the user's current vote on an answer and the
// answer's tally
func (s *voteServiceImpl) GetAnswerVoteStatus(ctx context.Context, answerID, userID int64) (*dto.VoteStatusResponse, error) {
	return s.status(ctx, userID, repositories.VoteTarget{AnswerID: &answerID})
}

func (s *voteServiceImpl) status(ctx context.Context, userID int64, target repositories.VoteTarget) (*dto.VoteStatusResponse, error) {
	tally, err := s.voteRepo.GetTally(ctx, target)
	if err != nil {
		return nil, err
	}

	status := &dto.VoteStatusResponse{Votes: tally}

	vote, err := s.voteRepo.Get(ctx, userID, target)
	if err != nil {
		if errors.Is(err, apperrors.ErrVoteNotFound) {
			return status, nil
		}
		return nil, err
	}

	voteType := string(vote.VoteType)
	status.VoteType = &voteType

	return status, nil
}
