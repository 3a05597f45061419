package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stackit/stackit/internal/app/models"
	"github.com/stackit/stackit/internal/app/models/dto"
	"github.com/stackit/stackit/internal/app/repositories"
	"github.com/stackit/stackit/internal/pkg/apperrors"
	"github.com/stackit/stackit/internal/pkg/helpers"
)

// Audit trail actions
const (
	AdminActionDeleteUser     = "delete_user"
	AdminActionDeleteQuestion = "delete_question"
	AdminActionDeleteAnswer   = "delete_answer"
	AdminActionDeletePost     = "delete_post"
	AdminActionGrantAdmin     = "grant_admin"
	AdminActionRevokeAdmin    = "revoke_admin"
)

// AdminService defines the interface for moderation and analytics
type AdminService interface {
	GetUsers(ctx context.Context, page, pageSize int) (*dto.UserListResponse, error)
	DeleteUser(ctx context.Context, adminID, targetID int64) error
	ToggleAdmin(ctx context.Context, adminID, targetID int64, grant bool) (*dto.UserResponse, error)
	DeleteQuestion(ctx context.Context, adminID, questionID int64) error
	DeleteAnswer(ctx context.Context, adminID, answerID int64) error
	DeletePost(ctx context.Context, adminID, postID int64) error
	GetAnalytics(ctx context.Context) (*dto.AnalyticsResponse, error)
	GetLogs(ctx context.Context, adminID *int64, page, pageSize int) (*dto.AdminLogListResponse, error)
}

// adminServiceImpl implements AdminService
type adminServiceImpl struct {
	adminRepo    *repositories.AdminRepository
	userRepo     *repositories.UserRepository
	questionRepo *repositories.QuestionRepository
	answerRepo   *repositories.AnswerRepository
	postRepo     *repositories.PostRepository
	logger       zerolog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(
	adminRepo *repositories.AdminRepository,
	userRepo *repositories.UserRepository,
	questionRepo *repositories.QuestionRepository,
	answerRepo *repositories.AnswerRepository,
	postRepo *repositories.PostRepository,
	logger zerolog.Logger,
) AdminService {
	return &adminServiceImpl{
		adminRepo:    adminRepo,
		userRepo:     userRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		postRepo:     postRepo,
		logger:       logger,
	}
}

// GetUsers lists all accounts for the admin view
func (s *adminServiceImpl) GetUsers(ctx context.Context, page, pageSize int) (*dto.UserListResponse, error) {
	users, total, err := s.userRepo.ListAll(ctx, page, pageSize)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list users")
		return nil, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *dto.FromUser(&users[i]))
	}

	return &dto.UserListResponse{
		Users:          responses,
		PaginationInfo: helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}

// DeleteUser removes an account and every row it owns. Admins cannot delete
// themselves; demote or delete has to come from another admin.
func (s *adminServiceImpl) DeleteUser(ctx context.Context, adminID, targetID int64) error {
	if adminID == targetID {
		return apperrors.ErrSelfAction
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, targetID); err != nil {
		s.logger.Error().Err(err).Int64("targetID", targetID).Msg("Failed to delete user")
		return err
	}

	s.audit(ctx, adminID, AdminActionDeleteUser, "user", targetID,
		fmt.Sprintf("deleted user %s", target.Username))

	return nil
}

// ToggleAdmin grants or revokes the admin flag. Self-demotion is rejected so
// the platform cannot lose its last administrator by accident.
func (s *adminServiceImpl) ToggleAdmin(ctx context.Context, adminID, targetID int64, grant bool) (*dto.UserResponse, error) {
	if adminID == targetID {
		return nil, apperrors.ErrSelfAction
	}

	if err := s.userRepo.SetAdmin(ctx, targetID, grant); err != nil {
		s.logger.Error().Err(err).Int64("targetID", targetID).Msg("Failed to toggle admin flag")
		return nil, err
	}

	action := AdminActionGrantAdmin
	if !grant {
		action = AdminActionRevokeAdmin
	}
	s.audit(ctx, adminID, action, "user", targetID, "")

	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	return dto.FromUser(user), nil
}

// DeleteQuestion removes any question as a moderation action
func (s *adminServiceImpl) DeleteQuestion(ctx context.Context, adminID, questionID int64) error {
	if err := s.questionRepo.Delete(ctx, questionID); err != nil {
		return err
	}

	s.audit(ctx, adminID, AdminActionDeleteQuestion, "question", questionID, "")
	return nil
}

// DeleteAnswer removes any answer as a moderation action
func (s *adminServiceImpl) DeleteAnswer(ctx context.Context, adminID, answerID int64) error {
	if err := s.answerRepo.Delete(ctx, answerID); err != nil {
		return err
	}

	s.audit(ctx, adminID, AdminActionDeleteAnswer, "answer", answerID, "")
	return nil
}

// DeletePost removes any post as a moderation action
func (s *adminServiceImpl) DeletePost(ctx context.Context, adminID, postID int64) error {
	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	s.audit(ctx, adminID, AdminActionDeletePost, "post", postID, "")
	return nil
}

// GetAnalytics recomputes the platform counters
func (s *adminServiceImpl) GetAnalytics(ctx context.Context) (*dto.AnalyticsResponse, error) {
	analytics, err := s.adminRepo.GetAnalytics(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to compute analytics")
		return nil, err
	}

	return dto.FromAnalytics(analytics), nil
}

// GetLogs retrieves the audit trail newest first
func (s *adminServiceImpl) GetLogs(ctx context.Context, adminID *int64, page, pageSize int) (*dto.AdminLogListResponse, error) {
	logs, total, err := s.adminRepo.ListLogs(ctx, adminID, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AdminLogResponse, 0, len(logs))
	for i := range logs {
		responses = append(responses, dto.FromAdminLog(&logs[i]))
	}

	return &dto.AdminLogListResponse{
		Logs:           responses,
		PaginationInfo: helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}

// audit appends to the trail. A failed audit write is logged and swallowed;
// the moderation action itself already happened.
func (s *adminServiceImpl) audit(ctx context.Context, adminID int64, action, targetType string, targetID int64, details string) {
	entry := &models.AdminLog{
		AdminID:    adminID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Details:    details,
	}
	if err := s.adminRepo.CreateLog(ctx, entry); err != nil {
		s.logger.Error().Err(err).Str("action", action).Int64("targetID", targetID).Msg("Failed to write audit log")
	}
}
