package services

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/rs/zerolog"
	"github.com/stackit/stackit/internal/app/models"
	"github.com/stackit/stackit/internal/app/models/dto"
	"github.com/stackit/stackit/internal/app/repositories"
	"github.com/stackit/stackit/internal/pkg/apperrors"
	"github.com/stackit/stackit/internal/pkg/sanitize"
	"github.com/stackit/stackit/internal/pkg/websocket"
)

// mentionPattern matches @username references in answer content
var mentionPattern = regexp.MustCompile(`@([A-Za-z0-9_]{3,30})`)

// AnswerService defines the interface for answer operations
type AnswerService interface {
	CreateAnswer(ctx context.Context, questionID, userID int64, req *dto.CreateAnswerRequest) (*dto.AnswerResponse, error)
	UpdateAnswer(ctx context.Context, id, userID int64, isAdmin bool, req *dto.UpdateAnswerRequest) (*dto.AnswerResponse, error)
	AcceptAnswer(ctx context.Context, questionID, answerID, userID int64) error
	DeleteAnswer(ctx context.Context, id, userID int64, isAdmin bool) error
}

// answerServiceImpl implements AnswerService
type answerServiceImpl struct {
	answerRepo       *repositories.AnswerRepository
	questionRepo     *repositories.QuestionRepository
	userRepo         *repositories.UserRepository
	notificationRepo *repositories.NotificationRepository
	wsHub            *websocket.Hub
	logger           zerolog.Logger
}

// NewAnswerService creates a new AnswerService
func NewAnswerService(
	answerRepo *repositories.AnswerRepository,
	questionRepo *repositories.QuestionRepository,
	userRepo *repositories.UserRepository,
	notificationRepo *repositories.NotificationRepository,
	wsHub *websocket.Hub,
	logger zerolog.Logger,
) AnswerService {
	return &answerServiceImpl{
		answerRepo:       answerRepo,
		questionRepo:     questionRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		wsHub:            wsHub,
		logger:           logger,
	}
}

// CreateAnswer posts an answer to a question. The question's author gets a
// notification unless they answered their own question, and any @-mentioned
// users get mention notifications.
func (s *answerServiceImpl) CreateAnswer(ctx context.Context, questionID, userID int64, req *dto.CreateAnswerRequest) (*dto.AnswerResponse, error) {
	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}

	answer := &models.Answer{
		Content:    sanitize.HTML(req.Content),
		QuestionID: questionID,
		AuthorID:   userID,
	}

	if err := s.answerRepo.Create(ctx, answer); err != nil {
		s.logger.Error().Err(err).Int64("questionID", questionID).Msg("Failed to create answer")
		return nil, err
	}

	author, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	answer.Author = author

	if question.AuthorID != userID {
		s.notify(ctx, &models.Notification{
			UserID:     question.AuthorID,
			Type:       models.NotificationTypeQuestionAnswered,
			Title:      "New answer to your question",
			Message:    fmt.Sprintf("%s answered your question \"%s\"", author.Username, question.Title),
			QuestionID: &questionID,
			AnswerID:   &answer.ID,
		})
	}

	s.notifyMentions(ctx, req.Content, author, question.Title, questionID, answer.ID, userID, question.AuthorID)

	s.logger.Info().Int64("answerID", answer.ID).Int64("questionID", questionID).Msg("Answer created")

	return answerResponse(answer), nil
}

// UpdateAnswer edits an answer. Only the author or an admin may edit.
func (s *answerServiceImpl) UpdateAnswer(ctx context.Context, id, userID int64, isAdmin bool, req *dto.UpdateAnswerRequest) (*dto.AnswerResponse, error) {
	answer, err := s.answerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if answer.AuthorID != userID && !isAdmin {
		return nil, apperrors.ErrPermissionDenied
	}

	answer.Content = sanitize.HTML(req.Content)
	if err := s.answerRepo.Update(ctx, answer); err != nil {
		return nil, err
	}

	updated, err := s.answerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return answerResponse(updated), nil
}

// AcceptAnswer marks an answer as accepted. Only the question's author may
// accept, and accepting a different answer moves the acceptance. The answer's
// author is notified unless they are also the question's author.
func (s *answerServiceImpl) AcceptAnswer(ctx context.Context, questionID, answerID, userID int64) error {
	questionAuthorID, err := s.questionRepo.GetAuthorID(ctx, questionID)
	if err != nil {
		return err
	}
	if questionAuthorID != userID {
		return apperrors.ErrPermissionDenied
	}

	answer, err := s.answerRepo.GetByID(ctx, answerID)
	if err != nil {
		return err
	}

	if err := s.answerRepo.Accept(ctx, questionID, answerID); err != nil {
		s.logger.Error().Err(err).Int64("answerID", answerID).Msg("Failed to accept answer")
		return err
	}

	if answer.AuthorID != userID {
		question, qErr := s.questionRepo.GetByID(ctx, questionID)
		title := ""
		if qErr == nil {
			title = question.Title
		}
		s.notify(ctx, &models.Notification{
			UserID:     answer.AuthorID,
			Type:       models.NotificationTypeAnswerAccepted,
			Title:      "Your answer was accepted",
			Message:    fmt.Sprintf("Your answer to \"%s\" was accepted", title),
			QuestionID: &questionID,
			AnswerID:   &answerID,
		})
	}

	s.logger.Info().Int64("answerID", answerID).Int64("questionID", questionID).Msg("Answer accepted")
	return nil
}

// DeleteAnswer removes an answer. Only the author or an admin may delete.
func (s *answerServiceImpl) DeleteAnswer(ctx context.Context, id, userID int64, isAdmin bool) error {
	answer, err := s.answerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if answer.AuthorID != userID && !isAdmin {
		return apperrors.ErrPermissionDenied
	}

	if err := s.answerRepo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Int64("answerID", id).Msg("Failed to delete answer")
		return err
	}

	s.logger.Info().Int64("answerID", id).Msg("Answer deleted")
	return nil
}

// notify persists a notification and pushes it to the recipient's open
// WebSocket connections. A failed write is logged and swallowed; side-effect
// notifications never fail the operation that produced them.
func (s *answerServiceImpl) notify(ctx context.Context, n *models.Notification) {
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		s.logger.Error().Err(err).Int64("recipientID", n.UserID).Msg("Failed to create notification")
		return
	}

	s.wsHub.Publish(&websocket.Event{
		UserID:     n.UserID,
		Type:       string(n.Type),
		ID:         n.ID,
		Title:      n.Title,
		Message:    n.Message,
		QuestionID: n.QuestionID,
		AnswerID:   n.AnswerID,
		Timestamp:  time.Now(),
	})
}

// notifyMentions creates mention notifications for each @username found in
// the content. The answer's author and the question's author are skipped, the
// latter because they already got the answered notification.
func (s *answerServiceImpl) notifyMentions(ctx context.Context, content string, author *models.User, questionTitle string, questionID, answerID, authorID, questionAuthorID int64) {
	notified := map[int64]bool{authorID: true, questionAuthorID: true}
	for _, match := range mentionPattern.FindAllStringSubmatch(content, -1) {
		mentioned, err := s.userRepo.GetByUsername(ctx, match[1])
		if err != nil {
			continue
		}
		if notified[mentioned.ID] {
			continue
		}
		notified[mentioned.ID] = true

		s.notify(ctx, &models.Notification{
			UserID:     mentioned.ID,
			Type:       models.NotificationTypeMention,
			Title:      "You were mentioned",
			Message:    fmt.Sprintf("%s mentioned you in an answer to \"%s\"", author.Username, questionTitle),
			QuestionID: &questionID,
			AnswerID:   &answerID,
		})
	}
}

func answerResponse(answer *models.Answer) *dto.AnswerResponse {
	resp := dto.FromAnswer(answer)
	return &resp
}
