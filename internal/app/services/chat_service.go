package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/stackit/stackit/internal/app/models/dto"
	"github.com/stackit/stackit/internal/pkg/apperrors"
	"github.com/stackit/stackit/internal/pkg/assistant"
)

// ChatService defines the interface for AI assistant operations
type ChatService interface {
	Ask(ctx context.Context, userID int64, req *dto.ChatRequest) (*dto.ChatResponse, error)
}

// chatServiceImpl implements ChatService
type chatServiceImpl struct {
	client *assistant.Client
	logger zerolog.Logger
}

// NewChatService creates a new ChatService
func NewChatService(client *assistant.Client, logger zerolog.Logger) ChatService {
	return &chatServiceImpl{
		client: client,
		logger: logger,
	}
}

// Ask forwards a prompt to the assistant and returns the generated reply
func (s *chatServiceImpl) Ask(ctx context.Context, userID int64, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	reply, err := s.client.Generate(ctx, req.Message)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Assistant request failed")
		switch {
		case errors.Is(err, assistant.ErrPromptTooLong):
			return nil, apperrors.ErrPromptTooLong
		case errors.Is(err, assistant.ErrUnavailable), errors.Is(err, assistant.ErrEmptyReply):
			return nil, apperrors.ErrAssistantUnavailable
		}
		return nil, err
	}

	return &dto.ChatResponse{Reply: reply}, nil
}
