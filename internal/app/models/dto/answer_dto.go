package dto

import (
	"time"

	"github.com/stackit/stackit/internal/app/models"
)

// CreateAnswerRequest represents a request to answer a question
type CreateAnswerRequest struct {
	Content string `json:"content" binding:"required"`
}

// UpdateAnswerRequest represents an answer edit
type UpdateAnswerRequest struct {
	Content string `json:"content" binding:"required"`
}

// AnswerResponse is the answer read model with its author summary
type AnswerResponse struct {
	ID         int64                `json:"id"`
	Content    string               `json:"content"`
	QuestionID int64                `json:"questionId"`
	Votes      int                  `json:"votes"`
	IsAccepted bool                 `json:"isAccepted"`
	Author     *UserSummaryResponse `json:"author"`
	CreatedAt  time.Time            `json:"createdAt"`
	UpdatedAt  time.Time            `json:"updatedAt"`
}

// FromAnswer converts an answer model to its read model
func FromAnswer(answer *models.Answer) AnswerResponse {
	return AnswerResponse{
		ID:         answer.ID,
		Content:    answer.Content,
		QuestionID: answer.QuestionID,
		Votes:      answer.Votes,
		IsAccepted: answer.IsAccepted,
		Author:     FromUserSummary(answer.Author),
		CreatedAt:  answer.CreatedAt,
		UpdatedAt:  answer.UpdatedAt,
	}
}
