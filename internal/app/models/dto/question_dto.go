package dto

import (
	"time"

	"github.com/stackit/stackit/internal/app/models"
)

// QuestionFilter is the accepted value set of the list filter parameter
const (
	QuestionFilterNewest     = "newest"
	QuestionFilterUnanswered = "unanswered"
)

// CreateQuestionRequest represents a request to ask a question
type CreateQuestionRequest struct {
	Title       string   `json:"title" binding:"required,min=10,max=200"`
	Description string   `json:"description" binding:"required"`
	Tags        []string `json:"tags" binding:"required,max=5"`
}

// UpdateQuestionRequest represents a partial question update
type UpdateQuestionRequest struct {
	Title       *string  `json:"title,omitempty" binding:"omitempty,min=10,max=200"`
	Description *string  `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty" binding:"omitempty,max=5"`
}

// QuestionFilterRequest carries list parameters
type QuestionFilterRequest struct {
	Search *string
	Tags   []string
	Filter string
	Page   int
	PageSize int
}

// QuestionResponse is the question list read model: question plus author
// summary and answer count
type QuestionResponse struct {
	ID               int64                `json:"id"`
	Title            string               `json:"title"`
	Description      string               `json:"description"`
	Tags             []string             `json:"tags"`
	Votes            int                  `json:"votes"`
	Views            int                  `json:"views"`
	AcceptedAnswerID *int64               `json:"acceptedAnswerId,omitempty"`
	Author           *UserSummaryResponse `json:"author"`
	AnswerCount      int                  `json:"answerCount"`
	CreatedAt        time.Time            `json:"createdAt"`
	UpdatedAt        time.Time            `json:"updatedAt"`
}

// QuestionDetailResponse is the single-question read model: the question with
// its full ordered answer list (accepted first, then votes descending, then
// oldest first), each answer with its own author summary
type QuestionDetailResponse struct {
	QuestionResponse
	Answers []AnswerResponse `json:"answers"`
}

// QuestionListResponse wraps a page of questions
type QuestionListResponse struct {
	Questions      []QuestionResponse `json:"questions"`
	PaginationInfo PaginationInfo     `json:"pagination"`
}

// FromQuestion converts a question model to the list read model
func FromQuestion(question *models.Question) QuestionResponse {
	tags := question.Tags
	if tags == nil {
		tags = []string{}
	}
	return QuestionResponse{
		ID:               question.ID,
		Title:            question.Title,
		Description:      question.Description,
		Tags:             tags,
		Votes:            question.Votes,
		Views:            question.Views,
		AcceptedAnswerID: question.AcceptedAnswerID,
		Author:           FromUserSummary(question.Author),
		AnswerCount:      question.AnswerCount,
		CreatedAt:        question.CreatedAt,
		UpdatedAt:        question.UpdatedAt,
	}
}

// FromQuestionDetail converts a question model with answers to the detail read model
func FromQuestionDetail(question *models.Question) *QuestionDetailResponse {
	if question == nil {
		return nil
	}
	answers := make([]AnswerResponse, 0, len(question.Answers))
	for i := range question.Answers {
		answers = append(answers, FromAnswer(&question.Answers[i]))
	}
	return &QuestionDetailResponse{
		QuestionResponse: FromQuestion(question),
		Answers:          answers,
	}
}
