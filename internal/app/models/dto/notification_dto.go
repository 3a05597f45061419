package dto

import (
	"time"

	"github.com/stackit/stackit/internal/app/models"
)

// NotificationResponse is the notification read model, optionally enriched
// with the referenced question's title
type NotificationResponse struct {
	ID            int64     `json:"id"`
	Type          string    `json:"type"`
	Title         string    `json:"title"`
	Message       string    `json:"message"`
	QuestionID    *int64    `json:"questionId,omitempty"`
	AnswerID      *int64    `json:"answerId,omitempty"`
	QuestionTitle *string   `json:"questionTitle,omitempty"`
	IsRead        bool      `json:"isRead"`
	CreatedAt     time.Time `json:"createdAt"`
}

// UnreadCountResponse reports the number of unread notifications
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

// FromNotification converts a notification model to its read model
func FromNotification(n *models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:            n.ID,
		Type:          string(n.Type),
		Title:         n.Title,
		Message:       n.Message,
		QuestionID:    n.QuestionID,
		AnswerID:      n.AnswerID,
		QuestionTitle: n.QuestionTitle,
		IsRead:        n.IsRead,
		CreatedAt:     n.CreatedAt,
	}
}
