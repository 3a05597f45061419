package models

import "time"

// NotificationType classifies what produced a notification
type NotificationType string

const (
	NotificationTypeQuestionAnswered NotificationType = "question_answered"
	NotificationTypeAnswerAccepted   NotificationType = "answer_accepted"
	NotificationTypeMention          NotificationType = "mention"
)

// Notification defines the notification model based on the 'notifications' table.
// Rows are produced only as side effects of other operations, never by direct
// user action.
type Notification struct {
	ID         int64            `json:"id" db:"id"`
	UserID     int64            `json:"userId" db:"user_id"` // Recipient
	Type       NotificationType `json:"type" db:"type"`
	Title      string           `json:"title" db:"title"`
	Message    string           `json:"message" db:"message"`
	QuestionID *int64           `json:"questionId,omitempty" db:"question_id"`
	AnswerID   *int64           `json:"answerId,omitempty" db:"answer_id"`
	IsRead     bool             `json:"isRead" db:"is_read"`
	CreatedAt  time.Time        `json:"createdAt" db:"created_at"`

	// Title of the referenced question, filled on list reads
	QuestionTitle *string `json:"questionTitle,omitempty"`
}
