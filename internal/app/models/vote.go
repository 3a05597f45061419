package models

import "time"

// VoteType is the direction of a vote
type VoteType string

const (
	VoteTypeUp   VoteType = "up"
	VoteTypeDown VoteType = "down"
)

// Valid reports whether the vote type is one of the two known directions
func (t VoteType) Valid() bool {
	return t == VoteTypeUp || t == VoteTypeDown
}

// Value is the tally contribution of the vote type
func (t VoteType) Value() int {
	if t == VoteTypeUp {
		return 1
	}
	return -1
}

// Vote defines the vote model based on the 'votes' table.
// Exactly one of QuestionID or AnswerID is set; a partial unique index per
// target column enforces one vote per user per target.
type Vote struct {
	ID         int64     `json:"id" db:"id"`
	UserID     int64     `json:"userId" db:"user_id"`
	QuestionID *int64    `json:"questionId,omitempty" db:"question_id"`
	AnswerID   *int64    `json:"answerId,omitempty" db:"answer_id"`
	VoteType   VoteType  `json:"voteType" db:"vote_type"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
