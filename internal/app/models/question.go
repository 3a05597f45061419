package models

import "time"

// Question defines the question model based on the 'questions' table
type Question struct {
	ID               int64     `json:"id" db:"id"`
	Title            string    `json:"title" db:"title"`
	Description      string    `json:"description" db:"description"` // Sanitized rich-text HTML
	AuthorID         int64     `json:"authorId" db:"author_id"`
	Tags             []string  `json:"tags" db:"tags"`
	Votes            int       `json:"votes" db:"votes"` // Denormalized net tally over the votes table
	Views            int       `json:"views" db:"views"`
	AcceptedAnswerID *int64    `json:"acceptedAnswerId,omitempty" db:"accepted_answer_id"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	Author      *User    `json:"author,omitempty"`
	Answers     []Answer `json:"answers,omitempty"`
	AnswerCount int      `json:"answerCount"`
}

// Answer defines the answer model based on the 'answers' table
type Answer struct {
	ID         int64     `json:"id" db:"id"`
	Content    string    `json:"content" db:"content"` // Sanitized rich-text HTML
	QuestionID int64     `json:"questionId" db:"question_id"`
	AuthorID   int64     `json:"authorId" db:"author_id"`
	Votes      int       `json:"votes" db:"votes"`
	IsAccepted bool      `json:"isAccepted" db:"is_accepted"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	Author *User `json:"author,omitempty"`
}
