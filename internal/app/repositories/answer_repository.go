package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stackit/stackit/internal/app/models"
	"github.com/stackit/stackit/internal/db"
	"github.com/stackit/stackit/internal/pkg/apperrors"
)

// AnswerRepository handles database operations for answers
type AnswerRepository struct {
	db *pgxpool.Pool
}

// NewAnswerRepository creates a new AnswerRepository
func NewAnswerRepository(db *pgxpool.Pool) *AnswerRepository {
	return &AnswerRepository{db: db}
}

// Create inserts a new answer and fills in the generated ID
func (r *AnswerRepository) Create(ctx context.Context, answer *models.Answer) error {
	query := `
		INSERT INTO answers (content, question_id, author_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		answer.Content, answer.QuestionID, answer.AuthorID).
		Scan(&answer.ID, &answer.CreatedAt, &answer.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating answer: %w", err)
	}

	return nil
}

// GetByID retrieves an answer with its author
func (r *AnswerRepository) GetByID(ctx context.Context, id int64) (*models.Answer, error) {
	query := `
		SELECT a.id, a.content, a.question_id, a.author_id, a.votes, a.is_accepted,
			a.created_at, a.updated_at,
			u.username, u.name, u.profile_image
		FROM answers a
		JOIN users u ON u.id = a.author_id
		WHERE a.id = $1`

	answer := &models.Answer{}
	author := &models.User{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&answer.ID, &answer.Content, &answer.QuestionID, &answer.AuthorID,
		&answer.Votes, &answer.IsAccepted, &answer.CreatedAt, &answer.UpdatedAt,
		&author.Username, &author.Name, &author.ProfileImage)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrAnswerNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	author.ID = answer.AuthorID
	answer.Author = author

	return answer, nil
}

// Update updates an answer's content
func (r *AnswerRepository) Update(ctx context.Context, answer *models.Answer) error {
	result, err := r.db.Exec(ctx, `
		UPDATE answers
		SET content = $1, updated_at = NOW()
		WHERE id = $2`,
		answer.Content, answer.ID)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrAnswerNotFound
	}

	return nil
}

// Accept marks an answer as the accepted one for its question. The previous
// accepted answer (if any) is cleared, the new one is flagged and the
// question's pointer is moved, all inside one transaction so readers never
// observe two accepted answers.
func (r *AnswerRepository) Accept(ctx context.Context, questionID, answerID int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var belongsTo int64
		err := tx.QueryRow(ctx, `
			SELECT question_id FROM answers WHERE id = $1`, answerID).Scan(&belongsTo)
		if err != nil {
			if err == pgx.ErrNoRows {
				return apperrors.ErrAnswerNotFound
			}
			return fmt.Errorf("error loading answer: %w", err)
		}
		if belongsTo != questionID {
			return apperrors.ErrAnswerQuestionMismatch
		}

		if _, err := tx.Exec(ctx, `
			UPDATE answers SET is_accepted = FALSE, updated_at = NOW()
			WHERE question_id = $1 AND is_accepted`, questionID); err != nil {
			return fmt.Errorf("error clearing previous accepted answer: %w", err)
		}

		if _, err := tx.Exec(ctx, `
			UPDATE answers SET is_accepted = TRUE, updated_at = NOW()
			WHERE id = $1`, answerID); err != nil {
			return fmt.Errorf("error flagging accepted answer: %w", err)
		}

		result, err := tx.Exec(ctx, `
			UPDATE questions SET accepted_answer_id = $1, updated_at = NOW()
			WHERE id = $2`, answerID, questionID)
		if err != nil {
			return fmt.Errorf("error updating question pointer: %w", err)
		}
		if result.RowsAffected() == 0 {
			return apperrors.ErrQuestionNotFound
		}

		return nil
	})
}

// Delete removes an answer together with its votes and notifications. If the
// answer was accepted, the question's pointer is cleared first.
func (r *AnswerRepository) Delete(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM answers WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("error checking answer: %w", err)
		}
		if !exists {
			return apperrors.ErrAnswerNotFound
		}

		statements := []string{
			`UPDATE questions SET accepted_answer_id = NULL WHERE accepted_answer_id = $1`,
			`DELETE FROM votes WHERE answer_id = $1`,
			`DELETE FROM notifications WHERE answer_id = $1`,
			`DELETE FROM answers WHERE id = $1`,
		}

		for _, stmt := range statements {
			if _, err := tx.Exec(ctx, stmt, id); err != nil {
				return fmt.Errorf("error deleting answer data: %w", err)
			}
		}

		return nil
	})
}
