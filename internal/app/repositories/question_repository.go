package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stackit/stackit/internal/app/models"
	"github.com/stackit/stackit/internal/db"
	"github.com/stackit/stackit/internal/pkg/apperrors"
)

// QuestionRepository handles database operations for questions
type QuestionRepository struct {
	db *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository
func NewQuestionRepository(db *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// QuestionFilter narrows the question list
type QuestionFilter struct {
	Search     string
	Tags       []string
	Unanswered bool
	Page       int
	PageSize   int
}

// Create inserts a new question and fills in the generated ID
func (r *QuestionRepository) Create(ctx context.Context, question *models.Question) error {
	query := `
		INSERT INTO questions (title, description, author_id, tags)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		question.Title, question.Description, question.AuthorID, question.Tags).
		Scan(&question.ID, &question.CreatedAt, &question.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating question: %w", err)
	}

	return nil
}

// List retrieves questions with filtering and pagination. Each row carries
// its author summary and answer count; full answers are loaded on detail
// reads only.
func (r *QuestionRepository) List(ctx context.Context, filter QuestionFilter) ([]models.Question, int64, error) {
	builder := squirrel.Select(
		"q.id", "q.title", "q.description", "q.author_id", "q.tags",
		"q.votes", "q.views", "q.accepted_answer_id", "q.created_at", "q.updated_at",
		"u.username", "u.name", "u.profile_image",
		"(SELECT COUNT(*) FROM answers a WHERE a.question_id = q.id) AS answer_count",
		"COUNT(*) OVER() AS total_count",
	).
		From("questions q").
		Join("users u ON u.id = q.author_id").
		PlaceholderFormat(squirrel.Dollar)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		builder = builder.Where("(q.title ILIKE ? OR q.description ILIKE ?)", pattern, pattern)
	}
	if len(filter.Tags) > 0 {
		builder = builder.Where("q.tags && ?", filter.Tags)
	}
	if filter.Unanswered {
		builder = builder.Where("NOT EXISTS (SELECT 1 FROM answers a WHERE a.question_id = q.id)")
	}

	offset := (filter.Page - 1) * filter.PageSize
	builder = builder.
		OrderBy("q.created_at DESC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset))

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	questions := []models.Question{}
	var total int64
	for rows.Next() {
		var q models.Question
		author := &models.User{}
		err := rows.Scan(
			&q.ID, &q.Title, &q.Description, &q.AuthorID, &q.Tags,
			&q.Votes, &q.Views, &q.AcceptedAnswerID, &q.CreatedAt, &q.UpdatedAt,
			&author.Username, &author.Name, &author.ProfileImage,
			&q.AnswerCount, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning question row: %w", err)
		}
		author.ID = q.AuthorID
		q.Author = author
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return questions, total, nil
}

// GetByID retrieves a question with its author and all answers. Answers come
// back accepted first, then by votes descending, then oldest first.
func (r *QuestionRepository) GetByID(ctx context.Context, id int64) (*models.Question, error) {
	query := `
		SELECT q.id, q.title, q.description, q.author_id, q.tags,
			q.votes, q.views, q.accepted_answer_id, q.created_at, q.updated_at,
			u.username, u.name, u.profile_image
		FROM questions q
		JOIN users u ON u.id = q.author_id
		WHERE q.id = $1`

	question := &models.Question{}
	author := &models.User{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&question.ID, &question.Title, &question.Description, &question.AuthorID, &question.Tags,
		&question.Votes, &question.Views, &question.AcceptedAnswerID, &question.CreatedAt, &question.UpdatedAt,
		&author.Username, &author.Name, &author.ProfileImage)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	author.ID = question.AuthorID
	question.Author = author

	answers, err := r.getAnswers(ctx, id)
	if err != nil {
		return nil, err
	}
	question.Answers = answers
	question.AnswerCount = len(answers)

	return question, nil
}

func (r *QuestionRepository) getAnswers(ctx context.Context, questionID int64) ([]models.Answer, error) {
	query := `
		SELECT a.id, a.content, a.question_id, a.author_id, a.votes, a.is_accepted,
			a.created_at, a.updated_at,
			u.username, u.name, u.profile_image
		FROM answers a
		JOIN users u ON u.id = a.author_id
		WHERE a.question_id = $1
		ORDER BY a.is_accepted DESC, a.votes DESC, a.created_at ASC`

	rows, err := r.db.Query(ctx, query, questionID)
	if err != nil {
		return nil, fmt.Errorf("error loading answers: %w", err)
	}
	defer rows.Close()

	answers := []models.Answer{}
	for rows.Next() {
		var a models.Answer
		author := &models.User{}
		err := rows.Scan(
			&a.ID, &a.Content, &a.QuestionID, &a.AuthorID, &a.Votes, &a.IsAccepted,
			&a.CreatedAt, &a.UpdatedAt,
			&author.Username, &author.Name, &author.ProfileImage)
		if err != nil {
			return nil, fmt.Errorf("error scanning answer row: %w", err)
		}
		author.ID = a.AuthorID
		a.Author = author
		answers = append(answers, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return answers, nil
}

// Update updates a question's title, description and tags
func (r *QuestionRepository) Update(ctx context.Context, question *models.Question) error {
	result, err := r.db.Exec(ctx, `
		UPDATE questions
		SET title = $1, description = $2, tags = $3, updated_at = NOW()
		WHERE id = $4`,
		question.Title, question.Description, question.Tags, question.ID)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrQuestionNotFound
	}

	return nil
}

// IncrementViews bumps the view counter by one. The increment is a single
// atomic statement so concurrent reads never lose counts.
func (r *QuestionRepository) IncrementViews(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE questions SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error incrementing views: %w", err)
	}

	return nil
}

// GetAuthorID returns the author of a question
func (r *QuestionRepository) GetAuthorID(ctx context.Context, id int64) (int64, error) {
	var authorID int64
	err := r.db.QueryRow(ctx, `
		SELECT author_id FROM questions WHERE id = $1`, id).Scan(&authorID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, apperrors.ErrQuestionNotFound
		}
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return authorID, nil
}

// Delete removes a question and its answers, votes and notifications in one
// transaction
func (r *QuestionRepository) Delete(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM questions WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("error checking question: %w", err)
		}
		if !exists {
			return apperrors.ErrQuestionNotFound
		}

		statements := []string{
			`UPDATE questions SET accepted_answer_id = NULL WHERE id = $1`,
			`DELETE FROM votes WHERE question_id = $1
			 OR answer_id IN (SELECT id FROM answers WHERE question_id = $1)`,
			`DELETE FROM notifications WHERE question_id = $1
			 OR answer_id IN (SELECT id FROM answers WHERE question_id = $1)`,
			`DELETE FROM answers WHERE question_id = $1`,
			`DELETE FROM questions WHERE id = $1`,
		}

		for _, stmt := range statements {
			if _, err := tx.Exec(ctx, stmt, id); err != nil {
				return fmt.Errorf("error deleting question data: %w", err)
			}
		}

		return nil
	})
}
