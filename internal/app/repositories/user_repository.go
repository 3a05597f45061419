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
	"github.com/stackit/stackit/internal/pkg/dberrors"
)

// userColumns is the scan order shared by every user read
const userColumns = "id, username, email, name, password, password_hash, is_admin, profile_image, created_at, updated_at"

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	var password *string
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.Name,
		&password, &user.PasswordHash, &user.IsAdmin, &user.ProfileImage,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if password != nil {
		user.Password = *password
	}
	return user, nil
}

// Create inserts a new user and fills in the generated ID.
// Distinguishes username and email uniqueness conflicts by constraint name.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, email, name, password, is_admin, profile_image)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		user.Username, user.Email, user.Name, user.Password, user.IsAdmin, user.ProfileImage).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolationOnConstraint(err, "users_username_key") {
			return apperrors.ErrUsernameAlreadyExists
		}
		if dberrors.IsUniqueViolationOnConstraint(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE id = $1", userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return user, nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE username = $1", userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, username))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return user, nil
}

// GetByIdentifier retrieves a user by username or email.
// Login accepts either, so the lookup tries both columns in one query.
func (r *UserRepository) GetByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE username = $1 OR email = $1", userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, identifier))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return user, nil
}

// UsernameExists checks if a username already exists
func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`,
		username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking username: %w", err)
	}

	return exists, nil
}

// UpdateProfile updates a user's mutable profile fields
func (r *UserRepository) UpdateProfile(ctx context.Context, userID int64, name string, email, profileImage *string) error {
	builder := squirrel.Update("users").
		Set("name", name).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ?", userID).
		PlaceholderFormat(squirrel.Dollar)

	if email != nil {
		builder = builder.Set("email", *email)
	}
	if profileImage != nil {
		builder = builder.Set("profile_image", *profileImage)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolationOnConstraint(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// SetAdmin toggles admin status for a user
func (r *UserRepository) SetAdmin(ctx context.Context, userID int64, isAdmin bool) error {
	result, err := r.db.Exec(ctx, `
		UPDATE users
		SET is_admin = $1, updated_at = NOW()
		WHERE id = $2`,
		isAdmin, userID)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// ListAll retrieves all users with pagination, newest first
func (r *UserRepository) ListAll(ctx context.Context, page, pageSize int) ([]models.User, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting users: %w", err)
	}

	offset := (page - 1) * pageSize
	query := fmt.Sprintf(`
		SELECT %s FROM users
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, userColumns)

	rows, err := r.db.Query(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return users, total, nil
}

// Delete removes a user and all rows that reference them inside one
// transaction. Child rows go first so no foreign key is left dangling
// mid-way; a crash between statements leaves the database untouched.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("error checking user: %w", err)
		}
		if !exists {
			return apperrors.ErrUserNotFound
		}

		// Accepted-answer pointers into this user's answers must be cleared
		// before the answers go.
		statements := []string{
			`UPDATE questions SET accepted_answer_id = NULL
			 WHERE author_id = $1
			 OR accepted_answer_id IN (SELECT id FROM answers WHERE author_id = $1)`,
			`DELETE FROM votes WHERE user_id = $1
			 OR question_id IN (SELECT id FROM questions WHERE author_id = $1)
			 OR answer_id IN (SELECT id FROM answers WHERE author_id = $1
			 OR question_id IN (SELECT id FROM questions WHERE author_id = $1))`,
			`DELETE FROM notifications WHERE user_id = $1
			 OR question_id IN (SELECT id FROM questions WHERE author_id = $1)
			 OR answer_id IN (SELECT id FROM answers WHERE author_id = $1
			 OR question_id IN (SELECT id FROM questions WHERE author_id = $1))`,
			`DELETE FROM answers WHERE author_id = $1
			 OR question_id IN (SELECT id FROM questions WHERE author_id = $1)`,
			`DELETE FROM questions WHERE author_id = $1`,
			`DELETE FROM post_likes WHERE user_id = $1
			 OR post_id IN (SELECT id FROM posts WHERE author_id = $1)`,
			`DELETE FROM post_comments WHERE author_id = $1
			 OR post_id IN (SELECT id FROM posts WHERE author_id = $1)`,
			`DELETE FROM posts WHERE author_id = $1`,
			`DELETE FROM admin_logs WHERE admin_id = $1`,
			`DELETE FROM users WHERE id = $1`,
		}

		for _, stmt := range statements {
			if _, err := tx.Exec(ctx, stmt, id); err != nil {
				return fmt.Errorf("error deleting user data: %w", err)
			}
		}

		return nil
	})
}
