package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stackit/stackit/internal/app/models"
	"github.com/stackit/stackit/internal/pkg/apperrors"
)

// NotificationRepository handles database operations for notifications
type NotificationRepository struct {
	db *pgxpool.Pool
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create inserts a new notification and fills in the generated ID
func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	query := `
		INSERT INTO notifications (user_id, type, title, message, question_id, answer_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		notification.UserID, notification.Type, notification.Title,
		notification.Message, notification.QuestionID, notification.AnswerID).
		Scan(&notification.ID, &notification.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating notification: %w", err)
	}

	return nil
}

// ListByUser retrieves a user's notifications newest first, each enriched
// with the title of the question it points at when that question still
// exists.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64, page, pageSize int) ([]models.Notification, int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM notifications WHERE user_id = $1`, userID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting notifications: %w", err)
	}

	offset := (page - 1) * pageSize
	query := `
		SELECT n.id, n.user_id, n.type, n.title, n.message,
			n.question_id, n.answer_id, n.is_read, n.created_at,
			q.title AS question_title
		FROM notifications n
		LEFT JOIN questions q ON q.id = n.question_id
		WHERE n.user_id = $1
		ORDER BY n.created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, userID, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		err := rows.Scan(
			&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message,
			&n.QuestionID, &n.AnswerID, &n.IsRead, &n.CreatedAt,
			&n.QuestionTitle)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning notification row: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return notifications, total, nil
}

// UnreadCount returns the number of unread notifications for a user
func (r *NotificationRepository) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT is_read`,
		userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting unread notifications: %w", err)
	}

	return count, nil
}

// MarkRead marks one notification as read. The recipient check is part of
// the WHERE clause so a user cannot touch someone else's notification.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID int64) error {
	result, err := r.db.Exec(ctx, `
		UPDATE notifications SET is_read = TRUE
		WHERE id = $1 AND user_id = $2`,
		id, userID)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}

	return nil
}

// MarkAllRead marks all of a user's notifications as read and returns how
// many rows changed
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	result, err := r.db.Exec(ctx, `
		UPDATE notifications SET is_read = TRUE
		WHERE user_id = $1 AND NOT is_read`,
		userID)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return result.RowsAffected(), nil
}

// Delete removes a notification owned by the user
func (r *NotificationRepository) Delete(ctx context.Context, id, userID int64) error {
	result, err := r.db.Exec(ctx, `
		DELETE FROM notifications WHERE id = $1 AND user_id = $2`,
		id, userID)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}

	return nil
}

// GetByID retrieves a notification by ID regardless of recipient
func (r *NotificationRepository) GetByID(ctx context.Context, id int64) (*models.Notification, error) {
	notification := &models.Notification{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, type, title, message, question_id, answer_id, is_read, created_at
		FROM notifications
		WHERE id = $1`, id).Scan(
		&notification.ID, &notification.UserID, &notification.Type,
		&notification.Title, &notification.Message,
		&notification.QuestionID, &notification.AnswerID,
		&notification.IsRead, &notification.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return notification, nil
}
