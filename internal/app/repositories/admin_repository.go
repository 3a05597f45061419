package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stackit/stackit/internal/app/models"
)

// AdminRepository handles the admin audit trail and platform analytics
type AdminRepository struct {
	db *pgxpool.Pool
}

// NewAdminRepository creates a new AdminRepository
func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{db: db}
}

// CreateLog appends an entry to the audit trail
func (r *AdminRepository) CreateLog(ctx context.Context, log *models.AdminLog) error {
	query := `
		INSERT INTO admin_logs (admin_id, action, target_type, target_id, details)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		log.AdminID, log.Action, log.TargetType, log.TargetID, log.Details).
		Scan(&log.ID, &log.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating admin log: %w", err)
	}

	return nil
}

// ListLogs retrieves audit entries newest first, optionally restricted to
// one admin's actions
func (r *AdminRepository) ListLogs(ctx context.Context, adminID *int64, page, pageSize int) ([]models.AdminLog, int64, error) {
	sb := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	countBuilder := sb.Select("COUNT(*)").From("admin_logs")
	if adminID != nil {
		countBuilder = countBuilder.Where(sq.Eq{"admin_id": *adminID})
	}
	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting admin logs: %w", err)
	}

	builder := sb.
		Select("id", "admin_id", "action", "target_type", "target_id", "details", "created_at").
		From("admin_logs").
		OrderBy("created_at DESC").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize))
	if adminID != nil {
		builder = builder.Where(sq.Eq{"admin_id": *adminID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	logs := []models.AdminLog{}
	for rows.Next() {
		var l models.AdminLog
		err := rows.Scan(&l.ID, &l.AdminID, &l.Action, &l.TargetType, &l.TargetID, &l.Details, &l.CreatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning admin log row: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return logs, total, nil
}

// GetAnalytics recomputes the platform-wide counters from the base tables.
// Nothing here is cached; the admin dashboard reads are infrequent enough
// that fresh counts are fine.
func (r *AdminRepository) GetAnalytics(ctx context.Context) (*models.Analytics, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM questions),
			(SELECT COUNT(*) FROM answers),
			(SELECT COUNT(*) FROM posts),
			(SELECT COUNT(*) FROM votes),
			(SELECT COUNT(*) FROM questions WHERE created_at > NOW() - INTERVAL '30 days'),
			(SELECT COUNT(*) FROM answers WHERE created_at > NOW() - INTERVAL '30 days'),
			(SELECT COUNT(*) FROM posts WHERE created_at > NOW() - INTERVAL '30 days'),
			(SELECT COUNT(*) FROM users WHERE created_at > NOW() - INTERVAL '30 days')`

	analytics := &models.Analytics{}
	err := r.db.QueryRow(ctx, query).Scan(
		&analytics.TotalUsers,
		&analytics.TotalQuestions,
		&analytics.TotalAnswers,
		&analytics.TotalPosts,
		&analytics.TotalVotes,
		&analytics.RecentActivity.Questions,
		&analytics.RecentActivity.Answers,
		&analytics.RecentActivity.Posts,
		&analytics.RecentActivity.Users)
	if err != nil {
		return nil, fmt.Errorf("error computing analytics: %w", err)
	}

	return analytics, nil
}
