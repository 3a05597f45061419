package dto

import (
	"time"

	"github.com/stackit/stackit/internal/app/models"
)

// ToggleAdminRequest grants or revokes the admin flag
type ToggleAdminRequest struct {
	Grant *bool `json:"grant" binding:"required"`
}

// AnalyticsResponse aggregates platform-wide counts
type AnalyticsResponse struct {
	TotalUsers     int64                  `json:"totalUsers"`
	TotalQuestions int64                  `json:"totalQuestions"`
	TotalAnswers   int64                  `json:"totalAnswers"`
	TotalPosts     int64                  `json:"totalPosts"`
	TotalVotes     int64                  `json:"totalVotes"`
	RecentActivity RecentActivityResponse `json:"recentActivity"`
}

// RecentActivityResponse counts entities created in the last 30 days
type RecentActivityResponse struct {
	Questions int64 `json:"questions"`
	Answers   int64 `json:"answers"`
	Posts     int64 `json:"posts"`
	Users     int64 `json:"users"`
}

// AdminLogResponse is one audit trail entry
type AdminLogResponse struct {
	ID         int64     `json:"id"`
	AdminID    int64     `json:"adminId"`
	Action     string    `json:"action"`
	TargetType string    `json:"targetType"`
	TargetID   int64     `json:"targetId"`
	Details    string    `json:"details"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AdminLogListResponse wraps a page of audit entries
type AdminLogListResponse struct {
	Logs           []AdminLogResponse `json:"logs"`
	PaginationInfo PaginationInfo     `json:"pagination"`
}

// UserListResponse wraps a page of users for the admin view
type UserListResponse struct {
	Users          []UserResponse `json:"users"`
	PaginationInfo PaginationInfo `json:"pagination"`
}

// FromAnalytics converts the analytics model to its read model
func FromAnalytics(a *models.Analytics) *AnalyticsResponse {
	if a == nil {
		return nil
	}
	return &AnalyticsResponse{
		TotalUsers:     a.TotalUsers,
		TotalQuestions: a.TotalQuestions,
		TotalAnswers:   a.TotalAnswers,
		TotalPosts:     a.TotalPosts,
		TotalVotes:     a.TotalVotes,
		RecentActivity: RecentActivityResponse{
			Questions: a.RecentActivity.Questions,
			Answers:   a.RecentActivity.Answers,
			Posts:     a.RecentActivity.Posts,
			Users:     a.RecentActivity.Users,
		},
	}
}

// FromAdminLog converts an audit entry to its read model
func FromAdminLog(log *models.AdminLog) AdminLogResponse {
	return AdminLogResponse{
		ID:         log.ID,
		AdminID:    log.AdminID,
		Action:     log.Action,
		TargetType: log.TargetType,
		TargetID:   log.TargetID,
		Details:    log.Details,
		CreatedAt:  log.CreatedAt,
	}
}
