package models

import "time"

// AdminLog defines one entry of the append-only admin audit trail.
// Entries are never updated or deleted.
type AdminLog struct {
	ID         int64     `json:"id" db:"id"`
	AdminID    int64     `json:"adminId" db:"admin_id"`
	Action     string    `json:"action" db:"action"`
	TargetType string    `json:"targetType" db:"target_type"`
	TargetID   int64     `json:"targetId" db:"target_id"`
	Details    string    `json:"details" db:"details"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// Analytics aggregates platform-wide counts, recomputed on demand
type Analytics struct {
	TotalUsers     int64          `json:"totalUsers"`
	TotalQuestions int64          `json:"totalQuestions"`
	TotalAnswers   int64          `json:"totalAnswers"`
	TotalPosts     int64          `json:"totalPosts"`
	TotalVotes     int64          `json:"totalVotes"`
	RecentActivity RecentActivity `json:"recentActivity"`
}

// RecentActivity counts rows created in the last 30 days
type RecentActivity struct {
	Questions int64 `json:"questions"`
	Answers   int64 `json:"answers"`
	Posts     int64 `json:"posts"`
	Users     int64 `json:"users"`
}
