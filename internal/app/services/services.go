package services

import (
	"strings"
	"time"
)

// Services defined in this package:
// - AuthService: registration, login, token refresh, profiles
// - QuestionService: questions with their ordered answers
// - AnswerService: answers, acceptance and the notifications they trigger
// - VoteService: voting on questions and answers
// - PostService: community posts, comments, likes and shares
// - NotificationService: notification reads and real-time pushes
// - AdminService: moderation, role management, analytics and the audit trail
// - ChatService: the AI assistant proxy

// viewCountTimeout bounds the detached view counter write
const viewCountTimeout = 5 * time.Second

// normalizeTags trims, lowercases and de-duplicates a tag list, dropping
// empty entries
func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		normalized = append(normalized, tag)
	}
	return normalized
}
