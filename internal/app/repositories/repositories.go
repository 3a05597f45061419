package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	TokenRepository        *TokenRepository
	QuestionRepository     *QuestionRepository
	AnswerRepository       *AnswerRepository
	VoteRepository         *VoteRepository
	PostRepository         *PostRepository
	NotificationRepository *NotificationRepository
	AdminRepository        *AdminRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		TokenRepository:        NewTokenRepository(db),
		QuestionRepository:     NewQuestionRepository(db),
		AnswerRepository:       NewAnswerRepository(db),
		VoteRepository:         NewVoteRepository(db),
		PostRepository:         NewPostRepository(db),
		NotificationRepository: NewNotificationRepository(db),
		AdminRepository:        NewAdminRepository(db),
	}
}
