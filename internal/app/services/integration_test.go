//go:build integration
// +build integration

package services

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stackit/stackit/internal/app/migrations"
	"github.com/stackit/stackit/internal/app/models"
	"github.com/stackit/stackit/internal/app/models/dto"
	"github.com/stackit/stackit/internal/app/repositories"
	"github.com/stackit/stackit/internal/pkg/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("stackit_test"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, migrations.NewMigrator(pool).MigrateFromDirectory("../../../migrations"))

	return pool
}

func createTestUser(t *testing.T, repo *repositories.UserRepository, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Name: username, Password: "hash"}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

// A freshly asked question has not been viewed by anyone yet.
func TestCreateQuestionStartsWithZeroViews(t *testing.T) {
	ctx := context.Background()
	pool := setupTestDB(t)
	users := repositories.NewUserRepository(pool)
	questionRepo := repositories.NewQuestionRepository(pool)
	svc := NewQuestionService(questionRepo, zerolog.Nop())

	asker := createTestUser(t, users, "asker")

	created, err := svc.CreateQuestion(ctx, asker.ID, &dto.CreateQuestionRequest{
		Title:       "Why is my freshly created question already viewed?",
		Description: "It should start from a clean slate.",
		Tags:        []string{"go"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, created.Views)

	var views int
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT views FROM questions WHERE id = $1`, created.ID).Scan(&views))
	assert.Equal(t, 0, views)
}

// Answering someone else's question notifies the asker; answering your own
// question does not.
func TestAnswerNotificationSuppressedForSelf(t *testing.T) {
	ctx := context.Background()
	pool := setupTestDB(t)
	users := repositories.NewUserRepository(pool)
	questionRepo := repositories.NewQuestionRepository(pool)
	answerRepo := repositories.NewAnswerRepository(pool)
	notificationRepo := repositories.NewNotificationRepository(pool)
	hub := websocket.NewHub(zerolog.Nop())
	svc := NewAnswerService(answerRepo, questionRepo, users, notificationRepo, hub, zerolog.Nop())

	asker := createTestUser(t, users, "asker")
	answerer := createTestUser(t, users, "answerer")

	question := &models.Question{
		Title:       "Who gets told when this is answered?",
		Description: "Checking the notification fan-out.",
		AuthorID:    asker.ID,
		Tags:        []string{"go"},
	}
	require.NoError(t, questionRepo.Create(ctx, question))

	_, err := svc.CreateAnswer(ctx, question.ID, asker.ID, &dto.CreateAnswerRequest{
		Content: "Answering my own question.",
	})
	require.NoError(t, err)

	unread, err := notificationRepo.UnreadCount(ctx, asker.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)

	_, err = svc.CreateAnswer(ctx, question.ID, answerer.ID, &dto.CreateAnswerRequest{
		Content: "Answering someone else's question.",
	})
	require.NoError(t, err)

	unread, err = notificationRepo.UnreadCount(ctx, asker.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, unread)

	items, _, err := notificationRepo.ListByUser(ctx, asker.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, models.NotificationTypeQuestionAnswered, items[0].Type)
}
