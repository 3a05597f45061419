//go:build integration
// +build integration

package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stackit/stackit/internal/app/migrations"
	"github.com/stackit/stackit/internal/app/models"
	"github.com/stackit/stackit/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB starts a disposable Postgres container, applies the migrations
// and returns a connected pool.
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

func createTestUser(t *testing.T, repo *UserRepository, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Name: username, Password: "hash"}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func createTestQuestion(t *testing.T, repo *QuestionRepository, authorID int64, title string) *models.Question {
	t.Helper()
	question := &models.Question{
		Title:       title,
		Description: "How does this work in practice?",
		AuthorID:    authorID,
		Tags:        []string{"go"},
	}
	require.NoError(t, repo.Create(context.Background(), question))
	return question
}

func createTestAnswer(t *testing.T, repo *AnswerRepository, questionID, authorID int64) *models.Answer {
	t.Helper()
	answer := &models.Answer{
		Content:    "You wire it through the pool.",
		QuestionID: questionID,
		AuthorID:   authorID,
	}
	require.NoError(t, repo.Create(context.Background(), answer))
	return answer
}

// Deleting a user must take the whole question thread with it, including
// votes and notifications other users left on answers to that user's
// questions, and must leave those other users untouched.
func TestUserDeleteCascadesAcrossWholeThread(t *testing.T) {
	ctx := context.Background()
	pool := setupTestDB(t)
	users := NewUserRepository(pool)
	questions := NewQuestionRepository(pool)
	answers := NewAnswerRepository(pool)
	votes := NewVoteRepository(pool)
	notifications := NewNotificationRepository(pool)

	asker := createTestUser(t, users, "asker")
	answerer := createTestUser(t, users, "answerer")
	voter := createTestUser(t, users, "voter")

	question := createTestQuestion(t, questions, asker.ID, "What does a pool buy me over single connections?")
	answer := createTestAnswer(t, answers, question.ID, answerer.ID)

	_, tally, err := votes.Cast(ctx, voter.ID, VoteTarget{AnswerID: &answer.ID}, models.VoteTypeUp)
	require.NoError(t, err)
	require.Equal(t, 1, tally)

	require.NoError(t, answers.Accept(ctx, question.ID, answer.ID))
	require.NoError(t, notifications.Create(ctx, &models.Notification{
		UserID:   answerer.ID,
		Type:     models.NotificationTypeMention,
		Title:    "You were mentioned",
		Message:  "asker mentioned you",
		AnswerID: &answer.ID,
	}))

	require.NoError(t, users.Delete(ctx, asker.ID))

	_, err = questions.GetByID(ctx, question.ID)
	assert.ErrorIs(t, err, apperrors.ErrQuestionNotFound)
	_, err = answers.GetByID(ctx, answer.ID)
	assert.ErrorIs(t, err, apperrors.ErrAnswerNotFound)

	var count int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM votes`).Scan(&count))
	assert.Zero(t, count)
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM notifications`).Scan(&count))
	assert.Zero(t, count)

	_, err = users.GetByID(ctx, answerer.ID)
	assert.NoError(t, err)
	_, err = users.GetByID(ctx, voter.ID)
	assert.NoError(t, err)
}

func TestCastVoteStateMachine(t *testing.T) {
	ctx := context.Background()
	pool := setupTestDB(t)
	users := NewUserRepository(pool)
	questions := NewQuestionRepository(pool)
	votes := NewVoteRepository(pool)

	author := createTestUser(t, users, "author")
	voter := createTestUser(t, users, "voter")
	question := createTestQuestion(t, questions, author.ID, "Why does my tally drift under concurrent votes?")
	target := VoteTarget{QuestionID: &question.ID}

	vote, tally, err := votes.Cast(ctx, voter.ID, target, models.VoteTypeUp)
	require.NoError(t, err)
	require.NotNil(t, vote)
	assert.Equal(t, models.VoteTypeUp, vote.VoteType)
	assert.Equal(t, 1, tally)

	// same direction again toggles the vote off
	vote, tally, err = votes.Cast(ctx, voter.ID, target, models.VoteTypeUp)
	require.NoError(t, err)
	assert.Nil(t, vote)
	assert.Equal(t, 0, tally)
	_, err = votes.Get(ctx, voter.ID, target)
	assert.ErrorIs(t, err, apperrors.ErrVoteNotFound)

	_, tally, err = votes.Cast(ctx, voter.ID, target, models.VoteTypeDown)
	require.NoError(t, err)
	assert.Equal(t, -1, tally)

	// opposite direction flips in place, moving the tally by two
	vote, tally, err = votes.Cast(ctx, voter.ID, target, models.VoteTypeUp)
	require.NoError(t, err)
	require.NotNil(t, vote)
	assert.Equal(t, models.VoteTypeUp, vote.VoteType)
	assert.Equal(t, 1, tally)

	stored, err := votes.GetTally(ctx, target)
	require.NoError(t, err)
	assert.Equal(t, 1, stored)

	loaded, err := questions.GetByID(ctx, question.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Votes)
}

func TestAcceptAnswerIsExclusive(t *testing.T) {
	ctx := context.Background()
	pool := setupTestDB(t)
	users := NewUserRepository(pool)
	questions := NewQuestionRepository(pool)
	answers := NewAnswerRepository(pool)

	asker := createTestUser(t, users, "asker")
	answerer := createTestUser(t, users, "answerer")
	question := createTestQuestion(t, questions, asker.ID, "Which of these two approaches should I take?")
	first := createTestAnswer(t, answers, question.ID, answerer.ID)
	second := createTestAnswer(t, answers, question.ID, answerer.ID)

	require.NoError(t, answers.Accept(ctx, question.ID, first.ID))
	require.NoError(t, answers.Accept(ctx, question.ID, second.ID))

	loaded, err := questions.GetByID(ctx, question.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.AcceptedAnswerID)
	assert.Equal(t, second.ID, *loaded.AcceptedAnswerID)

	accepted := 0
	for _, answer := range loaded.Answers {
		if answer.IsAccepted {
			accepted++
			assert.Equal(t, second.ID, answer.ID)
		}
	}
	assert.Equal(t, 1, accepted)

	// accepted answer sorts first
	require.NotEmpty(t, loaded.Answers)
	assert.Equal(t, second.ID, loaded.Answers[0].ID)

	other := createTestQuestion(t, questions, asker.ID, "Completely unrelated question about indexes?")
	err = answers.Accept(ctx, other.ID, first.ID)
	assert.ErrorIs(t, err, apperrors.ErrAnswerQuestionMismatch)
}

func TestListUnansweredFilter(t *testing.T) {
	ctx := context.Background()
	pool := setupTestDB(t)
	users := NewUserRepository(pool)
	questions := NewQuestionRepository(pool)
	answers := NewAnswerRepository(pool)

	asker := createTestUser(t, users, "asker")
	answerer := createTestUser(t, users, "answerer")
	answered := createTestQuestion(t, questions, asker.ID, "Is there an answer to this one already?")
	open := createTestQuestion(t, questions, asker.ID, "Is anyone going to answer this one at all?")
	createTestAnswer(t, answers, answered.ID, answerer.ID)

	results, total, err := questions.List(ctx, QuestionFilter{Unanswered: true, Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, results, 1)
	assert.Equal(t, open.ID, results[0].ID)

	results, total, err = questions.List(ctx, QuestionFilter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	for _, question := range results {
		if question.ID == answered.ID {
			assert.Equal(t, 1, question.AnswerCount)
		}
	}
}

func TestToggleLikeTracksCount(t *testing.T) {
	ctx := context.Background()
	pool := setupTestDB(t)
	users := NewUserRepository(pool)
	posts := NewPostRepository(pool)

	author := createTestUser(t, users, "author")
	liker := createTestUser(t, users, "liker")
	post := &models.Post{
		Title:     "Sharing a connection pool gotcha",
		Content:   "Always close the pool on shutdown.",
		AuthorID:  author.ID,
		Tags:      []string{"go"},
		ImageURLs: []string{},
		VideoURLs: []string{},
	}
	require.NoError(t, posts.Create(ctx, post))

	liked, count, err := posts.ToggleLike(ctx, post.ID, liker.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 1, count)

	liked, count, err = posts.ToggleLike(ctx, post.ID, liker.ID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, 0, count)

	liked, count, err = posts.ToggleLike(ctx, post.ID, liker.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 1, count)
}
