package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stackit/stackit/internal/app/models"
	"github.com/stackit/stackit/internal/db"
	"github.com/stackit/stackit/internal/pkg/apperrors"
	"github.com/stackit/stackit/internal/pkg/dberrors"
)

// VoteRepository handles database operations for votes
type VoteRepository struct {
	db *pgxpool.Pool
}

// NewVoteRepository creates a new VoteRepository
func NewVoteRepository(db *pgxpool.Pool) *VoteRepository {
	return &VoteRepository{db: db}
}

// VoteTarget identifies the votable row a vote applies to. Exactly one of
// the two fields is set.
type VoteTarget struct {
	QuestionID *int64
	AnswerID   *int64
}

func (t VoteTarget) valid() bool {
	return (t.QuestionID != nil) != (t.AnswerID != nil)
}

// table returns the tally table and the id the target points at
func (t VoteTarget) table() (string, int64) {
	if t.QuestionID != nil {
		return "questions", *t.QuestionID
	}
	return "answers", *t.AnswerID
}

// voteAction is the write a cast resolves to against the voter's existing
// vote on the target.
type voteAction int

const (
	voteInsert voteAction = iota
	voteRemove
	voteFlip
)

// resolveVote decides what casting requested does given the existing vote
// (nil when the voter has none) and returns the tally adjustment that write
// carries. A repeat of the same direction removes the vote; an opposite
// direction flips it in place.
func resolveVote(existing *models.VoteType, requested models.VoteType) (voteAction, int) {
	switch {
	case existing == nil:
		return voteInsert, requested.Value()
	case *existing == requested:
		return voteRemove, -requested.Value()
	default:
		return voteFlip, requested.Value() - existing.Value()
	}
}

// Cast applies one vote by the user on the target and returns the vote row
// left in place (nil after a toggle-off) plus the new tally.
//
// Three-way transition, all writes in one transaction:
//   - no existing vote: insert, tally moves by the vote's value
//   - same direction exists: delete, tally moves back by that value
//   - opposite direction exists: flip in place, tally moves by twice the value
//
// The tally is always adjusted with a relative increment, never recomputed
// from a read, so concurrent casts cannot overwrite each other.
func (r *VoteRepository) Cast(ctx context.Context, userID int64, target VoteTarget, voteType models.VoteType) (*models.Vote, int, error) {
	if !target.valid() {
		return nil, 0, apperrors.ErrInvalidVoteTarget
	}
	if !voteType.Valid() {
		return nil, 0, apperrors.ErrInvalidVoteType
	}

	var remaining *models.Vote
	var newTally int

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		table, targetID := target.table()

		existing := &models.Vote{}
		err := tx.QueryRow(ctx, fmt.Sprintf(`
			SELECT id, user_id, question_id, answer_id, vote_type, created_at
			FROM votes
			WHERE user_id = $1 AND %s = $2
			FOR UPDATE`, targetColumn(target)),
			userID, targetID).Scan(
			&existing.ID, &existing.UserID, &existing.QuestionID,
			&existing.AnswerID, &existing.VoteType, &existing.CreatedAt)

		var existingType *models.VoteType
		switch {
		case err == pgx.ErrNoRows:
		case err != nil:
			return fmt.Errorf("error loading existing vote: %w", err)
		default:
			existingType = &existing.VoteType
		}

		action, delta := resolveVote(existingType, voteType)

		switch action {
		case voteInsert:
			vote := &models.Vote{
				UserID:     userID,
				QuestionID: target.QuestionID,
				AnswerID:   target.AnswerID,
				VoteType:   voteType,
			}
			insertErr := tx.QueryRow(ctx, `
				INSERT INTO votes (user_id, question_id, answer_id, vote_type)
				VALUES ($1, $2, $3, $4)
				RETURNING id, created_at`,
				vote.UserID, vote.QuestionID, vote.AnswerID, vote.VoteType).
				Scan(&vote.ID, &vote.CreatedAt)
			if insertErr != nil {
				if dberrors.IsUniqueViolation(insertErr) {
					return apperrors.ErrDuplicateVote
				}
				return fmt.Errorf("error inserting vote: %w", insertErr)
			}
			remaining = vote

		case voteRemove:
			if _, err := tx.Exec(ctx, `DELETE FROM votes WHERE id = $1`, existing.ID); err != nil {
				return fmt.Errorf("error removing vote: %w", err)
			}
			remaining = nil

		case voteFlip:
			if _, err := tx.Exec(ctx, `
				UPDATE votes SET vote_type = $1 WHERE id = $2`, voteType, existing.ID); err != nil {
				return fmt.Errorf("error flipping vote: %w", err)
			}
			existing.VoteType = voteType
			remaining = existing
		}

		tallyErr := tx.QueryRow(ctx, fmt.Sprintf(`
			UPDATE %s SET votes = votes + $1 WHERE id = $2
			RETURNING votes`, table), delta, targetID).Scan(&newTally)
		if tallyErr != nil {
			if tallyErr == pgx.ErrNoRows {
				if target.QuestionID != nil {
					return apperrors.ErrQuestionNotFound
				}
				return apperrors.ErrAnswerNotFound
			}
			return fmt.Errorf("error adjusting tally: %w", tallyErr)
		}

		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	return remaining, newTally, nil
}

// Get returns the user's vote on the target, or ErrVoteNotFound
func (r *VoteRepository) Get(ctx context.Context, userID int64, target VoteTarget) (*models.Vote, error) {
	if !target.valid() {
		return nil, apperrors.ErrInvalidVoteTarget
	}

	_, targetID := target.table()
	vote := &models.Vote{}
	err := r.db.QueryRow(ctx, fmt.Sprintf(`
		SELECT id, user_id, question_id, answer_id, vote_type, created_at
		FROM votes
		WHERE user_id = $1 AND %s = $2`, targetColumn(target)),
		userID, targetID).Scan(
		&vote.ID, &vote.UserID, &vote.QuestionID,
		&vote.AnswerID, &vote.VoteType, &vote.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrVoteNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return vote, nil
}

// GetTally returns the stored tally for the target
func (r *VoteRepository) GetTally(ctx context.Context, target VoteTarget) (int, error) {
	if !target.valid() {
		return 0, apperrors.ErrInvalidVoteTarget
	}

	table, targetID := target.table()
	var tally int
	err := r.db.QueryRow(ctx, fmt.Sprintf(`
		SELECT votes FROM %s WHERE id = $1`, table), targetID).Scan(&tally)
	if err != nil {
		if err == pgx.ErrNoRows {
			if target.QuestionID != nil {
				return 0, apperrors.ErrQuestionNotFound
			}
			return 0, apperrors.ErrAnswerNotFound
		}
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return tally, nil
}

func targetColumn(target VoteTarget) string {
	if target.QuestionID != nil {
		return "question_id"
	}
	return "answer_id"
}
