package repositories

import (
	"testing"

	"github.com/stackit/stackit/internal/app/models"
	"github.com/stretchr/testify/assert"
)

func TestResolveVoteTransitions(t *testing.T) {
	up := models.VoteTypeUp
	down := models.VoteTypeDown

	tests := []struct {
		name       string
		existing   *models.VoteType
		requested  models.VoteType
		wantAction voteAction
		wantDelta  int
	}{
		{"first upvote inserts", nil, up, voteInsert, 1},
		{"first downvote inserts", nil, down, voteInsert, -1},
		{"repeated upvote removes", &up, up, voteRemove, -1},
		{"repeated downvote removes", &down, down, voteRemove, 1},
		{"up over down flips", &down, up, voteFlip, 2},
		{"down over up flips", &up, down, voteFlip, -2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			action, delta := resolveVote(tc.existing, tc.requested)
			assert.Equal(t, tc.wantAction, action)
			assert.Equal(t, tc.wantDelta, delta)
		})
	}
}

// A cast followed by the same cast must cancel out, whatever the starting
// state.
func TestResolveVoteToggleRoundTrip(t *testing.T) {
	for _, vt := range []models.VoteType{models.VoteTypeUp, models.VoteTypeDown} {
		_, first := resolveVote(nil, vt)
		action, second := resolveVote(&vt, vt)
		assert.Equal(t, voteRemove, action)
		assert.Zero(t, first+second)
	}
}

func TestVoteTargetValid(t *testing.T) {
	questionID := int64(1)
	answerID := int64(2)

	assert.True(t, VoteTarget{QuestionID: &questionID}.valid())
	assert.True(t, VoteTarget{AnswerID: &answerID}.valid())
	assert.False(t, VoteTarget{}.valid())
	assert.False(t, VoteTarget{QuestionID: &questionID, AnswerID: &answerID}.valid())
}

func TestVoteTargetTable(t *testing.T) {
	questionID := int64(7)
	answerID := int64(9)

	table, id := VoteTarget{QuestionID: &questionID}.table()
	assert.Equal(t, "questions", table)
	assert.Equal(t, int64(7), id)

	table, id = VoteTarget{AnswerID: &answerID}.table()
	assert.Equal(t, "answers", table)
	assert.Equal(t, int64(9), id)
}
