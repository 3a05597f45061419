package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVoteTypeValid(t *testing.T) {
	assert.True(t, VoteTypeUp.Valid())
	assert.True(t, VoteTypeDown.Valid())
	assert.False(t, VoteType("sideways").Valid())
	assert.False(t, VoteType("").Valid())
}

func TestVoteTypeValue(t *testing.T) {
	assert.Equal(t, 1, VoteTypeUp.Value())
	assert.Equal(t, -1, VoteTypeDown.Value())
}
