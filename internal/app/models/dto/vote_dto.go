package dto

// CastVoteRequest represents a vote on a question or answer
type CastVoteRequest struct {
	VoteType string `json:"voteType" binding:"required,oneof=up down"`
}

// VoteStatusResponse reports the caller's current vote on a target and the
// target's denormalized tally after the operation
type VoteStatusResponse struct {
	VoteType *string `json:"voteType"` // nil when no vote row exists
	Votes    int     `json:"votes"`
}
