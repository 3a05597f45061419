package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func pgError(code, constraint string) error {
	return &pgconn.PgError{Code: code, ConstraintName: constraint}
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(pgError("23505", "users_username_key")))
	assert.False(t, IsUniqueViolation(pgError("23503", "")))
	assert.False(t, IsUniqueViolation(errors.New("plain error")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestIsUniqueViolationOnConstraint(t *testing.T) {
	err := pgError("23505", "users_email_key")

	assert.True(t, IsUniqueViolationOnConstraint(err, "users_email_key"))
	assert.False(t, IsUniqueViolationOnConstraint(err, "users_username_key"))

	wrapped := fmt.Errorf("creating user: %w", err)
	assert.True(t, IsUniqueViolationOnConstraint(wrapped, "users_email_key"))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, IsForeignKeyViolation(pgError("23503", "")))
	assert.False(t, IsForeignKeyViolation(pgError("23505", "")))
}

func TestIsCheckViolation(t *testing.T) {
	assert.True(t, IsCheckViolation(pgError("23514", "votes_single_target_check")))
	assert.False(t, IsCheckViolation(pgError("23505", "")))
}
