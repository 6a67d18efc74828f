package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/task-tracker/internal/auth"
)

func TestPasswordHashAndCompare(t *testing.T) {
	hash, err := auth.HashPassword("secret123", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, "secret123", hash)

	assert.NoError(t, auth.ComparePassword(hash, "secret123"))
	assert.Error(t, auth.ComparePassword(hash, "wrong-password"))
}
