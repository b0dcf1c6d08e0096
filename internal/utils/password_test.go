package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass", 4)
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, VerifyPassword(hash, "s3cret-pass"))
	assert.False(t, VerifyPassword(hash, "wrong"))
	assert.False(t, VerifyPassword("not-a-hash", "s3cret-pass"))
}

func TestHashPasswordCostFloor(t *testing.T) {
	// a nonsensical cost still yields a verifiable hash
	hash, err := HashPassword("s3cret-pass", 0)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "s3cret-pass"))
}

func TestHashPasswordLengthLimit(t *testing.T) {
	_, err := HashPassword(strings.Repeat("a", 73), 4)
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	hash, err := HashPassword(strings.Repeat("a", 72), 4)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, strings.Repeat("a", 72)))
}
