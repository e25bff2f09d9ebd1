package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret-pass", hash)
	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestRandomDigits(t *testing.T) {
	code := RandomDigits(6)
	require.Len(t, code, 6)
	for _, r := range code {
		assert.True(t, r >= '0' && r <= '9', "unexpected rune %q", r)
	}
}

func TestTemporaryPasswordUsesAlphabet(t *testing.T) {
	pw := TemporaryPassword(12)
	require.Len(t, pw, 12)
	for _, r := range pw {
		assert.True(t, strings.ContainsRune(passwordAlphabet, r), "unexpected rune %q", r)
	}
	assert.NotEqual(t, pw, TemporaryPassword(12))
}
