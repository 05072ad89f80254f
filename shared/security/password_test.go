package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Small work factor keeps the suite fast.
var testParams = HashParams{TimeCost: 1, MemoryCost: 8 * 1024, Parallelism: 1}

func TestArgon2Hasher_RoundTrip(t *testing.T) {
	h := NewArgon2Hasher(testParams)

	encoded, err := h.HashPassword("p1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$"))
	assert.NotContains(t, encoded, "p1")

	ok, err := h.VerifyPassword("p1", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.VerifyPassword("p2", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgon2Hasher_SaltsDiffer(t *testing.T) {
	h := NewArgon2Hasher(testParams)

	a, err := h.HashPassword("same")
	require.NoError(t, err)
	b, err := h.HashPassword("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestArgon2Hasher_EmptyPassword(t *testing.T) {
	h := NewArgon2Hasher(testParams)

	_, err := h.HashPassword("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestArgon2Hasher_MalformedHash(t *testing.T) {
	h := NewArgon2Hasher(testParams)

	ok, err := h.VerifyPassword("p1", "not-a-hash")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestArgon2Hasher_VerifiesHashFromOtherWorkFactor(t *testing.T) {
	encoded, err := NewArgon2Hasher(testParams).HashPassword("p1")
	require.NoError(t, err)

	other := NewArgon2Hasher(HashParams{TimeCost: 2, MemoryCost: 16 * 1024, Parallelism: 2})
	ok, err := other.VerifyPassword("p1", encoded)
	require.NoError(t, err)
	assert.True(t, ok)
}
