package password_test

import (
	"testing"

	"github.com/paxinfy/backend/internal/password"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	h := password.NewHasher(4)

	hashed, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hashed)

	assert.True(t, h.Verify("correct horse battery staple", hashed))
	assert.False(t, h.Verify("wrong password", hashed))
}

func TestHashIsSalted(t *testing.T) {
	h := password.NewHasher(4)

	first, err := h.Hash("same input")
	require.NoError(t, err)
	second, err := h.Hash("same input")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("same input", first))
	assert.True(t, h.Verify("same input", second))
}

func TestVerifyGarbageHash(t *testing.T) {
	h := password.NewHasher(4)
	assert.False(t, h.Verify("anything", "not a bcrypt hash"))
}

func TestOutOfRangeCostFallsBack(t *testing.T) {
	h := password.NewHasher(100)

	hashed, err := h.Hash("pw")
	require.NoError(t, err)
	assert.True(t, h.Verify("pw", hashed))
}
