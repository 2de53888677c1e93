package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	ok, err := h.Verify("secret123", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBcryptHasher_SaltsEachHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestBcryptHasher_ClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.MinCost, NewBcryptHasher(1).cost)
	assert.Equal(t, bcrypt.MaxCost, NewBcryptHasher(100).cost)
	assert.Equal(t, DefaultBcryptCost, NewBcryptHasher(DefaultBcryptCost).cost)
}

func TestBcryptHasher_VerifyBadHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	_, err := h.Verify("x", "not-a-bcrypt-hash")
	assert.Error(t, err)
}

func TestBcryptHasher_OverlongPassword(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	hash, err := h.Hash("secret123")
	require.NoError(t, err)

	long := strings.Repeat("😀", 30)
	_, err = h.Hash(long)
	assert.ErrorIs(t, err, bcrypt.ErrPasswordTooLong)

	ok, err := h.Verify(long, hash)
	require.NoError(t, err)
	assert.False(t, ok)
}
