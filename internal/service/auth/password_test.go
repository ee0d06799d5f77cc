package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	t.Parallel()

	t.Run("hash and compare round trip", func(t *testing.T) {
		t.Parallel()
		// MinCost keeps the test fast; correctness does not depend on cost.
		hasher := NewBcryptHasher(bcrypt.MinCost)
		verifier := NewBcryptVerifier()

		hashed, err := hasher.Hash("correct horse battery staple")
		require.NoError(t, err)
		require.NotEmpty(t, hashed)
		assert.NotEqual(t, "correct horse battery staple", hashed)

		assert.NoError(t, verifier.Compare(hashed, "correct horse battery staple"))
	})

	t.Run("compare rejects wrong password", func(t *testing.T) {
		t.Parallel()
		hasher := NewBcryptHasher(bcrypt.MinCost)
		verifier := NewBcryptVerifier()

		hashed, err := hasher.Hash("correct horse battery staple")
		require.NoError(t, err)

		err = verifier.Compare(hashed, "incorrect horse battery staple")
		assert.ErrorIs(t, err, bcrypt.ErrMismatchedHashAndPassword)
	})

	t.Run("compare rejects garbage hash", func(t *testing.T) {
		t.Parallel()
		verifier := NewBcryptVerifier()
		assert.Error(t, verifier.Compare("not-a-bcrypt-hash", "whatever"))
	})

	t.Run("zero cost falls back to the default", func(t *testing.T) {
		t.Parallel()
		hasher := NewBcryptHasher(0)
		assert.Equal(t, bcrypt.DefaultCost, hasher.cost)
	})

	t.Run("hashes are salted", func(t *testing.T) {
		t.Parallel()
		hasher := NewBcryptHasher(bcrypt.MinCost)

		first, err := hasher.Hash("same password twice")
		require.NoError(t, err)
		second, err := hasher.Hash("same password twice")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})
}
