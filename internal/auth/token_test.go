package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_IssueAndVerify(t *testing.T) {
	m := NewTokenManager("test-secret", time.Minute)

	t.Run("round trip", func(t *testing.T) {
		token, err := m.Issue(42, "owner@example.com")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		userID, err := m.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, int64(42), userID)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := m.Verify("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenManager("other-secret", time.Minute)
		token, err := other.Issue(42, "owner@example.com")
		require.NoError(t, err)

		_, err = m.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewTokenManager("test-secret", -time.Minute)
		token, err := expired.Issue(42, "owner@example.com")
		require.NoError(t, err)

		_, err = m.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
