package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	m := NewManager("test-secret")

	token, err := m.GenerateToken(42, "user")
	require.NoError(t, err)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "user", claims.Role)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a").GenerateToken(42, "user")
	require.NoError(t, err)

	_, err = NewManager("secret-b").ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := NewManager("test-secret").ParseToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
