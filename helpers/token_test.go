package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundtrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	raw, err := CreateAccessToken("user-123", "ramesh", "user")
	require.NoError(t, err)

	sub, username, role, err := ParseAccessToken(raw)
	require.NoError(t, err)
	assert.Equal(t, "user-123", sub)
	assert.Equal(t, "ramesh", username)
	assert.Equal(t, "user", role)
}

func TestAccessTokenRejectsBadSignature(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-one")
	raw, err := CreateAccessToken("user-123", "ramesh", "admin")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "secret-two")
	_, _, _, err = ParseAccessToken(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, _, _, err = ParseAccessToken("garbage.token.here")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
