package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	access, err := NewAccessToken("secret", "u-1", 42, "ADMIN", 60)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), access.Exp, 5*time.Second)

	claims, err := ParseAccess("secret", access.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.Subject)
	assert.Equal(t, int64(42), claims.TelegramID)
	assert.Equal(t, "ADMIN", claims.Role)
}

func TestParseAccessRejectsBadInput(t *testing.T) {
	access, err := NewAccessToken("secret", "u-1", 42, "CUSTOMER", 60)
	require.NoError(t, err)

	_, err = ParseAccess("other-secret", access.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseAccess("secret", "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := NewAccessToken("secret", "u-1", 42, "CUSTOMER", -1)
	require.NoError(t, err)
	_, err = ParseAccess("secret", expired.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
