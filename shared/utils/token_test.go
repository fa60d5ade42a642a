package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pavitra93/go-hr-admin-panel/shared/models"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuerRoundTrip(t *testing.T) {
	tenantID := uuid.New()
	issuer := NewTokenIssuer("secret", time.Hour)

	token, expiresAt, err := issuer.Issue(&models.User{ID: 42, Email: "jane@example.com", TenantID: &tenantID})
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)

	info, err := claims.UserInfo()
	require.NoError(t, err)
	require.Equal(t, uint(42), info.UserID)
	require.Equal(t, "jane@example.com", info.Email)
	require.False(t, info.IsAdmin)
	require.NotNil(t, info.TenantID)
	require.Equal(t, tenantID, *info.TenantID)
}

func TestTokenIssuerRejects(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	token, _, err := issuer.Issue(&models.User{ID: 1, Email: "admin@admin.com", IsAdmin: true})
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := NewTokenIssuer("other", time.Hour).Parse(token)
		require.True(t, errors.Is(err, ErrInvalidToken))
	})

	t.Run("expired", func(t *testing.T) {
		late := NewTokenIssuer("secret", time.Hour)
		late.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := late.Parse(token)
		require.True(t, errors.Is(err, ErrInvalidToken))
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.Parse("not-a-token")
		require.True(t, errors.Is(err, ErrInvalidToken))
	})
}
