package jwt_test

import (
	"testing"
	"time"

	jwtx "github.com/sakhu-org/sakhu-backend/internal/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndVerifyRoundTrip(t *testing.T) {
	iss, err := jwtx.NewIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	raw, err := iss.Sign("u-1", "editor@sakhu.org", jwtx.RoleEditor)
	require.NoError(t, err)

	claims, err := iss.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "editor@sakhu.org", claims.Email)
	assert.Equal(t, jwtx.RoleEditor, claims.Role)
	assert.True(t, claims.IsEditor())
	assert.False(t, claims.IsAdmin())
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	a, _ := jwtx.NewIssuer("secret-a", time.Hour)
	b, _ := jwtx.NewIssuer("secret-b", time.Hour)

	raw, err := a.Sign("u-1", "x@sakhu.org", jwtx.RoleUser)
	require.NoError(t, err)

	_, err = b.Verify(raw)
	assert.ErrorIs(t, err, jwtx.ErrTokenInvalid)
}

func TestVerifyRejectsExpired(t *testing.T) {
	iss, _ := jwtx.NewIssuer("secret", time.Nanosecond)
	raw, err := iss.Sign("u-1", "x@sakhu.org", jwtx.RoleAdmin)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	_, err = iss.Verify(raw)
	assert.ErrorIs(t, err, jwtx.ErrTokenInvalid)
}

func TestNewIssuerRequiresSecret(t *testing.T) {
	_, err := jwtx.NewIssuer("", time.Hour)
	assert.ErrorIs(t, err, jwtx.ErrNoSecret)
}
