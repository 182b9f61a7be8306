package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwtx "github.com/sakhu-org/sakhu-backend/internal/jwt"
)

const sessionCookie = "auth_token"

func signedToken(t *testing.T, iss *jwtx.Issuer, role string) string {
	t.Helper()
	tok, err := iss.Sign("u-1", "u@sakhu.org", role)
	require.NoError(t, err)
	return tok
}

func okHandler() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	}), &called
}

func TestRequireAuth(t *testing.T) {
	iss, err := jwtx.NewIssuer("secreto-de-test", time.Hour)
	require.NoError(t, err)
	mw := RequireAuth(iss, sessionCookie)

	t.Run("sin token", func(t *testing.T) {
		h, called := okHandler()
		rec := httptest.NewRecorder()
		mw(h).ServeHTTP(rec, httptest.NewRequest("GET", "/api/auth/me", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, *called)
		assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
	})

	t.Run("token inválido", func(t *testing.T) {
		h, called := okHandler()
		req := httptest.NewRequest("GET", "/api/auth/me", nil)
		req.Header.Set("Authorization", "Bearer basura")
		rec := httptest.NewRecorder()
		mw(h).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, *called)
	})

	t.Run("bearer ok", func(t *testing.T) {
		h, called := okHandler()
		req := httptest.NewRequest("GET", "/api/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, iss, jwtx.RoleUser))
		rec := httptest.NewRecorder()

		var gotUserID string
		wrapped := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUserID = GetUserID(r.Context())
			h.ServeHTTP(w, r)
		}))
		wrapped.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.True(t, *called)
		assert.Equal(t, "u-1", gotUserID)
	})

	t.Run("cookie ok", func(t *testing.T) {
		h, called := okHandler()
		req := httptest.NewRequest("GET", "/api/auth/me", nil)
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: signedToken(t, iss, jwtx.RoleUser)})
		rec := httptest.NewRecorder()
		mw(h).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.True(t, *called)
	})
}

func TestRoleGates(t *testing.T) {
	iss, err := jwtx.NewIssuer("secreto-de-test", time.Hour)
	require.NoError(t, err)

	serve := func(gate Middleware, role string) int {
		h, _ := okHandler()
		req := httptest.NewRequest("POST", "/api/news", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, iss, role))
		rec := httptest.NewRecorder()
		ChainFunc(h.ServeHTTP, RequireAuth(iss, ""), gate).ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, serve(RequireEditor(), jwtx.RoleAdmin))
	assert.Equal(t, http.StatusNoContent, serve(RequireEditor(), jwtx.RoleEditor))
	assert.Equal(t, http.StatusForbidden, serve(RequireEditor(), jwtx.RoleUser))

	assert.Equal(t, http.StatusNoContent, serve(RequireAdmin(), jwtx.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, serve(RequireAdmin(), jwtx.RoleEditor))
	assert.Equal(t, http.StatusForbidden, serve(RequireAdmin(), jwtx.RoleUser))
}
