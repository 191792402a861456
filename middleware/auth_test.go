package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sawara-dev/ashiato/cache"
	"github.com/sawara-dev/ashiato/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authTestRouter(t *testing.T) (*gin.Engine, cache.Cache, config.SecurityConfig) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c := cache.NewLocalCache(time.Hour)
	t.Cleanup(func() { _ = c.Close() })

	sec := config.SecurityConfig{JWTSecret: "test-secret", SessionTTL: time.Hour}
	r := gin.New()
	r.GET("/me", Auth(sec, c), func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"user_id": GetUserID(ctx)})
	})
	return r, c, sec
}

func TestAuthMissingHeader(t *testing.T) {
	r, _, _ := authTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthValidSession(t *testing.T) {
	r, c, sec := authTestRouter(t)

	token, err := GenerateToken(7, sec.JWTSecret, time.Hour)
	require.NoError(t, err)
	require.NoError(t, c.Set(context.Background(), "session:"+token, "7", time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
}

func TestAuthSessionRevoked(t *testing.T) {
	r, _, sec := authTestRouter(t)

	// Valid token but no session key in the cache, as after logout.
	token, err := GenerateToken(7, sec.JWTSecret, time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthBadToken(t *testing.T) {
	r, _, _ := authTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
