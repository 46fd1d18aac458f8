package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/millionaire-api/internal/domain/entity"
	"github.com/yourusername/millionaire-api/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newJWT(t *testing.T) *auth.JWTService {
	t.Helper()
	svc, err := auth.NewJWTService("middleware-secret", time.Hour)
	require.NoError(t, err)
	return svc
}

func protectedRouter(m *AuthMiddleware) *gin.Engine {
	r := gin.New()
	r.GET("/me", m.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetUint("user_id"), "is_admin": c.GetBool("is_admin")})
	})
	r.GET("/admin", m.RequireAuth(), m.AdminOnly(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func doRequest(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	jwtService := newJWT(t)
	r := protectedRouter(NewAuthMiddleware(jwtService))
	token, err := jwtService.GenerateToken(&entity.User{ID: 7, Email: "p@example.com"})
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		w := doRequest(r, "/me", "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user_id":7,"is_admin":false}`, w.Body.String())
	})

	t.Run("missing header", func(t *testing.T) {
		w := doRequest(r, "/me", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "token_missing")
	})

	t.Run("wrong scheme", func(t *testing.T) {
		w := doRequest(r, "/me", "Token "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "token_format")
	})

	t.Run("garbage token", func(t *testing.T) {
		w := doRequest(r, "/me", "Bearer not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "token_invalid")
	})
}

func TestAdminOnly(t *testing.T) {
	jwtService := newJWT(t)
	r := protectedRouter(NewAuthMiddleware(jwtService))

	playerToken, err := jwtService.GenerateToken(&entity.User{ID: 7})
	require.NoError(t, err)
	adminToken, err := jwtService.GenerateToken(&entity.User{ID: 1, IsAdmin: true})
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, doRequest(r, "/admin", "Bearer "+playerToken).Code)
	assert.Equal(t, http.StatusNoContent, doRequest(r, "/admin", "Bearer "+adminToken).Code)
}

func TestExtractUintParam(t *testing.T) {
	r := gin.New()
	r.GET("/games/:id", ExtractUintParam("id", "gameID"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.MustGet("gameID").(uint)})
	})

	ok := doRequest(r, "/games/15", "")
	assert.Equal(t, http.StatusOK, ok.Code)
	assert.JSONEq(t, `{"id":15}`, ok.Body.String())

	tests := []struct {
		name string
		path string
	}{
		{"not a number", "/games/abc"},
		{"zero", "/games/0"},
		{"negative", "/games/-3"},
		{"overflow", "/games/99999999999"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, tt.path, "")

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "validation", body["error_type"])
			assert.Contains(t, body["error"], "validation failed: id must be a positive integer")
		})
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := doRequest(r, "/ping", "")
	generated := w.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "7f0c2b8e-5d7a-4a31-9c1e-2f1d3e4b5a69")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "7f0c2b8e-5d7a-4a31-9c1e-2f1d3e4b5a69", w.Header().Get(RequestIDHeader))
}

func TestRateLimiter_FailOpenWhenRedisUnavailable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 100 * time.Millisecond,
	})
	defer client.Close()

	r := gin.New()
	r.GET("/limited", NewRateLimiter(client).Limit(GameRateLimitConfig(1, time.Minute)), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusNoContent, doRequest(r, "/limited", "").Code)
	}
}

func TestGameRateLimitConfig(t *testing.T) {
	cfg := GameRateLimitConfig(60, time.Minute)

	assert.Equal(t, 60, cfg.MaxRequests)
	assert.Equal(t, time.Minute, cfg.Window)
	assert.Equal(t, "rl:game", cfg.KeyPrefix)
}
