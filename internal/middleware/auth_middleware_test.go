package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iremtulu/tekneturum-0/pkg/jwt"
)

func setupTestJWTService() *jwt.Service {
	return jwt.NewService(
		"test-access-secret-key-123456789",
		"test-refresh-secret-key-123456789",
		time.Hour,
		24*time.Hour,
	)
}

func setupProtectedRouter(jwtService *jwt.Service, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handlers := []gin.HandlerFunc{AuthMiddleware(jwtService)}
	handlers = append(handlers, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		account, exists := GetAccountContext(c)
		if !exists {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no account context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"account_id": account.AccountID,
			"email":      account.Email,
			"role":       account.Role,
		})
	})

	router.GET("/protected", handlers...)
	return router
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_Success(t *testing.T) {
	jwtService := setupTestJWTService()
	router := setupProtectedRouter(jwtService)

	token, err := jwtService.GenerateAccessToken(42, "ayse@example.com", "user")
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(42), body["account_id"])
	assert.Equal(t, "ayse@example.com", body["email"])
	assert.Equal(t, "user", body["role"])
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	jwtService := setupTestJWTService()
	router := setupProtectedRouter(jwtService)

	w := doRequest(router, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "authorization header is required")
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	jwtService := setupTestJWTService()
	router := setupProtectedRouter(jwtService)

	tests := []struct {
		name   string
		header string
	}{
		{"No Bearer Prefix", "some-token"},
		{"Wrong Scheme", "Basic dXNlcjpwYXNz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "invalid authorization header format")
		})
	}
}

func TestAuthMiddleware_EmptyToken(t *testing.T) {
	jwtService := setupTestJWTService()
	router := setupProtectedRouter(jwtService)

	w := doRequest(router, "Bearer ")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token cannot be empty")
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	jwtService := setupTestJWTService()
	router := setupProtectedRouter(jwtService)

	w := doRequest(router, "Bearer not-a-real-token")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid access token")
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	expired := jwt.NewService(
		"test-access-secret-key-123456789",
		"test-refresh-secret-key-123456789",
		-time.Minute,
		24*time.Hour,
	)
	router := setupProtectedRouter(expired)

	token, err := expired.GenerateAccessToken(42, "ayse@example.com", "user")
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "access token has expired")
}

func TestAuthMiddleware_RefreshTokenRejected(t *testing.T) {
	jwtService := setupTestJWTService()
	router := setupProtectedRouter(jwtService)

	refresh, err := jwtService.GenerateRefreshToken(42, "ayse@example.com", "user")
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+refresh)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	jwtService := setupTestJWTService()

	t.Run("Matching Role", func(t *testing.T) {
		router := setupProtectedRouter(jwtService, RequireRole("admin"))

		token, err := jwtService.GenerateAccessToken(1, "admin@example.com", "admin")
		require.NoError(t, err)

		w := doRequest(router, "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Role Mismatch", func(t *testing.T) {
		router := setupProtectedRouter(jwtService, RequireRole("admin"))

		token, err := jwtService.GenerateAccessToken(42, "ayse@example.com", "user")
		require.NoError(t, err)

		w := doRequest(router, "Bearer "+token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("No Account Context", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.GET("/bare", RequireRole("admin"), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/bare", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestGetAccountContext_Missing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, exists := GetAccountContext(c)
	assert.False(t, exists)
}
