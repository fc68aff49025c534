package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"collablearn/internal/auth"
)

func setupAuthTestRouter(tokens *auth.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/private", AuthMiddleware(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetInt("userID"), "role": c.GetString("userRole")})
	})
	r.GET("/admin", AuthMiddleware(tokens), AdminOnly(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	tokens := auth.NewManager("test-secret")
	router := setupAuthTestRouter(tokens)

	token, err := tokens.GenerateToken(5, "user")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	router := setupAuthTestRouter(auth.NewManager("test-secret"))

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareBadToken(t *testing.T) {
	router := setupAuthTestRouter(auth.NewManager("test-secret"))

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminOnlyRejectsUser(t *testing.T) {
	tokens := auth.NewManager("test-secret")
	router := setupAuthTestRouter(tokens)

	token, err := tokens.GenerateToken(5, "user")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminOnlyAllowsAdmin(t *testing.T) {
	tokens := auth.NewManager("test-secret")
	router := setupAuthTestRouter(tokens)

	token, err := tokens.GenerateToken(5, "admin")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
