package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/josiahtayi/whatjosiahwatched/middlewares"
	"github.com/josiahtayi/whatjosiahwatched/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuardedRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/admin", middlewares.JWT(secret), middlewares.AdminOnly(), func(c *gin.Context) {
		role, _ := c.Get("role")
		c.JSON(http.StatusOK, gin.H{"role": role})
	})
	return router
}

func requestWithToken(t *testing.T, router *gin.Engine, token string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, "/admin", nil)
	require.NoError(t, err)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "Bearer", Value: token})
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestJWTMissingCookie(t *testing.T) {
	rec := requestWithToken(t, newGuardedRouter("secret"), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestJWTInvalidToken(t *testing.T) {
	rec := requestWithToken(t, newGuardedRouter("secret"), "garbage.token.value")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTWrongSecret(t *testing.T) {
	token, _, err := utils.GenerateAllTokens("other-secret", "r", "a@b.c", "A", "B", "ADMIN", "u1")
	require.NoError(t, err)

	rec := requestWithToken(t, newGuardedRouter("secret"), token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAdminAllowed(t *testing.T) {
	token, _, err := utils.GenerateAllTokens("secret", "r", "a@b.c", "A", "B", "ADMIN", "u1")
	require.NoError(t, err)

	rec := requestWithToken(t, newGuardedRouter("secret"), token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ADMIN")
}

func TestJWTNonAdminRejected(t *testing.T) {
	token, _, err := utils.GenerateAllTokens("secret", "r", "a@b.c", "A", "B", "USER", "u1")
	require.NoError(t, err)

	rec := requestWithToken(t, newGuardedRouter("secret"), token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
