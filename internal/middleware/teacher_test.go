package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nbdwit/club-api/internal/service"
	"github.com/nbdwit/club-api/pkg/config"
)

func guardedRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	auth := service.NewAuthService(config.TeacherGateConfig{
		AccessCode:    "2521",
		JWTSecret:     "test_secret",
		JWTExpiration: time.Hour,
	}, nil)

	token, err := auth.VerifyTeacher("2521")
	require.NoError(t, err)

	router := gin.New()
	router.GET("/protected", Teacher(auth), func(c *gin.Context) {
		_, exists := c.Get(ContextUserKey)
		c.JSON(http.StatusOK, gin.H{"claims": exists})
	})
	return router, token
}

func TestTeacherGuardAllowsValidToken(t *testing.T) {
	router, token := guardedRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "true")
}

func TestTeacherGuardRejectsMissingHeader(t *testing.T) {
	router, _ := guardedRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTeacherGuardRejectsMalformedHeader(t *testing.T) {
	router, token := guardedRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTeacherGuardRejectsForgedToken(t *testing.T) {
	router, _ := guardedRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
