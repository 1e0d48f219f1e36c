package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nbdwit/club-api/internal/service"
	"github.com/nbdwit/club-api/pkg/config"
)

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewAuthService(config.TeacherGateConfig{
		AccessCode:    "2521",
		JWTSecret:     "test_secret",
		JWTExpiration: time.Hour,
	}, nil)
	h := NewAuthHandler(svc)

	router := gin.New()
	router.POST("/auth/teacher", h.Login)
	return router
}

func TestLoginIssuesToken(t *testing.T) {
	router := newAuthRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/teacher", strings.NewReader(`{"code":"2521"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"token"`)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestLoginRejectsWrongCode(t *testing.T) {
	router := newAuthRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/teacher", strings.NewReader(`{"code":"0000"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_ACCESS_CODE")
}

func TestLoginRejectsMalformedBody(t *testing.T) {
	router := newAuthRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/teacher", strings.NewReader(`{`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
