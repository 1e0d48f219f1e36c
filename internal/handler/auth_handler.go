package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nbdwit/club-api/internal/service"
	appErrors "github.com/nbdwit/club-api/pkg/errors"
	"github.com/nbdwit/club-api/pkg/response"
)

// AuthHandler exposes the teacher gate.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs the auth handler.
func NewAuthHandler(s *service.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

type teacherLoginRequest struct {
	Code string `json:"code"`
}

// Login exchanges the shared access code for a capability token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req teacherLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid payload"))
		return
	}

	token, err := h.service.VerifyTeacher(req.Code)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"token": token}, nil)
}
