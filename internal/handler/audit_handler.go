package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nbdwit/club-api/internal/models"
	"github.com/nbdwit/club-api/internal/repository"
	"github.com/nbdwit/club-api/pkg/response"
)

// AuditHandler exposes the mutation audit log to operators.
type AuditHandler struct {
	repo *repository.AuditRepository
}

// NewAuditHandler constructs the audit handler.
func NewAuditHandler(repo *repository.AuditRepository) *AuditHandler {
	return &AuditHandler{repo: repo}
}

// List returns audit entries newest first. Teacher only.
func (h *AuditHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))

	entries, total, err := h.repo.List(c.Request.Context(), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, entries, &models.Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
	})
}
