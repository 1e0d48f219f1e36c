package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nbdwit/club-api/internal/service"
	"github.com/nbdwit/club-api/pkg/response"
)

// GradeHandler exposes attendance grade summaries.
type GradeHandler struct {
	service *service.GradingService
}

// NewGradeHandler constructs the grade handler.
func NewGradeHandler(s *service.GradingService) *GradeHandler {
	return &GradeHandler{service: s}
}

// Roster returns grade summaries for the filtered roster.
func (h *GradeHandler) Roster(c *gin.Context) {
	summaries := h.service.RosterSummary(rosterFilter(c))
	response.JSON(c, http.StatusOK, summaries, nil, map[string]interface{}{"count": len(summaries)})
}

// Student returns one student's grade summary.
func (h *GradeHandler) Student(c *gin.Context) {
	summary, err := h.service.Summary(c.Param("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}
