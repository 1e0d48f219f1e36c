package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nbdwit/club-api/internal/service"
	appErrors "github.com/nbdwit/club-api/pkg/errors"
	"github.com/nbdwit/club-api/pkg/response"
)

// AttendanceHandler exposes the day-sheet editor.
type AttendanceHandler struct {
	service *service.AttendanceService
}

// NewAttendanceHandler constructs the attendance handler.
func NewAttendanceHandler(s *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: s}
}

// DaySheet returns the editable whole-roster sheet for one day.
func (h *AttendanceHandler) DaySheet(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date query parameter required"))
		return
	}

	sheet, err := h.service.DaySheet(c.Request.Context(), date, rosterFilter(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sheet, nil)
}

// SaveDay replaces one day of attendance. Teacher only.
func (h *AttendanceHandler) SaveDay(c *gin.Context) {
	var req service.SaveDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid payload"))
		return
	}

	sheet, err := h.service.SaveDay(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sheet, nil)
}
