package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nbdwit/club-api/internal/models"
	"github.com/nbdwit/club-api/internal/service"
	appErrors "github.com/nbdwit/club-api/pkg/errors"
	"github.com/nbdwit/club-api/pkg/response"
)

// StudentHandler exposes roster registration and management.
type StudentHandler struct {
	service *service.RosterService
}

// NewStudentHandler constructs the student handler.
func NewStudentHandler(s *service.RosterService) *StudentHandler {
	return &StudentHandler{service: s}
}

func rosterFilter(c *gin.Context) models.StudentFilter {
	filter := models.StudentFilter{Level: c.Query("level")}
	if room, err := strconv.Atoi(c.Query("room")); err == nil {
		filter.Room = room
	}
	return filter
}

// List returns the sorted roster, optionally filtered by level and room.
func (h *StudentHandler) List(c *gin.Context) {
	students := h.service.List(rosterFilter(c))
	response.JSON(c, http.StatusOK, students, nil, map[string]interface{}{"count": len(students)})
}

// Get returns one roster entry.
func (h *StudentHandler) Get(c *gin.Context) {
	student, err := h.service.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// Register enrolls a new student. Open to students themselves.
func (h *StudentHandler) Register(c *gin.Context) {
	var req service.RegisterStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid payload"))
		return
	}

	student, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// Update rewrites a roster entry. Teacher only.
func (h *StudentHandler) Update(c *gin.Context) {
	var req service.RegisterStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid payload"))
		return
	}

	student, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// Delete removes a roster entry. Teacher only.
func (h *StudentHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
