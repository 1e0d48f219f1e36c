package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nbdwit/club-api/internal/service"
	appErrors "github.com/nbdwit/club-api/pkg/errors"
	"github.com/nbdwit/club-api/pkg/response"
)

// AssignmentHandler exposes assignments, submissions and evaluations.
type AssignmentHandler struct {
	service *service.AssignmentService
}

// NewAssignmentHandler constructs the assignment handler.
func NewAssignmentHandler(s *service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{service: s}
}

// List returns all assignments ordered by due date.
func (h *AssignmentHandler) List(c *gin.Context) {
	assignments := h.service.List()
	response.JSON(c, http.StatusOK, assignments, nil, map[string]interface{}{"count": len(assignments)})
}

// Save creates or updates an assignment. Teacher only.
func (h *AssignmentHandler) Save(c *gin.Context) {
	var req service.SaveAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid payload"))
		return
	}

	saved, err := h.service.Save(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, saved)
}

// Submit hands in one piece of work. Open to students.
func (h *AssignmentHandler) Submit(c *gin.Context) {
	var req service.SubmitWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid payload"))
		return
	}

	submission, err := h.service.SubmitWork(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, submission)
}

// Status resolves one student's state for one assignment.
func (h *AssignmentHandler) Status(c *gin.Context) {
	assignmentID := c.Query("assignmentId")
	studentID := c.Query("studentId")
	if assignmentID == "" || studentID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "assignmentId and studentId query parameters required"))
		return
	}

	status, err := h.service.Status(assignmentID, studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, status, nil)
}

// StudentStatuses resolves a student's state across every assignment.
func (h *AssignmentHandler) StudentStatuses(c *gin.Context) {
	statuses, err := h.service.StudentStatuses(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, statuses, nil, map[string]interface{}{"count": len(statuses)})
}

// Evaluate records a teacher verdict on one submission. Teacher only.
func (h *AssignmentHandler) Evaluate(c *gin.Context) {
	var req service.EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid payload"))
		return
	}

	if err := h.service.Evaluate(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
