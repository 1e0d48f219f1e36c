package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nbdwit/club-api/internal/service"
	appErrors "github.com/nbdwit/club-api/pkg/errors"
	"github.com/nbdwit/club-api/pkg/response"
)

// AnnouncementHandler exposes the notice feed.
type AnnouncementHandler struct {
	service *service.AnnouncementService
}

// NewAnnouncementHandler constructs the announcement handler.
func NewAnnouncementHandler(s *service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{service: s}
}

// Feed returns the public feed with hidden entries excluded.
func (h *AnnouncementHandler) Feed(c *gin.Context) {
	feed := h.service.Feed()
	response.JSON(c, http.StatusOK, feed, nil, map[string]interface{}{"count": len(feed)})
}

// All returns every announcement including hidden ones. Teacher only.
func (h *AnnouncementHandler) All(c *gin.Context) {
	all := h.service.All()
	response.JSON(c, http.StatusOK, all, nil, map[string]interface{}{"count": len(all)})
}

// Save creates or updates an announcement. Teacher only.
func (h *AnnouncementHandler) Save(c *gin.Context) {
	var req service.SaveAnnouncementRequest
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
