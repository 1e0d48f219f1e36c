package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nbdwit/club-api/internal/service"
	"github.com/nbdwit/club-api/internal/store"
	"github.com/nbdwit/club-api/pkg/response"
)

// SystemHandler exposes health, readiness and operational metrics.
type SystemHandler struct {
	store   *store.Store
	metrics *service.MetricsService
	started time.Time
}

// NewSystemHandler constructs the system handler.
func NewSystemHandler(st *store.Store, metrics *service.MetricsService) *SystemHandler {
	return &SystemHandler{store: st, metrics: metrics, started: time.Now()}
}

// Health reports liveness.
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "uptime": time.Since(h.started).String()})
}

// Ready reports readiness: the store must have accepted a snapshot.
func (h *SystemHandler) Ready(c *gin.Context) {
	refreshed := h.store.RefreshedAt()
	if refreshed.IsZero() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "waiting for snapshot"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "snapshot_refreshed_at": refreshed})
}

// Stats returns the aggregated operational snapshot. Teacher only.
func (h *SystemHandler) Stats(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.metrics.Snapshot(), nil)
}

// RefreshSnapshot forces a snapshot refresh. Teacher only.
func (h *SystemHandler) RefreshSnapshot(c *gin.Context) {
	if err := h.store.Refresh(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.MarkSnapshotRefresh(h.store.RefreshedAt())
	response.JSON(c, http.StatusOK, gin.H{"snapshot_refreshed_at": h.store.RefreshedAt()}, nil)
}
