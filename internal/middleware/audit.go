package middleware

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nbdwit/club-api/internal/models"
)

// AuditSink records forwarded mutations. Implemented by the audit
// repository.
type AuditSink interface {
	Create(ctx context.Context, entry *models.AuditEntry) error
}

// Audit creates a middleware that records one audit entry per mutation
// request. Failure to audit never fails the request.
func Audit(sink AuditSink, mode string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now().UTC()
		c.Next()

		if sink == nil {
			return
		}

		outcome := "forwarded"
		if c.Writer.Status() >= 400 {
			outcome = "rejected"
		}

		actor := "public"
		if _, ok := c.Get(ContextUserKey); ok {
			actor = "teacher"
		}

		payload, _ := json.Marshal(map[string]interface{}{
			"path":    c.FullPath(),
			"method":  c.Request.Method,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).Milliseconds(),
		})

		_ = sink.Create(c.Request.Context(), &models.AuditEntry{
			Mode:    mode,
			Payload: payload,
			Actor:   actor,
			Outcome: outcome,
		})
	}
}
