package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nbdwit/club-api/internal/service"
	appErrors "github.com/nbdwit/club-api/pkg/errors"
	"github.com/nbdwit/club-api/pkg/export"
	"github.com/nbdwit/club-api/pkg/response"
)

// ReportHandler renders the printable attendance summary.
type ReportHandler struct {
	grading *service.GradingService
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
}

// NewReportHandler constructs the report handler.
func NewReportHandler(grading *service.GradingService) *ReportHandler {
	return &ReportHandler{
		grading: grading,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
	}
}

// Attendance streams the roster attendance summary as CSV or PDF.
func (h *ReportHandler) Attendance(c *gin.Context) {
	dataset := h.grading.ReportDataset(rosterFilter(c))
	filename := fmt.Sprintf("attendance-%s", time.Now().Format("2006-01-02"))

	switch c.DefaultQuery("format", "csv") {
	case "csv":
		payload, err := h.csv.Render(dataset)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render csv"))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", filename))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", payload)
	case "pdf":
		payload, err := h.pdf.Render(dataset, "Club Attendance Summary")
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render pdf"))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", filename))
		c.Data(http.StatusOK, "application/pdf", payload)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"))
	}
}
