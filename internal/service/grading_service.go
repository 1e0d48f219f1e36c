package service

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/nbdwit/club-api/internal/models"
	"github.com/nbdwit/club-api/pkg/config"
	appErrors "github.com/nbdwit/club-api/pkg/errors"
	"github.com/nbdwit/club-api/pkg/export"
)

// gradingStore is the slice of the snapshot store the aggregator needs.
type gradingStore interface {
	ListStudents(filter models.StudentFilter) []models.Student
	FindStudent(id string) (models.Student, bool)
	TallyFor(studentID string) models.AttendanceTally
}

// StudentSummary is one student's attendance grade.
type StudentSummary struct {
	Student    models.Student          `json:"student"`
	Tally      models.AttendanceTally  `json:"tally"`
	Effective  int                     `json:"effective"`
	Percentage float64                 `json:"percentage"`
	Passed     bool                    `json:"passed"`
	Verdict    models.EvaluationStatus `json:"verdict"`
}

// GradingService derives pass/fail verdicts from the attendance ledger.
// Absence is the only status that costs credit; presence, leave and
// activity all count toward the required sessions.
type GradingService struct {
	store     gradingStore
	required  int
	threshold float64
	logger    *zap.Logger
}

// NewGradingService constructs the grade aggregator.
func NewGradingService(store gradingStore, cfg config.GradingConfig, logger *zap.Logger) *GradingService {
	required := cfg.RequiredSessions
	if required <= 0 {
		required = 20
	}
	threshold := cfg.PassThreshold
	if threshold <= 0 {
		threshold = 80
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradingService{store: store, required: required, threshold: threshold, logger: logger}
}

func (s *GradingService) summarize(student models.Student) StudentSummary {
	tally := s.store.TallyFor(student.ID)
	effective := tally.Effective()

	percentage := float64(effective) / float64(s.required) * 100
	if percentage > 100 {
		percentage = 100
	}

	passed := percentage >= s.threshold
	verdict := models.EvaluationFail
	if passed {
		verdict = models.EvaluationPass
	}

	return StudentSummary{
		Student:    student,
		Tally:      tally,
		Effective:  effective,
		Percentage: percentage,
		Passed:     passed,
		Verdict:    verdict,
	}
}

// Summary grades one student.
func (s *GradingService) Summary(studentID string) (StudentSummary, error) {
	student, ok := s.store.FindStudent(studentID)
	if !ok {
		return StudentSummary{}, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return s.summarize(student), nil
}

// RosterSummary grades the filtered roster in roster order.
func (s *GradingService) RosterSummary(filter models.StudentFilter) []StudentSummary {
	students := s.store.ListStudents(filter)
	out := make([]StudentSummary, 0, len(students))
	for _, student := range students {
		out = append(out, s.summarize(student))
	}
	return out
}

// Report headers for the printable attendance summary.
var reportHeaders = []string{"ID", "Name", "Level", "Room", "Present", "Leave", "Activity", "Absent", "Percent", "Result"}

// ReportDataset renders the roster summary as a tabular dataset for the
// CSV and PDF exporters.
func (s *GradingService) ReportDataset(filter models.StudentFilter) export.Dataset {
	summaries := s.RosterSummary(filter)
	rows := make([]map[string]string, 0, len(summaries))
	for _, summary := range summaries {
		rows = append(rows, map[string]string{
			"ID":       summary.Student.ID,
			"Name":     summary.Student.Name,
			"Level":    summary.Student.Level,
			"Room":     strconv.Itoa(summary.Student.Room),
			"Present":  strconv.Itoa(summary.Tally.Present),
			"Leave":    strconv.Itoa(summary.Tally.Leave),
			"Activity": strconv.Itoa(summary.Tally.Activity),
			"Absent":   strconv.Itoa(summary.Tally.Absent),
			"Percent":  fmt.Sprintf("%.1f", summary.Percentage),
			"Result":   string(summary.Verdict),
		})
	}
	return export.Dataset{Headers: reportHeaders, Rows: rows}
}
