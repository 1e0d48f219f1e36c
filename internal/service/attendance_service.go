package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/nbdwit/club-api/internal/models"
	appErrors "github.com/nbdwit/club-api/pkg/errors"
)

const dayLayout = "2006-01-02"

// attendanceStore is the slice of the snapshot store the editor needs.
type attendanceStore interface {
	ListStudents(filter models.StudentFilter) []models.Student
	DayRecords(date string) map[string]models.AttendanceStatus
	HasDay(date string) bool
	ReplaceDay(date string, entries []models.AttendanceEntry)
	Refresh(ctx context.Context) error
}

// DaySheetRow is one editable line of the attendance day-sheet.
type DaySheetRow struct {
	Student models.Student          `json:"student"`
	Status  models.AttendanceStatus `json:"status"`
}

// DaySheet is the whole-roster attendance view for one day. Ready is true
// only once every roster student has a row; clients must not save before
// that. Recorded reports whether the sheet already has the day.
type DaySheet struct {
	Date     string        `json:"date"`
	Ready    bool          `json:"ready"`
	Recorded bool          `json:"recorded"`
	Rows     []DaySheetRow `json:"rows"`
}

// SaveDayRequest replaces one day of attendance.
type SaveDayRequest struct {
	Date    string                   `json:"date" validate:"required"`
	Entries []models.AttendanceEntry `json:"entries" validate:"required,dive"`
}

// AttendanceService builds and saves day-sheets. A day is always saved
// whole: one entry per roster student, replacing whatever the sheet held.
type AttendanceService struct {
	store    attendanceStore
	sink     mutationSink
	validate *validator.Validate
	logger   *zap.Logger
}

// NewAttendanceService constructs the attendance editor service.
func NewAttendanceService(store attendanceStore, sink mutationSink, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = newValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{store: store, sink: sink, validate: validate, logger: logger}
}

func validDay(date string) bool {
	_, err := time.Parse(dayLayout, date)
	return err == nil
}

// DaySheet builds the editable sheet for one day. Every roster student
// gets a row holding the recorded status or the present default. Level
// and room filters narrow the returned rows only after the full sheet is
// built, so a filtered save still covers the whole roster.
func (s *AttendanceService) DaySheet(ctx context.Context, date string, filter models.StudentFilter) (DaySheet, error) {
	if !validDay(date) {
		return DaySheet{}, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD")
	}

	roster := s.store.ListStudents(models.StudentFilter{})
	recorded := s.store.DayRecords(date)

	rows := make([]DaySheetRow, 0, len(roster))
	for _, student := range roster {
		status, ok := recorded[student.ID]
		if !ok {
			status = models.StatusPresent
		}
		if !filter.Matches(student) {
			continue
		}
		rows = append(rows, DaySheetRow{Student: student, Status: status})
	}

	return DaySheet{
		Date:     date,
		Ready:    true,
		Recorded: s.store.HasDay(date),
		Rows:     rows,
	}, nil
}

// SaveDay forwards one whole-day replacement. Submitted entries override
// the initialized statuses; students missing from the request keep their
// recorded status or the present default; ids not on the roster are
// dropped. An unmodified save therefore resubmits exactly the initialized
// set. The day is applied locally even if the later resync fails.
func (s *AttendanceService) SaveDay(ctx context.Context, req SaveDayRequest) (DaySheet, error) {
	if !validDay(req.Date) {
		return DaySheet{}, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD")
	}

	submitted := make(map[string]models.AttendanceStatus, len(req.Entries))
	for _, entry := range req.Entries {
		if !entry.Status.Valid() {
			return DaySheet{}, appErrors.Clone(appErrors.ErrValidation, "unknown attendance status")
		}
		submitted[entry.StudentID] = entry.Status
	}

	roster := s.store.ListStudents(models.StudentFilter{})
	recorded := s.store.DayRecords(req.Date)

	entries := make([]models.AttendanceEntry, 0, len(roster))
	for _, student := range roster {
		status, ok := submitted[student.ID]
		if !ok {
			if status, ok = recorded[student.ID]; !ok {
				status = models.StatusPresent
			}
		}
		entries = append(entries, models.AttendanceEntry{StudentID: student.ID, Status: status})
	}

	mutation, err := models.AttendanceMutation(req.Date, entries)
	if err != nil {
		return DaySheet{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode attendance records")
	}
	if err := s.sink.Submit(ctx, mutation); err != nil {
		return DaySheet{}, err
	}

	s.store.ReplaceDay(req.Date, entries)
	if err := s.store.Refresh(ctx); err != nil {
		s.logger.Warn("post-save refresh failed", zap.Error(err))
	}

	return s.DaySheet(ctx, req.Date, models.StudentFilter{})
}
