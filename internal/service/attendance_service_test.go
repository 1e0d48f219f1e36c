package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nbdwit/club-api/internal/models"
	appErrors "github.com/nbdwit/club-api/pkg/errors"
)

func attendanceFixture() *stubStore {
	return &stubStore{
		students: []models.Student{
			{ID: "30401", Name: "ก", Level: "ม.4", Room: 1},
			{ID: "30402", Name: "ข", Level: "ม.4", Room: 2},
			{ID: "30501", Name: "ค", Level: "ม.5", Room: 1},
		},
		attendance: []models.AttendanceRecord{
			{Date: "2025-06-11", StudentID: "30401", Status: models.StatusAbsent},
		},
	}
}

func TestDaySheetDefaultsToPresent(t *testing.T) {
	svc := NewAttendanceService(attendanceFixture(), &stubSink{}, nil, nil)

	sheet, err := svc.DaySheet(context.Background(), "2025-06-11", models.StudentFilter{})
	require.NoError(t, err)
	assert.True(t, sheet.Ready)
	assert.True(t, sheet.Recorded)
	require.Len(t, sheet.Rows, 3)

	byID := map[string]models.AttendanceStatus{}
	for _, row := range sheet.Rows {
		byID[row.Student.ID] = row.Status
	}
	assert.Equal(t, models.StatusAbsent, byID["30401"], "recorded status kept")
	assert.Equal(t, models.StatusPresent, byID["30402"], "unrecorded defaults to present")
	assert.Equal(t, models.StatusPresent, byID["30501"])
}

func TestDaySheetUnrecordedDay(t *testing.T) {
	svc := NewAttendanceService(attendanceFixture(), &stubSink{}, nil, nil)

	sheet, err := svc.DaySheet(context.Background(), "2025-07-02", models.StudentFilter{})
	require.NoError(t, err)
	assert.True(t, sheet.Ready)
	assert.False(t, sheet.Recorded)
	for _, row := range sheet.Rows {
		assert.Equal(t, models.StatusPresent, row.Status)
	}
}

func TestDaySheetFilterNarrowsRowsOnly(t *testing.T) {
	svc := NewAttendanceService(attendanceFixture(), &stubSink{}, nil, nil)

	sheet, err := svc.DaySheet(context.Background(), "2025-06-11", models.StudentFilter{Level: "ม.5"})
	require.NoError(t, err)
	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, "30501", sheet.Rows[0].Student.ID)
	assert.True(t, sheet.Ready)
}

func TestDaySheetRejectsBadDate(t *testing.T) {
	svc := NewAttendanceService(attendanceFixture(), &stubSink{}, nil, nil)
	_, err := svc.DaySheet(context.Background(), "11/06/2025", models.StudentFilter{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSaveDayCompletesRoster(t *testing.T) {
	store := attendanceFixture()
	sink := &stubSink{}
	svc := NewAttendanceService(store, sink, nil, nil)

	_, err := svc.SaveDay(context.Background(), SaveDayRequest{
		Date: "2025-06-11",
		Entries: []models.AttendanceEntry{
			{StudentID: "30402", Status: models.StatusLeave},
			{StudentID: "99999", Status: models.StatusAbsent}, // not on the roster
		},
	})
	require.NoError(t, err)

	require.Len(t, sink.mutations, 1)
	m := sink.mutations[0]
	assert.Equal(t, models.ModeAttendance, m.Mode)
	assert.Equal(t, "2025-06-11", m.Fields["date"])

	var records []models.AttendanceEntry
	require.NoError(t, json.Unmarshal([]byte(m.Fields["records"]), &records))
	require.Len(t, records, 3, "one entry per roster student, unknown ids dropped")

	byID := map[string]models.AttendanceStatus{}
	for _, r := range records {
		byID[r.StudentID] = r.Status
	}
	assert.Equal(t, models.StatusAbsent, byID["30401"], "untouched student keeps recorded status")
	assert.Equal(t, models.StatusLeave, byID["30402"], "submitted override wins")
	assert.Equal(t, models.StatusPresent, byID["30501"], "unrecorded student defaults to present")

	day := store.DayRecords("2025-06-11")
	assert.Equal(t, models.StatusLeave, day["30402"], "ledger replaced optimistically")
}

func TestSaveDayUnmodifiedIsIdempotent(t *testing.T) {
	store := attendanceFixture()
	sink := &stubSink{}
	svc := NewAttendanceService(store, sink, nil, nil)

	initial, err := svc.DaySheet(context.Background(), "2025-06-11", models.StudentFilter{})
	require.NoError(t, err)

	entries := make([]models.AttendanceEntry, 0, len(initial.Rows))
	for _, row := range initial.Rows {
		entries = append(entries, models.AttendanceEntry{StudentID: row.Student.ID, Status: row.Status})
	}

	_, err = svc.SaveDay(context.Background(), SaveDayRequest{Date: "2025-06-11", Entries: entries})
	require.NoError(t, err)

	var records []models.AttendanceEntry
	require.NoError(t, json.Unmarshal([]byte(sink.mutations[0].Fields["records"]), &records))

	want := map[string]models.AttendanceStatus{}
	for _, e := range entries {
		want[e.StudentID] = e.Status
	}
	got := map[string]models.AttendanceStatus{}
	for _, r := range records {
		got[r.StudentID] = r.Status
	}
	assert.Equal(t, want, got, "unmodified save resubmits exactly the initialized set")
}

func TestSaveDayRejectsUnknownStatus(t *testing.T) {
	svc := NewAttendanceService(attendanceFixture(), &stubSink{}, nil, nil)
	_, err := svc.SaveDay(context.Background(), SaveDayRequest{
		Date:    "2025-06-11",
		Entries: []models.AttendanceEntry{{StudentID: "30401", Status: "สาย"}},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSaveDayNoRollbackOnRefreshFailure(t *testing.T) {
	store := attendanceFixture()
	store.refreshErr = errSinkDown
	svc := NewAttendanceService(store, &stubSink{}, nil, nil)

	_, err := svc.SaveDay(context.Background(), SaveDayRequest{
		Date:    "2025-06-11",
		Entries: []models.AttendanceEntry{{StudentID: "30401", Status: models.StatusLeave}},
	})
	require.NoError(t, err)

	day := store.DayRecords("2025-06-11")
	assert.Equal(t, models.StatusLeave, day["30401"], "optimistic day kept when resync fails")
}

func TestSaveDaySinkFailureSurfaces(t *testing.T) {
	store := attendanceFixture()
	svc := NewAttendanceService(store, &stubSink{err: errSinkDown}, nil, nil)

	_, err := svc.SaveDay(context.Background(), SaveDayRequest{
		Date:    "2025-06-11",
		Entries: []models.AttendanceEntry{{StudentID: "30401", Status: models.StatusLeave}},
	})
	require.Error(t, err)

	day := store.DayRecords("2025-06-11")
	assert.Equal(t, models.StatusAbsent, day["30401"], "ledger untouched when forward fails")
}
