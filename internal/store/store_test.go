package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nbdwit/club-api/internal/models"
)

type stubFetcher struct {
	snapshot *models.RawSnapshot
	err      error
	calls    int
}

func (f *stubFetcher) FetchSnapshot(ctx context.Context) (*models.RawSnapshot, error) {
	f.calls++
	return f.snapshot, f.err
}

type stubCache struct {
	snapshot *models.Snapshot
	getErr   error
	setCalls int
}

func (c *stubCache) GetSnapshot(ctx context.Context) (*models.Snapshot, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.snapshot, nil
}

func (c *stubCache) SetSnapshot(ctx context.Context, snapshot *models.Snapshot) error {
	c.setCalls++
	c.snapshot = snapshot
	return nil
}

func rosterSnapshot() *models.RawSnapshot {
	return &models.RawSnapshot{
		Students: []models.RawStudent{
			{ID: "30601", Name: "ก", Level: "ม.6", Room: 2},
			{ID: "30401", Name: "ข", Level: "ม.4", Room: 5},
			{ID: "30402", Name: "ค", Level: "ม.4", Room: 1},
			{ID: "30501", Name: "ง", Level: "ม.5", Room: 13},
		},
		Attendance: []models.RawAttendance{
			{Date: "2025-06-11T00:00:00.000Z", StudentID: "30401", Status: "มา"},
			{Date: "2025-06-18", StudentID: "30401", Status: "ขาด"},
			{Date: "2025-06-25", StudentID: "30401", Status: "ลา"},
			{Date: "2025-06-11", StudentID: "30402", Status: "กิจกรรม"},
		},
	}
}

func TestRefreshPopulatesCollections(t *testing.T) {
	fetcher := &stubFetcher{snapshot: rosterSnapshot()}
	s := New(fetcher, nil, nil)

	require.NoError(t, s.Refresh(context.Background()))

	student, ok := s.FindStudent("30401")
	require.True(t, ok)
	assert.Equal(t, "ม.4", student.Level)
	assert.False(t, s.RefreshedAt().IsZero())
}

func TestRefreshMissingKeyKeepsPreviousCollection(t *testing.T) {
	fetcher := &stubFetcher{snapshot: rosterSnapshot()}
	s := New(fetcher, nil, nil)
	require.NoError(t, s.Refresh(context.Background()))

	fetcher.snapshot = &models.RawSnapshot{
		Attendance: []models.RawAttendance{
			{Date: "2025-07-02", StudentID: "30401", Status: "มา"},
		},
	}
	require.NoError(t, s.Refresh(context.Background()))

	_, ok := s.FindStudent("30401")
	assert.True(t, ok, "students key absent, roster must survive")

	day := s.DayRecords("2025-07-02")
	assert.Len(t, day, 1)
	assert.Empty(t, s.DayRecords("2025-06-11"), "attendance key present, ledger replaced")
}

func TestRefreshEmptyCollectionReplaces(t *testing.T) {
	fetcher := &stubFetcher{snapshot: rosterSnapshot()}
	s := New(fetcher, nil, nil)
	require.NoError(t, s.Refresh(context.Background()))

	fetcher.snapshot = &models.RawSnapshot{Students: []models.RawStudent{}}
	require.NoError(t, s.Refresh(context.Background()))

	_, ok := s.FindStudent("30401")
	assert.False(t, ok, "empty students tab clears the roster")
}

func TestListStudentsOrdersByLevelThenRoom(t *testing.T) {
	fetcher := &stubFetcher{snapshot: rosterSnapshot()}
	s := New(fetcher, nil, nil)
	require.NoError(t, s.Refresh(context.Background()))

	students := s.ListStudents(models.StudentFilter{})
	require.Len(t, students, 4)
	assert.Equal(t, "30402", students[0].ID) // ม.4 ห้อง 1
	assert.Equal(t, "30401", students[1].ID) // ม.4 ห้อง 5
	assert.Equal(t, "30501", students[2].ID) // ม.5 ห้อง 13
	assert.Equal(t, "30601", students[3].ID) // ม.6 ห้อง 2
}

func TestListStudentsFilter(t *testing.T) {
	fetcher := &stubFetcher{snapshot: rosterSnapshot()}
	s := New(fetcher, nil, nil)
	require.NoError(t, s.Refresh(context.Background()))

	students := s.ListStudents(models.StudentFilter{Level: "ม.4", Room: 5})
	require.Len(t, students, 1)
	assert.Equal(t, "30401", students[0].ID)
}

func TestTallyForCountsStatuses(t *testing.T) {
	fetcher := &stubFetcher{snapshot: rosterSnapshot()}
	s := New(fetcher, nil, nil)
	require.NoError(t, s.Refresh(context.Background()))

	tally := s.TallyFor("30401")
	assert.Equal(t, 1, tally.Present)
	assert.Equal(t, 1, tally.Absent)
	assert.Equal(t, 1, tally.Leave)
	assert.Equal(t, 0, tally.Activity)
	assert.Equal(t, 2, tally.Effective())
	assert.Equal(t, 3, tally.Total())
}

func TestReplaceDaySwapsOnlyThatDay(t *testing.T) {
	fetcher := &stubFetcher{snapshot: rosterSnapshot()}
	s := New(fetcher, nil, nil)
	require.NoError(t, s.Refresh(context.Background()))

	s.ReplaceDay("2025-06-11", []models.AttendanceEntry{
		{StudentID: "30401", Status: models.StatusAbsent},
		{StudentID: "30402", Status: models.StatusPresent},
	})

	day := s.DayRecords("2025-06-11")
	assert.Equal(t, models.StatusAbsent, day["30401"])
	assert.Equal(t, models.StatusPresent, day["30402"])

	other := s.DayRecords("2025-06-18")
	assert.Equal(t, models.StatusAbsent, other["30401"], "other days untouched")
}

func TestOptimisticRosterMutations(t *testing.T) {
	fetcher := &stubFetcher{snapshot: rosterSnapshot()}
	s := New(fetcher, nil, nil)
	require.NoError(t, s.Refresh(context.Background()))

	s.ApplyStudent(models.Student{ID: "30499", Name: "ใหม่", Level: "ม.4", Room: 9})
	_, ok := s.FindStudent("30499")
	assert.True(t, ok)

	s.ApplyStudent(models.Student{ID: "30499", Name: "แก้ไข", Level: "ม.5", Room: 2})
	updated, _ := s.FindStudent("30499")
	assert.Equal(t, "แก้ไข", updated.Name)

	s.RemoveStudent("30499")
	_, ok = s.FindStudent("30499")
	assert.False(t, ok)
}

func TestFindSubmissionPolicies(t *testing.T) {
	fetcher := &stubFetcher{snapshot: &models.RawSnapshot{
		Submissions: []models.RawSubmission{
			{ID: "s1", AssignmentID: "a1", StudentID: "30401", Type: "link", Content: "x"},
			{ID: "s2", AssignmentID: "a1", StudentID: "30401", Type: "link", Content: "y", Status: "ผ"},
		},
	}}
	s := New(fetcher, nil, nil)
	require.NoError(t, s.Refresh(context.Background()))

	first, ok := s.FindSubmission("a1", "30401", models.LookupFirst)
	require.True(t, ok)
	assert.Equal(t, "s1", first.ID)
	assert.Equal(t, models.StatePending, models.StateOf(&first))

	latest, ok := s.FindSubmission("a1", "30401", models.LookupLatest)
	require.True(t, ok)
	assert.Equal(t, "s2", latest.ID)
	assert.Equal(t, models.StatePass, models.StateOf(&latest))

	_, ok = s.FindSubmission("a1", "99999", models.LookupFirst)
	assert.False(t, ok)
}

func TestApplyEvaluationAndAppend(t *testing.T) {
	s := New(&stubFetcher{snapshot: &models.RawSnapshot{}}, nil, nil)

	s.AppendSubmission(models.Submission{ID: "s9", AssignmentID: "a1", StudentID: "30401"})
	s.ApplyEvaluation("s9", models.EvaluationFail)

	sub, ok := s.FindSubmissionByID("s9")
	require.True(t, ok)
	assert.Equal(t, models.EvaluationFail, sub.Status)
}

func TestHydratePrefersCache(t *testing.T) {
	fetcher := &stubFetcher{snapshot: rosterSnapshot()}
	cache := &stubCache{snapshot: &models.Snapshot{
		Students: []models.Student{{ID: "77777", Name: "แคช", Level: "ม.6", Room: 1}},
	}}
	s := New(fetcher, cache, nil)

	require.NoError(t, s.Hydrate(context.Background()))
	_, ok := s.FindStudent("77777")
	assert.True(t, ok)
	assert.Zero(t, fetcher.calls, "cache hit skips the sheet")
}

func TestHydrateFallsBackToRefreshAndWritesCache(t *testing.T) {
	fetcher := &stubFetcher{snapshot: rosterSnapshot()}
	cache := &stubCache{getErr: assert.AnError}
	s := New(fetcher, cache, nil)

	require.NoError(t, s.Hydrate(context.Background()))
	_, ok := s.FindStudent("30401")
	assert.True(t, ok)
	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, 1, cache.setCalls)
}
