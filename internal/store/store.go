package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/nbdwit/club-api/internal/models"
	"github.com/nbdwit/club-api/internal/sheet"
)

// Fetcher retrieves the raw sheet payload. Implemented by sheet.Client.
type Fetcher interface {
	FetchSnapshot(ctx context.Context) (*models.RawSnapshot, error)
}

// SnapshotCache persists normalised snapshots between refreshes so a fleet
// of instances does not hammer the sheet quota. Implemented by the cache
// service; may be nil.
type SnapshotCache interface {
	GetSnapshot(ctx context.Context) (*models.Snapshot, error)
	SetSnapshot(ctx context.Context, snapshot *models.Snapshot) error
}

// Store holds the in-memory view of the sheet. All durable state lives in
// the sheet itself; the store is a read model refreshed after every write
// and on an interval. Optimistic Apply* mutators keep reads coherent
// between a forwarded mutation and the refresh that follows it.
type Store struct {
	fetcher Fetcher
	cache   SnapshotCache
	logger  *zap.Logger

	mu            sync.RWMutex
	students      []models.Student
	attendance    []models.AttendanceRecord
	announcements []models.Announcement
	assignments   []models.Assignment
	submissions   []models.Submission
	refreshedAt   time.Time
}

// New builds a Store. Cache may be nil; logger may be nil.
func New(fetcher Fetcher, cache SnapshotCache, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{fetcher: fetcher, cache: cache, logger: logger}
}

// Refresh pulls a fresh snapshot from the sheet and swaps it in. A
// collection whose key was absent from the payload keeps its previous
// contents.
func (s *Store) Refresh(ctx context.Context) error {
	raw, err := s.fetcher.FetchSnapshot(ctx)
	if err != nil {
		return err
	}
	snapshot := sheet.Normalize(raw)
	s.apply(snapshot)

	if s.cache != nil {
		if err := s.cache.SetSnapshot(ctx, snapshot); err != nil {
			s.logger.Warn("snapshot cache write failed", zap.Error(err))
		}
	}
	return nil
}

// Hydrate fills the store at startup, preferring a cached snapshot and
// falling back to a live refresh.
func (s *Store) Hydrate(ctx context.Context) error {
	if s.cache != nil {
		if snapshot, err := s.cache.GetSnapshot(ctx); err == nil && snapshot != nil {
			s.apply(snapshot)
			return nil
		}
	}
	return s.Refresh(ctx)
}

func (s *Store) apply(snapshot *models.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snapshot.Students != nil {
		s.students = snapshot.Students
	}
	if snapshot.Attendance != nil {
		s.attendance = snapshot.Attendance
	}
	if snapshot.Announcements != nil {
		s.announcements = snapshot.Announcements
	}
	if snapshot.Assignments != nil {
		s.assignments = snapshot.Assignments
	}
	if snapshot.Submissions != nil {
		s.submissions = snapshot.Submissions
	}
	s.refreshedAt = time.Now()
}

// RefreshedAt reports when the store last accepted a snapshot.
func (s *Store) RefreshedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshedAt
}

// FindStudent looks up one roster entry by exact id.
func (s *Store) FindStudent(id string) (models.Student, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, student := range s.students {
		if student.ID == id {
			return student, true
		}
	}
	return models.Student{}, false
}

// ListStudents returns the filtered roster ordered by level under Thai
// collation, then by room ascending, then by id. A fresh collator is built
// per call; collate.Collator is not safe for concurrent use.
func (s *Store) ListStudents(filter models.StudentFilter) []models.Student {
	s.mu.RLock()
	out := make([]models.Student, 0, len(s.students))
	for _, student := range s.students {
		if filter.Matches(student) {
			out = append(out, student)
		}
	}
	s.mu.RUnlock()

	collator := collate.New(language.Thai)
	sort.SliceStable(out, func(i, j int) bool {
		if c := collator.CompareString(out[i].Level, out[j].Level); c != 0 {
			return c < 0
		}
		if out[i].Room != out[j].Room {
			return out[i].Room < out[j].Room
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ApplyStudent optimistically inserts or replaces a roster entry.
func (s *Store) ApplyStudent(student models.Student) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.students {
		if existing.ID == student.ID {
			s.students[i] = student
			return
		}
	}
	s.students = append(s.students, student)
}

// RemoveStudent optimistically drops a roster entry.
func (s *Store) RemoveStudent(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.students {
		if existing.ID == id {
			s.students = append(s.students[:i], s.students[i+1:]...)
			return
		}
	}
}

// DayRecords returns the recorded statuses for one calendar day keyed by
// student id.
func (s *Store) DayRecords(date string) map[string]models.AttendanceStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]models.AttendanceStatus)
	for _, record := range s.attendance {
		if record.Date == date {
			out[record.StudentID] = record.Status
		}
	}
	return out
}

// HasDay reports whether any record exists for the given day.
func (s *Store) HasDay(date string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, record := range s.attendance {
		if record.Date == date {
			return true
		}
	}
	return false
}

// TallyFor counts one student's statuses across the whole ledger.
func (s *Store) TallyFor(studentID string) models.AttendanceTally {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var tally models.AttendanceTally
	for _, record := range s.attendance {
		if record.StudentID == studentID {
			tally.Add(record.Status)
		}
	}
	return tally
}

// ReplaceDay optimistically swaps all records for one day with the given
// entries, mirroring the whole-day replace the sheet script performs.
func (s *Store) ReplaceDay(date string, entries []models.AttendanceEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := make([]models.AttendanceRecord, 0, len(s.attendance)+len(entries))
	for _, record := range s.attendance {
		if record.Date != date {
			kept = append(kept, record)
		}
	}
	for _, entry := range entries {
		kept = append(kept, models.AttendanceRecord{
			Date:      date,
			StudentID: entry.StudentID,
			Status:    entry.Status,
		})
	}
	s.attendance = kept
}

// Announcements returns a copy of the announcement collection.
func (s *Store) Announcements() []models.Announcement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Announcement, len(s.announcements))
	copy(out, s.announcements)
	return out
}

// UpsertAnnouncement optimistically inserts or replaces an announcement.
func (s *Store) UpsertAnnouncement(a models.Announcement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.announcements {
		if existing.ID == a.ID {
			s.announcements[i] = a
			return
		}
	}
	s.announcements = append(s.announcements, a)
}

// Assignments returns a copy of the assignment collection.
func (s *Store) Assignments() []models.Assignment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Assignment, len(s.assignments))
	copy(out, s.assignments)
	return out
}

// FindAssignment looks up one assignment by id.
func (s *Store) FindAssignment(id string) (models.Assignment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, assignment := range s.assignments {
		if assignment.ID == id {
			return assignment, true
		}
	}
	return models.Assignment{}, false
}

// UpsertAssignment optimistically inserts or replaces an assignment.
func (s *Store) UpsertAssignment(a models.Assignment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.assignments {
		if existing.ID == a.ID {
			s.assignments[i] = a
			return
		}
	}
	s.assignments = append(s.assignments, a)
}

// FindSubmission resolves a student's submission for an assignment under
// the given lookup policy. With LookupFirst the earliest ledger entry
// wins; with LookupLatest the most recent one does.
func (s *Store) FindSubmission(assignmentID, studentID string, policy models.LookupPolicy) (models.Submission, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var found models.Submission
	var ok bool
	for _, sub := range s.submissions {
		if sub.AssignmentID != assignmentID || sub.StudentID != studentID {
			continue
		}
		if policy == models.LookupFirst {
			return sub, true
		}
		found, ok = sub, true
	}
	return found, ok
}

// FindSubmissionByID looks up a submission by its own id.
func (s *Store) FindSubmissionByID(id string) (models.Submission, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sub := range s.submissions {
		if sub.ID == id {
			return sub, true
		}
	}
	return models.Submission{}, false
}

// SubmissionsFor returns all of one student's submissions in ledger order.
func (s *Store) SubmissionsFor(studentID string) []models.Submission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Submission
	for _, sub := range s.submissions {
		if sub.StudentID == studentID {
			out = append(out, sub)
		}
	}
	return out
}

// AppendSubmission optimistically appends to the submission ledger.
func (s *Store) AppendSubmission(sub models.Submission) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions = append(s.submissions, sub)
}

// ApplyEvaluation optimistically records a verdict on a submission.
func (s *Store) ApplyEvaluation(submissionID string, status models.EvaluationStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.submissions {
		if sub.ID == submissionID {
			s.submissions[i].Status = status
			return
		}
	}
}
