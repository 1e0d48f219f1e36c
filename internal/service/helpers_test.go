package service

import (
	"context"
	"errors"

	"github.com/nbdwit/club-api/internal/models"
)

// stubStore is an in-memory stand-in for the snapshot store. Only the
// behavior the service under test touches needs filling in.
type stubStore struct {
	students      []models.Student
	attendance    []models.AttendanceRecord
	announcements []models.Announcement
	assignments   []models.Assignment
	submissions   []models.Submission

	refreshCalls int
	refreshErr   error
}

func (s *stubStore) FindStudent(id string) (models.Student, bool) {
	for _, student := range s.students {
		if student.ID == id {
			return student, true
		}
	}
	return models.Student{}, false
}

func (s *stubStore) ListStudents(filter models.StudentFilter) []models.Student {
	out := make([]models.Student, 0, len(s.students))
	for _, student := range s.students {
		if filter.Matches(student) {
			out = append(out, student)
		}
	}
	return out
}

func (s *stubStore) ApplyStudent(student models.Student) {
	for i, existing := range s.students {
		if existing.ID == student.ID {
			s.students[i] = student
			return
		}
	}
	s.students = append(s.students, student)
}

func (s *stubStore) RemoveStudent(id string) {
	for i, existing := range s.students {
		if existing.ID == id {
			s.students = append(s.students[:i], s.students[i+1:]...)
			return
		}
	}
}

func (s *stubStore) DayRecords(date string) map[string]models.AttendanceStatus {
	out := make(map[string]models.AttendanceStatus)
	for _, record := range s.attendance {
		if record.Date == date {
			out[record.StudentID] = record.Status
		}
	}
	return out
}

func (s *stubStore) HasDay(date string) bool {
	for _, record := range s.attendance {
		if record.Date == date {
			return true
		}
	}
	return false
}

func (s *stubStore) TallyFor(studentID string) models.AttendanceTally {
	var tally models.AttendanceTally
	for _, record := range s.attendance {
		if record.StudentID == studentID {
			tally.Add(record.Status)
		}
	}
	return tally
}

func (s *stubStore) ReplaceDay(date string, entries []models.AttendanceEntry) {
	kept := s.attendance[:0]
	for _, record := range s.attendance {
		if record.Date != date {
			kept = append(kept, record)
		}
	}
	for _, entry := range entries {
		kept = append(kept, models.AttendanceRecord{Date: date, StudentID: entry.StudentID, Status: entry.Status})
	}
	s.attendance = kept
}

func (s *stubStore) Announcements() []models.Announcement {
	out := make([]models.Announcement, len(s.announcements))
	copy(out, s.announcements)
	return out
}

func (s *stubStore) UpsertAnnouncement(a models.Announcement) {
	for i, existing := range s.announcements {
		if existing.ID == a.ID {
			s.announcements[i] = a
			return
		}
	}
	s.announcements = append(s.announcements, a)
}

func (s *stubStore) Assignments() []models.Assignment {
	out := make([]models.Assignment, len(s.assignments))
	copy(out, s.assignments)
	return out
}

func (s *stubStore) FindAssignment(id string) (models.Assignment, bool) {
	for _, assignment := range s.assignments {
		if assignment.ID == id {
			return assignment, true
		}
	}
	return models.Assignment{}, false
}

func (s *stubStore) UpsertAssignment(a models.Assignment) {
	for i, existing := range s.assignments {
		if existing.ID == a.ID {
			s.assignments[i] = a
			return
		}
	}
	s.assignments = append(s.assignments, a)
}

func (s *stubStore) FindSubmission(assignmentID, studentID string, policy models.LookupPolicy) (models.Submission, bool) {
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

func (s *stubStore) FindSubmissionByID(id string) (models.Submission, bool) {
	for _, sub := range s.submissions {
		if sub.ID == id {
			return sub, true
		}
	}
	return models.Submission{}, false
}

func (s *stubStore) AppendSubmission(sub models.Submission) {
	s.submissions = append(s.submissions, sub)
}

func (s *stubStore) ApplyEvaluation(submissionID string, status models.EvaluationStatus) {
	for i, sub := range s.submissions {
		if sub.ID == submissionID {
			s.submissions[i].Status = status
			return
		}
	}
}

func (s *stubStore) Refresh(ctx context.Context) error {
	s.refreshCalls++
	return s.refreshErr
}

// stubSink captures forwarded mutations.
type stubSink struct {
	mutations []models.Mutation
	err       error
}

func (s *stubSink) Submit(ctx context.Context, m models.Mutation) error {
	if s.err != nil {
		return s.err
	}
	s.mutations = append(s.mutations, m)
	return nil
}

var errSinkDown = errors.New("sheet unreachable")
