package sheet

import (
	"strings"

	"github.com/nbdwit/club-api/internal/models"
)

// The sheet script occasionally returns the header row of a tab as a data
// row. Each collection therefore filters rows whose identifying cell holds
// one of the known header sentinels. Matching is case-insensitive. Rows
// that are malformed but not headers pass through untouched; downstream
// consumers decide what to do with them.

var studentHeaderSentinels = map[string]struct{}{
	"id":            {},
	"เลขประจำตัว":   {},
	"รหัสประจำตัว": {},
}

// Normalize converts a raw snapshot into typed collections. Nil input
// collections stay nil so the store can tell an absent key from an empty
// tab.
func Normalize(raw *models.RawSnapshot) *models.Snapshot {
	if raw == nil {
		return &models.Snapshot{}
	}
	return &models.Snapshot{
		Students:      normalizeStudents(raw.Students),
		Attendance:    normalizeAttendance(raw.Attendance),
		Announcements: normalizeAnnouncements(raw.Announcements),
		Assignments:   normalizeAssignments(raw.Assignments),
		Submissions:   normalizeSubmissions(raw.Submissions),
	}
}

func isStudentHeader(id string) bool {
	_, ok := studentHeaderSentinels[strings.ToLower(id)]
	return ok
}

func isIDHeader(id string) bool {
	return strings.EqualFold(id, "id")
}

// truncateDate cuts an ISO timestamp down to its calendar day.
func truncateDate(raw string) string {
	if i := strings.Index(raw, "T"); i >= 0 {
		return raw[:i]
	}
	return raw
}

func normalizeStudents(rows []models.RawStudent) []models.Student {
	if rows == nil {
		return nil
	}
	out := make([]models.Student, 0, len(rows))
	for _, row := range rows {
		id := strings.TrimSpace(string(row.ID))
		if id == "" || isStudentHeader(id) {
			continue
		}
		out = append(out, models.Student{
			ID:    id,
			Name:  strings.TrimSpace(string(row.Name)),
			Level: strings.TrimSpace(string(row.Level)),
			Room:  int(row.Room),
		})
	}
	return out
}

func normalizeAttendance(rows []models.RawAttendance) []models.AttendanceRecord {
	if rows == nil {
		return nil
	}
	out := make([]models.AttendanceRecord, 0, len(rows))
	for _, row := range rows {
		id := strings.TrimSpace(string(row.StudentID))
		if id == "" || strings.EqualFold(id, "studentid") {
			continue
		}
		out = append(out, models.AttendanceRecord{
			Date:      truncateDate(strings.TrimSpace(string(row.Date))),
			StudentID: id,
			Status:    models.AttendanceStatus(strings.TrimSpace(string(row.Status))),
		})
	}
	return out
}

func normalizeAnnouncements(rows []models.RawAnnouncement) []models.Announcement {
	if rows == nil {
		return nil
	}
	out := make([]models.Announcement, 0, len(rows))
	for _, row := range rows {
		id := strings.TrimSpace(string(row.ID))
		if id == "" || isIDHeader(id) {
			continue
		}
		createdAt := strings.TrimSpace(string(row.CreatedAt))
		out = append(out, models.Announcement{
			ID:          id,
			Title:       string(row.Title),
			Content:     string(row.Content),
			ImageURL:    strings.TrimSpace(string(row.ImageURL)),
			IsPinned:    bool(row.IsPinned),
			IsHidden:    bool(row.IsHidden),
			CreatedAt:   createdAt,
			CreatedTime: models.ParseCreatedAt(createdAt),
		})
	}
	return out
}

func normalizeAssignments(rows []models.RawAssignment) []models.Assignment {
	if rows == nil {
		return nil
	}
	out := make([]models.Assignment, 0, len(rows))
	for _, row := range rows {
		id := strings.TrimSpace(string(row.ID))
		if id == "" || isIDHeader(id) {
			continue
		}
		out = append(out, models.Assignment{
			ID:           id,
			Title:        string(row.Title),
			Description:  string(row.Description),
			DueDate:      truncateDate(strings.TrimSpace(string(row.DueDate))),
			AllowedTypes: models.DecodeTypeSet(string(row.AllowedTypes)),
			CreatedAt:    strings.TrimSpace(string(row.CreatedAt)),
		})
	}
	return out
}

func normalizeSubmissions(rows []models.RawSubmission) []models.Submission {
	if rows == nil {
		return nil
	}
	out := make([]models.Submission, 0, len(rows))
	for _, row := range rows {
		id := strings.TrimSpace(string(row.ID))
		if id == "" || isIDHeader(id) {
			continue
		}
		out = append(out, models.Submission{
			ID:           id,
			AssignmentID: strings.TrimSpace(string(row.AssignmentID)),
			StudentID:    strings.TrimSpace(string(row.StudentID)),
			Type:         models.SubmissionType(strings.TrimSpace(string(row.Type))),
			Content:      string(row.Content),
			SubmittedAt:  strings.TrimSpace(string(row.SubmittedAt)),
			Status:       models.EvaluationStatus(strings.TrimSpace(string(row.Status))),
		})
	}
	return out
}
