package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// MutationMode names a write operation understood by the sheet web app.
type MutationMode string

const (
	ModeRegistration  MutationMode = "registration"
	ModeDeleteStudent MutationMode = "delete_student"
	ModeAttendance    MutationMode = "attendance"
	ModeAnnouncement  MutationMode = "announcement"
	ModeAssignment    MutationMode = "assignment"
	ModeSubmission    MutationMode = "submission"
	ModeEvaluate      MutationMode = "evaluate"
)

// Mutation is one form-encoded write forwarded to the sheet. Fields holds
// the flat key/value pairs alongside the mode field.
type Mutation struct {
	Mode   MutationMode
	Fields map[string]string
}

func boolField(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

// RegistrationMutation enrolls or updates a roster entry.
func RegistrationMutation(s Student) Mutation {
	return Mutation{
		Mode: ModeRegistration,
		Fields: map[string]string{
			"id":    s.ID,
			"name":  s.Name,
			"level": s.Level,
			"room":  strconv.Itoa(s.Room),
		},
	}
}

// DeleteStudentMutation removes a roster entry by id.
func DeleteStudentMutation(studentID string) Mutation {
	return Mutation{
		Mode:   ModeDeleteStudent,
		Fields: map[string]string{"id": studentID},
	}
}

// AttendanceMutation replaces one day's records. The entries travel as a
// JSON array in the records field, mirroring the sheet script's contract.
func AttendanceMutation(date string, entries []AttendanceEntry) (Mutation, error) {
	records, err := json.Marshal(entries)
	if err != nil {
		return Mutation{}, err
	}
	return Mutation{
		Mode: ModeAttendance,
		Fields: map[string]string{
			"date":    date,
			"records": string(records),
		},
	}, nil
}

// AnnouncementMutation creates or updates an announcement. Boolean flags
// travel as the strings "true"/"false".
func AnnouncementMutation(a Announcement) Mutation {
	return Mutation{
		Mode: ModeAnnouncement,
		Fields: map[string]string{
			"id":        a.ID,
			"title":     a.Title,
			"content":   a.Content,
			"imageUrl":  a.ImageURL,
			"isPinned":  boolField(a.IsPinned),
			"isHidden":  boolField(a.IsHidden),
			"createdAt": a.CreatedAt,
		},
	}
}

// AssignmentMutation creates or updates an assignment.
func AssignmentMutation(a Assignment) Mutation {
	return Mutation{
		Mode: ModeAssignment,
		Fields: map[string]string{
			"id":           a.ID,
			"title":        a.Title,
			"description":  a.Description,
			"dueDate":      a.DueDate,
			"allowedTypes": encodeTypeSet(a.AllowedTypes),
			"createdAt":    a.CreatedAt,
		},
	}
}

// SubmissionMutation appends a student submission.
func SubmissionMutation(s Submission) Mutation {
	return Mutation{
		Mode: ModeSubmission,
		Fields: map[string]string{
			"id":           s.ID,
			"assignmentId": s.AssignmentID,
			"studentId":    s.StudentID,
			"type":         string(s.Type),
			"content":      s.Content,
			"submittedAt":  s.SubmittedAt,
		},
	}
}

// EvaluateMutation records a verdict for a submission.
func EvaluateMutation(submissionID string, status EvaluationStatus) Mutation {
	return Mutation{
		Mode: ModeEvaluate,
		Fields: map[string]string{
			"id":     submissionID,
			"status": string(status),
		},
	}
}

func encodeTypeSet(s SubmissionTypeSet) string {
	if s.Empty() {
		return ""
	}
	var names []string
	if s.Image {
		names = append(names, string(SubmissionImage))
	}
	if s.Link {
		names = append(names, string(SubmissionLink))
	}
	if s.File {
		names = append(names, string(SubmissionFile))
	}
	return strings.Join(names, ",")
}

// DecodeTypeSet parses a comma-separated allowedTypes cell.
func DecodeTypeSet(raw string) SubmissionTypeSet {
	var set SubmissionTypeSet
	for _, part := range strings.Split(raw, ",") {
		switch SubmissionType(strings.TrimSpace(part)) {
		case SubmissionImage:
			set.Image = true
		case SubmissionLink:
			set.Link = true
		case SubmissionFile:
			set.File = true
		}
	}
	return set
}
