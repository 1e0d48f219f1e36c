package models

// SubmissionType identifies how a student hands in work.
type SubmissionType string

const (
	SubmissionImage SubmissionType = "image"
	SubmissionLink  SubmissionType = "link"
	SubmissionFile  SubmissionType = "file"
)

// Valid reports whether t is one of the three accepted submission types.
func (t SubmissionType) Valid() bool {
	switch t {
	case SubmissionImage, SubmissionLink, SubmissionFile:
		return true
	}
	return false
}

// SubmissionTypeSet declares which submission types an assignment accepts.
// The zero value accepts everything.
type SubmissionTypeSet struct {
	Image bool `json:"image"`
	Link  bool `json:"link"`
	File  bool `json:"file"`
}

// Empty reports whether no type is declared.
func (s SubmissionTypeSet) Empty() bool {
	return !s.Image && !s.Link && !s.File
}

// Allows reports whether t is accepted. An empty set allows every type.
func (s SubmissionTypeSet) Allows(t SubmissionType) bool {
	if s.Empty() {
		return true
	}
	switch t {
	case SubmissionImage:
		return s.Image
	case SubmissionLink:
		return s.Link
	case SubmissionFile:
		return s.File
	}
	return false
}

// Assignment is a piece of club work with a due date.
type Assignment struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description,omitempty"`
	DueDate      string            `json:"dueDate"`
	AllowedTypes SubmissionTypeSet `json:"allowedTypes"`
	CreatedAt    string            `json:"createdAt,omitempty"`
}

// EvaluationStatus is a teacher's verdict on a submission, stored with the
// Thai literals the sheet uses.
type EvaluationStatus string

const (
	EvaluationPass EvaluationStatus = "ผ"
	EvaluationFail EvaluationStatus = "มผ"
)

// Valid reports whether s is one of the two verdicts.
func (s EvaluationStatus) Valid() bool {
	return s == EvaluationPass || s == EvaluationFail
}

// Submission is one student's handed-in work for an assignment. Status is
// empty until a teacher evaluates it.
type Submission struct {
	ID           string           `json:"id"`
	AssignmentID string           `json:"assignmentId"`
	StudentID    string           `json:"studentId"`
	Type         SubmissionType   `json:"type"`
	Content      string           `json:"content"`
	SubmittedAt  string           `json:"submittedAt"`
	Status       EvaluationStatus `json:"status,omitempty"`
}

// SubmissionState is the derived per-student view of an assignment.
type SubmissionState string

const (
	StateNotSubmitted SubmissionState = "NOT_SUBMITTED"
	StatePending      SubmissionState = "PENDING"
	StatePass         SubmissionState = "PASS"
	StateFail         SubmissionState = "FAIL"
)

// StateOf derives the submission state from an evaluation status.
func StateOf(sub *Submission) SubmissionState {
	if sub == nil {
		return StateNotSubmitted
	}
	switch sub.Status {
	case EvaluationPass:
		return StatePass
	case EvaluationFail:
		return StateFail
	}
	return StatePending
}

// LookupPolicy selects which of several submissions by the same student
// counts for status display.
type LookupPolicy string

const (
	LookupFirst  LookupPolicy = "first"
	LookupLatest LookupPolicy = "latest"
)
