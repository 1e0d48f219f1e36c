package service

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/nbdwit/club-api/internal/models"
	appErrors "github.com/nbdwit/club-api/pkg/errors"
)

// assignmentStore is the slice of the snapshot store assignments need.
type assignmentStore interface {
	FindStudent(id string) (models.Student, bool)
	Assignments() []models.Assignment
	FindAssignment(id string) (models.Assignment, bool)
	UpsertAssignment(a models.Assignment)
	FindSubmission(assignmentID, studentID string, policy models.LookupPolicy) (models.Submission, bool)
	FindSubmissionByID(id string) (models.Submission, bool)
	AppendSubmission(sub models.Submission)
	ApplyEvaluation(submissionID string, status models.EvaluationStatus)
	Refresh(ctx context.Context) error
}

// SaveAssignmentRequest creates or updates an assignment.
type SaveAssignmentRequest struct {
	ID           string   `json:"id"`
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description"`
	DueDate      string   `json:"dueDate" validate:"required"`
	AllowedTypes []string `json:"allowedTypes" validate:"dive,submission_type"`
}

// SubmitWorkRequest hands in one piece of work.
type SubmitWorkRequest struct {
	AssignmentID string `json:"assignmentId" validate:"required"`
	StudentID    string `json:"studentId" validate:"required,student_id"`
	Type         string `json:"type" validate:"required,submission_type"`
	Content      string `json:"content" validate:"required"`
}

// EvaluateRequest records a teacher verdict on a submission.
type EvaluateRequest struct {
	Status string `json:"status" validate:"required,evaluation_status"`
}

// AssignmentStatus is the per-student view of one assignment.
type AssignmentStatus struct {
	Assignment models.Assignment      `json:"assignment"`
	State      models.SubmissionState `json:"state"`
	Submission *models.Submission     `json:"submission,omitempty"`
}

// AssignmentService manages assignments, the submission ledger and
// evaluations. The ledger is append-only; resubmissions pile up and the
// configured lookup policy decides which one counts.
type AssignmentService struct {
	store    assignmentStore
	sink     mutationSink
	maxBytes int64
	policy   models.LookupPolicy
	validate *validator.Validate
	logger   *zap.Logger
}

// NewAssignmentService constructs the assignment service.
func NewAssignmentService(store assignmentStore, sink mutationSink, maxBytes int64, policy models.LookupPolicy, validate *validator.Validate, logger *zap.Logger) *AssignmentService {
	if maxBytes <= 0 {
		maxBytes = 2 * 1024 * 1024
	}
	if policy != models.LookupLatest {
		policy = models.LookupFirst
	}
	if validate == nil {
		validate = newValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{store: store, sink: sink, maxBytes: maxBytes, policy: policy, validate: validate, logger: logger}
}

// List returns all assignments ordered by due date, then id.
func (s *AssignmentService) List() []models.Assignment {
	assignments := s.store.Assignments()
	sort.SliceStable(assignments, func(i, j int) bool {
		if assignments[i].DueDate != assignments[j].DueDate {
			return assignments[i].DueDate < assignments[j].DueDate
		}
		return assignments[i].ID < assignments[j].ID
	})
	return assignments
}

// Save creates or updates an assignment. New entries get a millisecond
// timestamp id like the rest of the sheet.
func (s *AssignmentService) Save(ctx context.Context, req SaveAssignmentRequest) (models.Assignment, error) {
	if err := s.validate.Struct(req); err != nil {
		return models.Assignment{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment")
	}

	var types models.SubmissionTypeSet
	for _, t := range req.AllowedTypes {
		switch models.SubmissionType(t) {
		case models.SubmissionImage:
			types.Image = true
		case models.SubmissionLink:
			types.Link = true
		case models.SubmissionFile:
			types.File = true
		}
	}

	now := time.Now()
	assignment := models.Assignment{
		ID:           req.ID,
		Title:        req.Title,
		Description:  req.Description,
		DueDate:      req.DueDate,
		AllowedTypes: types,
		CreatedAt:    now.UTC().Format(time.RFC3339),
	}
	if assignment.ID == "" {
		assignment.ID = strconv.FormatInt(now.UnixMilli(), 10)
	} else if existing, ok := s.store.FindAssignment(req.ID); ok {
		assignment.CreatedAt = existing.CreatedAt
	}

	if err := s.sink.Submit(ctx, models.AssignmentMutation(assignment)); err != nil {
		return models.Assignment{}, err
	}

	s.store.UpsertAssignment(assignment)
	s.resync(ctx)
	return assignment, nil
}

// SubmitWork appends one submission to the ledger. The student must be on
// the roster, the assignment must exist, and the type must be one the
// assignment accepts.
func (s *AssignmentService) SubmitWork(ctx context.Context, req SubmitWorkRequest) (models.Submission, error) {
	if err := s.validate.Struct(req); err != nil {
		return models.Submission{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid submission")
	}
	if int64(len(req.Content)) > s.maxBytes {
		return models.Submission{}, appErrors.Clone(appErrors.ErrPayloadTooLarge, "submission too large")
	}

	if _, ok := s.store.FindStudent(req.StudentID); !ok {
		return models.Submission{}, appErrors.Clone(appErrors.ErrNotFound, "student not found in roster")
	}
	assignment, ok := s.store.FindAssignment(req.AssignmentID)
	if !ok {
		return models.Submission{}, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
	}

	subType := models.SubmissionType(req.Type)
	if !assignment.AllowedTypes.Allows(subType) {
		return models.Submission{}, appErrors.Clone(appErrors.ErrValidation, "submission type not accepted for this assignment")
	}

	now := time.Now()
	submission := models.Submission{
		ID:           strconv.FormatInt(now.UnixMilli(), 10),
		AssignmentID: req.AssignmentID,
		StudentID:    req.StudentID,
		Type:         subType,
		Content:      req.Content,
		SubmittedAt:  now.UTC().Format(time.RFC3339),
	}

	if err := s.sink.Submit(ctx, models.SubmissionMutation(submission)); err != nil {
		return models.Submission{}, err
	}

	s.store.AppendSubmission(submission)
	s.resync(ctx)
	return submission, nil
}

// Evaluate records a verdict on one submission.
func (s *AssignmentService) Evaluate(ctx context.Context, submissionID string, req EvaluateRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid evaluation")
	}
	if _, ok := s.store.FindSubmissionByID(submissionID); !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "submission not found")
	}

	status := models.EvaluationStatus(req.Status)
	if err := s.sink.Submit(ctx, models.EvaluateMutation(submissionID, status)); err != nil {
		return err
	}

	s.store.ApplyEvaluation(submissionID, status)
	s.resync(ctx)
	return nil
}

// Status resolves one student's state for one assignment under the
// configured lookup policy.
func (s *AssignmentService) Status(assignmentID, studentID string) (AssignmentStatus, error) {
	assignment, ok := s.store.FindAssignment(assignmentID)
	if !ok {
		return AssignmentStatus{}, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
	}

	if sub, found := s.store.FindSubmission(assignmentID, studentID, s.policy); found {
		return AssignmentStatus{Assignment: assignment, State: models.StateOf(&sub), Submission: &sub}, nil
	}
	return AssignmentStatus{Assignment: assignment, State: models.StateNotSubmitted}, nil
}

// StudentStatuses resolves a student's state across every assignment.
func (s *AssignmentService) StudentStatuses(studentID string) ([]AssignmentStatus, error) {
	if _, ok := s.store.FindStudent(studentID); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found in roster")
	}

	assignments := s.List()
	out := make([]AssignmentStatus, 0, len(assignments))
	for _, assignment := range assignments {
		status := AssignmentStatus{Assignment: assignment, State: models.StateNotSubmitted}
		if sub, found := s.store.FindSubmission(assignment.ID, studentID, s.policy); found {
			status.State = models.StateOf(&sub)
			status.Submission = &sub
		}
		out = append(out, status)
	}
	return out, nil
}

func (s *AssignmentService) resync(ctx context.Context) {
	if err := s.store.Refresh(ctx); err != nil {
		s.logger.Warn("post-write refresh failed", zap.Error(err))
	}
}
