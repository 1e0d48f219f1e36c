package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/nbdwit/club-api/internal/models"
	appErrors "github.com/nbdwit/club-api/pkg/errors"
)

// rosterStore is the slice of the snapshot store the roster service needs.
type rosterStore interface {
	FindStudent(id string) (models.Student, bool)
	ListStudents(filter models.StudentFilter) []models.Student
	ApplyStudent(student models.Student)
	RemoveStudent(id string)
	Refresh(ctx context.Context) error
}

// mutationSink forwards writes to the sheet. Implemented by sheet.Client.
type mutationSink interface {
	Submit(ctx context.Context, m models.Mutation) error
}

// RegisterStudentRequest enrolls one student.
type RegisterStudentRequest struct {
	ID    string `json:"id" validate:"required,student_id"`
	Name  string `json:"name" validate:"required"`
	Level string `json:"level" validate:"required,club_level"`
	Room  int    `json:"room" validate:"required,min=1,max=13"`
}

// RosterService manages the club roster. Writes go to the sheet first,
// then the local view is updated optimistically and re-synced.
type RosterService struct {
	store    rosterStore
	sink     mutationSink
	validate *validator.Validate
	logger   *zap.Logger
}

// NewRosterService constructs the roster service.
func NewRosterService(store rosterStore, sink mutationSink, validate *validator.Validate, logger *zap.Logger) *RosterService {
	if validate == nil {
		validate = newValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{store: store, sink: sink, validate: validate, logger: logger}
}

// Register enrolls a new student. Exact id duplicates are rejected before
// anything reaches the sheet.
func (s *RosterService) Register(ctx context.Context, req RegisterStudentRequest) (models.Student, error) {
	if err := s.validate.Struct(req); err != nil {
		return models.Student{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration")
	}

	if _, exists := s.store.FindStudent(req.ID); exists {
		return models.Student{}, appErrors.Clone(appErrors.ErrDuplicate, "student id already registered")
	}

	student := models.Student{ID: req.ID, Name: req.Name, Level: req.Level, Room: req.Room}
	if err := s.sink.Submit(ctx, models.RegistrationMutation(student)); err != nil {
		return models.Student{}, err
	}

	s.store.ApplyStudent(student)
	s.resync(ctx)
	return student, nil
}

// Update rewrites a roster entry. The sheet script upserts by id, so no
// duplicate check applies here.
func (s *RosterService) Update(ctx context.Context, id string, req RegisterStudentRequest) (models.Student, error) {
	req.ID = id
	if err := s.validate.Struct(req); err != nil {
		return models.Student{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student update")
	}

	if _, exists := s.store.FindStudent(id); !exists {
		return models.Student{}, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}

	student := models.Student{ID: id, Name: req.Name, Level: req.Level, Room: req.Room}
	if err := s.sink.Submit(ctx, models.RegistrationMutation(student)); err != nil {
		return models.Student{}, err
	}

	s.store.ApplyStudent(student)
	s.resync(ctx)
	return student, nil
}

// Delete removes a roster entry.
func (s *RosterService) Delete(ctx context.Context, id string) error {
	if _, exists := s.store.FindStudent(id); !exists {
		return appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}

	if err := s.sink.Submit(ctx, models.DeleteStudentMutation(id)); err != nil {
		return err
	}

	s.store.RemoveStudent(id)
	s.resync(ctx)
	return nil
}

// List returns the sorted, optionally filtered roster.
func (s *RosterService) List(filter models.StudentFilter) []models.Student {
	return s.store.ListStudents(filter)
}

// Get returns one roster entry.
func (s *RosterService) Get(id string) (models.Student, error) {
	student, ok := s.store.FindStudent(id)
	if !ok {
		return models.Student{}, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return student, nil
}

// resync pulls a fresh snapshot after a forwarded write. The optimistic
// local apply already covers the read path, so failures only warn.
func (s *RosterService) resync(ctx context.Context) {
	if err := s.store.Refresh(ctx); err != nil {
		s.logger.Warn("post-write refresh failed", zap.Error(err))
	}
}
