package service

import (
	"github.com/go-playground/validator/v10"

	"github.com/nbdwit/club-api/internal/models"
)

// RegisterValidations installs the domain validation rules shared by the
// services. Safe to call more than once on the same validator.
func RegisterValidations(v *validator.Validate) {
	_ = v.RegisterValidation("student_id", func(fl validator.FieldLevel) bool {
		id := fl.Field().String()
		if len(id) != 5 {
			return false
		}
		for _, r := range id {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	})

	_ = v.RegisterValidation("club_level", func(fl validator.FieldLevel) bool {
		return models.ValidLevel(fl.Field().String())
	})

	_ = v.RegisterValidation("attendance_status", func(fl validator.FieldLevel) bool {
		return models.AttendanceStatus(fl.Field().String()).Valid()
	})

	_ = v.RegisterValidation("submission_type", func(fl validator.FieldLevel) bool {
		return models.SubmissionType(fl.Field().String()).Valid()
	})

	_ = v.RegisterValidation("evaluation_status", func(fl validator.FieldLevel) bool {
		return models.EvaluationStatus(fl.Field().String()).Valid()
	})
}

func newValidator() *validator.Validate {
	v := validator.New()
	RegisterValidations(v)
	return v
}
