package validator

import (
	"github.com/go-playground/validator/v10"

	"github.com/meetingintel-team/meeting-intel/internal/domain/entities"
)

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance with pipeline-specific rules
func New() *CustomValidator {
	v := validator.New()

	// meeting_type restricts a field to the recognized type tags
	_ = v.RegisterValidation("meeting_type", func(fl validator.FieldLevel) bool {
		return entities.IsValidMeetingType(fl.Field().String())
	})

	return &CustomValidator{v: v}
}

// Validate performs struct validation
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}
