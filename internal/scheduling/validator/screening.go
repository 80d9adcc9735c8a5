package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"cinehall/pkg/logger"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// ScheduleRequest is the inbound payload for placing a screening.
type ScheduleRequest struct {
	AdminID      string    `json:"admin_id" validate:"required"`
	MovieID      string    `json:"movie_id" validate:"required"`
	AuditoriumID string    `json:"auditorium_id" validate:"required"`
	StartTime    time.Time `json:"start_time" validate:"required"`
}

type ScreeningValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewScreeningValidator(log *logger.Logger) *ScreeningValidator {
	v := validator.New()

	log.Info("Screening validator initialized successfully")

	return &ScreeningValidator{
		validate: v,
		logger:   log,
	}
}

func (v *ScreeningValidator) ValidateRequest(req *ScheduleRequest) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if req.StartTime.Before(time.Now()) {
		return ValidationErrors{
			ValidationError{
				Field:   "StartTime",
				Message: "start_time cannot be in the past",
			},
		}
	}

	return nil
}

// Conflicts reports whether a candidate window collides with an existing
// one once the turnaround buffer is applied to both ends of the existing
// window. The comparison is strict, so a candidate that exactly touches
// the padded boundary is admitted.
func Conflicts(newStart, newEnd, existingStart, existingEnd time.Time, buffer time.Duration) bool {
	return newStart.Before(existingEnd.Add(buffer)) && newEnd.After(existingStart.Add(-buffer))
}

func (v *ScreeningValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
