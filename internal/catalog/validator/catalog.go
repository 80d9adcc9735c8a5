package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"cinehall/pkg/logger"
	"cinehall/pkg/model"
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

type CatalogValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewCatalogValidator(log *logger.Logger) *CatalogValidator {
	v := validator.New()

	log.Info("Catalog validator initialized successfully")

	return &CatalogValidator{
		validate: v,
		logger:   log,
	}
}

func (v *CatalogValidator) ValidateMovie(movie *model.Movie) error {
	return v.validateStruct(movie)
}

func (v *CatalogValidator) ValidateAuditorium(auditorium *model.Auditorium) error {
	if err := v.validateStruct(auditorium); err != nil {
		return err
	}

	for i, row := range auditorium.Rows {
		if row.Label == "" || row.Seats < 1 {
			return ValidationErrors{
				ValidationError{
					Field:   fmt.Sprintf("Rows[%d]", i),
					Message: "each row needs a label and at least one seat",
				},
			}
		}
	}

	return nil
}

func (v *CatalogValidator) ValidatePerson(person *model.Person) error {
	return v.validateStruct(person)
}

func (v *CatalogValidator) validateStruct(s any) error {
	if err := v.validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *CatalogValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
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
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "e164":
			message = fmt.Sprintf("%s must be in E.164 format (e.g., +525512345678)", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
