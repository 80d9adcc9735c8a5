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

type PurchaseRequest struct {
	BuyerID     string          `json:"buyer_id" validate:"required"`
	ScreeningID string          `json:"screening_id" validate:"required"`
	Seats       []model.SeatRef `json:"seats" validate:"required,min=1,max=20,dive"`
}

type PurchaseValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewPurchaseValidator(log *logger.Logger) *PurchaseValidator {
	v := validator.New()

	log.Info("Purchase validator initialized successfully")

	return &PurchaseValidator{
		validate: v,
		logger:   log,
	}
}

func (v *PurchaseValidator) ValidateRequest(req *PurchaseRequest) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *PurchaseValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
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
		case "len":
			message = fmt.Sprintf("%s must be exactly %s characters", err.Field(), err.Param())
		case "uppercase":
			message = fmt.Sprintf("%s must be an uppercase row label", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
