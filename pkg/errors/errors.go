package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	CodeNotFound           = "NOT_FOUND"
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidInput       = "INVALID_INPUT"
	CodeConflict           = "CONFLICT"
	CodeSeatNotFound       = "SEAT_NOT_FOUND"
	CodeSeatOccupied       = "SEAT_OCCUPIED"
	CodeDuplicateSelection = "DUPLICATE_SELECTION"
	CodeGateFailed         = "GATE_FAILED"
	CodeStorage            = "STORAGE_ERROR"
	CodeInternal           = "INTERNAL_ERROR"
)

type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) StatusCode() int {
	return e.HTTPStatus
}

type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *AppError) ToJSON() []byte {
	data, _ := json.Marshal(ErrorResponse{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
	return data
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

func Wrap(err error, code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

// WithCause attaches the underlying error so errors.Is can match the
// domain sentinel behind the response-facing error.
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

func NotFoundWithID(resource, id string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details: map[string]any{
			"resource": resource,
			"id":       id,
		},
	}
}

func Validation(message string, details map[string]any) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    details,
	}
}

func InvalidInput(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidInput,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// Conflict reports a scheduling overlap. Details should carry the conflicting
// occupation so the caller can correct the request.
func Conflict(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

func SeatNotFound(seat string) *AppError {
	return &AppError{
		Code:       CodeSeatNotFound,
		Message:    fmt.Sprintf("seat %s does not exist in this auditorium", seat),
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"seat": seat},
	}
}

func SeatOccupied(seat string) *AppError {
	return &AppError{
		Code:       CodeSeatOccupied,
		Message:    fmt.Sprintf("seat %s is already occupied", seat),
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"seat": seat},
	}
}

func DuplicateSelection(seat string) *AppError {
	return &AppError{
		Code:       CodeDuplicateSelection,
		Message:    fmt.Sprintf("seat %s was selected more than once", seat),
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"seat": seat},
	}
}

func GateFailed(err error) *AppError {
	return &AppError{
		Code:       CodeGateFailed,
		Message:    "payment settlement was interrupted",
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

func Storage(message string, err error) *AppError {
	return &AppError{
		Code:       CodeStorage,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

func AsAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Internal("An unexpected error occurred", err)
}

// Is reports whether err is an AppError carrying the given code.
func Is(err error, code string) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code == code
}
