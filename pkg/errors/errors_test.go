package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestWrap(t *testing.T) {
	originalErr := errors.New("snapshot write failed")
	wrapped := Wrap(originalErr, CodeStorage, "storage error", http.StatusInternalServerError)

	if wrapped.Err != originalErr {
		t.Errorf("expected wrapped error to contain original error")
	}
	if wrapped.Code != CodeStorage {
		t.Errorf("expected code %s, got %s", CodeStorage, wrapped.Code)
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name: "without underlying error",
			appErr: &AppError{
				Code:    CodeSeatOccupied,
				Message: "seat A5 is already occupied",
			},
			expected: "SEAT_OCCUPIED: seat A5 is already occupied",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeGateFailed,
				Message: "payment settlement was interrupted",
				Err:     errors.New("context canceled"),
			},
			expected: "GATE_FAILED: payment settlement was interrupted (caused by: context canceled)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.appErr.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	appErr := GateFailed(originalErr)

	if unwrapped := errors.Unwrap(appErr); unwrapped != originalErr {
		t.Errorf("Unwrap() should return original error")
	}
}

func TestSelectionConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"seat not found", SeatNotFound("Z99"), CodeSeatNotFound, http.StatusUnprocessableEntity},
		{"seat occupied", SeatOccupied("A5"), CodeSeatOccupied, http.StatusConflict},
		{"duplicate selection", DuplicateSelection("A1"), CodeDuplicateSelection, http.StatusUnprocessableEntity},
		{"conflict", Conflict("screening overlaps"), CodeConflict, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, tt.err.Code)
			}
			if tt.err.HTTPStatus != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, tt.err.HTTPStatus)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := SeatOccupied("B3")
	if !Is(err, CodeSeatOccupied) {
		t.Error("Is() should match the error code")
	}
	if Is(err, CodeConflict) {
		t.Error("Is() should not match a different code")
	}
	if Is(errors.New("plain"), CodeConflict) {
		t.Error("Is() should reject non-AppError values")
	}
}
