package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"villa/shared/failure"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusConflict,
		Message: "dates unavailable",
	}

	if f.Error() != "dates unavailable" {
		t.Errorf("expected error message to be 'dates unavailable', got %s", f.Error())
	}
}

func TestBadRequest(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected error
	}{
		{
			name:     "with error",
			input:    errors.New("checkOut must be after checkIn"),
			expected: &failure.Failure{Code: http.StatusBadRequest, Message: "checkOut must be after checkIn"},
		},
		{
			name:     "with nil error",
			input:    nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := failure.BadRequest(tt.input)

			if tt.expected == nil {
				if result != nil {
					t.Errorf("expected nil, got %v", result)
				}

				return
			}

			f, ok := result.(*failure.Failure)
			if !ok {
				t.Fatalf("expected result to be *failure.Failure, got %T", result)
			}

			expectedF := tt.expected.(*failure.Failure)
			if f.Code != expectedF.Code || f.Message != expectedF.Message {
				t.Errorf("expected %+v, got %+v", expectedF, f)
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{
			name:    "bad request from string",
			err:     failure.BadRequestFromString("name is required"),
			code:    http.StatusBadRequest,
			message: "name is required",
		},
		{
			name:    "unauthorized",
			err:     failure.Unauthorized("Unauthorized: Invalid Admin Secret"),
			code:    http.StatusUnauthorized,
			message: "Unauthorized: Invalid Admin Secret",
		},
		{
			name:    "internal error",
			err:     failure.InternalError(errors.New("failed to initiate payment")),
			code:    http.StatusInternalServerError,
			message: "failed to initiate payment",
		},
		{
			name:    "not found",
			err:     failure.NotFound("Booking not found"),
			code:    http.StatusNotFound,
			message: "Booking not found",
		},
		{
			name:    "conflict",
			err:     failure.Conflict("Dates unavailable."),
			code:    http.StatusConflict,
			message: "Dates unavailable.",
		},
		{
			name:    "predefined unauthorized",
			err:     failure.UnauthorizedError,
			code:    http.StatusUnauthorized,
			message: "Unauthorized",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := tt.err.(*failure.Failure)
			if !ok {
				t.Fatalf("expected *failure.Failure, got %T", tt.err)
			}

			if f.Code != tt.code {
				t.Errorf("expected code to be %d, got %d", tt.code, f.Code)
			}

			if f.Message != tt.message {
				t.Errorf("expected message to be %q, got %q", tt.message, f.Message)
			}
		})
	}
}

func TestInternalError_Nil(t *testing.T) {
	if err := failure.InternalError(nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{
			name:     "failure error",
			input:    &failure.Failure{Code: http.StatusBadRequest, Message: "test"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "wrapped failure error",
			input:    fmt.Errorf("create booking: %w", failure.Conflict("taken")),
			expected: http.StatusConflict,
		},
		{
			name:     "regular error",
			input:    errors.New("regular error"),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "nil error",
			input:    nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := failure.GetCode(tt.input)
			if result != tt.expected {
				t.Errorf("expected code to be %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestIsFailure(t *testing.T) {
	if !failure.IsFailure(fmt.Errorf("wrapped: %w", failure.NotFound("Booking not found"))) {
		t.Error("expected wrapped failure to be detected")
	}

	if failure.IsFailure(errors.New("plain")) {
		t.Error("expected plain error not to be a failure")
	}

	if failure.IsFailure(nil) {
		t.Error("expected nil not to be a failure")
	}
}
