package testutil

import (
	"errors"
	"testing"

	apperrors "homebook/internal/errors"
)

// AssertAppError checks that err is an *AppError with the expected error code.
// For internal errors the wrapped cause is included in the failure.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	appErr := requireAppError(t, err, expectedCode)
	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s, cause: %v)",
			expectedCode, appErr.Code, appErr.Message, appErr.Internal)
	}
}

// AssertErrorIs checks that err matches sentinel by code and answers with the
// sentinel's HTTP status.
func AssertErrorIs(t *testing.T, err error, sentinel *apperrors.AppError) {
	t.Helper()

	appErr := requireAppError(t, err, sentinel.Code)
	if !errors.Is(appErr, sentinel) {
		t.Errorf("expected %s, got %s (cause: %v)", sentinel.Code, appErr.Code, appErr.Internal)
		return
	}
	if appErr.StatusCode != sentinel.StatusCode {
		t.Errorf("expected status %d for %s, got %d", sentinel.StatusCode, sentinel.Code, appErr.StatusCode)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func requireAppError(t *testing.T, err error, expectedCode string) *apperrors.AppError {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}
	return appErr
}
