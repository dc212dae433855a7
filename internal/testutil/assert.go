package testutil

import (
	"testing"

	apperrors "github.com/controleopcoes/controleopcoes/internal/errors"

	"github.com/stretchr/testify/assert"
)

// AssertAppErrorCode checks if the error has a specific error code.
func AssertAppErrorCode(t *testing.T, err error, expectedCode string) bool {
	t.Helper()
	code := apperrors.GetErrorCode(err)
	if code != expectedCode {
		return assert.Fail(t, "Error code mismatch", "Expected error code %q, got %q", expectedCode, code)
	}
	return true
}

// AssertExitCode checks the process exit code err maps to.
func AssertExitCode(t *testing.T, err error, expected int) bool {
	t.Helper()
	return assert.Equal(t, expected, apperrors.ExitCode(err), "unexpected exit code for error %v", err)
}
