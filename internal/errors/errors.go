// Package errors provides error types and handling for controleopcoes.
// Every failure that reaches the command boundary is an AppError carrying a
// code; all of them terminate the CLI with exit code 1.
package errors

import (
	"errors"
	"fmt"
	"syscall"

	"github.com/aws/smithy-go"
)

// AppError represents an application error with an associated code.
type AppError struct {
	// Code is an error code string for programmatic handling
	Code string
	// Message is a user-friendly error message
	Message string
	// Cause is the underlying error (for error wrapping)
	Cause error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error for error unwrapping.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is allows errors.Is to work with AppError.
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Code != "" && e.Code == t.Code
	}
	return false
}

// Predefined error codes.
const (
	ErrCodeInvalidConfig     = "INVALID_CONFIG"
	ErrCodeInvalidTableSpec  = "INVALID_TABLE_SPEC"
	ErrCodeListTablesFailed  = "LIST_TABLES_FAILED"
	ErrCodeCreateTableFailed = "CREATE_TABLE_FAILED"
)

// New creates an AppError with the given code.
func New(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// ErrInvalidConfig creates a configuration error.
func ErrInvalidConfig(message string, cause error) *AppError {
	return New(ErrCodeInvalidConfig, message, cause)
}

// ErrInvalidTableSpec creates an error for a table spec that fails validation.
func ErrInvalidTableSpec(message string, cause error) *AppError {
	return New(ErrCodeInvalidTableSpec, message, cause)
}

// ErrListTables creates a provisioning error for a failed table listing.
func ErrListTables(cause error) *AppError {
	return New(ErrCodeListTablesFailed, "failed to list tables", cause)
}

// ErrCreateTable creates a provisioning error for a failed table creation.
func ErrCreateTable(tableName string, cause error) *AppError {
	return New(ErrCodeCreateTableFailed, fmt.Sprintf("failed to create table %q", tableName), cause)
}

// IsProvisioningError reports whether err came from a control-plane call.
func IsProvisioningError(err error) bool {
	code := GetErrorCode(err)
	return code == ErrCodeListTablesFailed || code == ErrCodeCreateTableFailed
}

// GetErrorCode extracts the error code from an error.
// Returns empty string if the error is not an AppError.
func GetErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetErrorMessage extracts a user-friendly message from an error.
func GetErrorMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// GetErrorDetails extracts detailed error information including the underlying cause.
// Returns the underlying error message if available, otherwise returns the main error message.
func GetErrorDetails(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Cause != nil {
			return appErr.Cause.Error()
		}
		return appErr.Message
	}
	return err.Error()
}

// APIErrorCode returns the service error code (e.g. ResourceInUseException)
// when err wraps an AWS API error, or an empty string otherwise.
func APIErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

// IsConnectionRefused reports whether err was caused by a refused TCP connection,
// which is what a stopped DynamoDB Local produces.
func IsConnectionRefused(err error) bool {
	return errors.Is(err, syscall.ECONNREFUSED)
}

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
