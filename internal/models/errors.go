// Package models contains the forum's persisted rows, read projections and error types.
package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error kinds carried in AppError.Code.
const (
	CodeValidation           = "VALIDATION_ERROR"
	CodeNotFound             = "NOT_FOUND"
	CodeForbidden            = "FORBIDDEN"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeConflict             = "CONFLICT"
	CodeMethodNotImplemented = "METHOD_NOT_IMPLEMENTED"
	CodeInternal             = "INTERNAL_ERROR"
)

// ErrorResponse is the body written for every failed request.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// AppError represents a custom application error.
//
// Reason holds the fixed machine-readable code of validation failures
// (for example NEW_COMMENT.NOT_CONTAIN_NEEDED_PROPERTY) and is empty otherwise.
type AppError struct {
	Code    string
	Reason  string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: message,
	}
}

func NewValidationError(reason, message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Reason:  reason,
		Message: message,
	}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

func NewConflictError(message string, err error) *AppError {
	return &AppError{
		Code:    CodeConflict,
		Message: message,
		Err:     err,
	}
}

// NewMethodNotImplementedError reports a repository contract with no backing adapter.
func NewMethodNotImplementedError(contract string) *AppError {
	return &AppError{
		Code:    CodeMethodNotImplemented,
		Reason:  contract + ".METHOD_NOT_IMPLEMENTED",
		Message: fmt.Sprintf("%s has no concrete implementation", contract),
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "terjadi kegagalan pada server kami",
		Err:     err,
	}
}

// HasCode reports whether err wraps an AppError of the given kind.
func HasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

func IsNotFound(err error) bool   { return HasCode(err, CodeNotFound) }
func IsForbidden(err error) bool  { return HasCode(err, CodeForbidden) }
func IsValidation(err error) bool { return HasCode(err, CodeValidation) }
func IsConflict(err error) bool   { return HasCode(err, CodeConflict) }

func IsUnauthorized(err error) bool { return HasCode(err, CodeUnauthorized) }

// StatusFor maps an error to the HTTP status the API answers with.
func StatusFor(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case CodeValidation:
		return fiber.StatusBadRequest
	case CodeUnauthorized:
		return fiber.StatusUnauthorized
	case CodeForbidden:
		return fiber.StatusForbidden
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondWithError writes the standard failure envelope. Client errors are
// reported as "fail", everything else as "error" without leaking internals.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	response := ErrorResponse{Status: "fail", Message: err.Error()}

	var appErr *AppError
	if errors.As(err, &appErr) {
		response.Message = appErr.Message
	}
	if status >= fiber.StatusInternalServerError {
		response.Status = "error"
		response.Message = "terjadi kegagalan pada server kami"
	}

	return c.Status(status).JSON(response)
}
