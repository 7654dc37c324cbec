package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes carried by AppError.
const (
	CodeValidation     = "VALIDATION_ERROR"
	CodeBadCredentials = "BAD_CREDENTIALS"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeForbidden      = "FORBIDDEN"
	CodeNotFound       = "NOT_FOUND"
	CodeConflict       = "CONFLICT"
	CodeUpstream       = "UPSTREAM_FAILURE"
	CodeInternal       = "INTERNAL_ERROR"
)

// FieldError is one violated rule on an inbound payload.
type FieldError struct {
	Msg   string `json:"msg"`
	Param string `json:"param,omitempty"`
}

// ErrorResponse is the JSON body written for non-validation failures.
type ErrorResponse struct {
	Msg  string `json:"msg"`
	Code string `json:"code,omitempty"`
}

// ValidationResponse is the JSON body written for validation failures.
type ValidationResponse struct {
	Errors []FieldError `json:"errors"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Fields  []FieldError
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
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

// NewNotFoundMessage builds a not-found error with a client-facing message.
func NewNotFoundMessage(message string) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: message,
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
		Fields:  []FieldError{{Msg: message}},
	}
}

// NewFieldValidationError reports every violated field at once.
func NewFieldValidationError(fields []FieldError) *AppError {
	msg := "Validation failed"
	if len(fields) > 0 {
		msg = fields[0].Msg
	}
	return &AppError{
		Code:    CodeValidation,
		Message: msg,
		Fields:  fields,
	}
}

// NewBadCredentialsError is deliberately vague about which field was wrong.
func NewBadCredentialsError() *AppError {
	return &AppError{
		Code:    CodeBadCredentials,
		Message: "Invalid Credentials",
		Fields:  []FieldError{{Msg: "Invalid Credentials"}},
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: message,
	}
}

// NewConflictError is used for duplicate emails and repeated like/unlike toggles.
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    CodeConflict,
		Message: message,
	}
}

func NewUpstreamError(message string, err error) *AppError {
	return &AppError{
		Code:    CodeUpstream,
		Message: message,
		Err:     err,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Server Error",
		Err:     err,
	}
}

// AsFieldError makes the error render in the {"errors":[{msg}]} shape.
func (e *AppError) AsFieldError() *AppError {
	e.Fields = []FieldError{{Msg: e.Message}}
	return e
}

// HasCode reports whether err is an AppError carrying code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// RespondWithError writes the standardized error envelope.
// Validation-style errors use {"errors":[{msg}]}, everything else {"msg"}.
// Wrapped causes are never echoed to the client.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return c.Status(status).JSON(ErrorResponse{Msg: "Server Error", Code: CodeInternal})
	}

	if len(appErr.Fields) > 0 {
		return c.Status(status).JSON(ValidationResponse{Errors: appErr.Fields})
	}

	return c.Status(status).JSON(ErrorResponse{
		Msg:  appErr.Message,
		Code: appErr.Code,
	})
}
