package model

import "fmt"

// ErrorCode classifies a domain failure for the transport layers.
type ErrorCode string

const (
	ErrCodeValidation       ErrorCode = "VALIDATION_FAILED"
	ErrCodeNotFound         ErrorCode = "NOT_FOUND"
	ErrCodeForbidden        ErrorCode = "FORBIDDEN"
	ErrCodeTokenNotAssigned ErrorCode = "TOKEN_NOT_ASSIGNED"
	ErrCodeDuplicateToken   ErrorCode = "DUPLICATE_TOKEN"
	ErrCodeConflict         ErrorCode = "CONFLICT"
)

// DomainError is a failure with a message that is safe to show the caller.
type DomainError struct {
	Code    ErrorCode
	Message string
}

func (e *DomainError) Error() string { return e.Message }

// Is matches any DomainError carrying the same code, so the sentinels below
// work with errors.Is regardless of message.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// Sentinels for errors.Is.
var (
	ErrValidation       = &DomainError{Code: ErrCodeValidation, Message: "validation failed"}
	ErrNotFound         = &DomainError{Code: ErrCodeNotFound, Message: "not found"}
	ErrForbidden        = &DomainError{Code: ErrCodeForbidden, Message: "Unauthorized"}
	ErrTokenNotAssigned = &DomainError{
		Code:    ErrCodeTokenNotAssigned,
		Message: "Token number not assigned yet. Please wait for admin approval.",
	}
	ErrDuplicateToken = &DomainError{Code: ErrCodeDuplicateToken, Message: "token collision"}
	ErrConflict       = &DomainError{
		Code:    ErrCodeConflict,
		Message: "Loan request is being updated by another request. Please try again.",
	}
)

// NewValidationError returns a VALIDATION_FAILED error with a formatted message.
func NewValidationError(format string, args ...any) error {
	return &DomainError{Code: ErrCodeValidation, Message: fmt.Sprintf(format, args...)}
}

// NewNotFoundError returns a NOT_FOUND error with the given message.
func NewNotFoundError(msg string) error {
	return &DomainError{Code: ErrCodeNotFound, Message: msg}
}
