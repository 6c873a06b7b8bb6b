package dto

import (
	"context"
	"errors"
	"fmt"

	"github.com/erp/backoffice/internal/domain/shared"
)

// Error code constants
// Format: ERR_<CATEGORY>_<DESCRIPTION>
const (
	ErrCodeUnknown         = "ERR_UNKNOWN"
	ErrCodeInternal        = "ERR_INTERNAL"
	ErrCodeInvalidJSON     = "ERR_INVALID_JSON"
	ErrCodeValidation      = "ERR_VALIDATION"
	ErrCodeInvalidLineItem = "ERR_INVALID_LINE_ITEM"
	ErrCodeUnknownKind     = "ERR_UNKNOWN_DOCUMENT_KIND"
	ErrCodeNotFound        = "ERR_NOT_FOUND"
	ErrCodeCancelled       = "ERR_CANCELLED"
)

// Process exit statuses reported by the CLI
const (
	ExitOK          = 0
	ExitInternal    = 1
	ExitBadInput    = 2
	ExitUnsupported = 3
	ExitCancelled   = 4
)

// ErrorCodeExitStatus maps error codes to process exit statuses
var ErrorCodeExitStatus = map[string]int{
	ErrCodeUnknown:         ExitInternal,
	ErrCodeInternal:        ExitInternal,
	ErrCodeInvalidJSON:     ExitBadInput,
	ErrCodeValidation:      ExitBadInput,
	ErrCodeInvalidLineItem: ExitBadInput,
	ErrCodeUnknownKind:     ExitUnsupported,
	ErrCodeNotFound:        ExitUnsupported,
	ErrCodeCancelled:       ExitCancelled,
}

// GetExitStatus returns the exit status for an error code.
// Unknown codes map to ExitInternal.
func GetExitStatus(code string) int {
	if status, ok := ErrorCodeExitStatus[code]; ok {
		return status
	}
	return ExitInternal
}

// domainCodeMapping maps domain error codes to the standardized codes
var domainCodeMapping = map[string]string{
	"NOT_FOUND":             ErrCodeNotFound,
	"INVALID_INPUT":         ErrCodeValidation,
	"INVALID_DOCUMENT":      ErrCodeValidation,
	"INVALID_LINE_ITEM":     ErrCodeInvalidLineItem,
	"UNKNOWN_DOCUMENT_KIND": ErrCodeUnknownKind,
}

// NormalizeErrorCode converts a domain error code to the standardized format.
// Codes that are already standardized or unknown are returned as-is.
func NormalizeErrorCode(code string) string {
	if newCode, ok := domainCodeMapping[code]; ok {
		return newCode
	}
	return code
}

// DecodeError reports a document that is not well-formed JSON
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid document JSON: %v", e.Err)
}

// Unwrap exposes both the invalid-document sentinel and the decoder error
func (e *DecodeError) Unwrap() []error {
	return []error{shared.ErrInvalidDocument, e.Err}
}

func invalidJSON(err error) error {
	return &DecodeError{Err: err}
}

// ErrorInfoFromError classifies err into an ErrorInfo
func ErrorInfoFromError(err error) *ErrorInfo {
	if err == nil {
		return nil
	}

	var (
		validationErr *ValidationError
		decodeErr     *DecodeError
		domainErr     *shared.DomainError
	)
	switch {
	case errors.As(err, &validationErr):
		return &ErrorInfo{
			Code:    ErrCodeValidation,
			Message: "Document validation failed",
			Details: validationErr.Details,
		}
	case errors.As(err, &decodeErr):
		return &ErrorInfo{Code: ErrCodeInvalidJSON, Message: err.Error()}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return &ErrorInfo{Code: ErrCodeCancelled, Message: err.Error()}
	case errors.As(err, &domainErr):
		return &ErrorInfo{Code: NormalizeErrorCode(domainErr.Code), Message: err.Error()}
	}
	return &ErrorInfo{Code: ErrCodeInternal, Message: err.Error()}
}
