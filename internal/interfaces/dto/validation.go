package dto

import (
	"reflect"
	"strings"
	"sync"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator. Field names in errors use JSON tags.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// ValidationDetail describes one invalid field
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every invalid field of a document
type ValidationError struct {
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		parts = append(parts, d.Field+": "+d.Message)
	}
	return "document validation failed: " + strings.Join(parts, "; ")
}

// Unwrap lets callers match the invalid-document sentinel
func (e *ValidationError) Unwrap() error {
	return shared.ErrInvalidDocument
}

// Validate checks the document's structure. Numeric fields are never rejected;
// malformed numbers reach the pricing engine as NaN.
func (r *DocumentRequest) Validate() error {
	err := Validator().Struct(r)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	details := make([]ValidationDetail, 0, len(validationErrors))
	for _, e := range validationErrors {
		details = append(details, ValidationDetail{
			Field:   fieldPath(e),
			Message: getValidationMessage(e),
		})
	}
	return &ValidationError{Details: details}
}

// fieldPath drops the root struct name, e.g. "DocumentRequest.items[0].id" -> "items[0].id"
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// getValidationMessage returns a human-readable validation message
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "max":
		if e.Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "uuid":
		return "Invalid UUID format"
	case "oneof":
		return "Must be one of: " + e.Param()
	default:
		return "Invalid value"
	}
}
