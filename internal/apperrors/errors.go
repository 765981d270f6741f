package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"profilecard/internal/validation"
)

// Kind tags the category of a failed operation.
type Kind string

const (
	KindValidation Kind = "validation"
	KindConflict   Kind = "conflict"
	KindNotFound   Kind = "notFound"
	KindBadRequest Kind = "badRequest"
	KindInternal   Kind = "internal"
)

// Codes carried in error bodies.
const (
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeInvalidFieldType = "INVALID_FIELD_TYPE"
	CodeCollectionLimit  = "COLLECTION_LIMIT_EXCEEDED"
	CodeDuplicateField   = "DUPLICATE_FIELD"
	CodeNotFound         = "NOT_FOUND"
	CodeInvalidID        = "INVALID_ID"
	CodeInvalidBody      = "INVALID_BODY"
	CodeInvalidQuery     = "INVALID_QUERY"
	CodeInternal         = "INTERNAL_ERROR"
)

const (
	serverErrorMessage = "Server error"
	notFoundMessage    = "Record not found"
)

var (
	// ErrNotFound is wrapped by repositories when no record matches an id.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidID is wrapped when an id is not well formed.
	ErrInvalidID = errors.New("malformed identifier")
)

// ConflictError reports a unique field that already holds the submitted value.
type ConflictError struct {
	Field string
	Value string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists", e.Field)
}

// Error is the tagged result handed to the transport layer.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Fields  map[string]string
	Field   string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Status maps the error kind to an HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation, KindBadRequest:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// Validation builds a field-validation error.
func Validation(code, message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message, Fields: fields}
}

// BadRequest builds a request-level error that is not tied to a field.
func BadRequest(code, message string, err error) *Error {
	return &Error{Kind: KindBadRequest, Code: code, Message: message, Err: err}
}

// Classify turns any error produced below the transport layer into a tagged Error.
// Internal errors keep the cause in Err but expose only a generic message.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	var violations *validation.Violations
	if errors.As(err, &violations) {
		if len(violations.Limits) > 0 {
			return &Error{Kind: KindValidation, Code: CodeCollectionLimit, Message: "Collection limit exceeded", Fields: violations.Limits, Err: err}
		}
		return &Error{Kind: KindValidation, Code: CodeValidationFailed, Message: "Validation failed", Fields: violations.Fields, Err: err}
	}

	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return &Error{Kind: KindConflict, Code: CodeDuplicateField, Message: conflict.Error(), Field: conflict.Field, Err: err}
	}

	switch {
	case errors.Is(err, ErrInvalidID):
		return &Error{Kind: KindBadRequest, Code: CodeInvalidID, Message: "Invalid id", Err: err}
	case errors.Is(err, ErrNotFound):
		return &Error{Kind: KindNotFound, Code: CodeNotFound, Message: notFoundMessage, Err: err}
	}
	return &Error{Kind: KindInternal, Code: CodeInternal, Message: serverErrorMessage, Err: err}
}
