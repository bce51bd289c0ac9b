package errors

import (
	"errors"
	"fmt"
)

// Code represents an error code for categorizing errors
type Code string

const (
	// CodeUnknown indicates an unknown error
	CodeUnknown Code = "unknown"

	// CodeInvalidArgument indicates client specified an invalid argument
	CodeInvalidArgument Code = "invalid_argument"

	// CodeNotFound indicates a requested resource was not found
	CodeNotFound Code = "not_found"

	// CodeAlreadyExists indicates an attempt to create a resource that already exists
	CodeAlreadyExists Code = "already_exists"

	// CodeInternal indicates internal system error
	CodeInternal Code = "internal"

	// CodeValidation indicates a structural problem in authored content
	CodeValidation Code = "validation"

	// CodeUnknownTag indicates a DSL node carried a type tag no dispatcher recognizes
	CodeUnknownTag Code = "unknown_tag"

	// CodeInvalidPath indicates a selector path does not exist on the selected type
	CodeInvalidPath Code = "invalid_path"

	// CodeTypeMismatch indicates a selector step was applied to the wrong element type
	CodeTypeMismatch Code = "type_mismatch"

	// CodeDepthExceeded indicates nested effect execution went past the configured limit
	CodeDepthExceeded Code = "depth_exceeded"
)

// Meta keys used by the compiler when wrapping failures
const (
	MetaEffectID = "effect_id"
	MetaTag      = "tag"
	MetaPath     = "path"
	MetaLocation = "location"
)

// Error represents an engine error with code and metadata
type Error struct {
	// Code is the error code
	Code Code

	// Message is the error message
	Message string

	// Cause is the wrapped error
	Cause error

	// Meta contains additional context
	Meta map[string]any
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithMeta adds metadata to the error (builder pattern)
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// New creates a new error with the given code and message
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new error with formatted message
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with additional context, keeping the code of a wrapped *Error
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	var engErr *Error
	if errors.As(err, &engErr) {
		return &Error{
			Code:    engErr.Code,
			Message: message,
			Cause:   err,
			Meta:    copyMeta(engErr.Meta),
		}
	}

	return &Error{
		Code:    CodeUnknown,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted message
func Wrapf(err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps an error with a specific code
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := Wrap(err, message)
	wrapped.Code = code
	return wrapped
}

// NotFoundf creates a formatted not found error
func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

// InvalidArgument creates an invalid argument error
func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

// InvalidArgumentf creates a formatted invalid argument error
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// AlreadyExistsf creates a formatted already exists error
func AlreadyExistsf(format string, args ...any) *Error {
	return Newf(CodeAlreadyExists, format, args...)
}

// Validationf creates a formatted validation error
func Validationf(format string, args ...any) *Error {
	return Newf(CodeValidation, format, args...)
}

// UnknownTag reports a DSL type tag that no dispatcher handles
func UnknownTag(kind, tag string) *Error {
	return Newf(CodeUnknownTag, "unknown %s type %q", kind, tag).WithMeta(MetaTag, tag)
}

// InvalidPathf creates a formatted invalid path error
func InvalidPathf(format string, args ...any) *Error {
	return Newf(CodeInvalidPath, format, args...)
}

// TypeMismatchf creates a formatted type mismatch error
func TypeMismatchf(format string, args ...any) *Error {
	return Newf(CodeTypeMismatch, format, args...)
}

// DepthExceededf creates a formatted depth exceeded error
func DepthExceededf(format string, args ...any) *Error {
	return Newf(CodeDepthExceeded, format, args...)
}

// Is checks if the error is of a specific code
func Is(err error, code Code) bool {
	var engErr *Error
	if errors.As(err, &engErr) {
		return engErr.Code == code
	}
	return false
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return Is(err, CodeNotFound)
}

// IsValidation checks if the error is a validation error
func IsValidation(err error) bool {
	return Is(err, CodeValidation)
}

// IsUnknownTag checks if the error is an unknown tag error
func IsUnknownTag(err error) bool {
	return Is(err, CodeUnknownTag)
}

// IsInvalidPath checks if the error is an invalid path error
func IsInvalidPath(err error) bool {
	return Is(err, CodeInvalidPath)
}

// IsTypeMismatch checks if the error is a type mismatch error
func IsTypeMismatch(err error) bool {
	return Is(err, CodeTypeMismatch)
}

// IsDepthExceeded checks if the error is a depth exceeded error
func IsDepthExceeded(err error) bool {
	return Is(err, CodeDepthExceeded)
}

// GetCode returns the error code
func GetCode(err error) Code {
	var engErr *Error
	if errors.As(err, &engErr) {
		return engErr.Code
	}
	return CodeUnknown
}

// GetMeta returns the error metadata of the outermost *Error
func GetMeta(err error) map[string]any {
	var engErr *Error
	if errors.As(err, &engErr) {
		return engErr.Meta
	}
	return nil
}

// copyMeta creates a copy of the metadata map
func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}

	copied := make(map[string]any, len(meta))
	for k, v := range meta {
		copied[k] = v
	}
	return copied
}
