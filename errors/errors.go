// Package errors provides standardized error handling for the harvester.
// It includes error classification, shared error variables, and helpers
// for consistent error wrapping across the mapping and reconciliation code.
package errors

import (
	"errors"
	"fmt"
)

// ErrorClass represents the classification of errors for handling purposes
type ErrorClass int

const (
	// ErrorTransient represents temporary errors; the harvest page or
	// record may be retried on a later run
	ErrorTransient ErrorClass = iota
	// ErrorInvalid represents errors due to malformed source data or
	// configuration; retrying without a source change is pointless
	ErrorInvalid
	// ErrorFatal represents unrecoverable errors that should stop the
	// whole process (e.g. unusable bundled vocabulary data)
	ErrorFatal
)

// String returns the string representation of ErrorClass
func (ec ErrorClass) String() string {
	switch ec {
	case ErrorTransient:
		return "transient"
	case ErrorInvalid:
		return "invalid"
	case ErrorFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Standard error variables for common conditions
var (
	// URI handling errors
	ErrInvalidURI = errors.New("invalid URI")

	// Vocabulary errors
	ErrVocabularyData = errors.New("malformed vocabulary data")
	ErrNotFound       = errors.New("not found")

	// Record errors
	ErrInvalidSubject  = errors.New("invalid dataset subject reference")
	ErrParsingFailed   = errors.New("parsing failed")
	ErrEmptyPage       = errors.New("empty page content")
	ErrNoDatasets      = errors.New("no datasets found in page")
	ErrRecordRejected  = errors.New("record rejected")
	ErrOnlyDeletions   = errors.New("harvest run contains only deletions")
	ErrMissingGUID     = errors.New("no guid could be derived")
	ErrOrgMismatch     = errors.New("organization mismatch in identifier")
	ErrOrgNotFound     = errors.New("organization not found")
	ErrDatasetExcluded = errors.New("dataset excluded by source configuration")
	ErrLicenseExcluded = errors.New("dataset license excluded by source configuration")

	// Configuration errors
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrMissingConfig = errors.New("missing required configuration")
)

// ClassifiedError wraps an error with its classification
type ClassifiedError struct {
	Class     ErrorClass
	Err       error
	Message   string
	Component string
	Operation string
}

// Error implements the error interface
func (ce *ClassifiedError) Error() string {
	if ce.Message != "" {
		return ce.Message
	}
	return ce.Err.Error()
}

// Unwrap returns the underlying error
func (ce *ClassifiedError) Unwrap() error {
	return ce.Err
}

// IsTransient checks if an error is transient and the affected page or
// record may succeed on a later harvest run
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorTransient
	}
	return errors.Is(err, ErrEmptyPage)
}

// IsFatal checks if an error is fatal and should stop the process
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorFatal
	}
	return errors.Is(err, ErrVocabularyData) ||
		errors.Is(err, ErrInvalidConfig) ||
		errors.Is(err, ErrMissingConfig)
}

// IsInvalid checks if an error is due to malformed source data
func IsInvalid(err error) bool {
	if err == nil {
		return false
	}
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorInvalid
	}
	return errors.Is(err, ErrInvalidURI) ||
		errors.Is(err, ErrInvalidSubject) ||
		errors.Is(err, ErrParsingFailed) ||
		errors.Is(err, ErrOrgMismatch)
}

// Classify returns the error class for an error
func Classify(err error) ErrorClass {
	if IsFatal(err) {
		return ErrorFatal
	}
	if IsInvalid(err) {
		return ErrorInvalid
	}
	return ErrorTransient
}

// newClassified creates a new classified error
// This is an internal helper - use WrapTransient(), WrapFatal(), or WrapInvalid() instead.
func newClassified(class ErrorClass, err error, component, operation, message string) *ClassifiedError {
	return &ClassifiedError{
		Class:     class,
		Err:       err,
		Message:   message,
		Component: component,
		Operation: operation,
	}
}

// Wrap creates a standardized error with context following the pattern:
// "component.method: action failed: %w"
func Wrap(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s.%s: %s failed: %w", component, method, action, err)
}

// WrapTransient wraps an error as transient with context
func WrapTransient(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorTransient, wrappedErr, component, method, wrappedErr.Error())
}

// WrapFatal wraps an error as fatal with context
func WrapFatal(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorFatal, wrappedErr, component, method, wrappedErr.Error())
}

// WrapInvalid wraps an error as invalid with context
func WrapInvalid(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorInvalid, wrappedErr, component, method, wrappedErr.Error())
}

// Re-exports so call sites need a single errors import.
var (
	New    = errors.New
	Is     = errors.Is
	As     = errors.As
	Errorf = fmt.Errorf
)
