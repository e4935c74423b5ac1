package common

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for errors.Is dispatch at the per-file boundary.
var (
	ErrParse      = errors.New("document parse failed")
	ErrExtraction = errors.New("field extraction failed")
	ErrValidation = errors.New("validation failed")
)

// ExtractionKind names the structural absence that made extraction fatal.
type ExtractionKind string

const (
	MissingTable    ExtractionKind = "missing_table"
	MissingRow      ExtractionKind = "missing_row"
	MissingText     ExtractionKind = "missing_text"
	IndexOutOfRange ExtractionKind = "index_out_of_range"
)

// ParseError means the document parser could not produce a layout tree.
type ParseError struct {
	Format string
	Cause  error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse %s document: %v", e.Format, e.Cause)
	}
	return fmt.Sprintf("parse %s document", e.Format)
}

func (e *ParseError) Unwrap() error { return ErrParse }

func NewParseError(format string, cause error) *ParseError {
	return &ParseError{Format: format, Cause: cause}
}

// ExtractionError means an expected table, row, or text node was absent at a
// mapped position, so the record cannot be derived at all.
type ExtractionError struct {
	Kind  ExtractionKind
	Field string
	Ref   string
}

func (e *ExtractionError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("extract %s: %s at %s", e.Field, e.Kind, e.Ref)
	}
	return fmt.Sprintf("%s at %s", e.Kind, e.Ref)
}

func (e *ExtractionError) Unwrap() error { return ErrExtraction }

func NewExtractionError(kind ExtractionKind, field, ref string) *ExtractionError {
	return &ExtractionError{Kind: kind, Field: field, Ref: ref}
}

// FieldViolation is one schema constraint the candidate record broke.
type FieldViolation struct {
	Field  string
	Reason string
}

func (v FieldViolation) String() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Reason)
}

// ValidationError aggregates every constraint violation found in one record.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.String()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func NewValidationError(violations ...FieldViolation) *ValidationError {
	return &ValidationError{Violations: violations}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
