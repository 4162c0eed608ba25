package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAppointmentNotFound is returned by lookups against the session collections.
var ErrAppointmentNotFound = errors.New("appointment not found")

// ValidationError reports required input that is missing. The offending field
// names are listed so the caller can point at them inline.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// GenerationError wraps a failed completion or transcription call. The adapter
// error text is carried verbatim so it can be shown to the operator; the
// workflow that triggered it is aborted and nothing is persisted.
type GenerationError struct {
	Stage string // "soap", "client_summary", "client_email", "dental", "transcription"
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("error generating %s: %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// PersistenceError reports a failed write of the data file. It is never fatal:
// the in-memory collections stay authoritative for the rest of the session and
// the error is surfaced to the operator as a warning.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("error saving data: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
