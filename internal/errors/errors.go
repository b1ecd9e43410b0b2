// Package errors provides structured error types and exit codes for junitmerge.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Exit codes returned by the CLI.
const (
	ExitSuccess      = 0 // Success
	ExitRuntimeError = 1 // Runtime error (missing input, malformed report, write failure)
	ExitConfigError  = 2 // Configuration or usage error
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindNotFound
	KindNoMatchingFiles
	KindNoTestsFound
	KindMissingOutputDirectory
	KindMalformedDocument
)

var kindNames = map[ErrorKind]string{
	KindRuntime:                "runtime",
	KindConfig:                 "config",
	KindNotFound:               "not found",
	KindNoMatchingFiles:        "no matching files",
	KindNoTestsFound:           "no tests found",
	KindMissingOutputDirectory: "missing output directory",
	KindMalformedDocument:      "malformed document",
}

// String returns a human-readable name of the kind.
func (k ErrorKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MergeError is the base error type for junitmerge.
type MergeError struct {
	Kind    ErrorKind
	Message string
	Path    string // File or directory the error refers to, if any
	Cause   error  // Underlying error
}

func (e *MergeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

func (e *MergeError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a *MergeError of the same kind.
// This lets callers match on kind with errors.Is(err, &MergeError{Kind: k}).
func (e *MergeError) Is(target error) bool {
	t, ok := target.(*MergeError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == "" && t.Path == ""
}

// ExitCode returns the appropriate exit code for this error.
func (e *MergeError) ExitCode() int {
	switch e.Kind {
	case KindConfig:
		return ExitConfigError
	default:
		return ExitRuntimeError
	}
}

// New creates a new runtime error.
func New(message string) *MergeError {
	return &MergeError{
		Kind:    KindRuntime,
		Message: message,
	}
}

// Newf creates a new runtime error with formatting.
func Newf(format string, args ...interface{}) *MergeError {
	return New(fmt.Sprintf(format, args...))
}

// Config creates a new configuration error.
func Config(message string) *MergeError {
	return &MergeError{
		Kind:    KindConfig,
		Message: message,
	}
}

// Configf creates a new configuration error with formatting.
func Configf(format string, args ...interface{}) *MergeError {
	return Config(fmt.Sprintf(format, args...))
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *MergeError {
	return &MergeError{
		Kind:    KindRuntime,
		Message: message,
		Cause:   err,
	}
}

// NotFound creates an error for a missing input file or directory.
func NotFound(path string, cause error) *MergeError {
	return &MergeError{
		Kind:    KindNotFound,
		Message: "file not found",
		Path:    path,
		Cause:   cause,
	}
}

// NoMatchingFiles creates an error for a directory scan without report files.
func NoMatchingFiles(dir string) *MergeError {
	return &MergeError{
		Kind:    KindNoMatchingFiles,
		Message: "no xml files found",
		Path:    dir,
	}
}

// NoTestsFound creates an error for a report without usable suite content.
func NoTestsFound(path string) *MergeError {
	return &MergeError{
		Kind:    KindNoTestsFound,
		Message: "no tests found",
		Path:    path,
	}
}

// MissingOutputDirectory creates an error for an absent output parent directory.
func MissingOutputDirectory(path string, cause error) *MergeError {
	return &MergeError{
		Kind:    KindMissingOutputDirectory,
		Message: "missing output directory",
		Path:    path,
		Cause:   cause,
	}
}

// MalformedDocument creates an error for a report that is not well-formed.
func MalformedDocument(path string, cause error) *MergeError {
	msg := "malformed document"
	if cause != nil {
		msg = fmt.Sprintf("malformed document: %v", cause)
	}
	return &MergeError{
		Kind:    KindMalformedDocument,
		Message: msg,
		Path:    path,
		Cause:   cause,
	}
}

// IsKind reports whether any error in err's chain is a *MergeError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var me *MergeError
	if stderrors.As(err, &me) {
		return me.Kind == kind
	}
	return false
}

// KindOf returns the kind of the first *MergeError in err's chain,
// or KindRuntime if there is none.
func KindOf(err error) ErrorKind {
	var me *MergeError
	if stderrors.As(err, &me) {
		return me.Kind
	}
	return KindRuntime
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var me *MergeError
	if stderrors.As(err, &me) {
		return me.ExitCode()
	}
	return ExitRuntimeError
}
