// Error taxonomy shared by the io, assemble, runner and validator layers.
//
// Each error type is matched with errors.As; nothing in this package is
// matched by string.
package errors

import (
	"errors"
	"fmt"
)

// IoError means a document of some format is structurally invalid:
// missing required elements, duplicate ids, unparseable math, and so on.
type IoError struct {
	// Format is the id of the format whose reader/writer failed, like "SBML".
	Format string

	// Path is the file the reader/writer was working on.
	Path string

	Cause error
}

func NewIo(format string, path string, cause error) *IoError {
	return &IoError{Format: format, Path: path, Cause: cause}
}

func Iof(format string, path string, msg string, args ...any) *IoError {
	return &IoError{Format: format, Path: path, Cause: fmt.Errorf(msg, args...)}
}

func (e *IoError) Error() string {
	return fmt.Sprintf("invalid %s document %s: %s", e.Format, e.Path, e.Cause)
}

func (e *IoError) Unwrap() error {
	return e.Cause
}

// ArchiveIoError means an archive is structurally invalid or unwritable.
type ArchiveIoError struct {
	Path  string
	Cause error
}

func NewArchiveIo(path string, cause error) *ArchiveIoError {
	return &ArchiveIoError{Path: path, Cause: cause}
}

func ArchiveIof(path string, msg string, args ...any) *ArchiveIoError {
	return &ArchiveIoError{Path: path, Cause: fmt.Errorf(msg, args...)}
}

func (e *ArchiveIoError) Error() string {
	return fmt.Sprintf("invalid archive %s: %s", e.Path, e.Cause)
}

func (e *ArchiveIoError) Unwrap() error {
	return e.Cause
}

// ConfigurationError means the caller asked for something the catalog or the
// registries do not know: an unknown test-case id, an unsupported format.
//
// These are raised for direct inputs and are never downgraded to a per-case
// failure.
type ConfigurationError struct {
	Reason string
}

func Configurationf(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// ExecutionError means a container run failed: non-zero exit, timeout, or the
// runtime refused the invocation.
type ExecutionError struct {
	// Image is the image reference the runner tried to execute.
	Image string

	// ExitCode of the container process. -1 when the process did not exit
	// normally (e.g. timeout).
	ExitCode int

	// Stderr captured from the run, trimmed.
	Stderr string

	// TimedOut is true when the run was stopped by the per-case timeout.
	TimedOut bool

	Cause error
}

func (e *ExecutionError) Error() string {
	switch {
	case e.TimedOut:
		return fmt.Sprintf("execution of %s timed out", e.Image)
	case e.Stderr != "":
		return fmt.Sprintf("execution of %s failed (exit %d): %s", e.Image, e.ExitCode, e.Stderr)
	default:
		return fmt.Sprintf("execution of %s failed (exit %d): %s", e.Image, e.ExitCode, e.Cause)
	}
}

func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// AsConfiguration tells whether err (or something it wraps) is a ConfigurationError.
func AsConfiguration(err error) (*ConfigurationError, bool) {
	ce := new(ConfigurationError)
	ok := errors.As(err, &ce)
	return ce, ok
}

// AsExecution tells whether err (or something it wraps) is an ExecutionError.
func AsExecution(err error) (*ExecutionError, bool) {
	ee := new(ExecutionError)
	ok := errors.As(err, &ee)
	return ee, ok
}
