package docfile

import (
	"errors"
	"fmt"
)

// Errors returned by document file operations.
var (
	// ErrNilDocument is returned when saving a nil document.
	ErrNilDocument = errors.New("document is nil")

	// ErrUnsupportedVersion indicates a file written by a newer format.
	ErrUnsupportedVersion = errors.New("unsupported document version")

	// ErrDuplicateID indicates two blocks in the file share an ID.
	ErrDuplicateID = errors.New("duplicate block ID")
)

// FormatError reports a malformed document file.
type FormatError struct {
	// Path is the file that failed to decode or validate.
	Path string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	return fmt.Sprintf("document file %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *FormatError) Unwrap() error {
	return e.Err
}
