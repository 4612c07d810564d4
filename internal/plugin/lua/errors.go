package lua

import (
	"errors"
	"fmt"
)

// ErrRuntimeClosed is returned when operating on a closed runtime.
var ErrRuntimeClosed = errors.New("lua runtime is closed")

// errNotBlockTable rejects non-table entries in a children array.
var errNotBlockTable = errors.New("block children must be tables")

// ScriptError reports a failure while running a Lua script.
type ScriptError struct {
	// Source identifies the script (file path, or "<string>").
	Source string

	// Err is the underlying Lua error.
	Err error
}

// Error implements the error interface.
func (e *ScriptError) Error() string {
	return fmt.Sprintf("lua script %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying error.
func (e *ScriptError) Unwrap() error {
	return e.Err
}
