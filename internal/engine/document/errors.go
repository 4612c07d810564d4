package document

import "errors"

// Errors returned by document mutations. Every failure is reported
// before any state change; a failed call leaves the document untouched.
var (
	// ErrNotFound indicates the referenced block does not exist.
	ErrNotFound = errors.New("block not found")

	// ErrParentNotFound indicates the referenced parent block does not exist.
	ErrParentNotFound = errors.New("parent block not found")

	// ErrWouldCreateCycle indicates a move would place a block inside
	// its own subtree.
	ErrWouldCreateCycle = errors.New("move would create a cycle")

	// ErrNotAContainer indicates the target block's type cannot hold children.
	ErrNotAContainer = errors.New("block is not a container")

	// ErrDuplicateID indicates an insert would reuse an existing block ID.
	ErrDuplicateID = errors.New("duplicate block id")

	// ErrNilBlock indicates a nil block was passed to an insert.
	ErrNilBlock = errors.New("block is nil")
)
