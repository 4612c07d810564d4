package dragdrop

import "errors"

// Errors returned by drag-drop operations.
var (
	// ErrNotFound indicates the drag source block or palette type is absent.
	ErrNotFound = errors.New("drag source not found")

	// ErrNotDragging indicates no drag is in flight.
	ErrNotDragging = errors.New("no drag in progress")

	// ErrInvalidDropTarget indicates a drop was released over an
	// invalid target; the drag is cancelled and the tree untouched.
	ErrInvalidDropTarget = errors.New("invalid drop target")
)

// Invalid-target reasons surfaced on Target.InvalidReason.
const (
	// ReasonCycle marks a drop that would place a block in its own subtree.
	ReasonCycle = "cannot drop a block inside its own subtree"

	// ReasonNotContainer marks a drop into a block that cannot hold children.
	ReasonNotContainer = "target is not a container"

	// ReasonChildRejected marks a drop the type registry disallows.
	ReasonChildRejected = "target does not accept this block type"

	// ReasonParentVanished marks a resolved parent missing from the live tree.
	ReasonParentVanished = "drop target no longer exists"
)
