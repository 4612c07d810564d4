package dragdrop

import "github.com/dshills/blockedit/internal/engine/block"

// Position is where a drop lands relative to the hit-tested block.
type Position int

const (
	// PositionBefore inserts as the previous sibling of the target.
	PositionBefore Position = iota

	// PositionAfter inserts as the next sibling of the target.
	PositionAfter

	// PositionInside appends as the last child of the target.
	PositionInside
)

// String returns a human-readable name for the position.
func (p Position) String() string {
	switch p {
	case PositionBefore:
		return "before"
	case PositionAfter:
		return "after"
	case PositionInside:
		return "inside"
	default:
		return "unknown"
	}
}

// Item is the payload of an in-flight drag. It is a closed sum: the
// only implementations are BlockItem (dragging an existing block) and
// PaletteItem (dragging a new block type in from the palette). Every
// consumer switches exhaustively over the two; the marker method keeps
// outside packages from adding cases silently.
type Item interface {
	dragItem()
}

// BlockItem is a drag sourced from a block already in the document.
type BlockItem struct {
	// BlockID is the dragged block's ID.
	BlockID string

	// Block is the dragged block as of drag start (display only; the
	// live tree is re-resolved at drop time).
	Block *block.Block

	// OriginalParentID is the parent at drag start (RootID for roots).
	OriginalParentID string

	// OriginalIndex is the sibling index at drag start.
	OriginalIndex int
}

func (*BlockItem) dragItem() {}

// PaletteItem is a drag sourced from the block palette: a type to be
// instantiated on drop.
type PaletteItem struct {
	// TypeID is the block type to create.
	TypeID string

	// DisplayName is the palette label.
	DisplayName string

	// Icon is the palette icon identifier.
	Icon string
}

func (*PaletteItem) dragItem() {}

// Target describes where the in-flight drag would land if released
// now. It is recomputed on every pointer move and never persisted.
type Target struct {
	// TargetBlockID is the hit-tested block ("" when over empty space).
	TargetBlockID string

	// Position is the drop position relative to the target block.
	Position Position

	// ParentID is the resolved destination parent (RootID for roots).
	ParentID string

	// Index is the resolved insertion index within the parent.
	Index int

	// Valid reports whether releasing here would commit.
	Valid bool

	// InvalidReason explains a Valid=false target for UI feedback.
	InvalidReason string
}

// Rect is a block's bounding box in the UI layer's coordinate space.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}
