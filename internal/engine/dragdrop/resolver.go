package dragdrop

import (
	"github.com/google/uuid"

	"github.com/dshills/blockedit/internal/engine/block"
	"github.com/dshills/blockedit/internal/engine/document"
	"github.com/dshills/blockedit/internal/registry"
)

// Committer is the mutation surface a drop commits through. The engine
// facade implements it with history-wrapped operations.
type Committer interface {
	// Move relocates an existing block (see document.Store.Move).
	Move(id, newParentID string, newIndex int) error

	// Insert adds a new block (see document.Store.Insert).
	Insert(b *block.Block, parentID string, index int) error
}

// DefaultEdgeThreshold is the height in UI units of the before/after
// bands at the top and bottom of a hit-tested block.
const DefaultEdgeThreshold = 8.0

// Resolver is the drag-and-drop state machine: idle until a Start,
// dragging while the pointer moves, back to idle on Drop or Cancel.
// At most one drag is in flight; starting a new drag while dragging
// replaces the in-flight item (an implicit cancel).
//
// Resolver is not safe for concurrent use; the engine facade
// serializes access to it.
type Resolver struct {
	reg           registry.Registry
	edgeThreshold float64

	dragging bool
	item     Item
	target   *Target
}

// Option configures a Resolver during creation.
type Option func(*Resolver)

// WithEdgeThreshold sets the before/after edge band height.
func WithEdgeThreshold(t float64) Option {
	return func(r *Resolver) {
		if t > 0 {
			r.edgeThreshold = t
		}
	}
}

// NewResolver creates an idle resolver using the given type registry.
func NewResolver(reg registry.Registry, opts ...Option) *Resolver {
	r := &Resolver{reg: reg, edgeThreshold: DefaultEdgeThreshold}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Dragging reports whether a drag is in flight.
func (r *Resolver) Dragging() bool {
	return r.dragging
}

// Item returns the in-flight drag item, or nil when idle.
func (r *Resolver) Item() Item {
	return r.item
}

// Target returns the current drop target. ok is false when idle or
// when the pointer has not produced a target yet.
func (r *Resolver) Target() (Target, bool) {
	if r.target == nil {
		return Target{}, false
	}
	return *r.target, true
}

// StartBlockDrag begins dragging an existing block. It returns
// ErrNotFound when the block is absent. A drag already in flight is
// replaced.
func (r *Resolver) StartBlockDrag(doc *block.Document, id string) error {
	b := doc.FindByID(id)
	if b == nil {
		return ErrNotFound
	}

	parentID := document.RootID
	siblings := doc.Blocks
	if parent := doc.FindParent(id); parent != nil {
		parentID = parent.ID
		siblings = parent.Children
	}

	r.dragging = true
	r.target = nil
	r.item = &BlockItem{
		BlockID:          id,
		Block:            b.Clone(),
		OriginalParentID: parentID,
		OriginalIndex:    block.FindIndex(siblings, id),
	}
	return nil
}

// StartPaletteDrag begins dragging a new block of the given type in
// from the palette. It returns ErrNotFound for unregistered types. A
// drag already in flight is replaced.
func (r *Resolver) StartPaletteDrag(typeID, displayName, icon string) error {
	// CanContain errors iff a type is unregistered; probe with the
	// type on both sides to test registration alone.
	if _, err := r.reg.CanContain(typeID, typeID); err != nil {
		return ErrNotFound
	}

	r.dragging = true
	r.target = nil
	r.item = &PaletteItem{TypeID: typeID, DisplayName: displayName, Icon: icon}
	return nil
}

// UpdateTarget recomputes the drop target from pointer geometry. It is
// a no-op when idle or when the hit-tested block is absent. Validation
// never blocks the interaction; invalid targets are marked, not hidden.
func (r *Resolver) UpdateTarget(doc *block.Document, targetID string, pointerY float64, rect Rect) {
	if !r.dragging {
		return
	}
	target := doc.FindByID(targetID)
	if target == nil {
		r.target = nil
		return
	}

	pos := HitTest(pointerY, rect, r.edgeThreshold, r.reg.IsContainer(target.Type))
	parentID, index := resolve(doc, targetID, pos)

	t := Target{
		TargetBlockID: targetID,
		Position:      pos,
		ParentID:      parentID,
		Index:         index,
		Valid:         true,
	}
	if reason := r.validate(doc, parentID); reason != "" {
		t.Valid = false
		t.InvalidReason = reason
	}
	r.target = &t
}

// resolve maps a (target block, position) pair to a concrete
// (parent, index) destination: before/after land next to the target in
// its own parent, inside appends at the end of the target's children.
func resolve(doc *block.Document, targetID string, pos Position) (string, int) {
	switch pos {
	case PositionInside:
		return targetID, len(doc.FindByID(targetID).Children)
	case PositionBefore, PositionAfter:
		parentID := document.RootID
		siblings := doc.Blocks
		if parent := doc.FindParent(targetID); parent != nil {
			parentID = parent.ID
			siblings = parent.Children
		}
		index := block.FindIndex(siblings, targetID)
		if pos == PositionAfter {
			index++
		}
		return parentID, index
	default:
		return document.RootID, 0
	}
}

// validate checks the resolved destination against cycle and
// containment rules, returning an empty string when the drop is legal.
// The document root accepts any type.
func (r *Resolver) validate(doc *block.Document, parentID string) string {
	childType := r.draggedType()

	if parentID == document.RootID {
		return ""
	}
	parent := doc.FindByID(parentID)
	if parent == nil {
		return ReasonParentVanished
	}

	if bi, ok := r.item.(*BlockItem); ok {
		if parentID == bi.BlockID {
			return ReasonCycle
		}
		for _, ancestorID := range doc.AncestorPath(parentID) {
			if ancestorID == bi.BlockID {
				return ReasonCycle
			}
		}
	}

	if !r.reg.IsContainer(parent.Type) {
		return ReasonNotContainer
	}
	allowed, err := r.reg.CanContain(parent.Type, childType)
	if err != nil || !allowed {
		return ReasonChildRejected
	}
	return ""
}

// draggedType returns the block type the in-flight item would place.
func (r *Resolver) draggedType() string {
	switch it := r.item.(type) {
	case *BlockItem:
		return it.Block.Type
	case *PaletteItem:
		return it.TypeID
	}
	return ""
}

// Drop releases the drag. With no target it behaves as Cancel. An
// invalid target returns ErrInvalidDropTarget. A valid target commits
// through the Committer: block items move (with the same-parent index
// adjustment for removal-before-insertion), palette items instantiate
// a new block and insert it. The resolver returns to idle in every
// case, success or failure.
func (r *Resolver) Drop(doc *block.Document, c Committer) error {
	if !r.dragging {
		return ErrNotDragging
	}
	item, target := r.item, r.target
	r.reset()

	if target == nil {
		return nil
	}
	if !target.Valid {
		return ErrInvalidDropTarget
	}

	switch it := item.(type) {
	case *BlockItem:
		index := target.Index
		// Detaching the block first shifts its later siblings left.
		if it.OriginalParentID == target.ParentID && it.OriginalIndex >= 0 && it.OriginalIndex < target.Index {
			index--
		}
		return c.Move(it.BlockID, target.ParentID, index)
	case *PaletteItem:
		b := &block.Block{
			ID:         uuid.NewString(),
			Type:       it.TypeID,
			Properties: r.reg.DefaultProperties(it.TypeID),
		}
		if r.reg.IsContainer(it.TypeID) {
			b.Children = []*block.Block{}
		}
		return c.Insert(b, target.ParentID, target.Index)
	}
	return nil
}

// Cancel unconditionally discards the in-flight item and target and
// returns the resolver to idle.
func (r *Resolver) Cancel() {
	r.reset()
}

func (r *Resolver) reset() {
	r.dragging = false
	r.item = nil
	r.target = nil
}
