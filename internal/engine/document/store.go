package document

import (
	"github.com/google/uuid"

	"github.com/dshills/blockedit/internal/engine/block"
	"github.com/dshills/blockedit/internal/registry"
)

// RootID is the parent ID that addresses the document's root level.
const RootID = ""

// Store is the authoritative holder of the live block tree. Every
// mutation validates first, then produces a new document value and
// swaps it in (copy-on-write at the document level), so documents
// handed out earlier remain valid snapshots.
//
// Store is not safe for concurrent use; the engine facade serializes
// access to it.
type Store struct {
	reg registry.Registry
	doc *block.Document
}

// NewStore creates a store over an empty document.
func NewStore(reg registry.Registry) *Store {
	return &Store{reg: reg, doc: block.NewDocument()}
}

// NewStoreFromDocument creates a store over a copy of the given document.
func NewStoreFromDocument(reg registry.Registry, doc *block.Document) *Store {
	if doc == nil {
		return NewStore(reg)
	}
	return &Store{reg: reg, doc: doc.Clone()}
}

// Document returns the current document value. Callers must treat it
// as read-only; it is replaced wholesale by the next mutation.
func (s *Store) Document() *block.Document {
	return s.doc
}

// Restore replaces the live document with a copy of the given snapshot.
func (s *Store) Restore(doc *block.Document) {
	if doc == nil {
		s.doc = block.NewDocument()
		return
	}
	s.doc = doc.Clone()
}

// Insert adds a block under the parent with the given ID (RootID for
// the root level) at the given sibling index. A negative index or an
// index past the end appends. The block is copied before insertion; a
// missing ID is filled with a generated UUID, and container types
// without a children list get an empty one attached.
func (s *Store) Insert(b *block.Block, parentID string, index int) error {
	if b == nil {
		return ErrNilBlock
	}
	if b.ID != "" && s.doc.Contains(b.ID) {
		return ErrDuplicateID
	}
	if parentID != RootID && s.doc.FindByID(parentID) == nil {
		return ErrParentNotFound
	}

	ins := b.Clone()
	if ins.ID == "" {
		ins.ID = uuid.NewString()
	}
	if ins.Children == nil && s.reg.IsContainer(ins.Type) {
		ins.Children = []*block.Block{}
	}

	next := s.doc.Clone()
	if parentID == RootID {
		next.Blocks = insertAt(next.Blocks, ins, index)
	} else {
		parent := next.FindByID(parentID)
		parent.Children = insertAt(parent.Children, ins, index)
	}
	s.doc = next
	return nil
}

// Delete removes the block with the given ID and its entire subtree.
// It returns the removed IDs in document order so callers can clean up
// selection and focus references.
func (s *Store) Delete(id string) ([]string, error) {
	removed := s.doc.SubtreeIDs(id)
	if removed == nil {
		return nil, ErrNotFound
	}

	next := s.doc.Clone()
	if parent := next.FindParent(id); parent != nil {
		parent.Children = removeAt(parent.Children, block.FindIndex(parent.Children, id))
	} else {
		next.Blocks = removeAt(next.Blocks, block.FindIndex(next.Blocks, id))
	}
	s.doc = next
	return removed, nil
}

// Move relocates the block with the given ID under a new parent
// (RootID for the root level) at the given sibling index. The index is
// interpreted against the sibling list after the block has been
// detached; negative or past-the-end indexes append. The operation is
// atomic: on any error the document is unchanged.
func (s *Store) Move(id, newParentID string, newIndex int) error {
	if s.doc.FindByID(id) == nil {
		return ErrNotFound
	}
	if newParentID != RootID {
		if s.doc.FindByID(newParentID) == nil {
			return ErrParentNotFound
		}
		if newParentID == id || s.doc.IsAncestor(id, newParentID) {
			return ErrWouldCreateCycle
		}
	}

	next := s.doc.Clone()

	// Detach.
	moved := next.FindByID(id)
	if parent := next.FindParent(id); parent != nil {
		parent.Children = removeAt(parent.Children, block.FindIndex(parent.Children, id))
	} else {
		next.Blocks = removeAt(next.Blocks, block.FindIndex(next.Blocks, id))
	}

	// Reattach.
	if newParentID == RootID {
		next.Blocks = insertAt(next.Blocks, moved, newIndex)
	} else {
		parent := next.FindByID(newParentID)
		parent.Children = insertAt(parent.Children, moved, newIndex)
	}
	s.doc = next
	return nil
}

// UpdateProperties shallow-merges the given partial property map into
// the block's properties. Keys present in partial overwrite existing
// keys; other keys are preserved.
func (s *Store) UpdateProperties(id string, partial map[string]any) error {
	if s.doc.FindByID(id) == nil {
		return ErrNotFound
	}

	next := s.doc.Clone()
	b := next.FindByID(id)
	if b.Properties == nil {
		b.Properties = make(map[string]any, len(partial))
	}
	for k, v := range partial {
		b.Properties[k] = v
	}
	s.doc = next
	return nil
}

// ReplaceChildren swaps the block's entire child list for a copy of
// newChildren. The block's type must be a container per the registry.
func (s *Store) ReplaceChildren(id string, newChildren []*block.Block) error {
	b := s.doc.FindByID(id)
	if b == nil {
		return ErrNotFound
	}
	if !s.reg.IsContainer(b.Type) {
		return ErrNotAContainer
	}

	next := s.doc.Clone()
	target := next.FindByID(id)
	target.Children = make([]*block.Block, len(newChildren))
	for i, c := range newChildren {
		target.Children[i] = c.Clone()
	}
	s.doc = next
	return nil
}

// insertAt returns siblings with b inserted at index. A negative index
// or one past len(siblings) appends.
func insertAt(siblings []*block.Block, b *block.Block, index int) []*block.Block {
	if index < 0 || index > len(siblings) {
		index = len(siblings)
	}
	out := make([]*block.Block, 0, len(siblings)+1)
	out = append(out, siblings[:index]...)
	out = append(out, b)
	return append(out, siblings[index:]...)
}

// removeAt returns siblings without the element at index.
func removeAt(siblings []*block.Block, index int) []*block.Block {
	if index < 0 || index >= len(siblings) {
		return siblings
	}
	out := make([]*block.Block, 0, len(siblings)-1)
	out = append(out, siblings[:index]...)
	return append(out, siblings[index+1:]...)
}
