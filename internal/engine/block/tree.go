package block

// Tree primitives over a document. All functions are pure: they never
// modify the tree they are handed. Traversal order is pre-order
// depth-first, the canonical document order used for navigation and
// range selection.

// Walk visits every block in document order. The visitor receives the
// block and its parent (nil for roots) and returns false to stop the
// walk early.
func (d *Document) Walk(visit func(b, parent *Block) bool) {
	if d == nil {
		return
	}
	walkBlocks(d.Blocks, nil, visit)
}

func walkBlocks(blocks []*Block, parent *Block, visit func(b, parent *Block) bool) bool {
	for _, b := range blocks {
		if !visit(b, parent) {
			return false
		}
		if len(b.Children) > 0 {
			if !walkBlocks(b.Children, b, visit) {
				return false
			}
		}
	}
	return true
}

// FindByID returns the block with the given ID, or nil if absent.
func (d *Document) FindByID(id string) *Block {
	var found *Block
	d.Walk(func(b, _ *Block) bool {
		if b.ID == id {
			found = b
			return false
		}
		return true
	})
	return found
}

// FindParent returns the parent of the block with the given ID.
// It returns nil when the block is a root or does not exist; use
// FindByID to distinguish the two.
func (d *Document) FindParent(id string) *Block {
	var found *Block
	d.Walk(func(b, parent *Block) bool {
		if b.ID == id {
			found = parent
			return false
		}
		return true
	})
	return found
}

// FindIndex returns the position of the block with the given ID within
// the sibling list, or -1 if absent.
func FindIndex(siblings []*Block, id string) int {
	for i, b := range siblings {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// Siblings returns the sibling list containing the block with the given
// ID: the parent's children, or the document roots for root blocks.
// It returns nil when the block does not exist.
func (d *Document) Siblings(id string) []*Block {
	if d.FindByID(id) == nil {
		return nil
	}
	if parent := d.FindParent(id); parent != nil {
		return parent.Children
	}
	return d.Blocks
}

// AncestorPath returns the IDs on the path from the root down to and
// including the block with the given ID. It returns nil if the block
// does not exist.
func (d *Document) AncestorPath(id string) []string {
	var path []string
	var descend func(blocks []*Block, trail []string) bool
	descend = func(blocks []*Block, trail []string) bool {
		for _, b := range blocks {
			next := append(trail, b.ID)
			if b.ID == id {
				path = append([]string(nil), next...)
				return true
			}
			if descend(b.Children, next) {
				return true
			}
		}
		return false
	}
	descend(d.Blocks, nil)
	return path
}

// IsAncestor reports whether ancestorID lies on the path from a root to
// id, excluding id itself.
func (d *Document) IsAncestor(ancestorID, id string) bool {
	path := d.AncestorPath(id)
	for _, pid := range path[:max(len(path)-1, 0)] {
		if pid == ancestorID {
			return true
		}
	}
	return false
}

// FlatIDs returns every block ID in document order. The list is
// recomputed on each call; callers must not cache it across mutations.
func (d *Document) FlatIDs() []string {
	var ids []string
	d.Walk(func(b, _ *Block) bool {
		ids = append(ids, b.ID)
		return true
	})
	return ids
}

// Contains reports whether a block with the given ID exists.
func (d *Document) Contains(id string) bool {
	return d.FindByID(id) != nil
}

// SubtreeIDs returns the IDs of the block with the given ID and all of
// its descendants in document order. It returns nil if the block does
// not exist.
func (d *Document) SubtreeIDs(id string) []string {
	root := d.FindByID(id)
	if root == nil {
		return nil
	}
	var ids []string
	var collect func(b *Block)
	collect = func(b *Block) {
		ids = append(ids, b.ID)
		for _, c := range b.Children {
			collect(c)
		}
	}
	collect(root)
	return ids
}
