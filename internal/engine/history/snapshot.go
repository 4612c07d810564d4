package history

import (
	"github.com/dshills/blockedit/internal/engine/block"
	"github.com/dshills/blockedit/internal/engine/selection"
)

// Snapshot is an immutable deep copy of document and selection state
// at one instant. It never aliases live state: Capture copies on the
// way in, and consumers copy again on the way out (the document store
// clones on Restore).
type Snapshot struct {
	// Document is the captured block tree.
	Document *block.Document

	// Selection is the captured selection record.
	Selection selection.State
}

// Capture deep-copies the given document and selection into a snapshot.
func Capture(doc *block.Document, sel selection.State) *Snapshot {
	return &Snapshot{
		Document:  doc.Clone(),
		Selection: sel.Clone(),
	}
}

// Clone returns an independent copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	return &Snapshot{
		Document:  s.Document.Clone(),
		Selection: s.Selection.Clone(),
	}
}
