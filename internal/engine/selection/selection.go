package selection

import (
	"errors"

	"github.com/dshills/blockedit/internal/engine/block"
)

// ErrNoFocus indicates edit mode was requested without a focused block.
var ErrNoFocus = errors.New("no focused block")

// State is the selected-block record. AnchorID and LastSelectedID,
// when set, reference members of SelectedIDs; consumers re-validate
// all three against the live tree before acting.
type State struct {
	// SelectedIDs is the set of selected block IDs.
	SelectedIDs map[string]bool

	// AnchorID is the fixed end of a range selection.
	AnchorID string

	// LastSelectedID is the most recently selected ID, the moving end
	// of a range selection.
	LastSelectedID string
}

// Clone returns an independent copy of the state.
func (s State) Clone() State {
	c := s
	c.SelectedIDs = make(map[string]bool, len(s.SelectedIDs))
	for id := range s.SelectedIDs {
		c.SelectedIDs[id] = true
	}
	return c
}

// IsEmpty reports whether nothing is selected.
func (s State) IsEmpty() bool {
	return len(s.SelectedIDs) == 0
}

// Focus is the keyboard focus record. Editing implies FocusedID is set.
type Focus struct {
	// FocusedID is the block holding keyboard focus, if any.
	FocusedID string

	// Editing reports whether the focused block is in edit mode.
	Editing bool
}

// Tracker tracks selection and focus for one editor session. All
// derivations run against the live tree passed in by the caller; the
// tracker stores IDs only and never holds block references.
//
// Tracker is not safe for concurrent use; the engine facade serializes
// access to it.
type Tracker struct {
	state State
	focus Focus
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{state: State{SelectedIDs: make(map[string]bool)}}
}

// State returns a copy of the current selection state.
func (t *Tracker) State() State {
	return t.state.Clone()
}

// Focus returns the current focus state.
func (t *Tracker) Focus() Focus {
	return t.focus
}

// Restore replaces the selection state, then re-validates it against
// the given tree (used when undo/redo swaps the document out).
func (t *Tracker) Restore(state State, doc *block.Document) {
	t.state = state.Clone()
	if t.state.SelectedIDs == nil {
		t.state.SelectedIDs = make(map[string]bool)
	}
	t.Prune(doc)
}

// Select replaces the selection with the single given block, makes it
// both anchor and last-selected, and moves focus to it (not editing).
// It reports false and changes nothing when the block does not exist.
func (t *Tracker) Select(doc *block.Document, id string) bool {
	if !doc.Contains(id) {
		return false
	}
	t.state = State{
		SelectedIDs:    map[string]bool{id: true},
		AnchorID:       id,
		LastSelectedID: id,
	}
	t.focus = Focus{FocusedID: id}
	return true
}

// Toggle adds the block to the selection, or removes it when already
// selected. Removing the anchor reassigns it to an arbitrary remaining
// selected ID; which one is deliberately unspecified. It reports false
// and changes nothing when the block does not exist.
func (t *Tracker) Toggle(doc *block.Document, id string) bool {
	if !doc.Contains(id) {
		return false
	}
	if t.state.SelectedIDs[id] {
		delete(t.state.SelectedIDs, id)
		if t.state.AnchorID == id {
			t.state.AnchorID = anyID(t.state.SelectedIDs)
		}
		if t.state.LastSelectedID == id {
			t.state.LastSelectedID = t.state.AnchorID
		}
		return true
	}
	t.state.SelectedIDs[id] = true
	if t.state.AnchorID == "" {
		t.state.AnchorID = id
	}
	t.state.LastSelectedID = id
	return true
}

// Range returns the inclusive document-order slice of IDs between a
// and b, regardless of argument order: Range(a,b) == Range(b,a). It
// returns nil when either end is absent from the tree.
func Range(doc *block.Document, a, b string) []string {
	flat := doc.FlatIDs()
	ia, ib := indexOf(flat, a), indexOf(flat, b)
	if ia < 0 || ib < 0 {
		return nil
	}
	if ia > ib {
		ia, ib = ib, ia
	}
	return append([]string(nil), flat[ia:ib+1]...)
}

// ExtendDown grows the selection one step forward in document order.
func (t *Tracker) ExtendDown(doc *block.Document) {
	t.extend(doc, 1)
}

// ExtendUp grows the selection one step backward in document order.
func (t *Tracker) ExtendUp(doc *block.Document) {
	t.extend(doc, -1)
}

// extend finds the document-order neighbor of the current focus (or
// last-selected) block and selects the range between it and the
// existing anchor. With no usable reference it starts from the flat
// list's first (down) or last (up) entry.
func (t *Tracker) extend(doc *block.Document, dir int) {
	flat := doc.FlatIDs()
	if len(flat) == 0 {
		return
	}

	ref := t.focus.FocusedID
	if ref == "" {
		ref = t.state.LastSelectedID
	}

	var next string
	if i := indexOf(flat, ref); i >= 0 {
		j := i + dir
		if j < 0 {
			j = 0
		}
		if j > len(flat)-1 {
			j = len(flat) - 1
		}
		next = flat[j]
	} else if dir > 0 {
		next = flat[0]
	} else {
		next = flat[len(flat)-1]
	}

	anchor := t.state.AnchorID
	if indexOf(flat, anchor) < 0 {
		anchor = next
	}

	ids := Range(doc, anchor, next)
	selected := make(map[string]bool, len(ids))
	for _, id := range ids {
		selected[id] = true
	}
	t.state = State{SelectedIDs: selected, AnchorID: anchor, LastSelectedID: next}
	t.focus = Focus{FocusedID: next}
}

// SetFocus moves keyboard focus to the given block (not editing). It
// reports false and changes nothing when the block does not exist.
func (t *Tracker) SetFocus(doc *block.Document, id string) bool {
	if !doc.Contains(id) {
		return false
	}
	t.focus = Focus{FocusedID: id}
	return true
}

// EnterEditMode puts the focused block into edit mode. It returns
// ErrNoFocus when nothing is focused.
func (t *Tracker) EnterEditMode() error {
	if t.focus.FocusedID == "" {
		return ErrNoFocus
	}
	t.focus.Editing = true
	return nil
}

// ExitEditMode leaves edit mode, preserving focus.
func (t *Tracker) ExitEditMode() {
	t.focus.Editing = false
}

// Escape collapses editor state one stage per call: exit edit mode if
// editing, else clear the selection, else clear focus. It reports
// whether any stage applied.
func (t *Tracker) Escape() bool {
	switch {
	case t.focus.Editing:
		t.focus.Editing = false
		return true
	case !t.state.IsEmpty():
		t.clearSelection()
		return true
	case t.focus.FocusedID != "":
		t.focus = Focus{}
		return true
	}
	return false
}

// Clear resets both selection and focus (editor teardown).
func (t *Tracker) Clear() {
	t.clearSelection()
	t.focus = Focus{}
}

// Remove drops the given IDs from selection and focus, typically after
// a delete reports its removed subtree.
func (t *Tracker) Remove(ids ...string) {
	for _, id := range ids {
		delete(t.state.SelectedIDs, id)
		if t.state.AnchorID == id {
			t.state.AnchorID = ""
		}
		if t.state.LastSelectedID == id {
			t.state.LastSelectedID = ""
		}
		if t.focus.FocusedID == id {
			t.focus = Focus{}
		}
	}
	t.repairAnchors()
}

// Prune drops references to blocks no longer present in the tree.
func (t *Tracker) Prune(doc *block.Document) {
	for id := range t.state.SelectedIDs {
		if !doc.Contains(id) {
			delete(t.state.SelectedIDs, id)
		}
	}
	if t.state.AnchorID != "" && !doc.Contains(t.state.AnchorID) {
		t.state.AnchorID = ""
	}
	if t.state.LastSelectedID != "" && !doc.Contains(t.state.LastSelectedID) {
		t.state.LastSelectedID = ""
	}
	if t.focus.FocusedID != "" && !doc.Contains(t.focus.FocusedID) {
		t.focus = Focus{}
	}
	t.repairAnchors()
}

// repairAnchors reassigns anchor/last from the remaining selection
// when they were cleared. The choice is arbitrary by design.
func (t *Tracker) repairAnchors() {
	if t.state.IsEmpty() {
		t.state.AnchorID = ""
		t.state.LastSelectedID = ""
		return
	}
	if t.state.AnchorID == "" {
		t.state.AnchorID = anyID(t.state.SelectedIDs)
	}
	if t.state.LastSelectedID == "" {
		t.state.LastSelectedID = t.state.AnchorID
	}
}

func (t *Tracker) clearSelection() {
	t.state = State{SelectedIDs: make(map[string]bool)}
}

// anyID returns an arbitrary key of the set, or "" when empty.
func anyID(set map[string]bool) string {
	for id := range set {
		return id
	}
	return ""
}

func indexOf(ids []string, id string) int {
	if id == "" {
		return -1
	}
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
