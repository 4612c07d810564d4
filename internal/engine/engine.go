package engine

import (
	"fmt"
	"sync"

	"github.com/dshills/blockedit/internal/engine/block"
	"github.com/dshills/blockedit/internal/engine/document"
	"github.com/dshills/blockedit/internal/engine/dragdrop"
	"github.com/dshills/blockedit/internal/engine/history"
	"github.com/dshills/blockedit/internal/engine/selection"
	"github.com/dshills/blockedit/internal/event"
	"github.com/dshills/blockedit/internal/registry"
)

// Re-export commonly used types for convenience.
type (
	// Block is one node in the content tree.
	Block = block.Block

	// Document is an ordered forest of root blocks.
	Document = block.Document

	// SelectionState is the selected-block record.
	SelectionState = selection.State

	// FocusState is the keyboard focus record.
	FocusState = selection.Focus

	// Snapshot is an immutable copy of document plus selection.
	Snapshot = history.Snapshot

	// DropTarget describes where an in-flight drag would land.
	DropTarget = dragdrop.Target

	// DragItem is the payload of an in-flight drag.
	DragItem = dragdrop.Item

	// Rect is a bounding box in the UI layer's coordinate space.
	Rect = dragdrop.Rect
)

// RootID addresses the document's root level as a parent.
const RootID = document.RootID

// Session is one editor session: the authoritative document, its
// selection and focus, its undo history, and its drag-drop state,
// behind a single API. Sessions are independent; tests routinely run
// several side by side.
//
// All operations are safe for concurrent use, though the intended
// model is a single thread of control: each call runs to completion
// before the next event is processed.
type Session struct {
	mu sync.RWMutex

	reg   registry.Registry
	store *document.Store
	sel   *selection.Tracker
	hist  *history.History
	drag  *dragdrop.Resolver

	events *event.Notifier
}

// New creates a session over an empty document (or the document given
// via WithDocument), with history initialized at that base state.
func New(reg registry.Registry, opts ...Option) *Session {
	cfg := newOptions()
	for _, opt := range opts {
		opt(cfg)
	}

	s := &Session{
		reg:    reg,
		store:  document.NewStoreFromDocument(reg, cfg.initDoc),
		sel:    selection.NewTracker(),
		drag:   dragdrop.NewResolver(reg, dragdrop.WithEdgeThreshold(cfg.edgeThreshold)),
		events: event.NewNotifier(),
	}
	s.hist = history.New(
		history.Capture(s.store.Document(), s.sel.State()),
		history.WithMaxEntries(cfg.maxUndoEntries),
		history.WithClock(cfg.clock),
	)
	return s
}

// Document returns the current document value. Callers must treat it
// as read-only; mutations replace it wholesale.
func (s *Session) Document() *block.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Document()
}

// Selection returns a copy of the current selection state.
func (s *Session) Selection() selection.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sel.State()
}

// Focus returns the current focus state.
func (s *Session) Focus() selection.Focus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sel.Focus()
}

// Registry returns the session's type registry.
func (s *Session) Registry() registry.Registry {
	return s.reg
}

// Subscribe registers a listener for session change events and
// returns its subscription ID.
func (s *Session) Subscribe(l event.Listener) int {
	return s.events.Subscribe(l)
}

// Unsubscribe removes a change listener.
func (s *Session) Unsubscribe(id int) error {
	return s.events.Unsubscribe(id)
}

// Load replaces the session's document, clears selection and focus,
// and re-seeds history at the loaded state.
func (s *Session) Load(doc *block.Document) {
	s.mu.Lock()
	s.store.Restore(doc)
	s.sel.Clear()
	s.drag.Cancel()
	s.hist.Init(history.Capture(s.store.Document(), s.sel.State()))
	s.mu.Unlock()
	s.events.Publish(event.Event{Kind: event.KindDocument, Description: "load"})
}

// Close tears the session down, clearing all state. The session must
// not be used afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	s.store.Restore(nil)
	s.sel.Clear()
	s.drag.Cancel()
	s.hist.Init(nil)
	s.mu.Unlock()
}

// --- Mutations (history-wrapped) ---

// Insert adds a block under parentID (RootID for the root level) at
// the given sibling index and records an undo step.
func (s *Session) Insert(b *block.Block, parentID string, index int) error {
	s.mu.Lock()
	err := s.insertLocked(b, parentID, index)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.events.Publish(event.Event{Kind: event.KindDocument, Description: "insert"})
	return nil
}

func (s *Session) insertLocked(b *block.Block, parentID string, index int) error {
	if err := s.store.Insert(b, parentID, index); err != nil {
		return err
	}
	s.pushLocked(fmt.Sprintf("insert %s", b.Type))
	return nil
}

// Delete removes a block and its subtree, prunes it from selection
// and focus, records an undo step, and returns the removed IDs.
func (s *Session) Delete(id string) ([]string, error) {
	s.mu.Lock()
	removed, err := s.store.Delete(id)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.sel.Remove(removed...)
	s.pushLocked(fmt.Sprintf("delete %d block(s)", len(removed)))
	s.mu.Unlock()
	s.events.Publish(event.Event{Kind: event.KindDocument, Description: "delete"})
	return removed, nil
}

// Move relocates a block under a new parent and records an undo step.
func (s *Session) Move(id, newParentID string, newIndex int) error {
	s.mu.Lock()
	err := s.moveLocked(id, newParentID, newIndex)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.events.Publish(event.Event{Kind: event.KindDocument, Description: "move"})
	return nil
}

func (s *Session) moveLocked(id, newParentID string, newIndex int) error {
	if err := s.store.Move(id, newParentID, newIndex); err != nil {
		return err
	}
	s.pushLocked("move block")
	return nil
}

// UpdateProperties shallow-merges the partial property map into the
// block's properties and records an undo step.
func (s *Session) UpdateProperties(id string, partial map[string]any) error {
	s.mu.Lock()
	err := s.store.UpdateProperties(id, partial)
	if err == nil {
		s.pushLocked("update properties")
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.events.Publish(event.Event{Kind: event.KindDocument, Description: "update"})
	return nil
}

// ReplaceChildren swaps a container's child list and records an undo
// step.
func (s *Session) ReplaceChildren(id string, children []*block.Block) error {
	s.mu.Lock()
	err := s.store.ReplaceChildren(id, children)
	if err == nil {
		s.pushLocked("replace children")
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.events.Publish(event.Event{Kind: event.KindDocument, Description: "replace children"})
	return nil
}

// pushLocked records the post-mutation state as a history entry.
// While a batch is active the history suppresses it.
func (s *Session) pushLocked(description string) {
	s.hist.Push(history.Capture(s.store.Document(), s.sel.State()), description)
}

// --- History ---

// Undo restores the previous recorded state.
func (s *Session) Undo() error {
	s.mu.Lock()
	snap, err := s.hist.Undo()
	if err == nil {
		s.restoreLocked(snap)
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.events.Publish(event.Event{Kind: event.KindHistory, Description: "undo"})
	return nil
}

// Redo restores the next recorded state.
func (s *Session) Redo() error {
	s.mu.Lock()
	snap, err := s.hist.Redo()
	if err == nil {
		s.restoreLocked(snap)
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.events.Publish(event.Event{Kind: event.KindHistory, Description: "redo"})
	return nil
}

// restoreLocked swaps in a snapshot's document and selection, then
// re-validates selection and focus against the restored tree.
func (s *Session) restoreLocked(snap *history.Snapshot) {
	if snap == nil {
		s.store.Restore(nil)
		s.sel.Clear()
		return
	}
	s.store.Restore(snap.Document)
	s.sel.Restore(snap.Selection, s.store.Document())
}

// CanUndo reports whether Undo would succeed.
func (s *Session) CanUndo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hist.CanUndo()
}

// CanRedo reports whether Redo would succeed.
func (s *Session) CanRedo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hist.CanRedo()
}

// HistoryEntries returns display info for the recorded undo steps.
func (s *Session) HistoryEntries() []history.EntryInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hist.Entries()
}

// StartBatch begins coalescing mutations into one history entry.
func (s *Session) StartBatch(description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hist.StartBatch(description, history.Capture(s.store.Document(), s.sel.State()))
}

// CommitBatch records the batched mutations as a single entry.
func (s *Session) CommitBatch() error {
	s.mu.Lock()
	err := s.hist.CommitBatch(history.Capture(s.store.Document(), s.sel.State()))
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.events.Publish(event.Event{Kind: event.KindHistory, Description: "commit batch"})
	return nil
}

// RollbackBatch discards the batched mutations, restoring the
// pre-batch state without recording an entry.
func (s *Session) RollbackBatch() error {
	s.mu.Lock()
	snap, err := s.hist.RollbackBatch()
	if err == nil {
		s.restoreLocked(snap)
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.events.Publish(event.Event{Kind: event.KindHistory, Description: "rollback batch"})
	return nil
}

// Transact runs fn inside a batch: commit on success, rollback on
// error (returning fn's error). Mutations inside fn go through the
// session as usual; only the batch entry reaches history.
func (s *Session) Transact(description string, fn func() error) error {
	if err := s.StartBatch(description); err != nil {
		return err
	}
	if err := fn(); err != nil {
		if rbErr := s.RollbackBatch(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}
	return s.CommitBatch()
}

// --- Selection and focus ---

// Select replaces the selection with the single given block and moves
// focus to it. It reports false when the block does not exist.
func (s *Session) Select(id string) bool {
	s.mu.Lock()
	ok := s.sel.Select(s.store.Document(), id)
	s.mu.Unlock()
	if ok {
		s.events.Publish(event.Event{Kind: event.KindSelection, Description: "select"})
	}
	return ok
}

// Toggle adds or removes the block from the selection. It reports
// false when the block does not exist.
func (s *Session) Toggle(id string) bool {
	s.mu.Lock()
	ok := s.sel.Toggle(s.store.Document(), id)
	s.mu.Unlock()
	if ok {
		s.events.Publish(event.Event{Kind: event.KindSelection, Description: "toggle"})
	}
	return ok
}

// Range returns the inclusive document-order IDs between a and b,
// independent of argument order.
func (s *Session) Range(a, b string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return selection.Range(s.store.Document(), a, b)
}

// ExtendUp grows the selection one step backward in document order.
func (s *Session) ExtendUp() {
	s.mu.Lock()
	s.sel.ExtendUp(s.store.Document())
	s.mu.Unlock()
	s.events.Publish(event.Event{Kind: event.KindSelection, Description: "extend up"})
}

// ExtendDown grows the selection one step forward in document order.
func (s *Session) ExtendDown() {
	s.mu.Lock()
	s.sel.ExtendDown(s.store.Document())
	s.mu.Unlock()
	s.events.Publish(event.Event{Kind: event.KindSelection, Description: "extend down"})
}

// SetFocus moves keyboard focus to the block. It reports false when
// the block does not exist.
func (s *Session) SetFocus(id string) bool {
	s.mu.Lock()
	ok := s.sel.SetFocus(s.store.Document(), id)
	s.mu.Unlock()
	if ok {
		s.events.Publish(event.Event{Kind: event.KindSelection, Description: "focus"})
	}
	return ok
}

// EnterEditMode puts the focused block into edit mode.
func (s *Session) EnterEditMode() error {
	s.mu.Lock()
	err := s.sel.EnterEditMode()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.events.Publish(event.Event{Kind: event.KindSelection, Description: "enter edit"})
	return nil
}

// ExitEditMode leaves edit mode, preserving focus.
func (s *Session) ExitEditMode() {
	s.mu.Lock()
	s.sel.ExitEditMode()
	s.mu.Unlock()
	s.events.Publish(event.Event{Kind: event.KindSelection, Description: "exit edit"})
}

// Escape collapses editor state one stage: exit edit mode, else clear
// selection, else clear focus. It reports whether a stage applied.
func (s *Session) Escape() bool {
	s.mu.Lock()
	ok := s.sel.Escape()
	s.mu.Unlock()
	if ok {
		s.events.Publish(event.Event{Kind: event.KindSelection, Description: "escape"})
	}
	return ok
}

// --- Drag and drop ---

// dropCommitter routes resolver commits through the history-wrapped
// session mutations. The session lock is already held.
type dropCommitter struct{ s *Session }

func (c dropCommitter) Move(id, newParentID string, newIndex int) error {
	return c.s.moveLocked(id, newParentID, newIndex)
}

func (c dropCommitter) Insert(b *block.Block, parentID string, index int) error {
	return c.s.insertLocked(b, parentID, index)
}

// StartBlockDrag begins dragging an existing block. A drag already in
// flight is replaced.
func (s *Session) StartBlockDrag(id string) error {
	s.mu.Lock()
	err := s.drag.StartBlockDrag(s.store.Document(), id)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.events.Publish(event.Event{Kind: event.KindDrag, Description: "drag start"})
	return nil
}

// StartPaletteDrag begins dragging a new block type in from the
// palette. A drag already in flight is replaced.
func (s *Session) StartPaletteDrag(typeID, displayName, icon string) error {
	s.mu.Lock()
	err := s.drag.StartPaletteDrag(typeID, displayName, icon)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.events.Publish(event.Event{Kind: event.KindDrag, Description: "drag start"})
	return nil
}

// UpdateDropTarget recomputes the drop target from pointer geometry.
// No-op when no drag is in flight.
func (s *Session) UpdateDropTarget(targetID string, pointerY float64, rect dragdrop.Rect) {
	s.mu.Lock()
	s.drag.UpdateTarget(s.store.Document(), targetID, pointerY, rect)
	s.mu.Unlock()
}

// DropTarget returns the current drop target, if any.
func (s *Session) DropTarget() (dragdrop.Target, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.drag.Target()
}

// Dragging reports whether a drag is in flight.
func (s *Session) Dragging() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.drag.Dragging()
}

// Drop releases the in-flight drag, committing a valid target through
// the mutation engine (with an undo step) and cancelling otherwise.
func (s *Session) Drop() error {
	s.mu.Lock()
	err := s.drag.Drop(s.store.Document(), dropCommitter{s})
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.events.Publish(event.Event{Kind: event.KindDrag, Description: "drop"})
	return nil
}

// CancelDrag unconditionally discards the in-flight drag.
func (s *Session) CancelDrag() {
	s.mu.Lock()
	s.drag.Cancel()
	s.mu.Unlock()
	s.events.Publish(event.Event{Kind: event.KindDrag, Description: "drag cancel"})
}

// --- Persistence seam ---

// Snapshot captures the current document and selection; the unit a
// save routine serializes.
func (s *Session) Snapshot() *history.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return history.Capture(s.store.Document(), s.sel.State())
}

// RestoreSnapshot replaces live state from a snapshot; the unit a load
// routine invokes. History is re-seeded at the restored state.
func (s *Session) RestoreSnapshot(snap *history.Snapshot) {
	s.mu.Lock()
	s.restoreLocked(snap)
	s.drag.Cancel()
	s.hist.Init(history.Capture(s.store.Document(), s.sel.State()))
	s.mu.Unlock()
	s.events.Publish(event.Event{Kind: event.KindDocument, Description: "restore"})
}
