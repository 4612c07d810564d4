package history

import (
	"errors"
	"time"
)

// Errors returned by history operations.
var (
	// ErrNothingToUndo indicates the session is already at the base state.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo indicates the session is at the newest entry.
	ErrNothingToRedo = errors.New("nothing to redo")

	// ErrBatchActive indicates StartBatch was called during a batch.
	ErrBatchActive = errors.New("batch already active")

	// ErrNoBatchActive indicates a batch operation was called outside a batch.
	ErrNoBatchActive = errors.New("no batch active")
)

// DefaultMaxEntries caps the undo stack; the oldest entry is evicted
// from the front when the cap is exceeded.
const DefaultMaxEntries = 100

// Entry is one recorded history step: the post-change snapshot plus
// bookkeeping for display.
type Entry struct {
	// Snapshot is the state after the change this entry records.
	Snapshot *Snapshot

	// Description is a human-readable label ("insert paragraph").
	Description string

	// Timestamp is when the entry was recorded.
	Timestamp time.Time
}

// History is a bounded linear undo/redo stack over full-state
// snapshots. currentIndex addresses the entry matching the live state;
// -1 means the live state matches the base snapshot. Pushing while
// undone discards the entries past currentIndex (new edits invalidate
// redo).
//
// History is passive: callers capture snapshots and hand them in, and
// Undo/Redo return the snapshot to restore. It is not safe for
// concurrent use; the engine facade serializes access to it.
type History struct {
	baseSnapshot *Snapshot
	entries      []*Entry
	currentIndex int
	maxEntries   int

	batching         bool
	batchDescription string
	batchStart       *Snapshot

	now func() time.Time
}

// Option configures a History during creation.
type Option func(*History)

// WithMaxEntries sets the undo stack cap.
func WithMaxEntries(max int) Option {
	return func(h *History) {
		if max > 0 {
			h.maxEntries = max
		}
	}
}

// WithClock sets the timestamp source (tests use a fixed clock).
func WithClock(now func() time.Time) Option {
	return func(h *History) {
		if now != nil {
			h.now = now
		}
	}
}

// New creates a history initialized at the given base snapshot.
func New(base *Snapshot, opts ...Option) *History {
	h := &History{
		baseSnapshot: base,
		currentIndex: -1,
		maxEntries:   DefaultMaxEntries,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Init re-seeds the history at a new base snapshot, clearing all
// entries and any active batch (used when a document is loaded).
func (h *History) Init(base *Snapshot) {
	h.baseSnapshot = base
	h.entries = nil
	h.currentIndex = -1
	h.batching = false
	h.batchDescription = ""
	h.batchStart = nil
}

// Push records a post-change snapshot as a new entry. While a batch is
// active individual pushes are suppressed; only CommitBatch records.
func (h *History) Push(snap *Snapshot, description string) {
	if h.batching {
		return
	}
	h.push(snap, description)
}

func (h *History) push(snap *Snapshot, description string) {
	// New edits invalidate anything past the current position.
	if h.currentIndex < len(h.entries)-1 {
		h.entries = h.entries[:h.currentIndex+1]
	}
	h.entries = append(h.entries, &Entry{
		Snapshot:    snap,
		Description: description,
		Timestamp:   h.now(),
	})
	if len(h.entries) > h.maxEntries {
		excess := len(h.entries) - h.maxEntries
		h.entries = h.entries[excess:]
	}
	h.currentIndex = len(h.entries) - 1
}

// Undo steps back one entry and returns the snapshot to restore: the
// previous entry's, or the base snapshot when at the first entry.
func (h *History) Undo() (*Snapshot, error) {
	if h.currentIndex < 0 {
		return nil, ErrNothingToUndo
	}
	var restore *Snapshot
	if h.currentIndex == 0 {
		restore = h.baseSnapshot
	} else {
		restore = h.entries[h.currentIndex-1].Snapshot
	}
	h.currentIndex--
	return restore, nil
}

// Redo steps forward one entry and returns its snapshot.
func (h *History) Redo() (*Snapshot, error) {
	if h.currentIndex >= len(h.entries)-1 {
		return nil, ErrNothingToRedo
	}
	h.currentIndex++
	return h.entries[h.currentIndex].Snapshot, nil
}

// CanUndo reports whether Undo would succeed.
func (h *History) CanUndo() bool {
	return h.currentIndex >= 0
}

// CanRedo reports whether Redo would succeed.
func (h *History) CanRedo() bool {
	return h.currentIndex < len(h.entries)-1
}

// StartBatch begins coalescing mutations into one future entry. The
// pre-batch snapshot is kept for rollback and, when the history has no
// base yet, becomes the base snapshot.
func (h *History) StartBatch(description string, current *Snapshot) error {
	if h.batching {
		return ErrBatchActive
	}
	h.batching = true
	h.batchDescription = description
	h.batchStart = current
	if h.baseSnapshot == nil {
		h.baseSnapshot = current
	}
	return nil
}

// CommitBatch ends the batch, recording the given post-batch snapshot
// as a single entry carrying the batch description.
func (h *History) CommitBatch(current *Snapshot) error {
	if !h.batching {
		return ErrNoBatchActive
	}
	desc := h.batchDescription
	h.batching = false
	h.batchDescription = ""
	h.batchStart = nil
	h.push(current, desc)
	return nil
}

// RollbackBatch ends the batch without recording an entry and returns
// the pre-batch snapshot for the caller to restore.
func (h *History) RollbackBatch() (*Snapshot, error) {
	if !h.batching {
		return nil, ErrNoBatchActive
	}
	restore := h.batchStart
	h.batching = false
	h.batchDescription = ""
	h.batchStart = nil
	return restore, nil
}

// IsBatching reports whether a batch is active.
func (h *History) IsBatching() bool {
	return h.batching
}

// Len returns the number of recorded entries.
func (h *History) Len() int {
	return len(h.entries)
}

// CurrentIndex returns the index of the entry matching live state, or
// -1 when live state matches the base snapshot.
func (h *History) CurrentIndex() int {
	return h.currentIndex
}

// EntryInfo describes one history entry for display.
type EntryInfo struct {
	Description string
	Timestamp   time.Time
}

// Entries returns display info for all recorded entries, oldest first.
func (h *History) Entries() []EntryInfo {
	out := make([]EntryInfo, len(h.entries))
	for i, e := range h.entries {
		out[i] = EntryInfo{Description: e.Description, Timestamp: e.Timestamp}
	}
	return out
}
