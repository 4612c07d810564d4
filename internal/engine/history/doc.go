// Package history implements snapshot-based undo/redo for an editor
// session.
//
// Instead of inverse commands, every recorded entry carries a full
// post-change snapshot of document and selection. Undo restores the
// previous entry's snapshot (or the base snapshot), redo restores the
// next one. The stack is linear and bounded: new edits after an undo
// discard the redo tail, and the oldest entry is evicted from the
// front when the cap is exceeded.
//
// Batch mode coalesces a run of mutations into a single entry:
// StartBatch suppresses individual pushes, CommitBatch records one
// entry with the batch description, and RollbackBatch hands back the
// pre-batch snapshot without recording anything.
//
// Storing whole snapshots trades memory for simplicity — there are no
// inverse-operation bugs to have — which is acceptable at typical
// document sizes together with the entry cap.
package history
