// Package document implements the mutation engine for the block tree.
//
// Store owns the live document. Each operation validates its inputs
// against the current tree, then builds a new document value and swaps
// it in. Because mutation is copy-on-write at the document level, any
// *block.Document obtained before a mutation remains a valid, fully
// consistent snapshot — the history engine relies on this.
//
// Expected failures are sentinel errors (ErrNotFound,
// ErrParentNotFound, ErrWouldCreateCycle, ErrNotAContainer, ...) and
// are always reported before any state change, so a failed call leaves
// the document exactly as it was.
package document
