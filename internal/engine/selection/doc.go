// Package selection tracks the selected-block set and keyboard focus
// for one editor session.
//
// The tracker owns two small records: the selection State (selected ID
// set plus anchor and last-selected markers for range selection) and
// the Focus record (focused ID plus edit-mode flag). Everything else
// is derived on demand from the live tree — the flat document-order ID
// list in particular is recomputed per call and never cached, since
// the tree may change between calls.
//
// Escape handling is a three-stage collapse: exit edit mode, else
// clear the selection, else clear focus — exactly one stage per
// invocation.
package selection
