package engine

import (
	"time"

	"github.com/dshills/blockedit/internal/engine/block"
	"github.com/dshills/blockedit/internal/engine/dragdrop"
	"github.com/dshills/blockedit/internal/engine/history"
)

// Default configuration values.
const (
	DefaultMaxUndoEntries = history.DefaultMaxEntries
	DefaultEdgeThreshold  = dragdrop.DefaultEdgeThreshold
)

type options struct {
	initDoc        *block.Document
	maxUndoEntries int
	edgeThreshold  float64
	clock          func() time.Time
}

func newOptions() *options {
	return &options{
		maxUndoEntries: DefaultMaxUndoEntries,
		edgeThreshold:  DefaultEdgeThreshold,
		clock:          time.Now,
	}
}

// Option configures a Session during creation.
type Option func(*options)

// WithDocument sets the initial document. The session works on its
// own copy; the caller's document is not touched.
func WithDocument(doc *block.Document) Option {
	return func(o *options) {
		o.initDoc = doc
	}
}

// WithMaxUndoEntries sets the undo history cap.
func WithMaxUndoEntries(max int) Option {
	return func(o *options) {
		if max > 0 {
			o.maxUndoEntries = max
		}
	}
}

// WithEdgeThreshold sets the drag-drop before/after edge band height.
func WithEdgeThreshold(t float64) Option {
	return func(o *options) {
		if t > 0 {
			o.edgeThreshold = t
		}
	}
}

// WithClock sets the history timestamp source (tests use a fixed one).
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.clock = now
		}
	}
}
