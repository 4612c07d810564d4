// Package block defines the content-tree data model for Blockedit.
//
// A Document is an ordered forest of Blocks. Each Block carries an
// opaque unique ID, a type tag interpreted by the external type
// registry, a free-form property map, and an optional ordered list of
// child blocks. Whether a block may hold children is a registry
// decision, not a structural one: a non-nil empty Children slice is a
// valid empty container.
//
// The package also provides the pure tree primitives shared by the
// mutation, selection, and drag-drop layers: lookup by ID, parent and
// sibling resolution, ancestor paths, and pre-order depth-first
// traversal. Pre-order order is the canonical "document order" used
// everywhere a flat view of the tree is needed.
//
// Nothing in this package mutates a tree in place. Mutation lives in
// the document package, which produces new document values and leaves
// prior snapshots intact.
package block
