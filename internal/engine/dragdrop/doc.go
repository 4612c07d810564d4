// Package dragdrop resolves where a dragged block may land.
//
// A Resolver runs the drag state machine: Start captures the drag
// item (an existing block or a palette type), UpdateTarget hit-tests
// the pointer against a block's bounding box and resolves the result
// to a concrete (parent, index) destination, and Drop commits the move
// or insert through the mutation engine. Validation — cycle
// prevention, container checks, and the registry's containment rules —
// runs on every pointer move and marks the target invalid rather than
// blocking the interaction; only Drop refuses an invalid target.
//
// The drag item is a closed sum type (BlockItem | PaletteItem) with
// exhaustive type switches at each consumption site, so a new drag
// source forces every site to be revisited.
package dragdrop
