// Package engine provides the editing core for Blockedit: a session
// object combining the block tree, selection and focus, snapshot
// undo/redo, and drag-drop resolution behind one API.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - block: the Block/Document data model and pure tree primitives
//   - document: the mutation store (insert/delete/move/update, copy-on-write)
//   - history: bounded snapshot undo/redo with transactional batching
//   - selection: selected-set and focus/edit-mode tracking
//   - dragdrop: drop-target resolution and constraint validation
//
// State is owned by an explicit Session, never a package-level
// singleton, so multiple sessions coexist (tests rely on this). The
// external type registry (internal/registry) supplies all knowledge
// about block types.
//
// # Basic Usage
//
// Create a session and edit:
//
//	reg, _ := registry.NewStatic(
//	    registry.TypeSpec{Name: "page", Container: true},
//	    registry.TypeSpec{Name: "paragraph"},
//	)
//	s := engine.New(reg)
//
//	s.Insert(&engine.Block{Type: "page"}, engine.RootID, -1)
//	page := s.Document().Blocks[0]
//	s.Insert(&engine.Block{Type: "paragraph"}, page.ID, -1)
//
//	s.Undo() // removes the paragraph
//	s.Redo() // restores it
//
// # Batching
//
// Group several mutations into one undo step:
//
//	err := s.Transact("paste blocks", func() error {
//	    if err := s.Insert(a, engine.RootID, -1); err != nil {
//	        return err
//	    }
//	    return s.Insert(b, engine.RootID, -1)
//	})
//
// On error the pre-batch state is restored and no entry is recorded.
//
// # Drag and Drop
//
// The UI layer feeds pointer geometry in and reads the resolved
// target back:
//
//	s.StartBlockDrag(blockID)
//	s.UpdateDropTarget(overID, pointerY, rect)
//	if t, ok := s.DropTarget(); ok && t.Valid {
//	    s.Drop() // commits a Move through the mutation engine
//	}
//
// Validation (cycle prevention, container and containment rules) runs
// on every pointer move and marks the target invalid rather than
// blocking the interaction.
//
// # Error Handling
//
// Every expected failure is a sentinel error value, never a panic:
// lookup failures (document.ErrNotFound, document.ErrParentNotFound),
// structural rejections (document.ErrWouldCreateCycle,
// document.ErrNotAContainer), and state-machine misuse
// (history.ErrNothingToUndo, history.ErrBatchActive,
// dragdrop.ErrNotDragging, ...). A failed call leaves session state
// unchanged.
package engine
