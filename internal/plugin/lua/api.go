package lua

import (
	"github.com/google/uuid"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/blockedit/internal/engine"
	"github.com/dshills/blockedit/internal/engine/block"
)

// loadModule builds the blockedit module table. Registered via
// PreloadModule; scripts reach it with require("blockedit").
func (r *Runtime) loadModule(L *lua.LState) int {
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"insert":           r.luaInsert,
		"delete":           r.luaDelete,
		"move":             r.luaMove,
		"update":           r.luaUpdate,
		"replace_children": r.luaReplaceChildren,
		"find":             r.luaFind,
		"document":         r.luaDocument,

		"undo":     r.luaUndo,
		"redo":     r.luaRedo,
		"can_undo": r.luaCanUndo,
		"can_redo": r.luaCanRedo,

		"begin_batch":    r.luaBeginBatch,
		"commit_batch":   r.luaCommitBatch,
		"rollback_batch": r.luaRollbackBatch,

		"select":      r.luaSelect,
		"toggle":      r.luaToggle,
		"range":       r.luaRange,
		"extend_up":   r.luaExtendUp,
		"extend_down": r.luaExtendDown,
		"set_focus":   r.luaSetFocus,
		"edit":        r.luaEdit,
		"exit_edit":   r.luaExitEdit,
		"escape":      r.luaEscape,
		"selection":   r.luaSelection,
		"focus":       r.luaFocus,
	})
	mod.RawSetString("root", lua.LString(engine.RootID))
	L.Push(mod)
	return 1
}

// raise converts a session error into a Lua error. Never returns.
func raise(L *lua.LState, err error) int {
	L.RaiseError("%s", err.Error())
	return 0
}

// insert(parent_id, index, block) -> id
// Assigns a fresh ID when the block table carries none, so the script
// learns the ID of what it created.
func (r *Runtime) luaInsert(L *lua.LState) int {
	parentID := L.CheckString(1)
	index := L.CheckInt(2)
	blk, err := r.bridge.TableToBlock(L.CheckTable(3))
	if err != nil {
		return raise(L, err)
	}
	if blk.ID == "" {
		blk.ID = uuid.NewString()
	}
	if err := r.session.Insert(blk, parentID, index); err != nil {
		return raise(L, err)
	}
	L.Push(lua.LString(blk.ID))
	return 1
}

// delete(id) -> {removed ids}
func (r *Runtime) luaDelete(L *lua.LState) int {
	removed, err := r.session.Delete(L.CheckString(1))
	if err != nil {
		return raise(L, err)
	}
	L.Push(r.bridge.ToLuaValue(removed))
	return 1
}

// move(id, parent_id, index)
func (r *Runtime) luaMove(L *lua.LState) int {
	if err := r.session.Move(L.CheckString(1), L.CheckString(2), L.CheckInt(3)); err != nil {
		return raise(L, err)
	}
	return 0
}

// update(id, properties)
func (r *Runtime) luaUpdate(L *lua.LState) int {
	id := L.CheckString(1)
	partial, ok := r.bridge.ToGoValue(L.CheckTable(2)).(map[string]any)
	if !ok {
		L.ArgError(2, "expected a property map")
		return 0
	}
	if err := r.session.UpdateProperties(id, partial); err != nil {
		return raise(L, err)
	}
	return 0
}

// replace_children(id, {block, ...})
func (r *Runtime) luaReplaceChildren(L *lua.LState) int {
	id := L.CheckString(1)
	tbl := L.CheckTable(2)

	var children []*block.Block
	var convErr error
	tbl.ForEach(func(_, v lua.LValue) {
		if convErr != nil {
			return
		}
		ct, ok := v.(*lua.LTable)
		if !ok {
			convErr = errNotBlockTable
			return
		}
		child, err := r.bridge.TableToBlock(ct)
		if err != nil {
			convErr = err
			return
		}
		if child.ID == "" {
			child.ID = uuid.NewString()
		}
		children = append(children, child)
	})
	if convErr != nil {
		return raise(L, convErr)
	}

	if err := r.session.ReplaceChildren(id, children); err != nil {
		return raise(L, err)
	}
	return 0
}

// find(id) -> block table or nil
func (r *Runtime) luaFind(L *lua.LState) int {
	blk := r.session.Document().FindByID(L.CheckString(1))
	if blk == nil {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(r.bridge.BlockToTable(blk))
	return 1
}

// document() -> {blocks = {...}, meta = {...}}
func (r *Runtime) luaDocument(L *lua.LState) int {
	L.Push(r.bridge.DocumentToTable(r.session.Document()))
	return 1
}

func (r *Runtime) luaUndo(L *lua.LState) int {
	if err := r.session.Undo(); err != nil {
		return raise(L, err)
	}
	return 0
}

func (r *Runtime) luaRedo(L *lua.LState) int {
	if err := r.session.Redo(); err != nil {
		return raise(L, err)
	}
	return 0
}

func (r *Runtime) luaCanUndo(L *lua.LState) int {
	L.Push(lua.LBool(r.session.CanUndo()))
	return 1
}

func (r *Runtime) luaCanRedo(L *lua.LState) int {
	L.Push(lua.LBool(r.session.CanRedo()))
	return 1
}

// begin_batch(description)
func (r *Runtime) luaBeginBatch(L *lua.LState) int {
	if err := r.session.StartBatch(L.CheckString(1)); err != nil {
		return raise(L, err)
	}
	return 0
}

func (r *Runtime) luaCommitBatch(L *lua.LState) int {
	if err := r.session.CommitBatch(); err != nil {
		return raise(L, err)
	}
	return 0
}

func (r *Runtime) luaRollbackBatch(L *lua.LState) int {
	if err := r.session.RollbackBatch(); err != nil {
		return raise(L, err)
	}
	return 0
}

// select(id) -> bool
func (r *Runtime) luaSelect(L *lua.LState) int {
	L.Push(lua.LBool(r.session.Select(L.CheckString(1))))
	return 1
}

// toggle(id) -> bool (whether the block is now selected)
func (r *Runtime) luaToggle(L *lua.LState) int {
	L.Push(lua.LBool(r.session.Toggle(L.CheckString(1))))
	return 1
}

// range(a, b) -> {ids in document order}
func (r *Runtime) luaRange(L *lua.LState) int {
	ids := r.session.Range(L.CheckString(1), L.CheckString(2))
	L.Push(r.bridge.ToLuaValue(ids))
	return 1
}

func (r *Runtime) luaExtendUp(L *lua.LState) int {
	r.session.ExtendUp()
	return 0
}

func (r *Runtime) luaExtendDown(L *lua.LState) int {
	r.session.ExtendDown()
	return 0
}

// set_focus(id) -> bool
func (r *Runtime) luaSetFocus(L *lua.LState) int {
	L.Push(lua.LBool(r.session.SetFocus(L.CheckString(1))))
	return 1
}

func (r *Runtime) luaEdit(L *lua.LState) int {
	if err := r.session.EnterEditMode(); err != nil {
		return raise(L, err)
	}
	return 0
}

func (r *Runtime) luaExitEdit(L *lua.LState) int {
	r.session.ExitEditMode()
	return 0
}

// escape() -> bool (whether the press was consumed)
func (r *Runtime) luaEscape(L *lua.LState) int {
	L.Push(lua.LBool(r.session.Escape()))
	return 1
}

// selection() -> {ids = {...}, anchor = ..., last = ...}
func (r *Runtime) luaSelection(L *lua.LState) int {
	st := r.session.Selection()
	ids := make([]string, 0, len(st.SelectedIDs))
	for id := range st.SelectedIDs {
		ids = append(ids, id)
	}

	t := L.NewTable()
	t.RawSetString("ids", r.bridge.ToLuaValue(ids))
	t.RawSetString("anchor", lua.LString(st.AnchorID))
	t.RawSetString("last", lua.LString(st.LastSelectedID))
	L.Push(t)
	return 1
}

// focus() -> {id = ..., editing = ...}
func (r *Runtime) luaFocus(L *lua.LState) int {
	f := r.session.Focus()
	t := L.NewTable()
	t.RawSetString("id", lua.LString(f.FocusedID))
	t.RawSetString("editing", lua.LBool(f.Editing))
	L.Push(t)
	return 1
}
