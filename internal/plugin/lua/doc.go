// Package lua embeds a sandboxed Lua interpreter for scripting the
// editor session.
//
// Scripts obtain the API with require("blockedit") and operate on the
// session through plain-data tables; block subtrees cross the boundary
// in the same id/type/properties/children shape the JSON encoding
// uses. Session errors surface as Lua errors, catchable with pcall.
//
//	local be = require("blockedit")
//	local id = be.insert(be.root, -1, { type = "paragraph" })
//	be.update(id, { text = "hello" })
//	be.undo()
//
// The interpreter is restricted: only the base, table, string and math
// libraries are open, code cannot be loaded from disk or strings, and
// require resolves nothing beyond the safe built-ins and the blockedit
// module. All Lua execution is serialized through an Executor because
// gopher-lua states are not goroutine-safe.
package lua
