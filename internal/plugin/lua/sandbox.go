package lua

import (
	lua "github.com/yuin/gopher-lua"
)

// safeModules are the built-in Lua libraries scripts may require.
var safeModules = map[string]bool{
	"string": true,
	"table":  true,
	"math":   true,
}

// restrict locks a Lua state down for running untrusted document
// scripts: no loading code from disk or strings, and require limited
// to the safe built-ins plus the preloaded blockedit module.
func restrict(L *lua.LState) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}

	// Prevent require from resolving modules on disk.
	if pkg, ok := L.GetGlobal("package").(*lua.LTable); ok {
		L.SetField(pkg, "path", lua.LString(""))
		L.SetField(pkg, "cpath", lua.LString(""))
	}

	originalRequire := L.GetGlobal("require")
	L.SetGlobal("require", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		if !safeModules[name] && name != "blockedit" {
			L.RaiseError("module %q is not available", name)
			return 0
		}
		L.Push(originalRequire)
		L.Push(lua.LString(name))
		L.Call(1, 1)
		return 1
	}))
}
