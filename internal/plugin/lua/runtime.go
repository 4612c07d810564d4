package lua

import (
	"context"
	"sync"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/blockedit/internal/engine"
)

// Runtime runs Lua scripts against an editor session. Scripts obtain
// the API with require("blockedit"); the state is sandboxed and all
// execution is serialized through an Executor.
type Runtime struct {
	session *engine.Session
	L       *lua.LState
	bridge  *Bridge
	exec    *Executor

	cancel context.CancelFunc
	wg     sync.WaitGroup
	closed atomic.Bool
}

// NewRuntime creates a Runtime bound to the given session and starts
// its executor goroutine. Call Close when done.
func NewRuntime(session *engine.Session) *Runtime {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.LoadLibName, lua.OpenPackage},
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	restrict(L)

	r := &Runtime{
		session: session,
		L:       L,
		bridge:  NewBridge(L),
	}
	L.PreloadModule("blockedit", r.loadModule)

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.exec = NewExecutor(L, 16)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.exec.Run(ctx)
	}()
	return r
}

// DoFile runs the Lua script at path.
func (r *Runtime) DoFile(ctx context.Context, path string) error {
	return r.exec.Execute(ctx, func(L *lua.LState) error {
		if err := L.DoFile(path); err != nil {
			return &ScriptError{Source: path, Err: err}
		}
		return nil
	})
}

// DoString runs src as a Lua script.
func (r *Runtime) DoString(ctx context.Context, src string) error {
	return r.exec.Execute(ctx, func(L *lua.LState) error {
		if err := L.DoString(src); err != nil {
			return &ScriptError{Source: "<string>", Err: err}
		}
		return nil
	})
}

// Close stops the executor and releases the Lua state. Returns
// ErrRuntimeClosed if already closed.
func (r *Runtime) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return ErrRuntimeClosed
	}
	r.exec.Close()
	r.cancel()
	r.wg.Wait()
	r.L.Close()
	return nil
}
