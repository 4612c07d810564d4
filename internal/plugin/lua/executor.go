package lua

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// call is one queued Lua operation and its result channel.
type call struct {
	fn     func(L *lua.LState) error
	result chan error
}

// Executor serializes Lua operations onto a single goroutine.
//
// gopher-lua's LState is not goroutine-safe; every operation on it must
// run on the goroutine that owns it. Execute marshals work from any
// goroutine onto the one running Run.
type Executor struct {
	L     *lua.LState
	queue chan *call
	done  chan struct{}

	closed    atomic.Bool
	closeOnce sync.Once
}

// NewExecutor creates an Executor for the given Lua state. queueSize
// bounds how many operations can wait; non-positive means a default
// of 16.
func NewExecutor(L *lua.LState, queueSize int) *Executor {
	if queueSize <= 0 {
		queueSize = 16
	}
	return &Executor{
		L:     L,
		queue: make(chan *call, queueSize),
		done:  make(chan struct{}),
	}
}

// Run processes queued operations until the context is cancelled or
// Close is called. It must run on the goroutine that owns the LState.
func (e *Executor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			e.drain(ctx.Err())
			return
		case <-e.done:
			e.drain(ErrRuntimeClosed)
			return
		case c := <-e.queue:
			c.result <- e.run(c)
			close(c.result)
		}
	}
}

// run executes one operation, converting a Lua panic into an error.
func (e *Executor) run(c *call) (err error) {
	defer func() {
		if r := recover(); r != nil {
			switch v := r.(type) {
			case error:
				err = v
			case string:
				err = errors.New(v)
			default:
				err = errors.New("lua panic")
			}
		}
	}()
	return c.fn(e.L)
}

// drain fails all queued operations with err.
func (e *Executor) drain(err error) {
	for {
		select {
		case c := <-e.queue:
			c.result <- err
			close(c.result)
		default:
			return
		}
	}
}

// Execute runs fn on the executor goroutine and waits for it to
// complete. fn receives the LState and may use it freely.
func (e *Executor) Execute(ctx context.Context, fn func(L *lua.LState) error) error {
	if e.closed.Load() {
		return ErrRuntimeClosed
	}

	c := &call{fn: fn, result: make(chan error, 1)}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-e.done:
		return ErrRuntimeClosed
	case e.queue <- c:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err, ok := <-c.result:
		if !ok {
			return ErrRuntimeClosed
		}
		return err
	}
}

// Close stops the executor; queued operations fail with
// ErrRuntimeClosed. Safe to call more than once.
func (e *Executor) Close() {
	e.closeOnce.Do(func() {
		e.closed.Store(true)
		close(e.done)
	})
}

// IsClosed reports whether Close has been called.
func (e *Executor) IsClosed() bool {
	return e.closed.Load()
}
