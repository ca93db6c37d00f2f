package bridge

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNotRegistered indicates a call to a name the bridge doesn't know.
var ErrNotRegistered = errors.New("bridge: function not registered")

// Func is a named host callable exposed to expressions.
// The flow runtime owns its behavior; the engine only dispatches to it.
type Func func(args ...any) (any, error)

// Bridge is a thread-safe registry of host callables.
// Register during setup, then share freely: reads take an RLock.
type Bridge struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

// New creates an empty bridge.
func New() *Bridge {
	return &Bridge{
		funcs: make(map[string]Func),
	}
}

// Register adds or replaces a callable.
// Returns the bridge for method chaining.
//
// Panics if name is empty or fn is nil.
func (b *Bridge) Register(name string, fn Func) *Bridge {
	if name == "" {
		panic("bridge: function name cannot be empty")
	}
	if fn == nil {
		panic("bridge: function cannot be nil")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.funcs[name] = fn
	return b
}

// Get returns the callable for a name and whether it exists.
func (b *Bridge) Get(name string) (Func, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	fn, ok := b.funcs[name]
	return fn, ok
}

// Has returns true if a callable is registered under name.
func (b *Bridge) Has(name string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, ok := b.funcs[name]
	return ok
}

// Names returns the registered names in no particular order.
func (b *Bridge) Names() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	names := make([]string, 0, len(b.funcs))
	for name := range b.funcs {
		names = append(names, name)
	}
	return names
}

// Call invokes the callable registered under name.
// Returns ErrNotRegistered if no such callable exists.
func (b *Bridge) Call(name string, args ...any) (any, error) {
	fn, ok := b.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotRegistered, name)
	}
	return fn(args...)
}
