// Package bridge connects the expression engine to the host flow
// runtime's named callables.
//
// The engine's flow() and action() builtins are opaque system calls:
// their behavior belongs to the surrounding runtime, not to the engine.
// A Bridge carries those callables across the boundary:
//
//	b := bridge.New().
//	    Register("flow", func(args ...any) (any, error) {
//	        return runtime.StartFlow(args...)
//	    }).
//	    Register("action", func(args ...any) (any, error) {
//	        return runtime.RunAction(args...)
//	    })
//
//	engine := flowexpr.New(flowexpr.WithBridge(b))
//
// Registration is expected during setup; afterwards a Bridge is safe
// for concurrent use.
package bridge
