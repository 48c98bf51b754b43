// Package lua provides the Lua host runtime for text views.
//
// This package wraps the gopher-lua library to provide:
//   - Sandboxed Lua state management
//   - Execution timeouts through context cancellation
//   - The view handle bridge: views cross into Lua as opaque userdata
//
// # State
//
// The State type manages a Lua runtime with sandboxing:
//
//	state, err := lua.NewState(
//	    lua.WithExecutionTimeout(5 * time.Second),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer state.Close()
//
//	if err := state.DoFile(ctx, "script.lua"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Sandbox
//
// The Sandbox restricts Lua code execution by:
//   - Not opening io, os and debug
//   - Removing file and chunk loaders (dofile, loadfile, load, loadstring)
//   - Limiting require to safe built-ins and preloaded modules
//
// # Bridge
//
// View handles are userdata with the "rope" metatable. The host can hold and
// pass them around but cannot inspect them; the metatable provides content
// equality (==), tostring and the length operator (#, in chars):
//
//	lua.PushView(L, view.FromString("hello"))
//	v := lua.CheckView(L, 1)
package lua
