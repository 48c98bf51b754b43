// Package api provides the Lua modules exposed to ropeview scripts.
//
// Each module implements the Module interface and is collected in a
// Registry, which injects modules into a Lua state. Every injected module is
// reachable as require("<name>") and as a field of the aggregate "ropeview"
// module:
//
//	local text = require("text")
//	local v = text["string->rope"]("  hello world")
//	v = text["rope-trim-start"](v)
//	print(text["rope->string"](v)) -- "hello world"
//
// # Text module
//
// The text module is a fixed dispatch table. Each binding forwards its
// arguments to one view method and pushes the result; bindings hold no state.
// Offsets are char offsets unless the name says bytes. Range failures surface
// as Lua errors; rope-char-ref returns nil for an index past the end.
//
// View handles are opaque userdata (see package lua). Two handles compare
// equal with == when their resolved text is equal; rope-equal? also accepts
// a plain string.
//
// # Util module
//
// String helpers (split, lines, join, trim, contains, escape_pattern) that
// accept Lua strings and ropes alike.
package api
