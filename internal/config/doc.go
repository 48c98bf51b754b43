// Package config loads ropeview configuration.
//
// Configuration is resolved in layers, later layers overriding earlier ones:
//
//  1. Built-in defaults (Default)
//  2. A TOML file, if present
//  3. ROPEVIEW_* environment variables
//
// Example file:
//
//	[lua]
//	execution_timeout = "5s"
//	call_stack_size = 256
//
//	[log]
//	level = "debug"
//
//	[watch]
//	debounce = "200ms"
package config
