package config

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Config is the full ropeview configuration.
type Config struct {
	Lua   LuaConfig   `toml:"lua"`
	Log   LogConfig   `toml:"log"`
	Watch WatchConfig `toml:"watch"`
}

// LuaConfig holds limits for the Lua host.
type LuaConfig struct {
	// ExecutionTimeout bounds a single script run. Zero disables it.
	ExecutionTimeout Duration `toml:"execution_timeout"`
	// CallStackSize is the maximum Lua call depth.
	CallStackSize int `toml:"call_stack_size"`
	// RegistrySize is the initial Lua value stack size.
	RegistrySize int `toml:"registry_size"`
	// MaxOutput caps the bytes a run may print. Zero means unlimited.
	MaxOutput int64 `toml:"max_output"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is a logrus level name.
	Level string `toml:"level"`
	// Format is "text" or "json".
	Format string `toml:"format"`
}

// WatchConfig holds settings for watch mode.
type WatchConfig struct {
	// Debounce coalesces bursts of file events.
	Debounce Duration `toml:"debounce"`
}

// Duration is a time.Duration that decodes from strings like "250ms".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Lua: LuaConfig{
			ExecutionTimeout: Duration{5 * time.Second},
			CallStackSize:    256,
			RegistrySize:     256 * 20,
			MaxOutput:        1 << 20,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Watch: WatchConfig{
			Debounce: Duration{100 * time.Millisecond},
		},
	}
}

// Validate checks every setting and reports the first invalid one.
func (c Config) Validate() error {
	if c.Lua.ExecutionTimeout.Duration < 0 {
		return &ValidationError{Path: "lua.execution_timeout", Message: "must not be negative", Value: c.Lua.ExecutionTimeout}
	}
	if c.Lua.CallStackSize <= 0 {
		return &ValidationError{Path: "lua.call_stack_size", Message: "must be positive", Value: c.Lua.CallStackSize}
	}
	if c.Lua.RegistrySize <= 0 {
		return &ValidationError{Path: "lua.registry_size", Message: "must be positive", Value: c.Lua.RegistrySize}
	}
	if c.Lua.MaxOutput < 0 {
		return &ValidationError{Path: "lua.max_output", Message: "must not be negative", Value: c.Lua.MaxOutput}
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return &ValidationError{Path: "log.level", Message: "unknown level", Value: c.Log.Level}
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return &ValidationError{Path: "log.format", Message: `must be "text" or "json"`, Value: c.Log.Format}
	}
	if c.Watch.Debounce.Duration < 0 {
		return &ValidationError{Path: "watch.debounce", Message: "must not be negative", Value: c.Watch.Debounce}
	}
	return nil
}

// Logger builds a logrus logger from the log settings.
func (c LogConfig) Logger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	logger := logrus.New()
	logger.SetLevel(level)
	if c.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger, nil
}
