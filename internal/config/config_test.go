package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func noEnv(string) (string, bool) { return "", false }

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ropeview.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Lua.ExecutionTimeout.Duration != 5*time.Second {
		t.Errorf("ExecutionTimeout = %v, want 5s", cfg.Lua.ExecutionTimeout)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")
	cfg, err := load(path, noEnv)
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("load(missing) = %+v, want defaults", cfg)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := load("", noEnv)
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("load(\"\") = %+v, want defaults", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[lua]
execution_timeout = "250ms"
call_stack_size = 64

[log]
level = "debug"
format = "json"

[watch]
debounce = "1s"
`)

	cfg, err := load(path, noEnv)
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}

	if got := cfg.Lua.ExecutionTimeout.Duration; got != 250*time.Millisecond {
		t.Errorf("ExecutionTimeout = %v, want 250ms", got)
	}
	if cfg.Lua.CallStackSize != 64 {
		t.Errorf("CallStackSize = %d, want 64", cfg.Lua.CallStackSize)
	}
	if cfg.Lua.RegistrySize != Default().Lua.RegistrySize {
		t.Errorf("RegistrySize = %d, want default", cfg.Lua.RegistrySize)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if got := cfg.Watch.Debounce.Duration; got != time.Second {
		t.Errorf("Debounce = %v, want 1s", got)
	}
}

func TestLoadParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "[lua\ncall_stack_size = 1"},
		{"unknown key", "[lua]\ninstruction_limit = 10"},
		{"bad duration", "[watch]\ndebounce = \"soon\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := load(path, noEnv)
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("load() error = %v, want *ParseError", err)
			}
			if perr.Path != path {
				t.Errorf("ParseError.Path = %q, want %q", perr.Path, path)
			}
		})
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "[log]\nlevel = \"warn\"\n")
	env := envMap(map[string]string{
		"ROPEVIEW_LOG_LEVEL":         "trace",
		"ROPEVIEW_EXECUTION_TIMEOUT": "2s",
		"ROPEVIEW_CALL_STACK_SIZE":   "32",
	})

	cfg, err := load(path, env)
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}
	if cfg.Log.Level != "trace" {
		t.Errorf("Log.Level = %q, want trace", cfg.Log.Level)
	}
	if cfg.Lua.ExecutionTimeout.Duration != 2*time.Second {
		t.Errorf("ExecutionTimeout = %v, want 2s", cfg.Lua.ExecutionTimeout)
	}
	if cfg.Lua.CallStackSize != 32 {
		t.Errorf("CallStackSize = %d, want 32", cfg.Lua.CallStackSize)
	}
}

func TestLoadEnvInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"timeout", map[string]string{"ROPEVIEW_EXECUTION_TIMEOUT": "forever"}},
		{"stack", map[string]string{"ROPEVIEW_CALL_STACK_SIZE": "deep"}},
		{"level", map[string]string{"ROPEVIEW_LOG_LEVEL": "loud"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load("", envMap(tt.env))
			if !errors.Is(err, ErrValidationFailed) {
				t.Errorf("load() error = %v, want ErrValidationFailed", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"negative timeout", func(c *Config) { c.Lua.ExecutionTimeout.Duration = -time.Second }, "lua.execution_timeout"},
		{"zero stack", func(c *Config) { c.Lua.CallStackSize = 0 }, "lua.call_stack_size"},
		{"zero registry", func(c *Config) { c.Lua.RegistrySize = 0 }, "lua.registry_size"},
		{"negative output", func(c *Config) { c.Lua.MaxOutput = -1 }, "lua.max_output"},
		{"bad level", func(c *Config) { c.Log.Level = "chatty" }, "log.level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"negative debounce", func(c *Config) { c.Watch.Debounce.Duration = -1 }, "watch.debounce"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if verr.Path != tt.path {
				t.Errorf("ValidationError.Path = %q, want %q", verr.Path, tt.path)
			}
		})
	}
}

func TestLogger(t *testing.T) {
	logger, err := LogConfig{Level: "debug", Format: "json"}.Logger()
	if err != nil {
		t.Fatalf("Logger() error = %v", err)
	}
	if logger.GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %v, want debug", logger.GetLevel())
	}
	if _, ok := logger.Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("formatter = %T, want *logrus.JSONFormatter", logger.Formatter)
	}

	if _, err := (LogConfig{Level: "nope"}).Logger(); err == nil {
		t.Error("Logger() with bad level should fail")
	}
}
