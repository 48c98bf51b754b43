package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "ROPEVIEW_"

// Load returns the defaults overlaid with the TOML file at path and the
// environment, then validates the result. A missing file is not an error;
// an empty path skips the file layer.
func Load(path string) (Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := Parse(path, data, &cfg); err != nil {
				return Config{}, err
			}
		}
	}

	if err := applyEnv(&cfg, lookup); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes TOML data over cfg. Keys absent from data keep their
// current values. Unknown keys are rejected.
func Parse(source string, data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if err := dec.Decode(cfg); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return perr
	}
	return nil
}

// applyEnv applies ROPEVIEW_* overrides found by lookup.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	if v, ok := lookup(EnvPrefix + "LOG_FORMAT"); ok {
		cfg.Log.Format = v
	}
	if v, ok := lookup(EnvPrefix + "EXECUTION_TIMEOUT"); ok {
		if err := cfg.Lua.ExecutionTimeout.UnmarshalText([]byte(v)); err != nil {
			return &ValidationError{Path: EnvPrefix + "EXECUTION_TIMEOUT", Message: "not a duration", Value: v}
		}
	}
	if v, ok := lookup(EnvPrefix + "CALL_STACK_SIZE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return &ValidationError{Path: EnvPrefix + "CALL_STACK_SIZE", Message: "must be an integer", Value: v}
		}
		cfg.Lua.CallStackSize = n
	}
	return nil
}
