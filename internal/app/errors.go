package app

import (
	"errors"
	"fmt"
)

// Runner errors.
var (
	// ErrNoScripts indicates Run was called without scripts.
	ErrNoScripts = errors.New("no scripts to run")

	// ErrOutputLimit indicates a run printed more than lua.max_output bytes.
	ErrOutputLimit = errors.New("output limit exceeded")
)

// ScriptError reports a failing script.
type ScriptError struct {
	Script string // Script name (path or "(inline)")
	Err    error  // Underlying error
}

func (e *ScriptError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("script %s: %v", e.Script, e.Err)
}

func (e *ScriptError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ComponentError reports a setup failure in a runner component.
type ComponentError struct {
	Component string // Component name (e.g., "lua", "registry", "watch")
	Action    string // Action being performed
	Err       error  // Underlying error
}

func (e *ComponentError) Error() string {
	if e == nil {
		return ""
	}
	if e.Action != "" {
		return fmt.Sprintf("%s: %s: %v", e.Component, e.Action, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Component, e.Err)
}

func (e *ComponentError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
