package view

import "github.com/dshills/ropeview/internal/engine/rope"

// RangeError reports a pending range whose bounds exceed the slice it was
// applied to. It is produced during resolution, never when a range is appended.
type RangeError = rope.RangeError

// ErrOutOfRange matches every RangeError with errors.Is.
var ErrOutOfRange = rope.ErrOutOfRange
