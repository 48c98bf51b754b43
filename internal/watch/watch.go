// Package watch reports changes to script files.
//
// A FileWatcher follows individual files through fsnotify. Editors often
// replace a file by renaming a temporary over it, so the watcher subscribes
// to each file's directory and filters events down to the tracked files.
// Debounced coalesces bursts of events for the same file into one.
package watch

import (
	"errors"
	"strings"
	"time"
)

// Common errors returned by watch operations.
var (
	ErrWatcherClosed = errors.New("watcher is closed")
	ErrPathNotExist  = errors.New("path does not exist")
	ErrIsDirectory   = errors.New("path is a directory")
)

// Op is a bit set of file operations.
type Op uint32

const (
	// OpCreate indicates the file was created.
	OpCreate Op = 1 << iota
	// OpWrite indicates the file was written to.
	OpWrite
	// OpRemove indicates the file was removed.
	OpRemove
	// OpRename indicates the file was renamed.
	OpRename
)

// String returns the set operations joined with "|".
func (op Op) String() string {
	var parts []string
	if op.Has(OpCreate) {
		parts = append(parts, "CREATE")
	}
	if op.Has(OpWrite) {
		parts = append(parts, "WRITE")
	}
	if op.Has(OpRemove) {
		parts = append(parts, "REMOVE")
	}
	if op.Has(OpRename) {
		parts = append(parts, "RENAME")
	}
	if len(parts) == 0 {
		return "NONE"
	}
	return strings.Join(parts, "|")
}

// Has reports whether op includes o.
func (op Op) Has(o Op) bool {
	return op&o == o
}

// Event is a change to a tracked file.
type Event struct {
	// Path is the absolute path of the file.
	Path string
	// Op is the set of operations observed.
	Op Op
	// Timestamp is when the latest operation was observed.
	Timestamp time.Time
}

// Source produces file events.
type Source interface {
	// Events returns the event channel. It is closed by Close.
	Events() <-chan Event
	// Errors returns the error channel. It is closed by Close.
	Errors() <-chan error
	// Close stops the source.
	Close() error
}
