// Package view implements lazily composed text views over an immutable rope.
//
// A View is a rope plus an ordered chain of pending ranges. Slicing methods
// (Slice, ByteSlice, Line) only append to the chain; nothing is computed until
// a query needs concrete data, at which point Resolve applies every range in
// order, starting from the whole rope:
//
//	v := view.FromString("alpha\nbeta\ngamma")
//	word := v.Line(1).Slice(0, 2) // nothing resolved yet
//	text, err := word.Text()      // "be"
//
// Bounds are checked only during resolution. A range that exceeds the extent
// of the slice produced by the previous step fails the whole resolution with a
// *RangeError; partial chains are never returned.
//
// Views are immutable values. Each slicing method returns a new View that
// shares the rope but not the chain, so views can be read from multiple
// goroutines without synchronization.
package view
