// Package rope provides an immutable rope used as the backing store for text views.
//
// A rope is a B+ tree whose leaves hold bounded UTF-8 chunks and whose internal
// nodes cache aggregated metrics (bytes, chars, newlines). Ropes are never
// modified after construction, so copying a Rope value is O(1) and concurrent
// readers need no synchronization.
//
// Sub-ranges are expressed with Slice, a window of absolute byte bounds over a
// rope. Narrowing a Slice never copies text:
//
//	r := rope.FromString("alpha\nbeta\ngamma")
//	line, err := r.Full().Line(1)      // "beta\n"
//	word, err := line.Slice(0, 2)      // "be"
//	text := word.String()
//
// Char offsets count Unicode scalar values (runes). Lines are separated by '\n'
// only; a line includes its trailing newline, and a text with n newlines has
// n+1 lines. No other break is recognized: "\r\n" ends a line whose text keeps
// the '\r', and a lone '\r', '\v', '\f', U+0085, U+2028 or U+2029 stays inside
// its line.
package rope
