package rope

import (
	"io"
	"strings"
)

// Rope is an immutable rope data structure for efficient text storage.
// The zero value is an empty rope.
type Rope struct {
	root *Node
}

// New creates an empty rope.
func New() Rope {
	return Rope{root: newLeafNode(nil)}
}

// FromString creates a rope from a string.
func FromString(s string) Rope {
	if len(s) == 0 {
		return New()
	}
	return Rope{root: buildTree(splitIntoChunks(s))}
}

// FromReader creates a rope from an io.Reader.
func FromReader(r io.Reader) (Rope, error) {
	var builder Builder
	if _, err := builder.ReadFrom(r); err != nil {
		return Rope{}, err
	}
	return builder.Build(), nil
}

// Len returns the total byte length.
func (r Rope) Len() ByteOffset {
	if r.root == nil {
		return 0
	}
	return r.root.summary.Bytes
}

// LenChars returns the total rune count.
func (r Rope) LenChars() uint64 {
	if r.root == nil {
		return 0
	}
	return r.root.summary.Chars
}

// LineCount returns the number of lines (newlines + 1).
func (r Rope) LineCount() uint32 {
	if r.root == nil {
		return 1
	}
	return r.root.summary.Lines + 1
}

// IsEmpty returns true if the rope contains no text.
func (r Rope) IsEmpty() bool {
	return r.Len() == 0
}

// Summary returns the aggregated metrics for the entire rope.
func (r Rope) Summary() TextSummary {
	if r.root == nil {
		return TextSummary{Flags: FlagASCII}
	}
	return r.root.summary
}

// String returns the full text as a string.
// Use sparingly for large ropes.
func (r Rope) String() string {
	return r.text(0, r.Len())
}

// Full returns a slice covering the whole rope.
func (r Rope) Full() Slice {
	return Slice{rope: r, start: 0, end: r.Len()}
}

// Height returns the height of the rope tree.
func (r Rope) Height() int {
	if r.root == nil {
		return 0
	}
	return int(r.root.height) + 1
}

// Equals returns true if two ropes contain the same text.
func (r Rope) Equals(other Rope) bool {
	return r.Full().Equals(other.Full())
}

func (r Rope) text(start, end ByteOffset) string {
	if r.root == nil || start >= end {
		return ""
	}
	var sb strings.Builder
	sb.Grow(int(end - start))
	r.root.appendRange(&sb, start, end)
	return sb.String()
}

func (r Rope) byteToChar(offset ByteOffset) uint64 {
	if r.root == nil {
		return 0
	}
	return r.root.byteToChar(offset)
}

func (r Rope) charToByte(char uint64) ByteOffset {
	if r.root == nil {
		return 0
	}
	return r.root.charToByte(char)
}

func (r Rope) byteToLine(offset ByteOffset) uint32 {
	if r.root == nil {
		return 0
	}
	return r.root.byteToLine(offset)
}

func (r Rope) lineToByte(line uint32) ByteOffset {
	if r.root == nil {
		return 0
	}
	return r.root.lineToByte(line)
}

// isCharBoundary reports whether offset starts a UTF-8 sequence or is the end
// of the rope.
func (r Rope) isCharBoundary(offset ByteOffset) bool {
	if offset == 0 || offset >= r.Len() {
		return true
	}
	chunk, _, local := r.root.leafAt(offset)
	return isUTF8Start(chunk.String()[local])
}
