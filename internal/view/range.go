package view

import (
	"fmt"

	"github.com/dshills/ropeview/internal/engine/rope"
)

// Kind selects how a pending Range is resolved.
type Kind uint8

// Range kinds.
const (
	// KindChars narrows by char offsets [Lower, Upper).
	KindChars Kind = iota
	// KindBytes narrows by byte offsets [Lower, Upper).
	KindBytes
	// KindLine selects line Lower.
	KindLine
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindChars:
		return "chars"
	case KindBytes:
		return "bytes"
	case KindLine:
		return "line"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Range is one pending slice operation. Bounds are relative to the slice
// produced by the previous range in the chain.
type Range struct {
	Kind  Kind
	Lower int
	Upper int
}

// CharRange returns a pending char range.
func CharRange(lower, upper int) Range {
	return Range{Kind: KindChars, Lower: lower, Upper: upper}
}

// ByteRange returns a pending byte range.
func ByteRange(lower, upper int) Range {
	return Range{Kind: KindBytes, Lower: lower, Upper: upper}
}

// LineIndex returns a pending line selection.
func LineIndex(index int) Range {
	return Range{Kind: KindLine, Lower: index, Upper: index}
}

// String formats the range the way it appears in debug output.
func (r Range) String() string {
	if r.Kind == KindLine {
		return fmt.Sprintf("line(%d)", r.Lower)
	}
	return fmt.Sprintf("%s[%d:%d]", r.Kind, r.Lower, r.Upper)
}

// apply narrows s by the range.
func (r Range) apply(s rope.Slice) (rope.Slice, error) {
	switch r.Kind {
	case KindChars:
		return s.Slice(r.Lower, r.Upper)
	case KindBytes:
		return s.ByteSlice(r.Lower, r.Upper)
	case KindLine:
		return s.Line(r.Lower)
	default:
		return rope.Slice{}, fmt.Errorf("unknown range kind %d", r.Kind)
	}
}
