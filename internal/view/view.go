package view

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/dshills/ropeview/internal/engine/rope"
)

// View is a rope plus a chain of pending ranges.
// The zero value is an empty view.
type View struct {
	text   rope.Rope
	ranges []Range
}

// New wraps an existing rope. The rope is shared, not copied.
func New(r rope.Rope) View {
	return View{text: r}
}

// FromString builds a view over a fresh rope holding s.
func FromString(s string) View {
	return View{text: rope.FromString(s)}
}

// Rope returns the underlying rope.
func (v View) Rope() rope.Rope {
	return v.text
}

// Ranges returns a copy of the pending chain.
func (v View) Ranges() []Range {
	out := make([]Range, len(v.ranges))
	copy(out, v.ranges)
	return out
}

// with returns a new view with r appended to the chain. The new chain never
// shares a backing array with v.
func (v View) with(r Range) View {
	ranges := make([]Range, len(v.ranges), len(v.ranges)+1)
	copy(ranges, v.ranges)
	return View{text: v.text, ranges: append(ranges, r)}
}

// Slice appends a char range [lower, upper).
func (v View) Slice(lower, upper int) View {
	return v.with(CharRange(lower, upper))
}

// ByteSlice appends a byte range [lower, upper).
func (v View) ByteSlice(lower, upper int) View {
	return v.with(ByteRange(lower, upper))
}

// Line appends a line selection.
func (v View) Line(index int) View {
	return v.with(LineIndex(index))
}

// Resolve applies the pending chain in order, starting from the whole rope.
func (v View) Resolve() (rope.Slice, error) {
	s := v.text.Full()
	for i, r := range v.ranges {
		next, err := r.apply(s)
		if err != nil {
			return rope.Slice{}, fmt.Errorf("resolve step %d (%s): %w", i, r, err)
		}
		s = next
	}
	return s, nil
}

// CharToByte converts a char offset within the resolved view to a byte offset.
func (v View) CharToByte(pos int) (int, error) {
	s, err := v.Resolve()
	if err != nil {
		return 0, err
	}
	return s.CharToByte(pos)
}

// Text returns the resolved text.
func (v View) Text() (string, error) {
	s, err := v.Resolve()
	if err != nil {
		return "", err
	}
	return s.String(), nil
}

// LenChars returns the number of chars in the resolved view.
func (v View) LenChars() (int, error) {
	s, err := v.Resolve()
	if err != nil {
		return 0, err
	}
	return s.LenChars(), nil
}

// LenBytes returns the number of bytes in the resolved view.
func (v View) LenBytes() (int, error) {
	s, err := v.Resolve()
	if err != nil {
		return 0, err
	}
	return s.Len(), nil
}

// LenLines returns the number of lines in the resolved view.
func (v View) LenLines() (int, error) {
	s, err := v.Resolve()
	if err != nil {
		return 0, err
	}
	return s.LenLines(), nil
}

// CharAt returns the char at index. ok is false when index is out of range;
// that is not an error.
func (v View) CharAt(index int) (r rune, ok bool, err error) {
	s, err := v.Resolve()
	if err != nil {
		return 0, false, err
	}
	r, ok = s.Char(index)
	return r, ok, nil
}

// HasPrefix reports whether the resolved text begins with prefix.
func (v View) HasPrefix(prefix string) (bool, error) {
	s, err := v.Resolve()
	if err != nil {
		return false, err
	}
	return s.HasPrefix(prefix), nil
}

// HasSuffix reports whether the resolved text ends with suffix.
func (v View) HasSuffix(suffix string) (bool, error) {
	s, err := v.Resolve()
	if err != nil {
		return false, err
	}
	return s.HasSuffix(suffix), nil
}

// TrimmedHasPrefix reports whether the resolved text, with leading whitespace
// removed, begins with prefix. The chain is not changed.
func (v View) TrimmedHasPrefix(prefix string) (bool, error) {
	text, err := v.Text()
	if err != nil {
		return false, err
	}
	return strings.HasPrefix(strings.TrimLeftFunc(text, unicode.IsSpace), prefix), nil
}

// TrimStart returns a view without leading whitespace by appending a char
// range that starts at the first non-whitespace char.
//
// If the resolved text is empty, entirely whitespace, or has no leading
// whitespace, the view is returned unchanged.
func (v View) TrimStart() (View, error) {
	s, err := v.Resolve()
	if err != nil {
		return View{}, err
	}

	it := s.Runes()
	for it.Next() {
		if unicode.IsSpace(it.Rune()) {
			continue
		}
		if it.Index() == 0 {
			return v, nil
		}
		return v.with(CharRange(it.Index(), s.LenChars())), nil
	}
	return v, nil
}

// String returns a debug form listing the pending chain. It does not resolve.
func (v View) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "view(%d bytes", v.text.Len())
	for _, r := range v.ranges {
		sb.WriteString(" ")
		sb.WriteString(r.String())
	}
	sb.WriteString(")")
	return sb.String()
}
