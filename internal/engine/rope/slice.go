package rope

import "unicode/utf8"

// Slice is a read-only window [start, end) over a rope, in absolute byte
// offsets. Narrowing a slice produces a new window over the same rope; no
// text is copied until String is called.
//
// All offsets taken and returned by Slice methods are relative to the slice.
type Slice struct {
	rope       Rope
	start, end ByteOffset
}

// Rope returns the rope the slice is a window over.
func (s Slice) Rope() Rope {
	return s.rope
}

// Len returns the byte length of the slice.
func (s Slice) Len() int {
	return int(s.end - s.start)
}

// LenChars returns the number of runes in the slice.
func (s Slice) LenChars() int {
	return int(s.rope.byteToChar(s.end) - s.rope.byteToChar(s.start))
}

// LenLines returns the number of lines in the slice (newlines + 1).
func (s Slice) LenLines() int {
	return int(s.rope.byteToLine(s.end)-s.rope.byteToLine(s.start)) + 1
}

// String returns the text of the slice.
func (s Slice) String() string {
	return s.rope.text(s.start, s.end)
}

// Slice narrows the slice to the char range [lower, upper).
func (s Slice) Slice(lower, upper int) (Slice, error) {
	base := s.rope.byteToChar(s.start)
	n := int(s.rope.byteToChar(s.end) - base)
	if lower < 0 || upper < lower || upper > n {
		return Slice{}, &RangeError{Op: "char range", Lower: lower, Upper: upper, Extent: n, Unit: UnitChars}
	}

	return Slice{
		rope:  s.rope,
		start: s.rope.charToByte(base + uint64(lower)),
		end:   s.rope.charToByte(base + uint64(upper)),
	}, nil
}

// ByteSlice narrows the slice to the byte range [lower, upper).
// Both bounds must fall on char boundaries.
func (s Slice) ByteSlice(lower, upper int) (Slice, error) {
	n := s.Len()
	if lower < 0 || upper < lower || upper > n {
		return Slice{}, &RangeError{Op: "byte range", Lower: lower, Upper: upper, Extent: n, Unit: UnitBytes}
	}

	start := s.start + ByteOffset(lower)
	end := s.start + ByteOffset(upper)
	if !s.rope.isCharBoundary(start) || !s.rope.isCharBoundary(end) {
		return Slice{}, &RangeError{Op: "byte range", Lower: lower, Upper: upper, Extent: n, Unit: UnitBytes, Boundary: true}
	}
	return Slice{rope: s.rope, start: start, end: end}, nil
}

// Line narrows the slice to a single line, including its trailing newline.
func (s Slice) Line(index int) (Slice, error) {
	baseLine := s.rope.byteToLine(s.start)
	n := int(s.rope.byteToLine(s.end)-baseLine) + 1
	if index < 0 || index >= n {
		return Slice{}, &RangeError{Op: "line", Lower: index, Upper: index, Extent: n, Unit: UnitLines}
	}

	line := Slice{rope: s.rope, start: s.start, end: s.end}
	if index > 0 {
		line.start = s.rope.lineToByte(baseLine + uint32(index))
	}
	if index < n-1 {
		line.end = s.rope.lineToByte(baseLine + uint32(index) + 1)
	}
	return line, nil
}

// CharToByte converts a char offset within the slice to a byte offset within
// the slice. pos may equal LenChars.
func (s Slice) CharToByte(pos int) (int, error) {
	base := s.rope.byteToChar(s.start)
	n := int(s.rope.byteToChar(s.end) - base)
	if pos < 0 || pos > n {
		return 0, &RangeError{Op: "char offset", Lower: pos, Upper: pos, Extent: n, Unit: UnitChars}
	}
	return int(s.rope.charToByte(base+uint64(pos)) - s.start), nil
}

// Char returns the rune at char index. ok is false when index is out of range.
func (s Slice) Char(index int) (r rune, ok bool) {
	if index < 0 {
		return 0, false
	}
	base := s.rope.byteToChar(s.start)
	if uint64(index) >= s.rope.byteToChar(s.end)-base {
		return 0, false
	}

	offset := s.rope.charToByte(base + uint64(index))
	r, _ = utf8.DecodeRuneInString(s.rope.text(offset, min(offset+utf8.UTFMax, s.end)))
	return r, true
}

// HasPrefix reports whether the slice text begins with prefix.
func (s Slice) HasPrefix(prefix string) bool {
	if len(prefix) > s.Len() {
		return false
	}
	return s.rope.text(s.start, s.start+ByteOffset(len(prefix))) == prefix
}

// HasSuffix reports whether the slice text ends with suffix.
func (s Slice) HasSuffix(suffix string) bool {
	if len(suffix) > s.Len() {
		return false
	}
	return s.rope.text(s.end-ByteOffset(len(suffix)), s.end) == suffix
}

// Equals reports whether two slices contain the same text.
func (s Slice) Equals(other Slice) bool {
	if s.Len() != other.Len() {
		return false
	}

	a, b := s.Chunks(), other.Chunks()
	var as, bs string
	for {
		if len(as) == 0 {
			if !a.Next() {
				return len(bs) == 0 && !b.Next()
			}
			as = a.Text()
		}
		if len(bs) == 0 {
			if !b.Next() {
				return false
			}
			bs = b.Text()
		}
		n := min(len(as), len(bs))
		if as[:n] != bs[:n] {
			return false
		}
		as, bs = as[n:], bs[n:]
	}
}

// EqualString reports whether the slice text equals str.
func (s Slice) EqualString(str string) bool {
	return s.Len() == len(str) && s.String() == str
}
