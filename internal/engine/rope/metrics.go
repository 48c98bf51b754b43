package rope

// ByteOffset represents an absolute byte position in the rope.
type ByteOffset uint64

// TextSummary holds aggregated metrics for a text span.
// Summaries form a monoid under Add, which lets internal nodes cache the
// metrics of their whole subtree.
type TextSummary struct {
	// Bytes is the UTF-8 byte count.
	Bytes ByteOffset

	// Chars is the rune count.
	Chars uint64

	// Lines is the number of newline characters.
	Lines uint32

	// Flags indicate text properties for fast paths.
	Flags TextFlags
}

// TextFlags indicate text properties for optimization fast paths.
type TextFlags uint8

const (
	// FlagASCII indicates all characters are ASCII (< 128).
	FlagASCII TextFlags = 1 << iota

	// FlagHasNewlines indicates the text contains newline characters.
	FlagHasNewlines
)

// Add combines two summaries (monoid operation).
func (s TextSummary) Add(other TextSummary) TextSummary {
	if s.Bytes == 0 {
		return other
	}
	if other.Bytes == 0 {
		return s
	}

	result := TextSummary{
		Bytes: s.Bytes + other.Bytes,
		Chars: s.Chars + other.Chars,
		Lines: s.Lines + other.Lines,
		Flags: s.Flags & other.Flags & FlagASCII,
	}
	if (s.Flags|other.Flags)&FlagHasNewlines != 0 {
		result.Flags |= FlagHasNewlines
	}
	return result
}

// IsZero returns true if this is the zero/identity summary.
func (s TextSummary) IsZero() bool {
	return s.Bytes == 0
}

// ComputeSummary calculates metrics for a string.
func ComputeSummary(s string) TextSummary {
	sum := TextSummary{Flags: FlagASCII}
	if len(s) == 0 {
		return sum
	}

	sum.Bytes = ByteOffset(len(s))
	for _, r := range s {
		sum.Chars++
		if r > 127 {
			sum.Flags &^= FlagASCII
		}
		if r == '\n' {
			sum.Lines++
			sum.Flags |= FlagHasNewlines
		}
	}
	return sum
}

// charToByteInString returns the byte offset of the n-th rune in s.
// n may equal the rune count, which yields len(s).
func charToByteInString(s string, n uint64) int {
	if n == 0 {
		return 0
	}
	var count uint64
	for i := range s {
		if count == n {
			return i
		}
		count++
	}
	return len(s)
}

// byteToCharInString returns the number of runes that start before offset.
func byteToCharInString(s string, offset int) uint64 {
	if offset > len(s) {
		offset = len(s)
	}
	var count uint64
	for i := range s {
		if i >= offset {
			break
		}
		count++
	}
	return count
}

// countNewlines returns the number of '\n' bytes in s[:offset].
func countNewlines(s string, offset int) uint32 {
	if offset > len(s) {
		offset = len(s)
	}
	var count uint32
	for i := 0; i < offset; i++ {
		if s[i] == '\n' {
			count++
		}
	}
	return count
}

// findNthNewline finds the byte position of the nth newline (1-indexed).
// Returns -1 if not found.
func findNthNewline(s string, n uint32) int {
	if n == 0 {
		return -1
	}

	var count uint32
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			count++
			if count == n {
				return i
			}
		}
	}
	return -1
}
