package rope

import (
	"errors"
	"strings"
	"testing"
)

func TestFromString(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		chars uint64
		lines uint32
	}{
		{"empty", "", 0, 1},
		{"ascii", "hello", 5, 1},
		{"newlines", "a\nb\nc", 5, 3},
		{"trailing newline", "abc\n", 4, 2},
		{"multibyte", "héllo wörld", 11, 1},
		{"emoji", "a😀b", 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromString(tt.text)
			if r.String() != tt.text {
				t.Errorf("String() = %q, want %q", r.String(), tt.text)
			}
			if r.Len() != ByteOffset(len(tt.text)) {
				t.Errorf("Len() = %d, want %d", r.Len(), len(tt.text))
			}
			if r.LenChars() != tt.chars {
				t.Errorf("LenChars() = %d, want %d", r.LenChars(), tt.chars)
			}
			if r.LineCount() != tt.lines {
				t.Errorf("LineCount() = %d, want %d", r.LineCount(), tt.lines)
			}
		})
	}
}

func TestZeroRope(t *testing.T) {
	var r Rope
	if !r.IsEmpty() {
		t.Error("zero Rope should be empty")
	}
	if got := r.Full().String(); got != "" {
		t.Errorf("Full().String() = %q, want empty", got)
	}
	if n := r.Full().LenLines(); n != 1 {
		t.Errorf("LenLines() = %d, want 1", n)
	}
}

func largeText() string {
	var sb strings.Builder
	for i := 0; i < 400; i++ {
		sb.WriteString("línea número ")
		sb.WriteString(strings.Repeat("x", i%17))
		sb.WriteString(" ✓\n")
	}
	return sb.String()
}

func TestLargeRopeIsTree(t *testing.T) {
	text := largeText()
	r := FromString(text)

	if r.Height() < 2 {
		t.Fatalf("Height() = %d, want a multi-level tree", r.Height())
	}
	if r.String() != text {
		t.Fatal("String() does not round-trip")
	}
	if r.LenChars() != uint64(len([]rune(text))) {
		t.Errorf("LenChars() = %d, want %d", r.LenChars(), len([]rune(text)))
	}
	if r.LineCount() != 401 {
		t.Errorf("LineCount() = %d, want 401", r.LineCount())
	}
}

func TestSliceCharsMatchesRunes(t *testing.T) {
	text := largeText()
	runes := []rune(text)
	full := FromString(text).Full()

	bounds := [][2]int{{0, 0}, {0, 10}, {5, 300}, {250, 2000}, {len(runes) - 3, len(runes)}}
	for _, b := range bounds {
		s, err := full.Slice(b[0], b[1])
		if err != nil {
			t.Fatalf("Slice(%d, %d) error = %v", b[0], b[1], err)
		}
		want := string(runes[b[0]:b[1]])
		if s.String() != want {
			t.Errorf("Slice(%d, %d) = %q, want %q", b[0], b[1], s.String(), want)
		}
		if s.LenChars() != b[1]-b[0] {
			t.Errorf("Slice(%d, %d).LenChars() = %d", b[0], b[1], s.LenChars())
		}
	}
}

func TestNestedSlices(t *testing.T) {
	full := FromString("0123456789abcdefghij").Full()

	outer, err := full.Slice(2, 10)
	if err != nil {
		t.Fatal(err)
	}
	inner, err := outer.Slice(1, 5)
	if err != nil {
		t.Fatal(err)
	}
	if inner.String() != "3456" {
		t.Errorf("nested Slice = %q, want %q", inner.String(), "3456")
	}
}

func TestSliceOutOfRange(t *testing.T) {
	full := FromString("hello").Full()

	tests := []struct {
		name         string
		lower, upper int
	}{
		{"upper past end", 0, 100},
		{"inverted", 3, 2},
		{"negative", -1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := full.Slice(tt.lower, tt.upper)
			var rerr *RangeError
			if !errors.As(err, &rerr) {
				t.Fatalf("Slice error = %v, want *RangeError", err)
			}
			if !errors.Is(err, ErrOutOfRange) {
				t.Error("RangeError should match ErrOutOfRange")
			}
			if rerr.Extent != 5 || rerr.Unit != UnitChars {
				t.Errorf("RangeError = %+v", rerr)
			}
		})
	}
}

func TestByteSlice(t *testing.T) {
	full := FromString("héllo").Full()

	s, err := full.ByteSlice(0, 3)
	if err != nil {
		t.Fatalf("ByteSlice(0, 3) error = %v", err)
	}
	if s.String() != "hé" {
		t.Errorf("ByteSlice(0, 3) = %q, want %q", s.String(), "hé")
	}

	_, err = full.ByteSlice(0, 2)
	var rerr *RangeError
	if !errors.As(err, &rerr) || !rerr.Boundary {
		t.Errorf("ByteSlice(0, 2) error = %v, want char boundary RangeError", err)
	}

	if _, err := full.ByteSlice(0, 7); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("ByteSlice(0, 7) error = %v, want ErrOutOfRange", err)
	}
}

func TestLine(t *testing.T) {
	full := FromString("alpha\nbeta\ngamma").Full()

	want := []string{"alpha\n", "beta\n", "gamma"}
	if full.LenLines() != len(want) {
		t.Fatalf("LenLines() = %d, want %d", full.LenLines(), len(want))
	}
	for i, w := range want {
		line, err := full.Line(i)
		if err != nil {
			t.Fatalf("Line(%d) error = %v", i, err)
		}
		if line.String() != w {
			t.Errorf("Line(%d) = %q, want %q", i, line.String(), w)
		}
	}

	if _, err := full.Line(3); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Line(3) error = %v, want ErrOutOfRange", err)
	}
}

func TestLineTrailingNewline(t *testing.T) {
	full := FromString("abc\n").Full()

	last, err := full.Line(1)
	if err != nil {
		t.Fatalf("Line(1) error = %v", err)
	}
	if last.String() != "" {
		t.Errorf("Line(1) = %q, want empty", last.String())
	}
}

func TestLineOnlyBreaksOnNewline(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"crlf", "a\r\nb", []string{"a\r\n", "b"}},
		{"lone cr", "a\rb", []string{"a\rb"}},
		{"vertical tab and form feed", "a\vb\fc", []string{"a\vb\fc"}},
		{"unicode separators", "a\u0085b\u2028c\u2029d", []string{"a\u0085b\u2028c\u2029d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			full := FromString(tt.text).Full()
			if full.LenLines() != len(tt.want) {
				t.Fatalf("LenLines() = %d, want %d", full.LenLines(), len(tt.want))
			}
			for i, w := range tt.want {
				line, err := full.Line(i)
				if err != nil {
					t.Fatalf("Line(%d) error = %v", i, err)
				}
				if line.String() != w {
					t.Errorf("Line(%d) = %q, want %q", i, line.String(), w)
				}
			}
		})
	}
}

func TestLineWithinSlice(t *testing.T) {
	full := FromString("one\ntwo\nthree\nfour").Full()

	// "o\nthree\nfo"
	mid, err := full.Slice(6, 16)
	if err != nil {
		t.Fatal(err)
	}
	if mid.LenLines() != 3 {
		t.Fatalf("LenLines() = %d, want 3", mid.LenLines())
	}

	want := []string{"o\n", "three\n", "fo"}
	for i, w := range want {
		line, err := mid.Line(i)
		if err != nil {
			t.Fatalf("Line(%d) error = %v", i, err)
		}
		if line.String() != w {
			t.Errorf("Line(%d) = %q, want %q", i, line.String(), w)
		}
	}
}

func TestLineLargeRope(t *testing.T) {
	text := largeText()
	lines := strings.SplitAfter(text, "\n")
	full := FromString(text).Full()

	for _, i := range []int{0, 1, 57, 199, 399, 400} {
		line, err := full.Line(i)
		if err != nil {
			t.Fatalf("Line(%d) error = %v", i, err)
		}
		if line.String() != lines[i] {
			t.Errorf("Line(%d) = %q, want %q", i, line.String(), lines[i])
		}
	}
}

func TestCharToByte(t *testing.T) {
	full := FromString("aé😀b").Full()

	want := []int{0, 1, 3, 7, 8}
	for pos, w := range want {
		got, err := full.CharToByte(pos)
		if err != nil {
			t.Fatalf("CharToByte(%d) error = %v", pos, err)
		}
		if got != w {
			t.Errorf("CharToByte(%d) = %d, want %d", pos, got, w)
		}
	}

	if _, err := full.CharToByte(5); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("CharToByte(5) error = %v, want ErrOutOfRange", err)
	}
}

func TestCharToByteRelative(t *testing.T) {
	full := FromString("ééé abc").Full()
	s, err := full.Slice(2, 7)
	if err != nil {
		t.Fatal(err)
	}

	got, err := s.CharToByte(2)
	if err != nil {
		t.Fatal(err)
	}
	if got != 3 {
		t.Errorf("CharToByte(2) = %d, want 3", got)
	}
}

func TestChar(t *testing.T) {
	full := FromString("aé😀").Full()

	tests := []struct {
		index int
		want  rune
		ok    bool
	}{
		{0, 'a', true},
		{1, 'é', true},
		{2, '😀', true},
		{3, 0, false},
		{-1, 0, false},
	}

	for _, tt := range tests {
		got, ok := full.Char(tt.index)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Char(%d) = %q, %v; want %q, %v", tt.index, got, ok, tt.want, tt.ok)
		}
	}
}

func TestPrefixSuffix(t *testing.T) {
	full := FromString("foobar").Full()

	if !full.HasPrefix("foo") || full.HasPrefix("bar") {
		t.Error("HasPrefix mismatch")
	}
	if !full.HasSuffix("bar") || full.HasSuffix("foo") {
		t.Error("HasSuffix mismatch")
	}
	if full.HasPrefix("foobarbaz") {
		t.Error("HasPrefix longer than slice should be false")
	}
	if !full.HasPrefix("") || !full.HasSuffix("") {
		t.Error("empty prefix and suffix should match")
	}
}

func TestSliceEquals(t *testing.T) {
	text := largeText()
	a := FromString(text).Full()
	b := FromString("#" + text + "#").Full()

	inner, err := b.Slice(1, b.LenChars()-1)
	if err != nil {
		t.Fatal(err)
	}
	if !a.Equals(inner) {
		t.Error("slices with identical text should be equal")
	}
	if a.Equals(b) {
		t.Error("slices with different text should not be equal")
	}
	if !FromString("x").Equals(FromString("x")) {
		t.Error("Rope.Equals mismatch")
	}
}

func TestEmptySlicesEqual(t *testing.T) {
	text := strings.Repeat("abcdefghij", 200)
	full := FromString(text).Full()

	it := full.Chunks()
	if !it.Next() {
		t.Fatal("Chunks() yielded nothing")
	}
	boundary := len(it.Text())
	if boundary >= len(text) {
		t.Fatalf("text should span several chunks, first chunk has %d bytes", boundary)
	}

	window := func(s Slice, at int) Slice {
		t.Helper()
		w, err := s.Slice(at, at)
		if err != nil {
			t.Fatal(err)
		}
		return w
	}

	empties := map[string]Slice{
		"empty rope":     New().Full(),
		"zero rope":      Rope{}.Full(),
		"empty string":   FromString("").Full(),
		"start":          window(full, 0),
		"mid chunk":      window(full, 5),
		"chunk boundary": window(full, boundary),
		"end":            window(full, len(text)),
		"short rope":     window(FromString("abc").Full(), 1),
	}

	for an, a := range empties {
		for bn, b := range empties {
			if !a.Equals(b) {
				t.Errorf("%s.Equals(%s) = false, want true", an, bn)
			}
		}
		if !a.EqualString("") {
			t.Errorf("%s.EqualString(\"\") = false", an)
		}
		if a.Chunks().Next() {
			t.Errorf("%s.Chunks() yielded a chunk", an)
		}
		if a.Equals(FromString("a").Full()) {
			t.Errorf("%s should not equal a non-empty slice", an)
		}
	}
}

func TestRunes(t *testing.T) {
	text := largeText()
	full := FromString(text).Full()

	it := full.Runes()
	var got []rune
	for it.Next() {
		if it.Index() != len(got) {
			t.Fatalf("Index() = %d, want %d", it.Index(), len(got))
		}
		got = append(got, it.Rune())
	}
	if string(got) != text {
		t.Error("Runes() does not reproduce the text")
	}
}

func TestChunksClipped(t *testing.T) {
	text := largeText()
	full := FromString(text).Full()
	s, err := full.ByteSlice(100, 3000)
	if err != nil {
		t.Fatal(err)
	}

	var sb strings.Builder
	it := s.Chunks()
	for it.Next() {
		sb.WriteString(it.Text())
	}
	if sb.String() != text[100:3000] {
		t.Error("Chunks() of a slice should cover exactly the slice")
	}
}

func TestFromReader(t *testing.T) {
	text := strings.Repeat("ünïcödé ", 20000)
	r, err := FromReader(strings.NewReader(text))
	if err != nil {
		t.Fatalf("FromReader error = %v", err)
	}
	if r.String() != text {
		t.Error("FromReader does not round-trip multi-byte text")
	}
	if r.LenChars() != uint64(len([]rune(text))) {
		t.Errorf("LenChars() = %d, want %d", r.LenChars(), len([]rune(text)))
	}
}
