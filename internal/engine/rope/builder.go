package rope

import (
	"io"
	"strings"
	"unicode/utf8"
)

// Builder provides efficient incremental construction of a rope.
// It buffers writes and builds the rope structure when Build is called.
type Builder struct {
	chunks []Chunk
	buffer strings.Builder
	total  int
}

// WriteString appends a string to the builder.
func (b *Builder) WriteString(s string) (int, error) {
	b.total += len(s)
	b.buffer.WriteString(s)
	if b.buffer.Len() >= MaxChunkSize*2 {
		b.flush(false)
	}
	return len(s), nil
}

// Write implements io.Writer.
func (b *Builder) Write(p []byte) (int, error) {
	return b.WriteString(string(p))
}

// flush converts buffered text to chunks. Unless final, an incomplete
// trailing UTF-8 sequence stays buffered for the next write.
func (b *Builder) flush(final bool) {
	s := b.buffer.String()
	if len(s) == 0 {
		return
	}

	keep := ""
	if !final {
		for i := len(s) - 1; i >= 0 && i >= len(s)-utf8.UTFMax; i-- {
			if isUTF8Start(s[i]) {
				if !utf8.FullRuneInString(s[i:]) {
					s, keep = s[:i], s[i:]
				}
				break
			}
		}
	}

	b.buffer.Reset()
	b.chunks = append(b.chunks, splitIntoChunks(s)...)
	b.buffer.WriteString(keep)
}

// Len returns the total number of bytes written.
func (b *Builder) Len() int {
	return b.total
}

// Build creates the rope from accumulated data and resets the builder.
func (b *Builder) Build() Rope {
	b.flush(true)
	r := Rope{root: buildTree(b.chunks)}
	b.chunks = nil
	b.buffer.Reset()
	b.total = 0
	return r
}

// ReadFrom implements io.ReaderFrom.
func (b *Builder) ReadFrom(r io.Reader) (int64, error) {
	buf := make([]byte, 64*1024)
	var total int64

	for {
		n, err := r.Read(buf)
		if n > 0 {
			b.WriteString(string(buf[:n]))
			total += int64(n)
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}
