package rope

import "unicode/utf8"

// chunkIterFrame represents a position in the tree traversal.
type chunkIterFrame struct {
	node   *Node
	idx    int        // Next child or chunk index to visit
	offset ByteOffset // Absolute byte offset of the next child or chunk
}

// ChunkIterator iterates over the chunks of a slice. The text of the first
// and last chunk is clipped to the slice bounds.
type ChunkIterator struct {
	start, end ByteOffset
	stack      []chunkIterFrame
	text       string
	offset     ByteOffset
}

// Chunks returns an iterator over the chunks of the slice.
func (s Slice) Chunks() *ChunkIterator {
	return &ChunkIterator{
		start: s.start,
		end:   s.end,
		stack: s.rope.rootFrame(),
	}
}

// Chunks returns an iterator over all chunks in the rope.
func (r Rope) Chunks() *ChunkIterator {
	return r.Full().Chunks()
}

func (r Rope) rootFrame() []chunkIterFrame {
	stack := make([]chunkIterFrame, 0, 8)
	if r.root != nil {
		stack = append(stack, chunkIterFrame{node: r.root})
	}
	return stack
}

// Next advances to the next non-empty chunk.
// Returns true if there is a chunk, false if iteration is complete.
func (it *ChunkIterator) Next() bool {
	for len(it.stack) > 0 {
		frame := &it.stack[len(it.stack)-1]
		node := frame.node

		if frame.offset >= it.end {
			it.stack = it.stack[:len(it.stack)-1]
			continue
		}

		if node.IsLeaf() {
			if frame.idx >= len(node.chunks) {
				it.stack = it.stack[:len(it.stack)-1]
				continue
			}
			chunk := node.chunks[frame.idx]
			chunkStart := frame.offset
			chunkEnd := chunkStart + ByteOffset(chunk.Len())
			frame.idx++
			frame.offset = chunkEnd
			if chunkEnd <= it.start {
				continue
			}

			lo := max(it.start, chunkStart)
			hi := min(it.end, chunkEnd)
			if hi <= lo {
				continue
			}
			it.text = chunk.String()[lo-chunkStart : hi-chunkStart]
			it.offset = lo
			return true
		}

		if frame.idx >= len(node.children) {
			it.stack = it.stack[:len(it.stack)-1]
			continue
		}
		child := node.children[frame.idx]
		childStart := frame.offset
		frame.idx++
		frame.offset += child.summary.Bytes
		if frame.offset <= it.start {
			continue
		}
		it.stack = append(it.stack, chunkIterFrame{node: child, offset: childStart})
	}

	it.text = ""
	return false
}

// Text returns the text of the current chunk, clipped to the slice.
func (it *ChunkIterator) Text() string {
	return it.text
}

// Offset returns the absolute byte offset of the current chunk text.
func (it *ChunkIterator) Offset() ByteOffset {
	return it.offset
}

// RuneIterator iterates over the runes of a slice.
type RuneIterator struct {
	chunks  *ChunkIterator
	pending string
	current rune
	size    int
	index   int
}

// Runes returns an iterator over the runes of the slice.
func (s Slice) Runes() *RuneIterator {
	return &RuneIterator{chunks: s.Chunks(), index: -1}
}

// Next advances to the next rune.
// Returns true if there is a rune, false if iteration is complete.
func (it *RuneIterator) Next() bool {
	for len(it.pending) == 0 {
		if !it.chunks.Next() {
			return false
		}
		it.pending = it.chunks.Text()
	}

	it.current, it.size = utf8.DecodeRuneInString(it.pending)
	it.pending = it.pending[it.size:]
	it.index++
	return true
}

// Rune returns the current rune.
func (it *RuneIterator) Rune() rune {
	return it.current
}

// Size returns the byte size of the current rune.
func (it *RuneIterator) Size() int {
	return it.size
}

// Index returns the char index of the current rune within the slice.
func (it *RuneIterator) Index() int {
	return it.index
}
