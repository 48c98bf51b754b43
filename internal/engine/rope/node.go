package rope

import "strings"

// Tree structure constants
const (
	// MaxChildren is the maximum children per internal node.
	MaxChildren = 8

	// MaxChunksPerLeaf is the maximum chunks in a leaf node.
	MaxChunksPerLeaf = 4
)

// Node represents a node in the rope B+ tree.
// Leaf nodes (height == 0) contain text chunks.
// Internal nodes (height > 0) contain child node references.
// Nodes are never modified once they are reachable from a Rope.
type Node struct {
	height  uint8       // 0 for leaves, >0 for internal
	summary TextSummary // Aggregated metrics for entire subtree

	children []*Node // Internal nodes only
	chunks   []Chunk // Leaf nodes only
}

// newLeafNode creates a leaf node holding the given chunks.
func newLeafNode(chunks []Chunk) *Node {
	n := &Node{chunks: chunks}
	for _, c := range chunks {
		n.summary = n.summary.Add(c.Summary())
	}
	if n.summary.IsZero() {
		n.summary.Flags = FlagASCII
	}
	return n
}

// newInternalNode creates an internal node with the given children.
func newInternalNode(children []*Node) *Node {
	n := &Node{
		height:   children[0].height + 1,
		children: children,
	}
	for _, child := range children {
		n.summary = n.summary.Add(child.summary)
	}
	return n
}

// IsLeaf returns true if this is a leaf node.
func (n *Node) IsLeaf() bool {
	return n.height == 0
}

// buildTree builds a balanced tree bottom-up from chunks.
func buildTree(chunks []Chunk) *Node {
	if len(chunks) == 0 {
		return newLeafNode(nil)
	}

	var nodes []*Node
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		end := min(i+MaxChunksPerLeaf, len(chunks))
		leafChunks := make([]Chunk, end-i)
		copy(leafChunks, chunks[i:end])
		nodes = append(nodes, newLeafNode(leafChunks))
	}

	for len(nodes) > 1 {
		parents := make([]*Node, 0, len(nodes)/MaxChildren+1)
		for i := 0; i < len(nodes); i += MaxChildren {
			end := min(i+MaxChildren, len(nodes))
			children := make([]*Node, end-i)
			copy(children, nodes[i:end])
			parents = append(parents, newInternalNode(children))
		}
		nodes = parents
	}
	return nodes[0]
}

// appendRange appends text in the byte range [start, end) to the builder.
func (n *Node) appendRange(sb *strings.Builder, start, end ByteOffset) {
	if start >= end {
		return
	}

	offset := ByteOffset(0)
	if n.IsLeaf() {
		for _, chunk := range n.chunks {
			chunkEnd := offset + ByteOffset(chunk.Len())
			if chunkEnd > start && offset < end {
				lo := int(max(start, offset) - offset)
				hi := int(min(end, chunkEnd) - offset)
				sb.WriteString(chunk.String()[lo:hi])
			}
			if chunkEnd >= end {
				return
			}
			offset = chunkEnd
		}
		return
	}

	for _, child := range n.children {
		childEnd := offset + child.summary.Bytes
		if childEnd > start && offset < end {
			child.appendRange(sb, max(start, offset)-offset, min(end, childEnd)-offset)
		}
		if childEnd >= end {
			return
		}
		offset = childEnd
	}
}

// leafAt descends to the chunk containing byte offset and returns the chunk,
// the summary of everything before it, and the offset within the chunk.
// An offset equal to the subtree length resolves to the end of the last chunk.
func (n *Node) leafAt(offset ByteOffset) (Chunk, TextSummary, int) {
	var before TextSummary
	node := n
	for !node.IsLeaf() {
		idx := len(node.children) - 1
		for i, child := range node.children {
			if offset < child.summary.Bytes || i == idx {
				idx = i
				break
			}
			offset -= child.summary.Bytes
			before = before.Add(child.summary)
		}
		node = node.children[idx]
	}

	for i, chunk := range node.chunks {
		if offset < ByteOffset(chunk.Len()) || i == len(node.chunks)-1 {
			return chunk, before, int(offset)
		}
		offset -= ByteOffset(chunk.Len())
		before = before.Add(chunk.Summary())
	}
	return Chunk{}, before, 0
}

// byteToChar returns the number of runes before byte offset.
func (n *Node) byteToChar(offset ByteOffset) uint64 {
	if offset >= n.summary.Bytes {
		return n.summary.Chars
	}
	chunk, before, local := n.leafAt(offset)
	return before.Chars + byteToCharInString(chunk.String(), local)
}

// byteToLine returns the number of newlines before byte offset.
func (n *Node) byteToLine(offset ByteOffset) uint32 {
	if offset >= n.summary.Bytes {
		return n.summary.Lines
	}
	chunk, before, local := n.leafAt(offset)
	return before.Lines + countNewlines(chunk.String(), local)
}

// charToByte returns the byte offset of the rune with the given index.
// A char index equal to the rune count maps to the subtree length.
func (n *Node) charToByte(char uint64) ByteOffset {
	if char >= n.summary.Chars {
		return n.summary.Bytes
	}

	var offset ByteOffset
	node := n
	for !node.IsLeaf() {
		for _, child := range node.children {
			if char < child.summary.Chars {
				node = child
				break
			}
			char -= child.summary.Chars
			offset += child.summary.Bytes
		}
	}

	for _, chunk := range node.chunks {
		if char < chunk.summary.Chars {
			return offset + ByteOffset(charToByteInString(chunk.String(), char))
		}
		char -= chunk.summary.Chars
		offset += ByteOffset(chunk.Len())
	}
	return offset
}

// lineToByte returns the byte offset just past the line-th newline
// (1-indexed). Line 0 maps to offset 0.
func (n *Node) lineToByte(line uint32) ByteOffset {
	if line == 0 {
		return 0
	}
	if line > n.summary.Lines {
		return n.summary.Bytes
	}

	var offset ByteOffset
	node := n
	for !node.IsLeaf() {
		for _, child := range node.children {
			if line <= child.summary.Lines {
				node = child
				break
			}
			line -= child.summary.Lines
			offset += child.summary.Bytes
		}
	}

	for _, chunk := range node.chunks {
		if line <= chunk.summary.Lines {
			return offset + ByteOffset(findNthNewline(chunk.String(), line)+1)
		}
		line -= chunk.summary.Lines
		offset += ByteOffset(chunk.Len())
	}
	return offset
}
