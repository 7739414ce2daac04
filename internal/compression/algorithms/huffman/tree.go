package huffman

import "container/heap"

// node is either a leaf (symbol set, no children) or an internal node
// (both children set, symbol -1). Each child is owned by exactly one
// parent; the tree is built once per pass and read-only afterwards.
type node struct {
	symbol      int
	weight      uint64
	left, right *node
	seq         int
}

func (n *node) isLeaf() bool {
	return n.left == nil && n.right == nil
}

// nodeHeap orders nodes by weight; equal weights fall back to
// insertion order so a single run is deterministic.
type nodeHeap []*node

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	if h[i].weight != h[j].weight {
		return h[i].weight < h[j].weight
	}
	return h[i].seq < h[j].seq
}

func (h nodeHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *nodeHeap) Push(item any) {
	*h = append(*h, item.(*node))
}

func (h *nodeHeap) Pop() any {
	popped := (*h)[len(*h)-1]
	*h = (*h)[:len(*h)-1]
	return popped
}

// buildTree runs the greedy Huffman merge: repeatedly join the two
// lightest nodes until one root remains.
func buildTree(freqs []uint64) *node {
	var h nodeHeap
	seq := 0
	for sym, f := range freqs {
		if f == 0 {
			continue
		}
		h = append(h, &node{symbol: sym, weight: f, seq: seq})
		seq++
	}
	heap.Init(&h)
	for h.Len() > 1 {
		left := heap.Pop(&h).(*node)
		right := heap.Pop(&h).(*node)
		heap.Push(&h, &node{
			symbol: -1,
			weight: left.weight + right.weight,
			left:   left,
			right:  right,
			seq:    seq,
		})
		seq++
	}
	return heap.Pop(&h).(*node)
}

// deriveCodes walks the tree depth-first, assigning each leaf the
// '0'/'1' path from the root. A lone-leaf tree (empty input, only the
// end-of-stream symbol present) would get the empty path, which cannot
// be written, so it is assigned the one-bit code "0" instead.
func deriveCodes(root *node) []string {
	codes := make([]string, maxSymbols)
	var walk func(n *node, path string)
	walk = func(n *node, path string) {
		if n.isLeaf() {
			codes[n.symbol] = path
			return
		}
		walk(n.left, path+"0")
		walk(n.right, path+"1")
	}
	walk(root, "")
	if root.isLeaf() {
		codes[root.symbol] = "0"
	}
	return codes
}
