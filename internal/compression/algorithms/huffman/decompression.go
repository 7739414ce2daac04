package huffman

import (
	"fmt"
	"io"

	"github.com/icza/bitio"
)

// Decompress reads a compressed stream from src and writes the
// original bytes to dst. The stream must start with the magic number;
// decoding stops at the end-of-stream leaf, so trailing padding bits
// are never interpreted.
func (c *Codec) Decompress(src io.Reader, dst io.Writer) (err error) {
	r := bitio.NewReader(src)
	w := bitio.NewWriter(dst)
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()

	magic, err := r.ReadBits(32)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadMagic, err)
	}
	if uint32(magic) != magicNumber {
		return fmt.Errorf("%w: %#08x", ErrBadMagic, magic)
	}

	root, err := readTree(r, 0)
	if err != nil {
		return err
	}
	return decodeBody(r, w, root)
}

// readTree reverses writeTree. Every 0 bit must be matched by exactly
// two recursive reads, so input exhaustion mid-header means the header
// is malformed. A valid tree has at most 257 leaves and so never nests
// deeper than alphabetSize; deeper headers are rejected before the
// recursion can exhaust the stack. Decode-time weights are irrelevant
// and left zero.
func readTree(r *bitio.Reader, depth int) (*node, error) {
	if depth > alphabetSize {
		return nil, fmt.Errorf("%w: nesting exceeds %d levels", ErrTruncatedHeader, alphabetSize)
	}
	leaf, err := r.ReadBool()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncatedHeader, err)
	}
	if leaf {
		sym, err := r.ReadBits(symbolBits)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTruncatedHeader, err)
		}
		if sym > eosSymbol {
			return nil, fmt.Errorf("huffman: header symbol %d out of range", sym)
		}
		return &node{symbol: int(sym)}, nil
	}
	left, err := readTree(r, depth+1)
	if err != nil {
		return nil, err
	}
	right, err := readTree(r, depth+1)
	if err != nil {
		return nil, err
	}
	return &node{symbol: -1, left: left, right: right}, nil
}

// decodeBody walks the tree one bit at a time: 0 descends left, 1
// descends right. Landing on a leaf emits its symbol and resets the
// cursor to the root; the end-of-stream leaf terminates decoding. A
// lone-leaf root still consumes one bit per symbol, mirroring the
// one-bit code the encoder assigns it.
func decodeBody(r *bitio.Reader, w *bitio.Writer, root *node) error {
	cur := root
	for {
		bit, err := r.ReadBool()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTruncatedBody, err)
		}
		if !cur.isLeaf() {
			if bit {
				cur = cur.right
			} else {
				cur = cur.left
			}
		}
		if cur.isLeaf() {
			if cur.symbol == eosSymbol {
				return nil
			}
			if err := w.WriteBits(uint64(cur.symbol), bitsPerWord); err != nil {
				return err
			}
			cur = root
		}
	}
}
