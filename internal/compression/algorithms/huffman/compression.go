package huffman

import (
	"fmt"
	"io"

	"github.com/icza/bitio"
	"github.com/rs/zerolog"
)

// Compress reads all of src to build the code tree, then re-reads it
// to emit the compressed stream to dst. src must be rewindable because
// of the two passes. The bit writer wrapping dst is closed on every
// exit path, flushing the zero-padded final byte.
func (c *Codec) Compress(src io.ReadSeeker, dst io.Writer) (err error) {
	w := bitio.NewWriter(dst)
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()

	freqs, err := countFrequencies(bitio.NewReader(src))
	if err != nil {
		return err
	}
	root := buildTree(freqs)
	codes := deriveCodes(root)
	c.logCodes(codes)

	if err := w.WriteBits(uint64(magicNumber), 32); err != nil {
		return err
	}
	if err := writeTree(w, root); err != nil {
		return err
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewinding input for encoding pass: %w", err)
	}
	return encodeBody(bitio.NewReader(src), w, codes)
}

// countFrequencies scans the whole input, counting each byte value.
// The end-of-stream symbol is forced to 1 so the tree always has a
// terminating leaf, even for empty input.
func countFrequencies(r *bitio.Reader) ([]uint64, error) {
	freqs := make([]uint64, maxSymbols)
	for {
		v, err := r.ReadBits(bitsPerWord)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		freqs[v]++
	}
	freqs[eosSymbol] = 1
	return freqs, nil
}

// writeTree serializes the tree pre-order: a 0 bit introduces an
// internal node followed by its left and right subtrees, a 1 bit
// introduces a leaf followed by its 9-bit symbol.
func writeTree(w *bitio.Writer, n *node) error {
	if n.isLeaf() {
		if err := w.WriteBool(true); err != nil {
			return err
		}
		return w.WriteBits(uint64(n.symbol), symbolBits)
	}
	if err := w.WriteBool(false); err != nil {
		return err
	}
	if err := writeTree(w, n.left); err != nil {
		return err
	}
	return writeTree(w, n.right)
}

// encodeBody writes the code of every input byte, then the
// end-of-stream code.
func encodeBody(r *bitio.Reader, w *bitio.Writer, codes []string) error {
	for {
		v, err := r.ReadBits(bitsPerWord)
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if err := writeCode(w, codes[v], int(v)); err != nil {
			return err
		}
	}
	return writeCode(w, codes[eosSymbol], eosSymbol)
}

func writeCode(w *bitio.Writer, code string, symbol int) error {
	if code == "" {
		return fmt.Errorf("%w: %d", ErrMissingCode, symbol)
	}
	for i := 0; i < len(code); i++ {
		if err := w.WriteBool(code[i] == '1'); err != nil {
			return err
		}
	}
	return nil
}

func (c *Codec) logCodes(codes []string) {
	if c.log.GetLevel() > zerolog.DebugLevel {
		return
	}
	for sym, code := range codes {
		if code == "" {
			continue
		}
		c.log.Debug().Int("symbol", sym).Str("code", code).Msg("derived code")
	}
}
