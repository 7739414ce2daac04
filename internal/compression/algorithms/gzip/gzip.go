// Package gzip wraps the standard library DEFLATE-based codec as the
// baseline algorithm next to the Huffman implementation.
package gzip

import (
	"bytes"
	"compress/gzip"
	"io"
)

// Compress gzips data in memory.
func Compress(data []byte) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := gzip.NewWriter(buf)

	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decompress reverses Compress.
func Decompress(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return io.ReadAll(r)
}
