// Package huffman implements a lossless, reversible byte-stream codec
// based on Huffman coding. The compressed stream is self-contained: a
// 32-bit magic number is followed by a pre-order serialization of the
// code tree, the variable-length codes of every input byte, and one
// trailing end-of-stream code.
package huffman

import (
	"bytes"
	"errors"
	"io"

	"github.com/rs/zerolog"
)

const (
	bitsPerWord  = 8
	alphabetSize = 1 << bitsPerWord

	// eosSymbol sits one past the byte alphabet and terminates the
	// decoder, so the trailing padding of the final byte is never
	// interpreted.
	eosSymbol  = alphabetSize
	maxSymbols = alphabetSize + 1

	// symbolBits is the fixed header field width; 9 bits cover
	// symbols 0..256.
	symbolBits = 9

	magicNumber uint32 = 0xface8201
)

var (
	// ErrBadMagic is returned when the leading 32 bits of a stream do
	// not match the expected magic number.
	ErrBadMagic = errors.New("huffman: magic number mismatch")

	// ErrTruncatedHeader is returned when the input ends while the
	// tree header is being read.
	ErrTruncatedHeader = errors.New("huffman: truncated tree header")

	// ErrTruncatedBody is returned when the compressed body ends
	// before the end-of-stream code is reached.
	ErrTruncatedBody = errors.New("huffman: truncated compressed body")

	// ErrMissingCode reports an input byte with no derived code. It
	// indicates a broken frequency table, not bad input.
	ErrMissingCode = errors.New("huffman: no code for symbol")
)

// Codec compresses and decompresses byte streams. The zero value is
// usable; NewCodec attaches a logger for code-table diagnostics.
type Codec struct {
	log zerolog.Logger
}

// NewCodec returns a Codec that emits debug diagnostics to log.
func NewCodec(log zerolog.Logger) *Codec {
	return &Codec{log: log}
}

// Compress compresses src with a no-op logger. See Codec.Compress.
func Compress(src io.ReadSeeker, dst io.Writer) error {
	return NewCodec(zerolog.Nop()).Compress(src, dst)
}

// Decompress decompresses src with a no-op logger. See Codec.Decompress.
func Decompress(src io.Reader, dst io.Writer) error {
	return NewCodec(zerolog.Nop()).Decompress(src, dst)
}

// CompressBytes compresses data and returns the compressed stream.
func CompressBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := Compress(bytes.NewReader(data), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecompressBytes reverses CompressBytes.
func DecompressBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := Decompress(bytes.NewReader(data), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
