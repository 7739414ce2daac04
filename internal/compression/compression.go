// Package compression dispatches compress/decompress requests to the
// supported algorithms and reports size statistics.
package compression

import (
	"compress/flate"
	stdgzip "compress/gzip"
	"errors"
	"fmt"
	"io"

	"github.com/huffzip/huffzip/internal/compression/algorithms/gzip"
	"github.com/huffzip/huffzip/internal/compression/algorithms/huffman"
)

// SupportedAlgorithms contains all supported compression algorithms
var SupportedAlgorithms = []string{
	"huffman",
	"gzip",
}

// Options contains compression/decompression options
type Options struct {
	Algorithm string
}

// Stats contains compression statistics
type Stats struct {
	OriginalSize     int
	ProcessedSize    int
	CompressionRatio float64
	Algorithm        string
}

// Codec is implemented by every supported algorithm.
type Codec interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

var codecs = map[string]Codec{
	"huffman": huffmanCodec{},
	"gzip":    gzipCodec{},
}

type huffmanCodec struct{}

func (huffmanCodec) Compress(data []byte) ([]byte, error) {
	return huffman.CompressBytes(data)
}

func (huffmanCodec) Decompress(data []byte) ([]byte, error) {
	return huffman.DecompressBytes(data)
}

type gzipCodec struct{}

func (gzipCodec) Compress(data []byte) ([]byte, error) {
	return gzip.Compress(data)
}

func (gzipCodec) Decompress(data []byte) ([]byte, error) {
	return gzip.Decompress(data)
}

// IsValidAlgorithm checks if the provided algorithm is supported
func IsValidAlgorithm(algorithm string) bool {
	_, exists := codecs[algorithm]
	return exists
}

// GetSupportedAlgorithms returns a list of supported algorithms
func GetSupportedAlgorithms() []string {
	return append([]string{}, SupportedAlgorithms...)
}

// IsCorruptInput reports whether err was caused by malformed or
// truncated compressed input, as opposed to an internal failure.
func IsCorruptInput(err error) bool {
	var corrupt flate.CorruptInputError
	return errors.Is(err, huffman.ErrBadMagic) ||
		errors.Is(err, huffman.ErrTruncatedHeader) ||
		errors.Is(err, huffman.ErrTruncatedBody) ||
		errors.Is(err, stdgzip.ErrHeader) ||
		errors.Is(err, stdgzip.ErrChecksum) ||
		errors.As(err, &corrupt) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, io.EOF)
}

// Compress compresses data using the specified algorithm
func Compress(data []byte, options Options) ([]byte, *Stats, error) {
	codec, ok := codecs[options.Algorithm]
	if !ok {
		return nil, nil, fmt.Errorf("unsupported algorithm: %s", options.Algorithm)
	}

	compressedData, err := codec.Compress(data)
	if err != nil {
		return nil, nil, fmt.Errorf("compression failed: %w", err)
	}

	stats := &Stats{
		OriginalSize:  len(data),
		ProcessedSize: len(compressedData),
		Algorithm:     options.Algorithm,
	}
	if len(data) > 0 {
		stats.CompressionRatio = float64(len(compressedData)) / float64(len(data)) * 100
	}

	return compressedData, stats, nil
}

// Decompress decompresses data using the specified algorithm
func Decompress(data []byte, options Options) ([]byte, *Stats, error) {
	codec, ok := codecs[options.Algorithm]
	if !ok {
		return nil, nil, fmt.Errorf("unsupported algorithm: %s", options.Algorithm)
	}

	decompressedData, err := codec.Decompress(data)
	if err != nil {
		return nil, nil, fmt.Errorf("decompression failed: %w", err)
	}

	stats := &Stats{
		OriginalSize:  len(data),
		ProcessedSize: len(decompressedData),
		Algorithm:     options.Algorithm,
	}
	if len(decompressedData) > 0 {
		stats.CompressionRatio = float64(len(data)) / float64(len(decompressedData)) * 100
	}

	return decompressedData, stats, nil
}
