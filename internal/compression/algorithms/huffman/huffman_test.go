package huffman

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"
)

func roundTrip(t *testing.T, input []byte) []byte {
	t.Helper()
	compressed, err := CompressBytes(input)
	if err != nil {
		t.Fatalf("CompressBytes: %v", err)
	}
	decompressed, err := DecompressBytes(compressed)
	if err != nil {
		t.Fatalf("DecompressBytes: %v", err)
	}
	if !bytes.Equal(decompressed, input) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d bytes", len(decompressed), len(input))
	}
	return compressed
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	random := make([]byte, 64*1024)
	rng.Read(random)

	allBytes := make([]byte, 256)
	for i := range allBytes {
		allBytes[i] = byte(i)
	}

	cases := map[string][]byte{
		"empty":         {},
		"single byte":   {0x41},
		"repeated byte": bytes.Repeat([]byte{0x41}, 1000),
		"text":          []byte("the quick brown fox jumps over the lazy dog"),
		"all bytes":     allBytes,
		"random":        random,
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			roundTrip(t, input)
		})
	}
}

func TestEmptyInputStreamShape(t *testing.T) {
	compressed := roundTrip(t, nil)

	// magic (32) + lone leaf (1 + 9) + one-bit EOS code = 43 bits.
	if len(compressed) != 6 {
		t.Errorf("compressed empty input is %d bytes, want 6", len(compressed))
	}
	wantMagic := []byte{0xfa, 0xce, 0x82, 0x01}
	if !bytes.Equal(compressed[:4], wantMagic) {
		t.Errorf("magic bytes = %x, want %x", compressed[:4], wantMagic)
	}
}

func TestRepeatedByteStreamShape(t *testing.T) {
	input := bytes.Repeat([]byte{0x41}, 1000)
	compressed := roundTrip(t, input)

	// magic (32) + header (1 internal + 2 leaves of 10 bits = 21)
	// + 1000 one-bit codes + EOS (1) = 1054 bits -> 132 bytes.
	if len(compressed) != 132 {
		t.Errorf("compressed length = %d bytes, want 132", len(compressed))
	}
}

func TestSeparateRunsProduceIdenticalStreams(t *testing.T) {
	input := []byte("mississippi river delta")
	first, err := CompressBytes(input)
	if err != nil {
		t.Fatal(err)
	}
	second, err := CompressBytes(input)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Error("two runs over the same input produced different streams")
	}
}

func TestBadMagic(t *testing.T) {
	compressed := roundTrip(t, []byte("payload"))
	compressed[3] ^= 0x01

	_, err := DecompressBytes(compressed)
	if !errors.Is(err, ErrBadMagic) {
		t.Errorf("got %v, want ErrBadMagic", err)
	}
}

func TestShortStreamIsBadMagic(t *testing.T) {
	_, err := DecompressBytes([]byte{0xfa, 0xce})
	if !errors.Is(err, ErrBadMagic) {
		t.Errorf("got %v, want ErrBadMagic", err)
	}
}

func TestTruncatedHeader(t *testing.T) {
	compressed := roundTrip(t, []byte("hello world"))

	_, err := DecompressBytes(compressed[:5])
	if !errors.Is(err, ErrTruncatedHeader) {
		t.Errorf("got %v, want ErrTruncatedHeader", err)
	}
}

func TestRunawayHeaderDepthRejected(t *testing.T) {
	// Valid magic followed by megabytes of 0 bits spells an endlessly
	// nesting header; it must fail cleanly, not blow the stack.
	stream := append([]byte{0xfa, 0xce, 0x82, 0x01}, make([]byte, 4*1024*1024)...)

	_, err := DecompressBytes(stream)
	if !errors.Is(err, ErrTruncatedHeader) {
		t.Errorf("got %v, want ErrTruncatedHeader", err)
	}
}

func TestTruncatedBody(t *testing.T) {
	compressed := roundTrip(t, bytes.Repeat([]byte{0x41}, 1000))

	_, err := DecompressBytes(compressed[:100])
	if !errors.Is(err, ErrTruncatedBody) {
		t.Errorf("got %v, want ErrTruncatedBody", err)
	}
}

func TestEncodedLengthMatchesCodeTable(t *testing.T) {
	input := []byte("abracadabra abracadabra abracadabra!")
	compressed, err := CompressBytes(input)
	if err != nil {
		t.Fatal(err)
	}

	freqs := make([]uint64, maxSymbols)
	for _, b := range input {
		freqs[b]++
	}
	freqs[eosSymbol] = 1
	root := buildTree(freqs)
	codes := deriveCodes(root)

	bits := 32 + headerBits(root)
	for sym, f := range freqs {
		bits += int(f) * len(codes[sym])
	}
	want := (bits + 7) / 8
	if len(compressed) != want {
		t.Errorf("compressed length = %d bytes, want %d", len(compressed), want)
	}
}

func headerBits(n *node) int {
	if n.isLeaf() {
		return 1 + symbolBits
	}
	return 1 + headerBits(n.left) + headerBits(n.right)
}
