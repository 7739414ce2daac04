package huffman

import (
	"bytes"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/icza/bitio"
)

func uniformFreqs() []uint64 {
	freqs := make([]uint64, maxSymbols)
	for i := range freqs {
		freqs[i] = 1
	}
	return freqs
}

func randomFreqs(seed int64) []uint64 {
	rng := rand.New(rand.NewSource(seed))
	freqs := make([]uint64, maxSymbols)
	for i := 0; i < alphabetSize; i++ {
		freqs[i] = uint64(rng.Intn(100))
	}
	freqs[eosSymbol] = 1
	return freqs
}

func TestCodesArePrefixFree(t *testing.T) {
	for _, freqs := range [][]uint64{uniformFreqs(), randomFreqs(7), randomFreqs(42)} {
		codes := deriveCodes(buildTree(freqs))
		var present []string
		for _, code := range codes {
			if code != "" {
				present = append(present, code)
			}
		}
		for i, a := range present {
			for j, b := range present {
				if i != j && strings.HasPrefix(b, a) {
					t.Fatalf("code %q is a prefix of %q", a, b)
				}
			}
		}
	}
}

// A Huffman tree uses the code space exactly: the Kraft sum over all
// leaf depths must equal 1.
func TestCodeLengthsAreKraftTight(t *testing.T) {
	for _, freqs := range [][]uint64{uniformFreqs(), randomFreqs(7)} {
		codes := deriveCodes(buildTree(freqs))
		maxLen := 0
		for _, code := range codes {
			if len(code) > maxLen {
				maxLen = len(code)
			}
		}
		var sum, want uint64 = 0, 1 << maxLen
		for _, code := range codes {
			if code != "" {
				sum += 1 << (maxLen - len(code))
			}
		}
		if sum != want {
			t.Errorf("Kraft sum = %d/%d, want exactly 1", sum, want)
		}
	}
}

func TestLighterSymbolsGetLongerCodes(t *testing.T) {
	freqs := make([]uint64, maxSymbols)
	freqs['a'] = 1000
	freqs['b'] = 10
	freqs['c'] = 1
	freqs[eosSymbol] = 1
	codes := deriveCodes(buildTree(freqs))

	if len(codes['a']) > len(codes['b']) || len(codes['b']) > len(codes['c']) {
		t.Errorf("code lengths not monotone in weight: a=%q b=%q c=%q",
			codes['a'], codes['b'], codes['c'])
	}
}

func TestLoneLeafGetsOneBitCode(t *testing.T) {
	freqs := make([]uint64, maxSymbols)
	freqs[eosSymbol] = 1
	codes := deriveCodes(buildTree(freqs))

	if codes[eosSymbol] != "0" {
		t.Errorf("lone end-of-stream code = %q, want %q", codes[eosSymbol], "0")
	}
}

func TestHeaderSelfDescription(t *testing.T) {
	for _, freqs := range [][]uint64{uniformFreqs(), randomFreqs(7)} {
		root := buildTree(freqs)

		var buf bytes.Buffer
		w := bitio.NewWriter(&buf)
		if err := writeTree(w, root); err != nil {
			t.Fatalf("writeTree: %v", err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}

		got, err := readTree(bitio.NewReader(&buf), 0)
		if err != nil {
			t.Fatalf("readTree: %v", err)
		}
		if !sameShape(root, got) {
			t.Error("deserialized tree differs from the serialized one")
		}
	}
}

// A 257-leaf chain is the deepest shape a valid header can describe;
// the depth bound must not reject it.
func TestDeepestValidHeaderAccepted(t *testing.T) {
	chain := &node{symbol: 0}
	for sym := 1; sym <= eosSymbol; sym++ {
		chain = &node{symbol: -1, left: &node{symbol: sym}, right: chain}
	}

	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	if err := writeTree(w, chain); err != nil {
		t.Fatalf("writeTree: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got, err := readTree(bitio.NewReader(&buf), 0)
	if err != nil {
		t.Fatalf("readTree: %v", err)
	}
	if !sameShape(chain, got) {
		t.Error("deserialized chain differs from the serialized one")
	}
}

func sameShape(a, b *node) bool {
	if a.isLeaf() != b.isLeaf() {
		return false
	}
	if a.isLeaf() {
		return a.symbol == b.symbol
	}
	return sameShape(a.left, b.left) && sameShape(a.right, b.right)
}

func TestWriteCodeRejectsMissingCode(t *testing.T) {
	w := bitio.NewWriter(&bytes.Buffer{})
	err := writeCode(w, "", 0x41)
	if !errors.Is(err, ErrMissingCode) {
		t.Errorf("got %v, want ErrMissingCode", err)
	}
}
