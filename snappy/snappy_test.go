package snappy

import (
	"bytes"
	"strings"
	"testing"

	"github.com/golang/snappy"
	"github.com/gregnov/esamatchfinder"
)

// sampleText mirrors the lz4 package's test fixture: no testdata/ fixtures
// were present in the retrieval these tests were rebuilt from, so the round
// trip runs against generated, repetitive text instead of a golden file.
var sampleText = strings.Repeat(
	"The quick brown fox jumps over the lazy dog. Pack, parse, and prove it. ",
	400,
)

func encode(t *testing.T, data []byte) []byte {
	t.Helper()
	mf, err := pack.NewESAMatchFinder(int32(len(data)), 4, 64, 1)
	if err != nil {
		t.Fatal(err)
	}
	matches := mf.FindMatches(nil, data)

	var e Encoder
	return e.Encode(nil, data, matches, true)
}

func roundTrip(t *testing.T, data []byte) {
	t.Helper()
	compressed := encode(t, data)

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(snappy.NewReader(bytes.NewReader(compressed))); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf.Bytes(), data) {
		t.Fatal("decompressed output does not match")
	}
}

func TestEncode(t *testing.T) {
	roundTrip(t, []byte(sampleText))
}

func TestEncodeNoMatches(t *testing.T) {
	roundTrip(t, []byte("abcdefghijklmnop"))
}

func TestEncodeEmpty(t *testing.T) {
	roundTrip(t, []byte{})
}
