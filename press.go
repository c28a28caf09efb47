// Package pack is a modular system for data compression.
//
// Many compression libraries have two main parts:
//  - Something that looks for repeated sequences of bytes
//  - An encoder for the compressed data format (often an entropy coder)
//
// Although these are logically two separate steps, the implementations are
// usually closely tied together. You can't use flate's matcher with snappy's
// encoder, for example. This package defines interfaces and an intermediate
// representation to allow mixing and matching compression components: the
// suffix-array MatchFinder in ESAMatchFinder feeds its matches to either of
// the lz4 or snappy Encoders unchanged.
package pack

// A Match is the basic unit of LZ77 compression. Distance is the quantity
// esa.Match.Offset reports directly and AbsoluteMatch.Start-AbsoluteMatch.Match
// computes the long way round — the backward distance to the previous
// occurrence, not an absolute stream position.
type Match struct {
	Unmatched int // the number of unmatched bytes since the previous match
	Length    int // the number of bytes in the matched string; it may be 0 at the end of the input
	Distance  int // how far back in the stream to copy from
}

// A MatchFinder performs the LZ77 stage of compression, looking for matches.
// ESAMatchFinder is the only implementation in this tree: it parses src as
// one enhanced-suffix-array block per call and drives a GreedyParser over
// the result through the Searcher interface below.
type MatchFinder interface {
	// FindMatches looks for matches in src, appends them to dst, and returns dst.
	FindMatches(dst []Match, src []byte) []Match

	// Reset clears any internal state, preparing the MatchFinder to be used with
	// a new stream.
	Reset()
}

// An Encoder encodes the data in its final format.
type Encoder interface {
	// Header appends the appropriate stream header to dst.
	Header(dst []byte) []byte

	// Encode appends the encoded format of src to dst, using the match
	// information from matches.
	Encode(dst []byte, src []byte, matches []Match, lastBlock bool) []byte

	// Reset clears any internal state, preparing the Encoder to be used with
	// a new stream.
	Reset()
}
