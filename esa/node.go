// Package esa implements a Lempel-Ziv match-finder built on an enhanced
// suffix array: a suffix array plus its permuted-LCP array, reduced to an
// LCP-interval tree and walked leaf-to-root to answer "where else in this
// block has this position's prefix occurred before" queries in time
// proportional to the number of matches returned, not to the block size.
package esa

// matchBits sizes the lcp field of a packed node. It is fixed, not
// configurable, because it determines MaxMatchLength and the split between
// the offset and parent fields below; the original C implementation this
// package is ported from has the same constraint.
const matchBits = 6

// MaxMatchLength is 1<<matchBits, the longest match length a MatchFinder
// with the smallest minimum match length (MinMatchLength) can report. The
// lcp field counts up to MaxMatchLength-1 steps above minMatchLength-1, so
// a MatchFinder accepts a maximum match length of up to
// MaxMatchLength+minMatchLength-2.
const MaxMatchLength = 1 << matchBits

// MinMatchLength is the shortest match length any MatchFinder built by this
// package can be configured to report.
const MinMatchLength = 2

// MaxBlockSize is the largest block this package can parse in one call.
// It bounds the offset and parent fields of a packed node word to 29 bits
// each. It is one less than the full 29-bit range: withOffset stores
// position+1, not position, so that stamping position 0 is distinguishable
// from a node no walk has ever touched, and the highest representable
// position must leave room for that bias without overflowing into the lcp
// field.
const MaxBlockSize = 1<<((64-matchBits)/2) - 1

const (
	totalBits = 64

	lcpBits  = matchBits
	lcpMax   = uint64(1)<<lcpBits - 1
	lcpShift = totalBits - lcpBits
	lcpMask  = lcpMax << lcpShift

	offsetBits  = lcpShift / 2
	offsetMax   = uint64(1)<<offsetBits - 1
	offsetShift = totalBits - lcpBits - offsetBits
	offsetMask  = offsetMax << offsetShift

	parentBits  = offsetShift
	parentMax   = uint64(1)<<parentBits - 1
	parentShift = totalBits - lcpBits - offsetBits - parentBits
	parentMask  = parentMax << parentShift
)

// node is one word of the LCP-interval tree: an lcp threshold fixed at
// build time, a parent link fixed at build time, and an offset field that
// is rewritten every time a leaf-to-root walk passes through this node,
// recording the most recent block position to do so. Index 0 is the tree
// root; it has no parent and its offset field is permanently all-ones
// (offsetMask), which a climb from any leaf uses as the terminator instead
// of a nil check.
type node uint64

func newInternalNode(lcp uint64, parent uint32) node {
	return node(lcp<<lcpShift) | node(uint64(parent)&parentMax)
}

func (n node) lcp() uint64 {
	return uint64(n) >> lcpShift
}

func (n node) rawOffset() uint64 {
	return uint64(n) & offsetMask
}

func (n node) hasOffset() bool {
	return n.rawOffset() != 0
}

func (n node) parent() uint32 {
	return uint32(uint64(n) & parentMask)
}

// withOffset stamps position into n, biased by one so that position 0
// encodes as a nonzero raw offset field — otherwise it would be
// indistinguishable from a node no walk has touched yet, since rawOffset
// reads 0 for both.
func (n node) withOffset(position uint64) node {
	return node((uint64(n) &^ offsetMask) + (position+1)<<offsetShift)
}

func (n node) clearOffset() node {
	return node(uint64(n) &^ offsetMask)
}

// match turns this node into the (length, position) pair a leaf-to-root
// walk reports for it: the length is fixed at build time (min_match_length-1
// plus this node's lcp field), the position is whatever block offset most
// recently passed through this node before the current one, i.e. the
// previous occurrence the current position's prefix matches against.
//
// position is the raw absolute text position stamped into the node, not a
// distance — the caller knows the current position and must compute
// current_position - position itself to get the LZ77-style backward
// distance a Match is supposed to report.
func (n node) match(minMatchLengthMinus1 uint64) (length int32, position int32, found bool) {
	length = int32(minMatchLengthMinus1 + n.lcp())
	position = int32(n.rawOffset()>>offsetShift) - 1
	found = n.hasOffset()
	return
}

const rootNode = node(offsetMask)
