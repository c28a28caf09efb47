package esa

// buildIntervalTree reduces the suffix-array range [start, start+size) of sa
// (read as plain SA values, not yet any other node field) and the matching
// PLCP values in leaf into an LCP-interval tree, in place, via one
// right-to-left sweep with a monotonic stack of open intervals.
//
// On return, every sa slot in the bump-allocated node range (everything
// from the returned index up to start+size-1) holds a finished internal
// node with its lcp and parent fields set; leaf[sa[i]] for every suffix
// position in range now holds the index of the deepest interval node that
// position's suffix belongs to, ready for find_all_matches/find_best_match
// to climb from. minMatchLength and maxMatchLength bound the lcp field
// each node is allowed to record (clamped, not rejected — a node whose true
// LCP exceeds maxMatchLength still exists, it just can't promise a longer
// match than the caller asked for).
//
// The returned index is the start of the node range this sweep allocated;
// the caller needs it to know which part of sa to clear on a later Rewind.
func buildIntervalTree(sa []node, leaf []int32, minMatchLength, maxMatchLength, start, size int) int {
	var stackBuf [2 * MaxMatchLength]uint64
	stack := stackBuf[:]
	sp := 0
	stack[0] = 0
	topInterval := uint64(0)
	nextIndex := int64(start + size - 1)

	minML := uint64(minMatchLength - 1)
	remainingML := uint64(maxMatchLength) - minML

	for i := start + size - 1; i >= start; i-- {
		nextPos := uint64(sa[i])
		nextLCP := uint64(leaf[nextPos]) - minML
		if int64(nextLCP) < 0 {
			nextLCP = 0
		}
		if nextLCP > remainingML {
			nextLCP = remainingML
		}

		nextInterval := (nextLCP << lcpShift) + uint64(nextIndex)
		topLCP := topInterval >> lcpShift

		stack[sp+1] = nextInterval
		if nextLCP > topLCP {
			topInterval = nextInterval
			nextIndex--
			sp++
		}

		leaf[nextPos] = int32(uint32(topInterval))

		for nextLCP < topLCP {
			closedInterval := topInterval

			sp--
			topInterval = stack[sp]
			topLCP = topInterval >> lcpShift

			stack[sp+1] = nextInterval
			if nextLCP > topLCP {
				topInterval = nextInterval
				nextIndex--
				sp++
			}

			sa[uint32(closedInterval)] = node(uint64(uint32(topInterval)) + closedInterval&lcpMask)
		}
	}

	return int(nextIndex + 1)
}
