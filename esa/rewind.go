package esa

// Rewind moves the match-finder to an arbitrary position in the already
// parsed block, forward or backward. Going backward means every offset
// field a position at or after the current one might have written has to
// be cleared before the walk can trust it again; going forward from there
// (or from a fresh Parse) means replaying every skipped position's climb
// so the tree is exactly as if FindAllMatches/Advance had been called that
// many times, without actually recording any matches.
//
// Rewind only clears the node ranges this block's Parse actually built
// (mf.ranges), not the whole array — the same per-worker span bookkeeping
// a parallel build already has to produce to report where it wrote.
func (mf *MatchFinder) Rewind(position int32) error {
	if position < 0 || position >= mf.blockSize {
		return ErrBadParameter
	}

	if mf.position == position {
		return nil
	}

	if mf.position != 0 {
		for _, r := range mf.ranges {
			if r.start >= r.end {
				continue
			}
			clearOffsets(mf.sa[r.start:r.end], mf.numWorkers)
		}
		// A build range that happens to start at 0 would otherwise clear the
		// root sentinel's offset field along with everything else.
		mf.sa[0] = rootNode
	}

	if position > 0 {
		fastForward(mf.sa, mf.leaf, position)
	}

	mf.position = position
	return nil
}

// clearOffsets zeroes the offset field of every node in s, splitting the
// work across goroutines once the range is large enough to be worth it —
// the same threshold-gated fan-out oracle widening and the parallel tree
// build use, since it is the same kind of embarrassingly-parallel, no
// cross-node-dependency sweep.
func clearOffsets(s []node, numWorkers int) {
	n := len(s)
	if n < widenThreshold || numWorkers <= 1 {
		for i, v := range s {
			s[i] = v.clearOffset()
		}
		return
	}

	chunk := (n + numWorkers - 1) / numWorkers
	done := make(chan struct{}, numWorkers)
	workers := 0
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		workers++
		go func(start, end int) {
			for i := start; i < end; i++ {
				s[i] = s[i].clearOffset()
			}
			done <- struct{}{}
		}(start, end)
	}
	for i := 0; i < workers; i++ {
		<-done
	}
}

// fastForward replays positions [0, target) against the leaf-link table,
// stamping every node each position's climb touches, same as Advance would
// have, but stopping a climb as soon as it reaches a node that is already
// stamped — once that happens, everything further up the chain was
// necessarily stamped by a later (and therefore still-current) position
// earlier in this same backward sweep, so re-stamping it would only
// overwrite a correct value with an identical one.
func fastForward(sa []node, leaf []int32, target int32) {
	for position := target - 1; position >= 0; position-- {
		ref := leaf[position]
		n := sa[ref]
		for !n.hasOffset() {
			sa[ref] = n.withOffset(uint64(position))
			ref = int32(n.parent())
			n = sa[ref]
		}
	}
}
