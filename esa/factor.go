package esa

// FindAllMatches finds every distance-optimal match at the current position
// and advances the position by one byte. A node's lcp strictly decreases on
// the way up to the root, so length alone can't gate which touched nodes
// are worth reporting — a shallower ancestor holding a more recent stamp
// than its deeper child is a strictly better trade (shorter match, smaller
// distance) and belongs in the result even though its length is smaller.
// The walk therefore tracks the most recent (largest) offset seen so far
// and only emits when a node beats it, which is exactly the packed
// offset-dominant comparison the original C implementation performs in one
// 64-bit compare; skipping untouched nodes falls out of the same check,
// since an untouched node's offset is zero and zero never beats the
// initial "nothing seen yet" threshold.
//
// Matches are appended to dst in strictly decreasing length and strictly
// decreasing distance order: each later match's previous occurrence is
// more recent than the one before it.
//
// The MatchFinder must have been parsed and the position must be before
// the end of the block. Neither precondition is checked here, and a call
// that breaks one returns no error.
func (mf *MatchFinder) FindAllMatches(dst []Match) []Match {
	pos := mf.position
	mf.position++

	var bestOffset uint64
	ref := mf.leaf[pos]
	for ref != 0 {
		n := mf.sa[ref]
		if offset := n.rawOffset(); offset > bestOffset {
			bestOffset = offset
			length, position, _ := n.match(mf.minMatchLengthMinus1)
			dst = append(dst, Match{Length: length, Offset: pos - position})
		}
		mf.sa[ref] = n.withOffset(uint64(pos))
		ref = int32(n.parent())
	}
	return dst
}

// FindBestMatch finds the single longest match at the current position and
// advances the position by one byte. It returns the zero Match if no match
// was found. Unlike FindAllMatches it does not need to visit every node on
// the climb to know the answer — the first touched node it reaches is
// already the longest available match — but it still walks the whole chain
// to keep every ancestor's offset field current for later positions.
func (mf *MatchFinder) FindBestMatch() Match {
	pos := mf.position
	mf.position++

	var best Match
	haveBest := false

	ref := mf.leaf[pos]
	for ref != 0 {
		n := mf.sa[ref]
		if !haveBest {
			if length, position, found := n.match(mf.minMatchLengthMinus1); found {
				best = Match{Length: length, Offset: pos - position}
				haveBest = true
			}
		}
		mf.sa[ref] = n.withOffset(uint64(pos))
		ref = int32(n.parent())
	}
	return best
}

// FindAllMatchesInWindow is FindAllMatches filtered to matches whose
// previous occurrence is within windowSize bytes of the current position.
// The original C header declares the equivalent operation but never
// implements it; this is the natural way to add it without touching the
// walk itself, since the walk already has both positions in hand at the
// point it would otherwise unconditionally append.
func (mf *MatchFinder) FindAllMatchesInWindow(dst []Match, windowSize int32) []Match {
	pos := mf.position
	mf.position++

	var bestOffset uint64
	ref := mf.leaf[pos]
	for ref != 0 {
		n := mf.sa[ref]
		if offset := n.rawOffset(); offset > bestOffset {
			bestOffset = offset
			length, position, _ := n.match(mf.minMatchLengthMinus1)
			distance := pos - position
			if distance <= windowSize {
				dst = append(dst, Match{Length: length, Offset: distance})
			}
		}
		mf.sa[ref] = n.withOffset(uint64(pos))
		ref = int32(n.parent())
	}
	return dst
}

// Advance moves the position forward by count bytes without recording any
// matches, but still stamps every node each skipped position's climb would
// have touched. Callers that already know a run of positions can't produce
// a useful match — inside a match just found, for instance — use this to
// keep the tree's offset fields correct for positions after the skip
// without paying for match construction they would discard anyway.
func (mf *MatchFinder) Advance(count int32) {
	start := mf.position
	end := start + count
	mf.position = end

	for pos := start; pos < end; pos++ {
		ref := mf.leaf[pos]
		for ref != 0 {
			n := mf.sa[ref]
			mf.sa[ref] = n.withOffset(uint64(pos))
			ref = int32(n.parent())
		}
	}
}
