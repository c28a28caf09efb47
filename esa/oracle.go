package esa

import (
	"sync"

	"github.com/gregnov/esamatchfinder/internal/sais"
)

// oracle is the ESA match-finder's view of a suffix-array/PLCP backend: a
// narrow, swappable collaborator the tree builder never reaches around.
// internal/sais is the only implementation, but keeping the boundary named
// means the builder's code never assumes anything about how SA/PLCP were
// produced, matching how the reference implementation treats libsais as an
// opaque, separately-linked dependency.
type oracle interface {
	build(block []byte) (sa []int32, plcp []int32, ok bool)
}

type saisOracle struct{}

func (saisOracle) build(block []byte) (sa []int32, plcp []int32, ok bool) {
	sa = sais.BuildSuffixArray(block)
	if len(sa) != len(block) {
		return nil, nil, false
	}
	plcp = sais.PermutedLCP(block, sa)
	if len(plcp) != len(block) {
		return nil, nil, false
	}
	return sa, plcp, true
}

// widenThreshold mirrors the point at which the reference implementation's
// in-place 32-to-64-bit widen switches from a single serial pass to a
// chunked, parallel-eligible one. Below it the fixed cost of spinning up
// goroutines outweighs the work being parallelized.
const widenThreshold = 1 << 16

// widenSuffixArray fills dst (already sized to len(sa)) with one node per
// suffix-array entry: the suffix-array value sits in the low bits (the bits
// the parent field later uses), lcp and offset fields are zero. Below
// widenThreshold, or with one worker, it is one serial pass; otherwise the
// whole range is split into chunks copied concurrently. This package widens
// from the oracle's separate []int32 rather than over the narrow array's own
// memory, so no pass needs to run right to left to avoid clobbering unread
// entries.
func widenSuffixArray(dst []node, sa []int32, numWorkers int) {
	n := len(sa)
	if n < widenThreshold || numWorkers <= 1 {
		for i, v := range sa {
			dst[i] = node(uint32(v))
		}
		return
	}

	var wg sync.WaitGroup
	chunk := (n + numWorkers - 1) / numWorkers
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				dst[i] = node(uint32(sa[i]))
			}
		}(start, end)
	}
	wg.Wait()
}
