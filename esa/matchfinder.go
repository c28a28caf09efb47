package esa

import "runtime"

// MatchFinder is an enhanced-suffix-array based LZ77 match-finder. It is
// created once for a maximum block size and reused across many blocks:
// Parse builds the tree for the current block, FindAllMatches/
// FindBestMatch/Advance walk it forward one position at a time, and Rewind
// moves the walk to an arbitrary position within the same block without
// re-parsing.
//
// The zero value is not usable; construct one with New or NewParallel.
type MatchFinder struct {
	sa   []node
	leaf []int32

	position  int32
	blockSize int32

	maxBlockSize         int32
	minMatchLength       int32
	maxMatchLength       int32
	minMatchLengthMinus1 uint64
	numWorkers           int

	ranges []workerRange
	oracle oracle
}

// New creates a single-threaded MatchFinder. It is NewParallel with one
// worker, matching how the reference implementation's non-OpenMP build is
// just its OpenMP build compiled with the parallel paths never taken.
func New(maxBlockSize, minMatchLength, maxMatchLength int32) (*MatchFinder, error) {
	return NewParallel(maxBlockSize, minMatchLength, maxMatchLength, 1)
}

// NewParallel creates a MatchFinder that, when the block is large enough to
// be worth it, builds the interval tree using up to numWorkers goroutines.
// A numWorkers of 0 uses runtime.GOMAXPROCS(0), mirroring
// esa_matchfinder_create_omp's "0 means the OpenMP default" convention.
func NewParallel(maxBlockSize, minMatchLength, maxMatchLength int32, numWorkers int) (*MatchFinder, error) {
	if maxBlockSize < 0 ||
		maxBlockSize > MaxBlockSize ||
		minMatchLength < MinMatchLength ||
		maxMatchLength > int32(lcpMax)+minMatchLength-1 ||
		maxMatchLength < minMatchLength ||
		numWorkers < 0 {
		return nil, ErrBadParameter
	}

	if numWorkers == 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	return &MatchFinder{
		sa:                   make([]node, maxBlockSize),
		leaf:                 make([]int32, maxBlockSize),
		blockSize:            -1,
		maxBlockSize:         maxBlockSize,
		minMatchLength:       minMatchLength,
		maxMatchLength:       maxMatchLength,
		minMatchLengthMinus1: uint64(minMatchLength - 1),
		numWorkers:           numWorkers,
		oracle:               saisOracle{},
	}, nil
}

// Parse builds the enhanced suffix array for block and resets the
// match-finder's position to 0. It must be called before any of
// FindAllMatches, FindBestMatch, Advance, or Rewind. Only Rewind checks
// this, returning ErrBadParameter before the first Parse; the others do not
// check it and report no error.
func (mf *MatchFinder) Parse(block []byte) error {
	if len(block) > int(mf.maxBlockSize) {
		return ErrBadParameter
	}

	n := len(block)
	mf.blockSize = int32(n)
	if n == 0 {
		mf.position = 0
		return nil
	}

	sa, plcp, ok := mf.oracle.build(block)
	if !ok {
		return ErrOracleFailed
	}

	widenSuffixArray(mf.sa[:n], sa, mf.numWorkers)
	copy(mf.leaf[:n], plcp)

	mf.ranges = buildIntervalTreeParallel(mf.sa[:n], mf.leaf[:n], int(mf.minMatchLength), int(mf.maxMatchLength), n, mf.numWorkers)
	mf.sa[0] = rootNode
	mf.position = 0

	return nil
}

// GetPosition returns the match-finder's current position in the parsed
// block.
func (mf *MatchFinder) GetPosition() int32 {
	return mf.position
}

// BlockSize returns the size of the most recently parsed block.
func (mf *MatchFinder) BlockSize() int32 {
	return mf.blockSize
}
