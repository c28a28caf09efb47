package pack

import "github.com/gregnov/esamatchfinder/esa"

// ESAMatchFinder adapts an *esa.MatchFinder to the MatchFinder and Searcher
// interfaces in a dual role: FindMatches owns the history buffer and hands
// itself to a Parser as a Searcher.
//
// Unlike a hash-based finder, the ESA engine parses one block at a time
// rather than hashing as bytes arrive, so FindMatches re-parses the whole of
// src on every call instead of extending an incrementally-hashed table. That
// is the one non-goal the engine inherits deliberately: streaming across
// block boundaries is out of scope, so each call to FindMatches is its own
// self-contained block, bounded by the MaxBlockSize the MatchFinder was
// constructed with.
type ESAMatchFinder struct {
	mf *esa.MatchFinder

	history  []byte
	matchBuf []esa.Match
}

// NewESAMatchFinder builds an ESAMatchFinder around a freshly constructed
// *esa.MatchFinder with the given limits. numWorkers of 0 uses
// runtime.GOMAXPROCS(0), matching esa.NewParallel.
func NewESAMatchFinder(maxBlockSize, minMatchLength, maxMatchLength int32, numWorkers int) (*ESAMatchFinder, error) {
	mf, err := esa.NewParallel(maxBlockSize, minMatchLength, maxMatchLength, numWorkers)
	if err != nil {
		return nil, err
	}
	return &ESAMatchFinder{mf: mf}, nil
}

func (q *ESAMatchFinder) Reset() {
	q.history = q.history[:0]
	q.matchBuf = q.matchBuf[:0]
}

// FindMatches parses src as a single block and runs it through src's
// Parser. It panics if src is longer than the MaxBlockSize the underlying
// *esa.MatchFinder was constructed with, panicking with the
// esa.ErrBadParameter that Parse returns for it.
func (q *ESAMatchFinder) FindMatches(dst []Match, src []byte) []Match {
	q.history = append(q.history[:0], src...)

	if err := q.mf.Parse(q.history); err != nil {
		panic(err)
	}

	return q.Parser().Parse(dst, q, 0, len(q.history))
}

// Parser returns the GreedyParser this finder drives its Searcher through.
// It is a method rather than a field so ESAMatchFinder needs no separate
// constructor argument for the common case; embed a GreedyParser directly
// if a caller wants to reuse its matchCache across calls.
func (q *ESAMatchFinder) Parser() Parser {
	return &GreedyParser{}
}

// Search answers one Searcher query at pos by catching the engine's walk up
// to pos and reading off its matches.
//
// GreedyParser calls Search at consecutive positions only until it accepts
// a match, then jumps straight to the match's end — the bytes inside an
// accepted match are never searched. Since the ESA engine's walk has to
// visit every position in order to keep its nodes' offset fields correct,
// Search closes that gap itself: if pos is ahead of the engine's current
// position, it calls Advance over the skipped range first, stamping those
// nodes without asking for matches nobody will use.
//
// min and max bound where a caller will accept Start and End falling, per
// the Searcher contract, but the engine's walk never extends a match
// backward past its anchor position, so min is never consulted; max simply
// caps the length of matches worth reporting.
func (q *ESAMatchFinder) Search(dst []AbsoluteMatch, pos, min, max int) []AbsoluteMatch {
	if gap := int32(pos) - q.mf.GetPosition(); gap > 0 {
		q.mf.Advance(gap)
	}

	q.matchBuf = q.mf.FindAllMatches(q.matchBuf[:0])
	for _, m := range q.matchBuf {
		end := pos + int(m.Length)
		if end > max {
			end = max
		}
		if end <= pos {
			continue
		}
		dst = append(dst, AbsoluteMatch{
			Start: pos,
			End:   end,
			Match: pos - int(m.Offset),
		})
	}
	return dst
}
