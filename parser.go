package pack

// An AbsoluteMatch is the same back-reference a Match describes, but
// addressed in absolute block positions instead of a relative distance:
// Match is the stamped position an ESAMatchFinder's walk last saw touch the
// matched node, the position esa.Match.Offset is the distance back to;
// Search recovers it as Start - esa.Match.Offset. Parse only uses the
// derived quantities (End - Start = Length, Start - Match = Distance).
type AbsoluteMatch struct {
	// Start is the index of the first byte.
	Start int

	// End is the index of the byte after the last byte
	// (so that End - Start = Length).
	End int

	// Match is the index of the previous data that matches
	// (Start - Match = Distance).
	Match int
}

// A Searcher is the source of matches for a Parser: a leaf-to-root walk at
// one position, not the whole-block scan a MatchFinder does. ESAMatchFinder
// is the only Searcher in this tree — its Search method is a thin adapter
// that calls esa.MatchFinder.FindAllMatches and converts the engine's
// distances back to the absolute positions this interface expects.
type Searcher interface {
	// Search looks for matches at pos and appends them to dst.
	// In each match, Start and End must fall within the interval [min,max),
	// and Match < Start < End.
	Search(dst []AbsoluteMatch, pos, min, max int) []AbsoluteMatch
}

// A Parser chooses which matches to use to compress the data.
type Parser interface {
	// Parse gets matches from src, chooses which ones to use, and appends
	// them to dst. The matches cover the range of bytes from start to end.
	Parse(dst []Match, src Searcher, start, end int) []Match
}

// minAcceptedMatchLength is the shortest match GreedyParser will spend a
// Match record on. Below this, the three-byte <length,distance> encoding
// overhead most LZ77 encoders pay per match costs more than leaving the
// bytes as literals, regardless of what MinMatchLength the underlying
// Searcher was configured to report.
const minAcceptedMatchLength = 4

// A GreedyParser implements the greedy matching strategy: it goes from start
// to end, taking the longest match the Searcher offers at each position and
// jumping straight to that match's end, the same economy ESAMatchFinder.Search
// relies on when it calls Advance to skip stamping positions a Parser will
// never ask about.
type GreedyParser struct {
	matchCache []AbsoluteMatch
}

func (p *GreedyParser) Parse(dst []Match, src Searcher, start, end int) []Match {
	candidates := p.matchCache[:0]
	s := start
	nextEmit := start
	var best AbsoluteMatch

mainLoop:
	for {
		nextS := s
		for {
			s = nextS
			nextS = s + 1
			if nextS >= end {
				break mainLoop
			}

			candidates = src.Search(candidates[:0], s, nextEmit, end)
			best = longestMatch(candidates)
			if best.End-best.Start >= minAcceptedMatchLength {
				break
			}
		}

		dst = append(dst, Match{
			Unmatched: best.Start - nextEmit,
			Length:    best.End - best.Start,
			Distance:  best.Start - best.Match,
		})
		s = best.End
		nextEmit = s
	}

	if nextEmit < end {
		dst = append(dst, Match{
			Unmatched: end - nextEmit,
		})
	}
	p.matchCache = candidates[:0]
	return dst
}

// longestMatch picks the match whose Length is largest; a Searcher backed by
// the ESA engine reports every surviving offset-recency candidate at pos,
// not just the best one, so the Parser still has to do its own reduction.
func longestMatch(candidates []AbsoluteMatch) AbsoluteMatch {
	var longest AbsoluteMatch

	for _, m := range candidates {
		if m.End-m.Start > longest.End-longest.Start {
			longest = m
		}
	}

	return longest
}
