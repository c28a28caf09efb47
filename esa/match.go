package esa

// Match is one LZ77 back-reference candidate: Offset is the backward
// distance from the current position to an earlier occurrence of its
// prefix (current_position - prior_position), Length is how many bytes of
// that prefix are guaranteed to match (it may be shorter than the full
// common prefix, clamped to the MatchFinder's configured maximum).
type Match struct {
	Length int32
	Offset int32
}
