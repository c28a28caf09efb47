package esa

import "testing"

func newFinder(t *testing.T, maxBlockSize, minMatchLength, maxMatchLength int32) *MatchFinder {
	t.Helper()
	mf, err := New(maxBlockSize, minMatchLength, maxMatchLength)
	if err != nil {
		t.Fatal(err)
	}
	return mf
}

func parse(t *testing.T, mf *MatchFinder, block []byte) {
	t.Helper()
	if err := mf.Parse(block); err != nil {
		t.Fatal(err)
	}
}

func scanAll(mf *MatchFinder, n int) [][]Match {
	out := make([][]Match, n)
	for i := 0; i < n; i++ {
		out[i] = mf.FindAllMatches(nil)
	}
	return out
}

// scenario A: a literal string with no repetition emits nothing anywhere.
func TestLiteralString(t *testing.T) {
	mf := newFinder(t, 64, 2, 64)
	block := []byte("abcde")
	parse(t, mf, block)

	for i := range block {
		if m := mf.FindAllMatches(nil); len(m) != 0 {
			t.Fatalf("position %d: got %d matches, want 0", i, len(m))
		}
	}
}

// scenario B: a single repeated run.
func TestSingleRepeat(t *testing.T) {
	mf := newFinder(t, 64, 2, 64)
	block := []byte("abcabc")
	parse(t, mf, block)

	matches := scanAll(mf, len(block))

	for i := 0; i < 3; i++ {
		if len(matches[i]) != 0 {
			t.Fatalf("position %d: got %v, want none", i, matches[i])
		}
	}

	want3 := Match{Length: 3, Offset: 3}
	if len(matches[3]) != 1 || matches[3][0] != want3 {
		t.Fatalf("position 3: got %v, want [%v]", matches[3], want3)
	}

	want4 := Match{Length: 2, Offset: 3}
	if len(matches[4]) != 1 || matches[4][0] != want4 {
		t.Fatalf("position 4: got %v, want [%v]", matches[4], want4)
	}

	if len(matches[5]) != 0 {
		t.Fatalf("position 5: got %v, want none (length 1 is below min_match_length)", matches[5])
	}
}

// scenario C: a run of identical bytes, where every ancestor node could in
// principle be touched by several earlier positions — this is the case
// that would leak redundant same-distance shorter matches without the
// offset-recency filter in FindAllMatches.
func TestRunLength(t *testing.T) {
	mf := newFinder(t, 64, 2, 64)
	block := []byte("aaaaaa")
	parse(t, mf, block)

	matches := scanAll(mf, len(block))

	if len(matches[0]) != 0 {
		t.Fatalf("position 0: got %v, want none (no earlier occurrence exists yet)", matches[0])
	}
	for p := 1; p < len(block)-1; p++ {
		if len(matches[p]) != 1 {
			t.Fatalf("position %d: got %v, want exactly one match", p, matches[p])
		}
		// Every position's best available source is the byte right before
		// it, a constant distance of 1 no matter how far into the run p
		// is; the length is bounded by how many bytes of the run remain
		// ahead of p, so it shrinks as p approaches the end of the block
		// instead of growing with p. The offset-recency filter in
		// FindAllMatches is what keeps this down to one match instead of
		// one per tree level.
		want := Match{Length: int32(len(block) - p), Offset: 1}
		if matches[p][0] != want {
			t.Fatalf("position %d: got %v, want %v", p, matches[p][0], want)
		}
	}

	last := len(block) - 1
	if len(matches[last]) != 0 {
		t.Fatalf("position %d: got %v, want none (only one byte left, below min_match_length)", last, matches[last])
	}
}

// scenario D: overlapping periodic repeats.
func TestOverlappingChoices(t *testing.T) {
	mf := newFinder(t, 64, 2, 64)
	block := []byte("abababab")
	parse(t, mf, block)

	matches := scanAll(mf, len(block))

	checkLongest := func(pos int, wantLength int32) {
		if len(matches[pos]) == 0 {
			t.Fatalf("position %d: got no matches, want longest length %d", pos, wantLength)
		}
		if matches[pos][0].Length != wantLength {
			t.Fatalf("position %d: longest match length = %d, want %d", pos, matches[pos][0].Length, wantLength)
		}
	}
	checkLongest(4, 4)
	checkLongest(5, 3)
	checkLongest(6, 2)
}

// scenario F: a max-length cap truncates matches that would otherwise keep
// growing.
func TestMaxLengthCap(t *testing.T) {
	const maxLen = 8
	mf := newFinder(t, 128, 2, maxLen)
	block := make([]byte, 100)
	for i := range block {
		block[i] = 'x'
	}
	parse(t, mf, block)

	for p := 0; p < len(block); p++ {
		matches := mf.FindAllMatches(nil)
		for _, m := range matches {
			if m.Length > maxLen {
				t.Fatalf("position %d: match length %d exceeds max_match_length %d", p, m.Length, maxLen)
			}
		}
		// Near the end of the block fewer than maxLen bytes remain, which
		// bounds the longest possible match below the cap.
		want := int32(maxLen)
		if left := int32(len(block) - p); left < want {
			want = left
		}
		if want < 2 {
			if len(matches) != 0 {
				t.Fatalf("position %d: got %v, want none (only %d byte left)", p, matches, want)
			}
			continue
		}
		if p >= maxLen && (len(matches) == 0 || matches[0].Length != want) {
			t.Fatalf("position %d: got %v, want longest match length exactly %d", p, matches, want)
		}
	}
}

// Position 0 never has a prior occurrence to report, by construction.
func TestPositionZeroEmitsNothing(t *testing.T) {
	mf := newFinder(t, 64, 2, 64)
	parse(t, mf, []byte("aaaaaa"))

	if m := mf.FindAllMatches(nil); len(m) != 0 {
		t.Fatalf("FindAllMatches(0) = %v, want none", m)
	}

	mf2 := newFinder(t, 64, 2, 64)
	parse(t, mf2, []byte("aaaaaa"))
	if best := mf2.FindBestMatch(); best != (Match{}) {
		t.Fatalf("FindBestMatch(0) = %v, want zero value", best)
	}
}

// scenario E: rewinding and replaying reproduces the original pass exactly.
func TestRewindAndReplay(t *testing.T) {
	mf := newFinder(t, 64, 2, 64)
	block := []byte("aaaaaa")
	parse(t, mf, block)

	first := scanAll(mf, len(block))

	if err := mf.Rewind(2); err != nil {
		t.Fatal(err)
	}
	if mf.GetPosition() != 2 {
		t.Fatalf("GetPosition() = %d, want 2", mf.GetPosition())
	}

	second := make([][]Match, len(block))
	for p := 2; p < len(block); p++ {
		second[p] = mf.FindAllMatches(nil)
	}

	for p := 2; p < len(block); p++ {
		if len(first[p]) != len(second[p]) {
			t.Fatalf("position %d: first pass %v, replay %v", p, first[p], second[p])
		}
		for i := range first[p] {
			if first[p][i] != second[p][i] {
				t.Fatalf("position %d: first pass %v, replay %v", p, first[p], second[p])
			}
		}
	}
}

// A full rewind(0) and rescan reproduces the very first pass.
func TestRewindToZeroRepeatsPass(t *testing.T) {
	mf := newFinder(t, 64, 2, 64)
	block := []byte("abcabcabc")
	parse(t, mf, block)

	first := scanAll(mf, len(block))

	if err := mf.Rewind(0); err != nil {
		t.Fatal(err)
	}
	second := scanAll(mf, len(block))

	for p := range block {
		if len(first[p]) != len(second[p]) {
			t.Fatalf("position %d: first pass %v, second pass %v", p, first[p], second[p])
		}
		for i := range first[p] {
			if first[p][i] != second[p][i] {
				t.Fatalf("position %d: first pass %v, second pass %v", p, first[p], second[p])
			}
		}
	}
}

func TestRewindOutOfRange(t *testing.T) {
	mf := newFinder(t, 64, 2, 64)
	parse(t, mf, []byte("abcabc"))

	if err := mf.Rewind(-1); err != ErrBadParameter {
		t.Fatalf("Rewind(-1) = %v, want ErrBadParameter", err)
	}
	if err := mf.Rewind(6); err != ErrBadParameter {
		t.Fatalf("Rewind(blockSize) = %v, want ErrBadParameter", err)
	}
}

// Leaf-link soundness: every position's leaf climbs to the root in a
// bounded number of steps.
func TestLeafLinkSoundness(t *testing.T) {
	mf := newFinder(t, 64, 2, 64)
	block := []byte("mississippi river mississippi")
	parse(t, mf, block)

	maxSteps := int(MaxMatchLength) + 2
	for p := range block {
		ref := mf.leaf[p]
		steps := 0
		for ref != 0 {
			ref = int32(mf.sa[ref].parent())
			steps++
			if steps > maxSteps {
				t.Fatalf("position %d: leaf link did not reach root within %d steps", p, maxSteps)
			}
		}
	}
}

// Tree well-formedness: every non-root node's parent index is smaller than
// its own, and every non-root node's lcp strictly exceeds its parent's.
func TestTreeWellFormed(t *testing.T) {
	mf := newFinder(t, 64, 2, 64)
	block := []byte("the quick brown fox jumps over the lazy dog")
	parse(t, mf, block)

	// Only the slots a build range allocated hold nodes; the slots below a
	// range's start still hold the widened suffix-array values.
	for _, r := range mf.ranges {
		for i := r.start; i < r.end; i++ {
			n := mf.sa[i]
			p := n.parent()
			if int(p) >= i {
				t.Fatalf("node %d: parent %d is not smaller", i, p)
			}
			if mf.sa[p].lcp() >= n.lcp() {
				t.Fatalf("node %d: parent lcp %d is not smaller than its own lcp %d", i, mf.sa[p].lcp(), n.lcp())
			}
		}
	}
}

// Offset-field isolation: lcp and parent fields never change once parse
// returns, no matter how many find_*/advance/rewind calls follow.
func TestOffsetFieldIsolation(t *testing.T) {
	mf := newFinder(t, 64, 2, 64)
	block := []byte("banana bandana banana")
	parse(t, mf, block)

	type shape struct {
		lcp    uint64
		parent uint32
	}
	before := make([]shape, len(block))
	for i := range block {
		before[i] = shape{mf.sa[i].lcp(), mf.sa[i].parent()}
	}

	for p := 0; p < len(block)/2; p++ {
		mf.FindAllMatches(nil)
	}
	if err := mf.Rewind(1); err != nil {
		t.Fatal(err)
	}
	for p := 1; p < len(block); p++ {
		mf.FindBestMatch()
	}

	for i := range block {
		got := shape{mf.sa[i].lcp(), mf.sa[i].parent()}
		if got != before[i] {
			t.Fatalf("node %d: lcp/parent changed from %+v to %+v", i, before[i], got)
		}
	}
}

// Parallel equivalence: a multi-worker build produces the same (lcp,
// parent) shape and the same sequence of match lists as a single worker.
// Each worker allocates nodes from the top of its own range, so the node
// indices differ; the shape is compared as every position's chain of lcp
// values from its leaf up to the root.
func TestParallelEquivalence(t *testing.T) {
	block := make([]byte, 200000)
	pattern := []byte("the quick brown fox jumps over the lazy dog, ")
	for i := range block {
		block[i] = pattern[i%len(pattern)]
	}

	serial, err := NewParallel(int32(len(block)), 4, 64, 1)
	if err != nil {
		t.Fatal(err)
	}
	parse(t, serial, block)

	parallel, err := NewParallel(int32(len(block)), 4, 64, 4)
	if err != nil {
		t.Fatal(err)
	}
	parse(t, parallel, block)

	for p := range block {
		a, b := serial.leaf[p], parallel.leaf[p]
		for a != 0 || b != 0 {
			if a == 0 || b == 0 || serial.sa[a].lcp() != parallel.sa[b].lcp() {
				t.Fatalf("position %d: serial node %d and parallel node %d differ on the climb to the root", p, a, b)
			}
			a, b = int32(serial.sa[a].parent()), int32(parallel.sa[b].parent())
		}
	}

	for p := range block {
		a := serial.FindAllMatches(nil)
		b := parallel.FindAllMatches(nil)
		if len(a) != len(b) {
			t.Fatalf("position %d: serial %v, parallel %v", p, a, b)
		}
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("position %d: serial %v, parallel %v", p, a, b)
			}
		}
	}
}

func TestInvalidParameters(t *testing.T) {
	if _, err := New(-1, 2, 64); err != ErrBadParameter {
		t.Fatalf("negative maxBlockSize: got %v, want ErrBadParameter", err)
	}
	if _, err := New(64, 1, 64); err != ErrBadParameter {
		t.Fatalf("minMatchLength below MinMatchLength: got %v, want ErrBadParameter", err)
	}
	if _, err := New(64, 10, 5); err != ErrBadParameter {
		t.Fatalf("maxMatchLength below minMatchLength: got %v, want ErrBadParameter", err)
	}
	if _, err := NewParallel(64, 2, 64, -1); err != ErrBadParameter {
		t.Fatalf("negative numWorkers: got %v, want ErrBadParameter", err)
	}
}

func TestParseTooLarge(t *testing.T) {
	mf := newFinder(t, 4, 2, 64)
	if err := mf.Parse([]byte("too many bytes")); err != ErrBadParameter {
		t.Fatalf("Parse(oversized block) = %v, want ErrBadParameter", err)
	}
}

func TestEmptyBlock(t *testing.T) {
	mf := newFinder(t, 64, 2, 64)
	if err := mf.Parse(nil); err != nil {
		t.Fatal(err)
	}
	if mf.GetPosition() != 0 {
		t.Fatalf("GetPosition() = %d, want 0", mf.GetPosition())
	}
	if mf.BlockSize() != 0 {
		t.Fatalf("BlockSize() = %d, want 0", mf.BlockSize())
	}
}
