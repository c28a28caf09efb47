package sais

// PermutedLCP computes the permuted-LCP array of text given its suffix
// array: plcp[i] is the length of the longest common prefix between the
// suffix starting at text position i and the suffix immediately before it
// in suffix-array order (0 for the suffix that sorts first). It is "permuted"
// because it is indexed by text position rather than by rank, which is what
// the interval-tree builder needs when it walks the suffix array right to
// left and wants the LCP of each entry without an extra rank lookup.
//
// This is Kasai's algorithm, computed directly in PLCP form instead of the
// usual rank-indexed LCP array: the height value Kasai's sweep produces at
// text position i is already what PLCP wants there, it just has to not be
// re-permuted back through rank like a conventional LCP array build would.
func PermutedLCP(text []byte, sa []int32) []int32 {
	n := len(text)
	plcp := make([]int32, n)
	if n == 0 {
		return plcp
	}

	rank := make([]int32, n)
	for i, s := range sa {
		rank[s] = int32(i)
	}

	h := 0
	for i := 0; i < n; i++ {
		if rank[i] == 0 {
			plcp[i] = 0
			continue
		}
		if h > 0 {
			h--
		}
		j := int(sa[rank[i]-1])
		for i+h < n && j+h < n && text[i+h] == text[j+h] {
			h++
		}
		plcp[i] = int32(h)
	}
	return plcp
}
