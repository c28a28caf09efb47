// Package sais builds suffix arrays with the SA-IS algorithm: induced
// sorting of L/S-type suffixes driven by a recursively-named LMS summary
// string. It is the concrete SA/PLCP oracle behind the esa package's
// interval-tree builder; the builder never looks at this package's
// internals, only at the []int32 it returns.
package sais

import "sort"

// BuildSuffixArray returns the suffix array of text: a permutation of
// [0, len(text)) such that text[sa[i]:] < text[sa[i+1]:] for every i.
func BuildSuffixArray(text []byte) []int32 {
	if len(text) == 0 {
		return []int32{}
	}
	if len(text) == 1 {
		return []int32{0}
	}
	widened := make([]int32, len(text))
	for i, b := range text {
		widened[i] = int32(b)
	}
	return saisRecursive(widened, nil, nil, 256)
}

// saisRecursive implements SA-IS over an already-widened alphabet. sa and
// data are scratch space reused across the recursion; pass nil to let the
// first call allocate them. srcAlphaSize bounds how large the *original*
// (outermost) alphabet was, which is what decides whether the dense
// counting-sort buckets below are cheap enough to use.
func saisRecursive(text, sa, data []int32, srcAlphaSize int32) []int32 {
	var (
		minChar, maxChar = text[0], text[0]
		l, r             int32
		numLMS           int32
		inS              bool
	)
	for i := len(text) - 1; i >= 0; i-- {
		l, r = text[i], l
		if l < minChar {
			minChar = l
		}
		if l > maxChar {
			maxChar = l
		}
		if l < r {
			inS = true
		} else if l > r && inS {
			inS = false
			numLMS++
		}
	}

	currAlphaSize := maxChar - minChar + 1
	if sa == nil {
		srcAlphaSize = currAlphaSize
		sa = make([]int32, len(text))
	}
	if currAlphaSize > srcAlphaSize {
		return induceSortArb(text, sa)
	}
	return induceSort(text, sa, data, minChar, numLMS, srcAlphaSize, currAlphaSize)
}

// induceSortArb falls back to a comparison sort when the recursion's
// summary alphabet has outgrown the dense buckets the counting-sort path
// needs. That happens whenever the summary string has more distinct names
// than the outermost alphabet spans, which ordinary inputs of a few hundred
// bytes already reach; the comparison sort is not linear-time.
func induceSortArb(text, sa []int32) []int32 {
	n := len(text)
	for i := range sa {
		sa[i] = int32(i)
	}
	sort.Slice(sa, func(a, b int) bool {
		i, j := int(sa[a]), int(sa[b])
		for i < n && j < n {
			if text[i] != text[j] {
				return text[i] < text[j]
			}
			i++
			j++
		}
		return i == n
	})
	return sa
}

func induceSort(text, sa, data []int32, minChar, numLMS, srcAlphaSize, currAlphaSize int32) []int32 {
	if data == nil || len(data) < int(srcAlphaSize)*2 {
		data = make([]int32, srcAlphaSize*2)
	}
	var summary []int32
	freq := data[:currAlphaSize]
	bucket := data[srcAlphaSize : srcAlphaSize+currAlphaSize]
	frequency(text, freq, minChar)

	insertLMS(text, sa, freq, bucket, minChar)
	if numLMS > 1 {
		induceSubL(text, sa, freq, bucket, minChar)
		induceSubS(text, sa, freq, bucket, minChar)
		summary = sa[len(sa)-int(numLMS):]
		maxName := summarize(text, sa, summary, numLMS)

		summarySA := sa[:numLMS]
		if maxName < numLMS {
			saisRecursive(summary, summarySA, data, srcAlphaSize)
			unmap(text, sa, summarySA, summary)
		} else {
			copy(summarySA, summary)
			clearTail(sa[numLMS:])
		}
		expand(text, sa, summarySA, freq, bucket, minChar)
	}
	induceL(text, sa, freq, bucket, minChar)
	induceS(text, sa, freq, bucket, minChar)
	return sa
}

func clearTail(s []int32) {
	for i := range s {
		s[i] = 0
	}
}

func unmap(text, sa, summarySA, lms []int32) {
	var (
		j    = int32(len(lms))
		l, r int32
		inS  bool
	)
	for i := len(text) - 1; i >= 0; i-- {
		l, r = text[i], l
		if l < r {
			inS = true
		} else if l > r && inS {
			inS = false
			j--
			lms[j] = int32(i) + 1
		}
	}
	for i := 0; i < len(lms); i++ {
		j = summarySA[i]
		sa[i] = lms[j]
		lms[j] = 0
	}
}

func expand(text, sa, summarySA, freq, bucket []int32, minChar int32) {
	frequency(text, freq, minChar)
	bucketEnd(freq, bucket)
	var lmsIdx, b, j int32
	for i := len(summarySA) - 1; i >= 0; i-- {
		lmsIdx = summarySA[i]
		summarySA[i] = 0
		j = text[lmsIdx] - minChar
		b = bucket[j]
		sa[b] = lmsIdx
		bucket[j] = b - 1
	}
}

func frequency(text, freq []int32, minChar int32) {
	clearTail(freq)
	for _, v := range text {
		freq[v-minChar]++
	}
}

func bucketStart(freq, bucket []int32) {
	var offset int32
	for i, n := range freq {
		if n > 0 {
			bucket[i] = offset
			offset += n
		}
	}
}

func bucketEnd(freq, bucket []int32) {
	var offset int32
	for i, n := range freq {
		if n > 0 {
			offset += n
			bucket[i] = offset - 1
		}
	}
}

func insertLMS(text, sa, freq, bucket []int32, minChar int32) {
	bucketEnd(freq, bucket)
	var (
		l, r, i, j, b, lastLMS int32
		numLMS                 int
		inS                    bool
	)
	for i = int32(len(text) - 1); i >= 0; i-- {
		l, r = text[i], l
		if l < r {
			inS = true
		} else if l > r && inS {
			inS = false
			j = r - minChar
			b = bucket[j]
			bucket[j] = b - 1
			sa[b] = i + 1
			lastLMS = b
			numLMS++
		}
	}
	if numLMS > 1 {
		sa[lastLMS] = 0
	}
}

func induceSubL(text, sa, freq, bucket []int32, minChar int32) {
	bucketStart(freq, bucket)
	var (
		k, j     = int32(len(text) - 1), int32(0)
		l, r     = text[k-1], text[k]
		lastChar = text[len(text)-1]
		b        = bucket[lastChar-minChar]
	)
	if l < r {
		k = -k
	}
	bucket[lastChar-minChar] = b + 1
	sa[b] = k

	for i := 0; i < len(sa); i++ {
		if sa[i] == 0 {
			continue
		}
		j = sa[i]
		if j < 0 {
			sa[i] = -j
			continue
		}
		sa[i] = 0
		k = j - 1
		l, r = text[k-1], text[k]
		if l < r {
			k = -k
		}
		b = bucket[r-minChar]
		bucket[r-minChar] = b + 1
		sa[b] = k
	}
}

func induceSubS(text, sa, freq, bucket []int32, minChar int32) {
	bucketEnd(freq, bucket)
	var (
		j, b, l, r, k int32
		top           = len(sa)
	)
	for i := len(sa) - 1; i >= 0; i-- {
		j = sa[i]
		if j == 0 {
			continue
		}
		sa[i] = 0
		if j < 0 {
			top--
			sa[top] = -j
			continue
		}
		k = j - 1
		l, r = text[k-1], text[k]
		if l > r {
			k = -k
		}
		b = bucket[r-minChar]
		bucket[r-minChar] = b - 1
		sa[b] = k
	}
}

func induceL(text, sa, freq, bucket []int32, minChar int32) {
	bucketStart(freq, bucket)
	var (
		k, j     = int32(len(text) - 1), int32(0)
		l, r     = text[k-1], text[k]
		lastChar = text[len(text)-1]
		b        = bucket[lastChar-minChar]
	)
	if l < r {
		k = -k
	}
	bucket[lastChar-minChar] = b + 1
	sa[b] = k

	for i := 0; i < len(sa); i++ {
		j = sa[i]
		if j <= 0 {
			continue
		}
		k = j - 1
		r = text[k]
		if k > 0 {
			if l = text[k-1]; l < r {
				k = -k
			}
		}
		b = bucket[r-minChar]
		bucket[r-minChar] = b + 1
		sa[b] = k
	}
}

func induceS(text, sa, freq, bucket []int32, minChar int32) {
	bucketEnd(freq, bucket)
	var j, l, r, k, b int32
	for i := len(sa) - 1; i >= 0; i-- {
		j = sa[i]
		if j >= 0 {
			continue
		}
		j = -j
		sa[i] = j
		k = j - 1
		r = text[k]
		if k > 0 {
			if l = text[k-1]; l <= r {
				k = -k
			}
		}
		b = bucket[r-minChar]
		bucket[r-minChar] = b - 1
		sa[b] = k
	}
}

func lengthLMS(text, sa []int32) {
	var (
		l, r int32
		prev  = int32(len(text)) - 1
		inS   bool
	)
	for i := len(text) - 1; i >= 0; i-- {
		l, r = text[i], l
		if l < r {
			inS = true
		} else if l > r && inS {
			inS = false
			sa[(i+1)/2] = prev - int32(i)
			prev = int32(i)
		}
	}
}

func equalLMS(text []int32, l, r, lLen, rLen int32) bool {
	if lLen != rLen {
		return false
	}
	for lLen > 0 {
		if text[l] != text[r] {
			return false
		}
		l++
		r++
		lLen--
	}
	return true
}

// summarize assigns each distinct LMS substring a dense name, writing the
// summary string (one name per LMS position, in text order) into summary.
// It returns the number of distinct names, which is also the alphabet size
// of the recursive call on summary.
func summarize(text, sa, summary []int32, numLMS int32) int32 {
	lengthLMS(text, sa)
	var (
		name, maxName int32 = 1, 1
		posLMS              = summary
		prevLen             = sa[posLMS[0]/2]
	)
	sa[posLMS[0]/2] = name
	for i := 1; i < len(posLMS); i++ {
		prev := posLMS[i-1]
		curr := posLMS[i]
		if !equalLMS(text, prev, curr, prevLen, sa[curr/2]) {
			name++
			maxName++
		}
		prevLen = sa[curr/2]
		sa[curr/2] = name
	}
	if maxName >= numLMS {
		return maxName
	}
	var j int
	for i := 0; i < len(sa)/2; i++ {
		curr := sa[i]
		if curr <= 0 {
			continue
		}
		sa[i], summary[j] = 0, curr
		j++
	}
	return maxName
}
