package diffmatchpatch

// kmpFailure builds the Knuth-Morris-Pratt partial-match (failure) table for
// pattern: failure[i] is the length of the longest proper prefix of
// pattern[:i+1] that is also a suffix of it.
func kmpFailure(pattern []rune) []int {
	failure := make([]int, len(pattern))
	k := 0
	for i := 1; i < len(pattern); i++ {
		for k > 0 && pattern[i] != pattern[k] {
			k = failure[k-1]
		}
		if pattern[i] == pattern[k] {
			k++
		}
		failure[i] = k
	}
	return failure
}

// kmpAllIndices returns every starting index at which pattern occurs in
// text, scanned left to right with Knuth-Morris-Pratt. An empty pattern
// matches at every index 0..len(text) inclusive.
func kmpAllIndices(text, pattern []rune) []int {
	if len(pattern) == 0 {
		indices := make([]int, len(text)+1)
		for i := range indices {
			indices[i] = i
		}
		return indices
	}
	if len(pattern) > len(text) {
		return nil
	}
	failure := kmpFailure(pattern)
	var indices []int
	k := 0
	for i := 0; i < len(text); i++ {
		for k > 0 && text[i] != pattern[k] {
			k = failure[k-1]
		}
		if text[i] == pattern[k] {
			k++
		}
		if k == len(pattern) {
			indices = append(indices, i-k+1)
			k = failure[k-1]
		}
	}
	return indices
}

// runesIndexOf returns the first index at or after from where pattern
// occurs in text, or -1. It is the rune/KMP analog of strings.Index applied
// to text[from:].
func runesIndexOf(text, pattern []rune, from int) int {
	if from < 0 {
		from = 0
	}
	if from > len(text) {
		return -1
	}
	indices := kmpAllIndices(text[from:], pattern)
	if len(indices) == 0 {
		return -1
	}
	return indices[0] + from
}

// runesIndex returns the first index where pattern occurs in text, or -1.
func runesIndex(text, pattern []rune) int {
	return runesIndexOf(text, pattern, 0)
}

// runesLastIndexBefore returns the last index, with start+len(pattern) <=
// limit, where pattern occurs in text, or -1. limit is clamped to
// len(text).
func runesLastIndexBefore(text, pattern []rune, limit int) int {
	if limit > len(text) {
		limit = len(text)
	}
	if limit < 0 {
		return -1
	}
	indices := kmpAllIndices(text[:limit], pattern)
	if len(indices) == 0 {
		return -1
	}
	return indices[len(indices)-1]
}

// runesOccursOnce reports whether pattern occurs in text at no more than one
// starting position; it also returns true when pattern does not occur at
// all (used to decide whether patch context needs widening).
func runesOccursOnce(text, pattern []rune) bool {
	first := runesIndexOf(text, pattern, 0)
	if first == -1 {
		return true
	}
	last := runesLastIndexBefore(text, pattern, len(text))
	return first == last
}
