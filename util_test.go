package diffmatchpatch

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunesIndexOf(t *testing.T) {
	tests := []struct {
		Pattern  string
		Start    int
		Expected int
	}{
		{"abc", 0, 0},
		{"cde", 0, 2},
		{"e", 0, 4},
		{"cdef", 0, -1},
		{"abcdef", 0, -1},
		{"abc", 2, -1},
		{"cde", 2, 2},
		{"e", 2, 4},
		{"cdef", 2, -1},
		{"abcdef", 2, -1},
		{"e", 6, -1},
		// The greek letter beta is a single rune but two UTF-8 bytes; a
		// byte-oriented search would misalign after it.
		{"βc", 0, 5},
	}
	text := []rune("abcdeβc")
	for i, test := range tests {
		actual := runesIndexOf(text, []rune(test.Pattern), test.Start)
		assert.Equal(t, test.Expected, actual, fmt.Sprintf("Test case #%d, %#v", i, test))
	}
}

func TestRunesLastIndexBefore(t *testing.T) {
	text := []rune("abbcabbc")
	assert.Equal(t, 6, runesLastIndexBefore(text, []rune("b"), len(text)))
	assert.Equal(t, 2, runesLastIndexBefore(text, []rune("b"), 3))
	assert.Equal(t, -1, runesLastIndexBefore(text, []rune("z"), len(text)))
}

func TestRunesOccursOnce(t *testing.T) {
	assert.True(t, runesOccursOnce([]rune("abcdef"), []rune("cd")))
	assert.False(t, runesOccursOnce([]rune("abcabc"), []rune("abc")))
	// An empty pattern "occurs" at every index, so it never occurs exactly once.
	assert.False(t, runesOccursOnce([]rune("abcdef"), []rune("")))
}

func TestKMPAllIndices(t *testing.T) {
	indices := kmpAllIndices([]rune("abababab"), []rune("aba"))
	assert.Equal(t, []int{0, 2, 4}, indices)
}

func TestCommonPrefixSuffixLength(t *testing.T) {
	assert.Equal(t, 4, commonPrefixLength([]rune("1234abcdef"), []rune("1234xyz")))
	assert.Equal(t, 4, commonSuffixLength([]rune("abcdef1234"), []rune("xyz1234")))
	assert.Equal(t, 0, commonPrefixLength([]rune("abc"), []rune("xyz")))
}

func TestSplice(t *testing.T) {
	diffs := []Diff{{OpEqual, "a"}, {OpEqual, "b"}, {OpEqual, "c"}}
	got := splice(append([]Diff{}, diffs...), 1, 1, Diff{OpInsert, "x"}, Diff{OpInsert, "y"})
	assert.Equal(t, []Diff{{OpEqual, "a"}, {OpInsert, "x"}, {OpInsert, "y"}, {OpEqual, "c"}}, got)
}
