package diffmatchpatch

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchAlphabet(t *testing.T) {
	tests := []struct {
		Pattern  string
		Expected map[rune]int
	}{
		{
			Pattern: "abc",
			Expected: map[rune]int{
				'a': 4,
				'b': 2,
				'c': 1,
			},
		},
		{
			Pattern: "abcaba",
			Expected: map[rune]int{
				'a': 37,
				'b': 18,
				'c': 8,
			},
		},
	}
	for i, test := range tests {
		actual := matchAlphabet([]rune(test.Pattern))
		assert.Equal(t, test.Expected, actual, fmt.Sprintf("Test case #%d, %#v", i, test))
	}
}

func TestMatchBitapScore(t *testing.T) {
	c := NewDefaultConfig()
	c.MatchDistance = 100
	pattern := []rune("pattern")
	score := c.matchBitapScore(5, 100, 100, pattern)
	assert.Equal(t, 5.0/float64(len(pattern)), score)
	zeroDistance := NewDefaultConfig()
	zeroDistance.MatchDistance = 0
	assert.Equal(t, 0.0, zeroDistance.matchBitapScore(0, 50, 50, pattern))
	assert.Equal(t, 1.0, zeroDistance.matchBitapScore(0, 51, 50, pattern))
}

func TestMatch(t *testing.T) {
	c := NewDefaultConfig()

	// Exact match.
	loc, err := c.Match("abcdef", "abcdef", 1000)
	assert.NoError(t, err)
	assert.Equal(t, 0, loc)

	loc, err = c.Match("", "abcdef", 1)
	assert.NoError(t, err)
	assert.Equal(t, -1, loc)

	loc, err = c.Match("abcdef", "", 3)
	assert.NoError(t, err)
	assert.Equal(t, 3, loc)

	loc, err = c.Match("abcdef", "de", 3)
	assert.NoError(t, err)
	assert.Equal(t, 3, loc)

	// Fuzzy match example from the Bitap scoring walkthrough: "efxhi"
	// against "abcdefghijk" with a hint at the start (loc 0) should land
	// at 4 under the default threshold.
	loc, err = c.Match("abcdefghijk", "efxhi", 0)
	assert.NoError(t, err)
	assert.Equal(t, 4, loc)

	// The same fuzzy search fails a stricter threshold: one error in five
	// characters already scores 0.2, above this threshold.
	strict := NewDefaultConfig()
	strict.MatchThreshold = 0.1
	loc, err = strict.Match("abcdefghijk", "efxhi", 0)
	assert.NoError(t, err)
	assert.Equal(t, -1, loc)

	// Beyond MatchMaxBits the call fails fast instead of running Bitap.
	c.MatchMaxBits = 3
	_, err = c.Match("abcdef", "abcd", 0)
	assert.ErrorIs(t, err, ErrPatternTooLong)

	// MatchMaxBits == 0 disables the length check entirely.
	unbounded := NewDefaultConfig()
	unbounded.MatchMaxBits = 0
	_, err = unbounded.Match("abcdef", "abcdefabcdefabcdefabcdefabcdefabcdefabcdef", 0)
	assert.NoError(t, err)
}

func TestMatchUnicode(t *testing.T) {
	c := NewDefaultConfig()
	// "β" is two UTF-8 bytes but one Unicode scalar; the returned index
	// must be a rune offset, not a byte offset.
	loc, err := c.Match("aβcdef", "cdef", 0)
	assert.NoError(t, err)
	assert.Equal(t, 2, loc)
}
