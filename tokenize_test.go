package diffmatchpatch

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineSplit(t *testing.T) {
	runes := []rune("one\ntwo\nthree")
	pieces := lineSplit(runes)
	var got []string
	for _, p := range pieces {
		got = append(got, string(runes[p[0]:p[1]]))
	}
	assert.Equal(t, []string{"one\n", "two\n", "three"}, got)
}

func TestWordSplit(t *testing.T) {
	runes := []rune("foo bar\tbaz")
	pieces := wordSplit(runes)
	var got []string
	for _, p := range pieces {
		got = append(got, string(runes[p[0]:p[1]]))
	}
	assert.Equal(t, []string{"foo", " ", "bar", "\t", "baz"}, got)
}

func TestDiffLinesToRunesAndBack(t *testing.T) {
	c := NewDefaultConfig()
	text1 := "alpha\nbeta\ngamma\n"
	text2 := "alpha\ngamma\nbeta\n"
	chars1, chars2, table := c.DiffLinesToRunes(text1, text2)
	diffs := c.DiffRunes(chars1, chars2, false)
	diffs = c.DiffCharsToLines(diffs, table)
	assert.Equal(t, text1, c.DiffText1(diffs))
	assert.Equal(t, text2, c.DiffText2(diffs))
}

func TestDiffWordsToRunesAndBack(t *testing.T) {
	c := NewDefaultConfig()
	text1 := "the quick fox"
	text2 := "the slow fox"
	chars1, chars2, table := c.DiffWordsToRunes(text1, text2)
	diffs := c.DiffRunes(chars1, chars2, false)
	diffs = c.DiffCharsToWords(diffs, table)
	assert.Equal(t, text1, c.DiffText1(diffs))
	assert.Equal(t, text2, c.DiffText2(diffs))
}

func TestCodepointIndexRoundTrip(t *testing.T) {
	for _, idx := range []int{0, 1, 100, surrogateStart - 1, surrogateStart, surrogateStart + 1, 70000} {
		cp := codepointForIndex(idx)
		assert.Equal(t, idx, indexForCodepoint(cp))
		assert.False(t, cp >= surrogateStart && cp < surrogateStart+surrogateSpan,
			"codepoint %d for index %d falls inside the surrogate block", cp, idx)
	}
}

func TestDiffLinesToRunesManyDistinctLines(t *testing.T) {
	c := NewDefaultConfig()
	// Enough distinct lines to push some table indices across the
	// surrogate-skipping boundary (U+D800), exercising the codepoint<->index
	// translation on both sides of it.
	var b strings.Builder
	for i := 0; i < surrogateStart+100; i++ {
		b.WriteString("line")
		b.WriteString(strconv.Itoa(i))
		b.WriteByte('\n')
	}
	text1 := b.String()
	chars1, chars2, table := c.DiffLinesToRunes(text1, "")
	diffs := c.DiffRunes(chars1, chars2, false)
	diffs = c.DiffCharsToLines(diffs, table)
	assert.Equal(t, text1, c.DiffText1(diffs))
}
