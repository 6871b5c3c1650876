package diffmatchpatch

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDiffCommonPrefix(t *testing.T) {
	c := NewDefaultConfig()
	assert.Equal(t, 0, c.DiffCommonPrefix("abc", "xyz"))
	assert.Equal(t, 4, c.DiffCommonPrefix("1234abcdef", "1234xyz"))
	assert.Equal(t, 4, c.DiffCommonPrefix("1234", "1234xyz"))
}

func TestDiffCommonSuffix(t *testing.T) {
	c := NewDefaultConfig()
	assert.Equal(t, 0, c.DiffCommonSuffix("abc", "xyz"))
	assert.Equal(t, 4, c.DiffCommonSuffix("abcdef1234", "xyz1234"))
	assert.Equal(t, 4, c.DiffCommonSuffix("1234", "xyz1234"))
}

func TestDiffCommonOverlap(t *testing.T) {
	c := NewDefaultConfig()
	assert.Equal(t, 0, c.DiffCommonOverlap("", "abcd"))
	assert.Equal(t, 3, c.DiffCommonOverlap("abc", "abcd"))
	assert.Equal(t, 0, c.DiffCommonOverlap("123456", "abcd"))
	assert.Equal(t, 1, c.DiffCommonOverlap("fi", "ifi"))
	// Unicode: the overlap is counted in scalars and must align on the
	// multi-byte rune boundary rather than splitting it.
	assert.Equal(t, 1, c.DiffCommonOverlap("abcβ", "βdef"))
}

func TestDiffHalfMatch(t *testing.T) {
	c := NewDefaultConfig()
	c.DiffTimeout = time.Second

	// No match.
	assert.Nil(t, c.DiffHalfMatch("1234567890", "abcdef"))
	assert.Nil(t, c.DiffHalfMatch("12345", "23"))

	// Single matches.
	assert.Equal(t, []string{"12", "90", "a", "z", "345678"}, c.DiffHalfMatch("1234567890", "a345678z"))
	assert.Equal(t, []string{"a", "z", "12", "90", "345678"}, c.DiffHalfMatch("a345678z", "1234567890"))
	assert.Equal(t, []string{"abc", "z", "1234", "0", "56789"}, c.DiffHalfMatch("abc56789z", "1234567890"))
	assert.Equal(t, []string{"a", "xyz", "1", "7890", "23456"}, c.DiffHalfMatch("a23456xyz", "1234567890"))

	// Disabled when DiffTimeout is zero.
	c.DiffTimeout = 0
	assert.Nil(t, c.DiffHalfMatch("1234567890", "a345678z"))
}

func TestDiffLinesToRunes(t *testing.T) {
	c := NewDefaultConfig()
	runes1, runes2, table := c.DiffLinesToRunes("alpha\nbeta\nalpha\n", "beta\nalpha\nbeta\n")
	assert.Equal(t, []string{"alpha\n", "beta\n"}, table)
	assert.Equal(t, []rune{0, 1, 0}, runes1)
	assert.Equal(t, []rune{1, 0, 1}, runes2)
}

func TestDiffMainSimple(t *testing.T) {
	c := NewDefaultConfig()
	diffs := c.Diff("abc", "abc", false)
	assert.Equal(t, []Diff{{OpEqual, "abc"}}, diffs)

	diffs = c.Diff("abc", "ab", false)
	assert.Equal(t, []Diff{{OpEqual, "ab"}, {OpDelete, "c"}}, diffs)

	diffs = c.Diff("ab", "abc", false)
	assert.Equal(t, []Diff{{OpEqual, "ab"}, {OpInsert, "c"}}, diffs)

	diffs = c.Diff("a", "b", false)
	assert.Equal(t, []Diff{{OpDelete, "a"}, {OpInsert, "b"}}, diffs)
}

func TestDiffMainLineMode(t *testing.T) {
	c := NewDefaultConfig()
	// The differing middle blocks must both exceed 100 runes for the
	// line-mode speedup to engage.
	text1 := strings.Repeat("line one\n", 20) + strings.Repeat("line two\n", 20)
	text2 := strings.Repeat("line one\n", 20) + strings.Repeat("line three\n", 20)
	diffs := c.Diff(text1, text2, true)
	assert.Equal(t, text1, c.DiffText1(diffs))
	assert.Equal(t, text2, c.DiffText2(diffs))
}

func TestDiffMainUnicode(t *testing.T) {
	c := NewDefaultConfig()
	diffs := c.Diff("héllo wörld", "héllo thère wörld", false)
	assert.Equal(t, "héllo wörld", c.DiffText1(diffs))
	assert.Equal(t, "héllo thère wörld", c.DiffText2(diffs))

	// A diff over codepoints outside the BMP (emoji) must never split a
	// scalar value, since the engine indexes by Unicode scalar.
	diffs = c.Diff("a🙂b", "a🙃b", false)
	assert.Equal(t, "a🙂b", c.DiffText1(diffs))
	assert.Equal(t, "a🙃b", c.DiffText2(diffs))
}

func TestDiffBisectDeadline(t *testing.T) {
	c := NewDefaultConfig()
	// A deadline already in the past forces an immediate bisect split
	// instead of a full search, but must still reconstitute both texts.
	a := strings.Repeat("ab", 50)
	b := strings.Repeat("ba", 50)
	diffs := c.DiffBisect(a, b, time.Now().Add(-time.Hour))
	assert.Equal(t, a, c.DiffText1(diffs))
	assert.Equal(t, b, c.DiffText2(diffs))
}

func TestDiffCleanupMerge(t *testing.T) {
	c := NewDefaultConfig()

	diffs := []Diff{}
	assert.Equal(t, []Diff{}, c.DiffCleanupMerge(diffs))

	diffs = []Diff{{OpEqual, "a"}, {OpDelete, "b"}, {OpInsert, "c"}}
	assert.Equal(t, []Diff{{OpEqual, "a"}, {OpDelete, "b"}, {OpInsert, "c"}}, c.DiffCleanupMerge(diffs))

	diffs = []Diff{{OpEqual, "a"}, {OpEqual, "b"}, {OpEqual, "c"}}
	assert.Equal(t, []Diff{{OpEqual, "abc"}}, c.DiffCleanupMerge(diffs))

	diffs = []Diff{{OpDelete, "a"}, {OpDelete, "b"}, {OpInsert, "c"}, {OpInsert, "d"}}
	assert.Equal(t, []Diff{{OpDelete, "ab"}, {OpInsert, "cd"}}, c.DiffCleanupMerge(diffs))

	diffs = []Diff{{OpDelete, "a"}, {OpInsert, "abc"}, {OpDelete, "dc"}}
	assert.Equal(t, []Diff{{OpEqual, "a"}, {OpDelete, "d"}, {OpInsert, "b"}, {OpEqual, "c"}}, c.DiffCleanupMerge(diffs))
}

func TestDiffCleanupSemantic(t *testing.T) {
	c := NewDefaultConfig()

	diffs := []Diff{{OpDelete, "ab"}, {OpInsert, "cd"}, {OpEqual, "12"}, {OpDelete, "e"}}
	assert.Equal(t,
		[]Diff{{OpDelete, "ab"}, {OpInsert, "cd"}, {OpEqual, "12"}, {OpDelete, "e"}},
		c.DiffCleanupSemantic(diffs))

	diffs = []Diff{{OpDelete, "a"}, {OpEqual, "b"}, {OpDelete, "c"}}
	assert.Equal(t, []Diff{{OpDelete, "abc"}, {OpInsert, "b"}}, c.DiffCleanupSemantic(diffs))

	diffs = []Diff{
		{OpEqual, "The c"}, {OpDelete, "ow and the c"}, {OpEqual, "at."},
	}
	assert.Equal(t,
		[]Diff{{OpEqual, "The "}, {OpDelete, "cow and the "}, {OpEqual, "cat."}},
		c.DiffCleanupSemantic(diffs))
}

func TestDiffCleanupSemanticLossless(t *testing.T) {
	c := NewDefaultConfig()

	diffs := []Diff{{OpEqual, "AAA\r\n\r\n"}, {OpInsert, "BBB\r\nDDD\r\n\r\n"}, {OpEqual, "BBB\r\nEEE"}}
	assert.Equal(t,
		[]Diff{{OpEqual, "AAA\r\n\r\n"}, {OpInsert, "BBB\r\nDDD\r\n\r\n"}, {OpEqual, "BBB\r\nEEE"}},
		c.DiffCleanupSemanticLossless(diffs))

	diffs = []Diff{{OpEqual, "The c"}, {OpInsert, "ow and the c"}, {OpEqual, "at."}}
	assert.Equal(t,
		[]Diff{{OpEqual, "The "}, {OpInsert, "cow and the "}, {OpEqual, "cat."}},
		c.DiffCleanupSemanticLossless(diffs))
}

func TestDiffCleanupEfficiency(t *testing.T) {
	c := NewDefaultConfig()
	c.DiffEditCost = 4

	diffs := []Diff{
		{OpDelete, "ab"}, {OpInsert, "12"}, {OpEqual, "wxyz"}, {OpDelete, "cd"}, {OpInsert, "34"},
	}
	assert.Equal(t, diffs, c.DiffCleanupEfficiency(diffs))

	diffs = []Diff{
		{OpDelete, "ab"}, {OpInsert, "12"}, {OpEqual, "xyz"}, {OpDelete, "cd"}, {OpInsert, "34"},
	}
	assert.Equal(t,
		[]Diff{{OpDelete, "abxyzcd"}, {OpInsert, "12xyz34"}},
		c.DiffCleanupEfficiency(diffs))
}

func TestDiffPrettyHTML(t *testing.T) {
	c := NewDefaultConfig()
	diffs := []Diff{{OpEqual, "a\n"}, {OpDelete, "<B>b</B>"}, {OpInsert, "c&d"}}
	expected := `<span>a&para;<br></span><del style="background:#ffe6e6;">&lt;B&gt;b&lt;/B&gt;</del><ins style="background:#e6ffe6;">c&amp;d</ins>`
	assert.Equal(t, expected, c.DiffPrettyHTML(diffs))
}

func TestDiffPrettyText(t *testing.T) {
	c := NewDefaultConfig()
	diffs := []Diff{{OpEqual, "a"}, {OpDelete, "b"}, {OpInsert, "c"}}
	assert.Equal(t, "a\x1b[31mb\x1b[0m\x1b[32mc\x1b[0m", c.DiffPrettyText(diffs))
}

func TestDiffXIndex(t *testing.T) {
	c := NewDefaultConfig()
	diffs := []Diff{{OpDelete, "a"}, {OpInsert, "1234"}, {OpEqual, "xyz"}}
	assert.Equal(t, 5, c.DiffXIndex(diffs, 2))
	diffs = []Diff{{OpEqual, "a"}, {OpDelete, "1234"}, {OpEqual, "xyz"}}
	assert.Equal(t, 1, c.DiffXIndex(diffs, 3))
}

func TestDiffLevenshtein(t *testing.T) {
	c := NewDefaultConfig()
	assert.Equal(t, 4, c.DiffLevenshtein([]Diff{{OpDelete, "abc"}, {OpInsert, "1234"}}))
	assert.Equal(t, 4, c.DiffLevenshtein([]Diff{{OpEqual, "xyz"}, {OpDelete, "abc"}, {OpInsert, "1234"}}))
	assert.Equal(t, 7, c.DiffLevenshtein([]Diff{{OpDelete, "abc"}, {OpEqual, "xyz"}, {OpInsert, "1234"}}))
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "Delete", OpDelete.String())
	assert.Equal(t, "Equal", OpEqual.String())
	assert.Equal(t, "Insert", OpInsert.String())
}
