package diffmatchpatch

// Tokenizers map a text to a compact surrogate string where every codepoint
// stands for one token (a line, a word, or a whitespace run), plus the
// tokens[] table those codepoints index into. Token codepoints are drawn
// from the full Unicode scalar range but must skip the surrogate block
// U+D800..U+DFFF, which cannot stand alone as a scalar value; if the token
// count would run past the largest scalar U+10FFFF, the remainder of the
// text is folded into one final, terminal token.
const (
	surrogateStart = 0xD800
	surrogateSpan  = 0x0800 // size of the U+D800..U+DFFF block
	maxScalar      = 0x10FFFF
)

// tokenTable accumulates the codepoint <-> token-text mapping shared across
// both texts passed to a single tokenize call (so identical lines/words in
// text1 and text2 reuse the same codepoint).
type tokenTable struct {
	table []string // table[0] is intentionally blank; codepoint indices start at 1
	index map[string]int
}

func newTokenTable() *tokenTable {
	return &tokenTable{table: []string{""}, index: map[string]int{}}
}

// codepointForIndex maps a table index to its token codepoint, skipping the
// surrogate block.
func codepointForIndex(i int) rune {
	cp := i
	if cp >= surrogateStart {
		cp += surrogateSpan
	}
	return rune(cp)
}

// indexForCodepoint inverts codepointForIndex, recovering the table index a
// token codepoint was assigned from.
func indexForCodepoint(cp rune) int {
	i := int(cp)
	if i >= surrogateStart+surrogateSpan {
		i -= surrogateSpan
	}
	return i
}

// munge encodes runes[start:end] for each piece in pieces as a single
// codepoint, appending newly seen pieces to the shared table. It stops
// early, folding the remainder of runes (from the start of the current
// piece onward) into one terminal token, when the next new piece would be
// assigned U+10FFFF, the largest scalar.
func (t *tokenTable) munge(runes []rune, pieces [][2]int) []rune {
	result := make([]rune, 0, len(pieces))
	for _, p := range pieces {
		start, end := p[0], p[1]
		key := string(runes[start:end])
		if idx, ok := t.index[key]; ok {
			result = append(result, codepointForIndex(idx))
			continue
		}
		idx := len(t.table)
		cp := codepointForIndex(idx)
		if cp == maxScalar {
			// Terminal bucket: everything from this piece's start to the
			// end of the text collapses into a single final token.
			key = string(runes[start:])
			if idx2, ok := t.index[key]; ok {
				result = append(result, codepointForIndex(idx2))
				return result
			}
			t.table = append(t.table, key)
			t.index[key] = idx
			result = append(result, cp)
			return result
		}
		t.table = append(t.table, key)
		t.index[key] = idx
		result = append(result, cp)
	}
	return result
}

// lineSplit returns [start,end) rune-index pairs, one per line of runes,
// each including its trailing '\n' except possibly the last.
func lineSplit(runes []rune) [][2]int {
	if len(runes) == 0 {
		return nil
	}
	var pieces [][2]int
	lineStart := 0
	for lineStart < len(runes) {
		lineEnd := -1
		for i := lineStart; i < len(runes); i++ {
			if runes[i] == '\n' {
				lineEnd = i
				break
			}
		}
		if lineEnd == -1 {
			lineEnd = len(runes) - 1
		}
		pieces = append(pieces, [2]int{lineStart, lineEnd + 1})
		lineStart = lineEnd + 1
	}
	return pieces
}

// isWordBoundaryWhitespace reports whether r is one of the whitespace
// characters the word tokenizer splits on: space, tab, CR, LF.
func isWordBoundaryWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

// wordSplit returns [start,end) rune-index pairs: each maximal run of
// whitespace runes is a piece, and each maximal run of non-whitespace runes
// is a piece.
func wordSplit(runes []rune) [][2]int {
	var pieces [][2]int
	i := 0
	for i < len(runes) {
		start := i
		ws := isWordBoundaryWhitespace(runes[i])
		for i < len(runes) && isWordBoundaryWhitespace(runes[i]) == ws {
			i++
		}
		pieces = append(pieces, [2]int{start, i})
	}
	return pieces
}

// DiffLinesToRunes splits two texts into a surrogate-string pair where each
// codepoint stands for one line, plus the shared line table. It's a
// speedup prerequisite for diffLineMode: diffing the surrogate strings is
// far cheaper than diffing the original texts character by character.
func (c *Config) DiffLinesToRunes(text1, text2 string) ([]rune, []rune, []string) {
	t := newTokenTable()
	r1 := []rune(text1)
	r2 := []rune(text2)
	chars1 := t.munge(r1, lineSplit(r1))
	chars2 := t.munge(r2, lineSplit(r2))
	return chars1, chars2, t.table
}

// DiffWordsToRunes splits two texts into a surrogate-string pair where each
// codepoint stands for one word or one run of whitespace, plus the
// shared word table. Unlike DiffLinesToRunes, this is not invoked
// automatically by Diff: it's a building block for callers that want a
// word-granularity diff (e.g. rediffing a line-mode replacement block at
// word instead of character resolution).
func (c *Config) DiffWordsToRunes(text1, text2 string) ([]rune, []rune, []string) {
	t := newTokenTable()
	r1 := []rune(text1)
	r2 := []rune(text2)
	chars1 := t.munge(r1, wordSplit(r1))
	chars2 := t.munge(r2, wordSplit(r2))
	return chars1, chars2, t.table
}

// DiffCharsToLines rehydrates the text in a diff from a string of line (or
// word) token codepoints back to the real text those tokens stand for.
func (c *Config) DiffCharsToLines(diffs []Diff, table []string) []Diff {
	hydrated := make([]Diff, 0, len(diffs))
	for _, d := range diffs {
		var buf []byte
		for _, r := range d.Text {
			buf = append(buf, table[indexForCodepoint(r)]...)
		}
		d.Text = string(buf)
		hydrated = append(hydrated, d)
	}
	return hydrated
}

// DiffCharsToWords is DiffCharsToLines under a name matching
// DiffWordsToRunes; the rehydration logic is identical regardless of
// whether the table holds lines or words.
func (c *Config) DiffCharsToWords(diffs []Diff, table []string) []Diff {
	return c.DiffCharsToLines(diffs, table)
}
