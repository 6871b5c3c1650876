package diffmatchpatch

import (
	"net/url"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// literalInsert holds the characters DiffToDelta leaves unescaped inside a
// '+' token, matching the reserved-character allowance of the original
// codec (these are safe because none of them can be confused with the
// delta's own '\t' token separator or '%' escape prefix).
const literalInsert = "!~*'();/?:@&=+$,# "

// DiffToDelta crushes a diff into a compact, tab-separated string
// describing the edits needed to turn text1 into text2, with run lengths
// counted in Unicode scalars. E.g. "=3\t-2\t+ing" means: keep 3 characters,
// delete 2, insert "ing".
func (c *Config) DiffToDelta(diffs []Diff) string {
	return c.DiffToDeltaUnit(diffs, UnitScalar)
}

// DiffToDeltaUnit is DiffToDelta with an explicit LengthUnit for the
// '=' and '-' run lengths. Diffing "🅰🅱" against "🅱" yields "-1\t=1" under
// UnitScalar but "-2\t=2" under UnitUTF16, since the emoji is one scalar
// but two UTF-16 code units.
func (c *Config) DiffToDeltaUnit(diffs []Diff, unit LengthUnit) string {
	parts := make([]string, 0, len(diffs))
	for _, d := range diffs {
		switch d.Op {
		case OpInsert:
			parts = append(parts, "+"+percentEncodeInsert(d.Text))
		case OpDelete:
			parts = append(parts, "-"+strconv.Itoa(lengthInUnit(d.Text, unit)))
		case OpEqual:
			parts = append(parts, "="+strconv.Itoa(lengthInUnit(d.Text, unit)))
		}
	}
	return strings.Join(parts, "\t")
}

func lengthInUnit(s string, unit LengthUnit) int {
	if unit == UnitUTF16 {
		return len(utf16.Encode([]rune(s)))
	}
	return utf8.RuneCountInString(s)
}

// percentEncodeInsert percent-encodes text for a '+' delta token, leaving
// the literalInsert characters untouched.
func percentEncodeInsert(text string) string {
	escaped := strings.Replace(url.QueryEscape(text), "+", " ", -1)
	return unescaper.Replace(escaped)
}

// DiffFromDelta reconstructs a diff from the source text and a delta
// produced by DiffToDelta (Unicode-scalar run lengths).
func (c *Config) DiffFromDelta(text1, delta string) ([]Diff, error) {
	return c.DiffFromDeltaUnit(text1, delta, UnitScalar)
}

// DiffFromDeltaUnit is DiffFromDelta for a delta whose '=' and '-' run
// lengths were counted in unit. Under UnitUTF16, a run boundary that would
// split a surrogate pair in text1 is not an error: reconstruction falls
// back to decoding the full destination text as one accumulated UTF-16
// stream (so the split pair recombines across the token boundary) and
// redoing the diff from scratch against it.
func (c *Config) DiffFromDeltaUnit(text1, delta string, unit LengthUnit) ([]Diff, error) {
	var view StringView
	if unit == UnitUTF16 {
		view = NewUTF16View(text1)
	} else {
		view = NewScalarView(text1)
	}
	diffs, err := diffFromDeltaView(view, delta)
	if err == nil {
		return diffs, nil
	}
	if unit != UnitUTF16 {
		return nil, err
	}
	text2, ferr := diffText2FromDeltaUTF16(text1, delta)
	if ferr != nil {
		return nil, ferr
	}
	return c.Diff(text1, text2, true), nil
}

func diffFromDeltaView(view StringView, delta string) ([]Diff, error) {
	var diffs []Diff
	offset := 0
	for _, token := range strings.Split(delta, "\t") {
		if len(token) == 0 {
			continue
		}
		op := token[0]
		content := token[1:]
		switch op {
		case '+':
			text, err := unescapeInsertToken(content)
			if err != nil {
				return nil, err
			}
			diffs = append(diffs, Diff{OpInsert, text})
		case '=', '-':
			n, err := strconv.Atoi(content)
			if err != nil || n < 0 {
				return nil, parseErrorf("invalid run length in token %q", token)
			}
			text, serr := view.Slice(offset, offset+n)
			if serr != nil {
				return nil, serr
			}
			offset += n
			if op == '=' {
				diffs = append(diffs, Diff{OpEqual, text})
			} else {
				diffs = append(diffs, Diff{OpDelete, text})
			}
		default:
			return nil, parseErrorf("invalid diff operation %q in token %q", string(op), token)
		}
	}
	if offset != view.Len() {
		return nil, lengthMismatchf("delta consumed %d units but source has %d", offset, view.Len())
	}
	return diffs, nil
}

func unescapeInsertToken(content string) (string, error) {
	// url.QueryUnescape turns a literal '+' into a space; DiffToDelta's
	// encoder already rewrote literal '+' query-escaping as a space, so a
	// '+' surviving in the token is the literal character and must be
	// protected from that rewrite.
	content = strings.Replace(content, "+", "%2b", -1)
	text, err := url.QueryUnescape(content)
	if err != nil {
		return "", parseErrorf("decoding insert token: %v", err)
	}
	if !utf8.ValidString(text) {
		return "", unicodeErrorf("insert token decodes to invalid utf-8: %q", text)
	}
	return text, nil
}

// diffText2FromDeltaUTF16 reconstructs the destination text directly from
// delta, treating every '=' run of text1 and every decoded '+' run as
// UTF-16 code units appended to one flat buffer, decoded only once at the
// end. Accumulating before decoding lets a surrogate pair that a naive
// per-token decode would reject (because one of its two halves lands in a
// different token) recombine correctly.
func diffText2FromDeltaUTF16(text1, delta string) (string, error) {
	units1 := utf16.Encode([]rune(text1))
	var units2 []uint16
	offset := 0
	for _, token := range strings.Split(delta, "\t") {
		if len(token) == 0 {
			continue
		}
		op := token[0]
		content := token[1:]
		switch op {
		case '+':
			text, err := unescapeInsertToken(content)
			if err != nil {
				return "", err
			}
			units2 = append(units2, utf16.Encode([]rune(text))...)
		case '=', '-':
			n, err := strconv.Atoi(content)
			if err != nil || n < 0 {
				return "", parseErrorf("invalid run length in token %q", token)
			}
			if op == '=' {
				if offset+n > len(units1) {
					return "", lengthMismatchf("delta run exceeds source length")
				}
				units2 = append(units2, units1[offset:offset+n]...)
			}
			offset += n
		default:
			return "", parseErrorf("invalid diff operation %q in token %q", string(op), token)
		}
	}
	if offset != len(units1) {
		return "", lengthMismatchf("delta consumed %d utf-16 units but source has %d", offset, len(units1))
	}
	return string(utf16.Decode(units2)), nil
}
