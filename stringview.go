package diffmatchpatch

import "unicode/utf16"

// StringView abstracts a text addressed either by Unicode scalar indices or
// by UTF-16 code-unit indices, so the delta codec can share one decoding
// routine across both LengthUnit modes (see delta.go).
type StringView interface {
	// Len returns the length of the view, in its own unit.
	Len() int
	// Slice returns the text spanning [start, end) in the view's unit.
	// It fails if the range is out of bounds.
	Slice(start, end int) (string, error)
}

// scalarView addresses text by Unicode scalar (rune) index.
type scalarView struct {
	runes []rune
}

// NewScalarView wraps s for Unicode-scalar-indexed access.
func NewScalarView(s string) StringView {
	return &scalarView{runes: []rune(s)}
}

func (v *scalarView) Len() int { return len(v.runes) }

func (v *scalarView) Slice(start, end int) (string, error) {
	if start < 0 || end > len(v.runes) || start > end {
		return "", lengthMismatchf("scalar range [%d,%d) out of bounds for length %d", start, end, len(v.runes))
	}
	return string(v.runes[start:end]), nil
}

// utf16View addresses text by UTF-16 code-unit index.
type utf16View struct {
	units []uint16
}

// NewUTF16View wraps s for UTF-16-code-unit-indexed access.
func NewUTF16View(s string) StringView {
	return &utf16View{units: utf16.Encode([]rune(s))}
}

func (v *utf16View) Len() int { return len(v.units) }

func (v *utf16View) Slice(start, end int) (string, error) {
	if start < 0 || end > len(v.units) || start > end {
		return "", lengthMismatchf("utf16 range [%d,%d) out of bounds for length %d", start, end, len(v.units))
	}
	if !utf16BoundarySafe(v.units, start) || !utf16BoundarySafe(v.units, end) {
		return "", unicodeErrorf("utf16 range [%d,%d) splits a surrogate pair", start, end)
	}
	return string(utf16.Decode(v.units[start:end])), nil
}

// utf16BoundarySafe reports whether cutting units at index i leaves both
// sides well-formed: i must not fall between a high surrogate and the low
// surrogate that completes it.
func utf16BoundarySafe(units []uint16, i int) bool {
	if i <= 0 || i >= len(units) {
		return true
	}
	return !(isHighSurrogate(units[i-1]) && isLowSurrogate(units[i]))
}

func isHighSurrogate(u uint16) bool { return u >= 0xD800 && u <= 0xDBFF }
func isLowSurrogate(u uint16) bool  { return u >= 0xDC00 && u <= 0xDFFF }
