package diffmatchpatch

import (
	"bytes"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Patch holds information about a patch: an anchored hunk of diffs plus
// the source/target offsets and lengths it covers, all in Unicode
// scalars.
type Patch struct {
	Diffs   []Diff
	Start1  int
	Start2  int
	Length1 int
	Length2 int
}

// String renders p in a format resembling GNU diff's unified format, e.g.
// a header line "@@ -382,8 +481,9 @@" followed by the escaped body.
// Indices are printed as 1-based, not 0-based.
func (p *Patch) String() string {
	var coords1, coords2 string
	if p.Length1 == 0 {
		coords1 = strconv.Itoa(p.Start1) + ",0"
	} else if p.Length1 == 1 {
		coords1 = strconv.Itoa(p.Start1 + 1)
	} else {
		coords1 = strconv.Itoa(p.Start1+1) + "," + strconv.Itoa(p.Length1)
	}
	if p.Length2 == 0 {
		coords2 = strconv.Itoa(p.Start2) + ",0"
	} else if p.Length2 == 1 {
		coords2 = strconv.Itoa(p.Start2 + 1)
	} else {
		coords2 = strconv.Itoa(p.Start2+1) + "," + strconv.Itoa(p.Length2)
	}
	var buf bytes.Buffer
	buf.WriteString("@@ -" + coords1 + " +" + coords2 + " @@\n")
	// Escape the body of the patch with %xx notation.
	for _, d := range p.Diffs {
		switch d.Op {
		case OpInsert:
			buf.WriteString("+")
		case OpDelete:
			buf.WriteString("-")
		case OpEqual:
			buf.WriteString(" ")
		}
		buf.WriteString(strings.Replace(url.QueryEscape(d.Text), "+", " ", -1))
		buf.WriteString("\n")
	}
	return unescaper.Replace(buf.String())
}

// PatchAddContext widens patch with leading/trailing KEEP runs drawn from
// text around [Start2, Start2+Length1), growing the pattern until it
// occurs exactly once in text (checked via forward/reverse KMP) or until
// it would exceed Config.MatchMaxBits-2*Config.PatchMargin. Bounded to at
// most 5 growth iterations.
func (c *Config) PatchAddContext(patch Patch, text string) Patch {
	runes := []rune(text)
	if len(runes) == 0 {
		return patch
	}
	pattern := runes[patch.Start2 : patch.Start2+patch.Length1]
	padding := 0
	// Look for the first and last matches of pattern in text. If two
	// different matches are found, increase the pattern length.
	for iter := 0; iter < 5 && !runesOccursOnce(runes, pattern) &&
		(c.MatchMaxBits == 0 || len(pattern) < c.MatchMaxBits-2*c.PatchMargin); iter++ {
		padding += c.PatchMargin
		maxStart := max(0, patch.Start2-padding)
		minEnd := min(len(runes), patch.Start2+patch.Length1+padding)
		pattern = runes[maxStart:minEnd]
	}
	// Add one chunk for good luck.
	padding += c.PatchMargin
	// Add the prefix.
	prefix := runes[max(0, patch.Start2-padding):patch.Start2]
	if len(prefix) != 0 {
		patch.Diffs = append([]Diff{{OpEqual, string(prefix)}}, patch.Diffs...)
	}
	// Add the suffix.
	suffix := runes[patch.Start2+patch.Length1 : min(len(runes), patch.Start2+patch.Length1+padding)]
	if len(suffix) != 0 {
		patch.Diffs = append(patch.Diffs, Diff{OpEqual, string(suffix)})
	}
	// Roll back the start points.
	patch.Start1 -= len(prefix)
	patch.Start2 -= len(prefix)
	// Extend the lengths.
	patch.Length1 += len(prefix) + len(suffix)
	patch.Length2 += len(prefix) + len(suffix)
	return patch
}

// PatchMake computes the list of patches needed to turn source into
// target. Internally this is Diff, then (for more than a trivial script)
// DiffCleanupSemantic and DiffCleanupEfficiency, then the context-building
// walk that assembles Patch values.
func (c *Config) PatchMake(source, target string) []Patch {
	diffs := c.Diff(source, target, true)
	if len(diffs) > 2 {
		diffs = c.DiffCleanupSemantic(diffs)
		diffs = c.DiffCleanupEfficiency(diffs)
	}
	return c.PatchMakeFromDiffs(source, diffs)
}

// PatchMakeFromDiffs computes a list of patches to turn source into
// target, where diffs is the already-computed script between them (e.g.
// from a caller that wants to skip or customize the cleanup passes).
func (c *Config) PatchMakeFromDiffs(source string, diffs []Diff) []Patch {
	var patches []Patch
	if len(diffs) == 0 {
		return patches // Get rid of the null case.
	}
	var patch Patch
	charCount1 := 0 // Number of characters into the source string.
	charCount2 := 0 // Number of characters into the target string.
	// Start with source (prepatchText) and apply the diffs until we arrive
	// at target (postpatchText). We recreate the patches one by one to
	// determine context info.
	prepatchText := []rune(source)
	postpatchText := append([]rune{}, prepatchText...)
	for i, d := range diffs {
		if len(patch.Diffs) == 0 && d.Op != OpEqual {
			// A new patch starts here.
			patch.Start1 = charCount1
			patch.Start2 = charCount2
		}
		dtext := []rune(d.Text)
		switch d.Op {
		case OpInsert:
			patch.Diffs = append(patch.Diffs, d)
			patch.Length2 += len(dtext)
			postpatchText = append(append(append([]rune{}, postpatchText[:charCount2]...), dtext...), postpatchText[charCount2:]...)
		case OpDelete:
			patch.Length1 += len(dtext)
			patch.Diffs = append(patch.Diffs, d)
			postpatchText = append(append([]rune{}, postpatchText[:charCount2]...), postpatchText[charCount2+len(dtext):]...)
		case OpEqual:
			if len(dtext) <= 2*c.PatchMargin &&
				len(patch.Diffs) != 0 && i != len(diffs)-1 {
				// Small equality inside a patch.
				patch.Diffs = append(patch.Diffs, d)
				patch.Length1 += len(dtext)
				patch.Length2 += len(dtext)
			}
			if len(dtext) >= 2*c.PatchMargin {
				// Time for a new patch.
				if len(patch.Diffs) != 0 {
					patch = c.PatchAddContext(patch, string(prepatchText))
					patches = append(patches, patch)
					patch = Patch{}
					// Unlike Unidiff, our patch lists have a rolling context.
					// Update prepatch text & pos to reflect the application of
					// the just completed patch.
					prepatchText = postpatchText
					charCount1 = charCount2
				}
			}
		}
		// Update the current character count.
		if d.Op != OpInsert {
			charCount1 += len(dtext)
		}
		if d.Op != OpDelete {
			charCount2 += len(dtext)
		}
	}
	// Pick up the leftover patch if not empty.
	if len(patch.Diffs) != 0 {
		patch = c.PatchAddContext(patch, string(prepatchText))
		patches = append(patches, patch)
	}
	return patches
}

// PatchDeepCopy returns a patch slice identical to, but independent of,
// patches.
func (c *Config) PatchDeepCopy(patches []Patch) []Patch {
	var patchesCopy []Patch
	for _, p := range patches {
		var patchCopy Patch
		for _, d := range p.Diffs {
			patchCopy.Diffs = append(patchCopy.Diffs, Diff{d.Op, d.Text})
		}
		patchCopy.Start1 = p.Start1
		patchCopy.Start2 = p.Start2
		patchCopy.Length1 = p.Length1
		patchCopy.Length2 = p.Length2
		patchesCopy = append(patchesCopy, patchCopy)
	}
	return patchesCopy
}

// PatchApply applies patches to text, returning the patched text plus,
// for every patch, whether a confident re-anchored location was found for
// it.
func (c *Config) PatchApply(patches []Patch, text string) (string, []bool) {
	if len(patches) == 0 {
		return text, []bool{}
	}
	// Deep copy the patches so that no changes are made to originals.
	patches = c.PatchDeepCopy(patches)
	nullPadding := c.PatchAddPadding(patches)
	nullPadRunes := []rune(nullPadding)
	runes := append(append(append([]rune{}, nullPadRunes...), []rune(text)...), nullPadRunes...)
	patches = c.PatchSplitMax(patches)
	delta := 0
	results := make([]bool, len(patches))
	for x, p := range patches {
		expectedLoc := p.Start2 + delta
		text1 := []rune(c.DiffText1(p.Diffs))
		var startLoc int
		endLoc := -1
		if c.MatchMaxBits != 0 && len(text1) > c.MatchMaxBits {
			// PatchSplitMax will only provide an oversized pattern in the
			// case of a monster delete.
			startLoc = c.matchRunes(runes, text1[:c.MatchMaxBits], expectedLoc)
			if startLoc != -1 {
				endLoc = c.matchRunes(runes, text1[len(text1)-c.MatchMaxBits:], expectedLoc+len(text1)-c.MatchMaxBits)
				if endLoc == -1 || startLoc >= endLoc {
					// Can't find valid trailing context. Drop this patch.
					startLoc = -1
				}
			}
		} else {
			startLoc = c.matchRunes(runes, text1, expectedLoc)
		}
		if startLoc == -1 {
			// No match found. :(
			results[x] = false
			// Subtract the delta for this failed patch from subsequent patches.
			delta -= p.Length2 - p.Length1
		} else {
			// Found a match. :)
			results[x] = true
			delta = startLoc - expectedLoc
			var text2 []rune
			if endLoc == -1 {
				text2 = runes[startLoc:min(startLoc+len(text1), len(runes))]
			} else {
				text2 = runes[startLoc:min(endLoc+c.MatchMaxBits, len(runes))]
			}
			if runesEqual(text1, text2) {
				// Perfect match, just shove the replacement text in.
				replacement := []rune(c.DiffText2(p.Diffs))
				runes = append(append(append([]rune{}, runes[:startLoc]...), replacement...), runes[startLoc+len(text1):]...)
			} else {
				// Imperfect match. Run a diff to get a framework of
				// equivalent indices.
				diffs := c.Diff(string(text1), string(text2), false)
				if c.MatchMaxBits != 0 && len(text1) > c.MatchMaxBits &&
					float64(c.DiffLevenshtein(diffs))/float64(len(text1)) > c.PatchDeleteThreshold {
					// The end points match, but the content is unacceptably bad.
					results[x] = false
				} else {
					diffs = c.DiffCleanupSemanticLossless(diffs)
					index1 := 0
					for _, d := range p.Diffs {
						dlen := utf8.RuneCountInString(d.Text)
						if d.Op != OpEqual {
							index2 := c.DiffXIndex(diffs, index1)
							if d.Op == OpInsert {
								// Insertion.
								ins := []rune(d.Text)
								runes = append(append(append([]rune{}, runes[:startLoc+index2]...), ins...), runes[startLoc+index2:]...)
							} else if d.Op == OpDelete {
								// Deletion.
								startIndex := startLoc + index2
								endIndex := startIndex + (c.DiffXIndex(diffs, index1+dlen) - index2)
								runes = append(append([]rune{}, runes[:startIndex]...), runes[endIndex:]...)
							}
						}
						if d.Op != OpDelete {
							index1 += dlen
						}
					}
				}
			}
		}
	}
	// Strip padding.
	result := string(runes[len(nullPadRunes) : len(runes)-len(nullPadRunes)])
	return result, results
}

// PatchAddPadding prepends/appends a run of non-printable codepoints
// U+0001..U+000k (k = Config.PatchMargin) to the text patches will be
// applied to, so that a patch anchored at an edge has something to match
// against. Intended to be called only from within PatchApply.
func (c *Config) PatchAddPadding(patches []Patch) string {
	paddingLength := c.PatchMargin
	var nullPaddingRunes []rune
	for x := 1; x <= paddingLength; x++ {
		nullPaddingRunes = append(nullPaddingRunes, rune(x))
	}
	nullPadding := string(nullPaddingRunes)
	// Bump all the patches forward.
	for i := range patches {
		patches[i].Start1 += paddingLength
		patches[i].Start2 += paddingLength
	}
	// Add some padding on start of first diff.
	if len(patches[0].Diffs) == 0 || patches[0].Diffs[0].Op != OpEqual {
		// Add nullPadding equality.
		patches[0].Diffs = append([]Diff{{OpEqual, nullPadding}}, patches[0].Diffs...)
		patches[0].Start1 -= paddingLength // Should be 0.
		patches[0].Start2 -= paddingLength // Should be 0.
		patches[0].Length1 += paddingLength
		patches[0].Length2 += paddingLength
	} else if first := []rune(patches[0].Diffs[0].Text); paddingLength > len(first) {
		// Grow first equality.
		extraLength := paddingLength - len(first)
		patches[0].Diffs[0].Text = string(nullPaddingRunes[len(first):]) + patches[0].Diffs[0].Text
		patches[0].Start1 -= extraLength
		patches[0].Start2 -= extraLength
		patches[0].Length1 += extraLength
		patches[0].Length2 += extraLength
	}
	// Add some padding on end of last diff.
	last := len(patches) - 1
	if len(patches[last].Diffs) == 0 || patches[last].Diffs[len(patches[last].Diffs)-1].Op != OpEqual {
		// Add nullPadding equality.
		patches[last].Diffs = append(patches[last].Diffs, Diff{OpEqual, nullPadding})
		patches[last].Length1 += paddingLength
		patches[last].Length2 += paddingLength
	} else if lastText := []rune(patches[last].Diffs[len(patches[last].Diffs)-1].Text); paddingLength > len(lastText) {
		// Grow last equality.
		extraLength := paddingLength - len(lastText)
		patches[last].Diffs[len(patches[last].Diffs)-1].Text += string(nullPaddingRunes[:extraLength])
		patches[last].Length1 += extraLength
		patches[last].Length2 += extraLength
	}
	return nullPadding
}

// PatchSplitMax looks through the patches and breaks up any whose Length1
// exceeds Config.MatchMaxBits, which Match cannot handle in one shot.
// Intended to be called only from within PatchApply.
func (c *Config) PatchSplitMax(patches []Patch) []Patch {
	patchSize := c.MatchMaxBits
	if patchSize == 0 {
		return patches
	}
	for x := 0; x < len(patches); x++ {
		if patches[x].Length1 <= patchSize {
			continue
		}
		bigpatch := patches[x]
		// Remove the big old patch.
		patches = append(patches[:x], patches[x+1:]...)
		x--
		start1 := bigpatch.Start1
		start2 := bigpatch.Start2
		var precontext []rune
		for len(bigpatch.Diffs) != 0 {
			// Create one of several smaller patches.
			var patch Patch
			empty := true
			patch.Start1 = start1 - len(precontext)
			patch.Start2 = start2 - len(precontext)
			if len(precontext) != 0 {
				patch.Length1 = len(precontext)
				patch.Length2 = len(precontext)
				patch.Diffs = append(patch.Diffs, Diff{OpEqual, string(precontext)})
			}
			for len(bigpatch.Diffs) != 0 && patch.Length1 < patchSize-c.PatchMargin {
				diffType := bigpatch.Diffs[0].Op
				diffText := []rune(bigpatch.Diffs[0].Text)
				if diffType == OpInsert {
					// Insertions are harmless.
					patch.Length2 += len(diffText)
					start2 += len(diffText)
					patch.Diffs = append(patch.Diffs, bigpatch.Diffs[0])
					bigpatch.Diffs = bigpatch.Diffs[1:]
					empty = false
				} else if diffType == OpDelete && len(patch.Diffs) == 1 && patch.Diffs[0].Op == OpEqual && len(diffText) > 2*patchSize {
					// This is a large deletion. Let it pass in one chunk.
					patch.Length1 += len(diffText)
					start1 += len(diffText)
					empty = false
					patch.Diffs = append(patch.Diffs, Diff{diffType, string(diffText)})
					bigpatch.Diffs = bigpatch.Diffs[1:]
				} else {
					// Deletion or equality. Only take as much as we can stomach.
					diffText = diffText[:min(len(diffText), patchSize-patch.Length1-c.PatchMargin)]
					patch.Length1 += len(diffText)
					start1 += len(diffText)
					if diffType == OpEqual {
						patch.Length2 += len(diffText)
						start2 += len(diffText)
					} else {
						empty = false
					}
					patch.Diffs = append(patch.Diffs, Diff{diffType, string(diffText)})
					bigDiffText := []rune(bigpatch.Diffs[0].Text)
					if runesEqual(diffText, bigDiffText) {
						bigpatch.Diffs = bigpatch.Diffs[1:]
					} else {
						bigpatch.Diffs[0].Text = string(bigDiffText[len(diffText):])
					}
				}
			}
			// Compute the head context for the next patch.
			precontext = []rune(c.DiffText2(patch.Diffs))
			precontext = precontext[max(0, len(precontext)-c.PatchMargin):]
			// Append the end context for this patch.
			bigDiffText1 := []rune(c.DiffText1(bigpatch.Diffs))
			var postcontext []rune
			if len(bigDiffText1) > c.PatchMargin {
				postcontext = bigDiffText1[:c.PatchMargin]
			} else {
				postcontext = bigDiffText1
			}
			if len(postcontext) != 0 {
				patch.Length1 += len(postcontext)
				patch.Length2 += len(postcontext)
				if len(patch.Diffs) != 0 && patch.Diffs[len(patch.Diffs)-1].Op == OpEqual {
					patch.Diffs[len(patch.Diffs)-1].Text += string(postcontext)
				} else {
					patch.Diffs = append(patch.Diffs, Diff{OpEqual, string(postcontext)})
				}
			}
			if !empty {
				x++
				patches = append(patches[:x], append([]Patch{patch}, patches[x:]...)...)
			}
		}
	}
	return patches
}

// PatchToText renders a list of patches as their textual representation.
func (c *Config) PatchToText(patches []Patch) string {
	var buf bytes.Buffer
	for _, p := range patches {
		buf.WriteString(p.String())
	}
	return buf.String()
}

var patchHeaderRE = regexp.MustCompile(`^@@ -(\d+),?(\d*) \+(\d+),?(\d*) @@$`)

// PatchFromText parses the textual representation produced by PatchToText
// back into a list of Patch values.
func (c *Config) PatchFromText(textline string) ([]Patch, error) {
	var patches []Patch
	if len(textline) == 0 {
		return patches, nil
	}
	lines := strings.Split(textline, "\n")
	textPointer := 0
	var patch Patch
	var sign byte
	var line string
	for textPointer < len(lines) {
		if !patchHeaderRE.MatchString(lines[textPointer]) {
			return patches, parseErrorf("invalid patch header: %q", lines[textPointer])
		}
		patch = Patch{}
		m := patchHeaderRE.FindStringSubmatch(lines[textPointer])
		patch.Start1, _ = strconv.Atoi(m[1])
		if len(m[2]) == 0 {
			patch.Start1--
			patch.Length1 = 1
		} else if m[2] == "0" {
			patch.Length1 = 0
		} else {
			patch.Start1--
			patch.Length1, _ = strconv.Atoi(m[2])
		}
		patch.Start2, _ = strconv.Atoi(m[3])
		if len(m[4]) == 0 {
			patch.Start2--
			patch.Length2 = 1
		} else if m[4] == "0" {
			patch.Length2 = 0
		} else {
			patch.Start2--
			patch.Length2, _ = strconv.Atoi(m[4])
		}
		textPointer++
		for textPointer < len(lines) {
			if len(lines[textPointer]) > 0 {
				sign = lines[textPointer][0]
			} else {
				textPointer++
				continue
			}
			line = lines[textPointer][1:]
			line = strings.Replace(line, "+", "%2b", -1)
			decoded, err := url.QueryUnescape(line)
			if err != nil {
				return patches, parseErrorf("decoding patch body line %q: %v", line, err)
			}
			line = decoded
			switch sign {
			case '-':
				patch.Diffs = append(patch.Diffs, Diff{OpDelete, line})
			case '+':
				patch.Diffs = append(patch.Diffs, Diff{OpInsert, line})
			case ' ':
				patch.Diffs = append(patch.Diffs, Diff{OpEqual, line})
			case '@':
				// Start of next patch.
			default:
				return patches, parseErrorf("invalid patch mode %q in line %q", string(sign), line)
			}
			if sign == '@' {
				break
			}
			textPointer++
		}
		patches = append(patches, patch)
	}
	return patches, nil
}
