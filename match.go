package diffmatchpatch

import "math"

// Match locates the best instance of pattern in text near loc, returning
// its Unicode-scalar index or -1 if no match clears Config.MatchThreshold.
// It fails with ErrPatternTooLong if Config.MatchMaxBits is nonzero and
// pattern is longer than it, since the Bitap bitmask width is the pattern
// length.
func (c *Config) Match(text, pattern string, loc int) (int, error) {
	if c.MatchMaxBits != 0 && len([]rune(pattern)) > c.MatchMaxBits {
		return -1, ErrPatternTooLong
	}
	return c.matchRunes([]rune(text), []rune(pattern), loc), nil
}

// matchRunes is the internal, precondition-free counterpart of Match used
// by callers (patch re-anchoring) that have already split the pattern to
// fit within MatchMaxBits.
func (c *Config) matchRunes(text, pattern []rune, loc int) int {
	loc = max(0, min(loc, len(text)))
	if runesEqual(text, pattern) {
		// Shortcut (potentially not guaranteed by the algorithm).
		return 0
	} else if len(text) == 0 {
		// Nothing to match.
		return -1
	} else if loc+len(pattern) <= len(text) && runesEqual(text[loc:loc+len(pattern)], pattern) {
		// Perfect match at the perfect spot! (Includes case of null pattern.)
		return loc
	}
	// Do a fuzzy compare.
	return c.matchBitap(text, pattern, loc)
}

// matchBitap locates the best instance of pattern in text near loc using
// the Bitap (shift-or) algorithm. Returns -1 if no match was found.
func (c *Config) matchBitap(text, pattern []rune, loc int) int {
	// Initialise the alphabet.
	s := matchAlphabet(pattern)
	// Highest score beyond which we give up.
	scoreThreshold := c.MatchThreshold
	// Is there a nearby exact match? (speedup, via KMP instead of a naive scan)
	bestLoc := runesIndexOf(text, pattern, loc)
	if bestLoc != -1 {
		scoreThreshold = math.Min(c.matchBitapScore(0, bestLoc, loc, pattern), scoreThreshold)
		// What about in the other direction? (speedup)
		bestLoc = runesLastIndexBefore(text, pattern, loc+len(pattern))
		if bestLoc != -1 {
			scoreThreshold = math.Min(c.matchBitapScore(0, bestLoc, loc, pattern), scoreThreshold)
		}
	}
	// Initialise the bit arrays.
	matchmask := 1 << uint(len(pattern)-1)
	bestLoc = -1
	var binMin, binMid int
	binMax := len(pattern) + len(text)
	lastRd := []int{}
	for d := 0; d < len(pattern); d++ {
		// Scan for the best match; each iteration allows for one more error.
		// Run a binary search to determine how far from 'loc' we can stray at
		// this error level.
		binMin = 0
		binMid = binMax
		for binMin < binMid {
			if c.matchBitapScore(d, loc+binMid, loc, pattern) <= scoreThreshold {
				binMin = binMid
			} else {
				binMax = binMid
			}
			binMid = (binMax-binMin)/2 + binMin
		}
		// Use the result from this iteration as the maximum for the next.
		binMax = binMid
		start := max(1, loc-binMid+1)
		finish := min(loc+binMid, len(text)) + len(pattern)
		rd := make([]int, finish+2)
		rd[finish+1] = (1 << uint(d)) - 1
		for j := finish; j >= start; j-- {
			var charMatch int
			if len(text) <= j-1 {
				// Out of range.
				charMatch = 0
			} else if m, ok := s[text[j-1]]; !ok {
				charMatch = 0
			} else {
				charMatch = m
			}
			if d == 0 {
				// First pass: exact match.
				rd[j] = ((rd[j+1] << 1) | 1) & charMatch
			} else {
				// Subsequent passes: fuzzy match.
				rd[j] = ((rd[j+1]<<1)|1)&charMatch | (((lastRd[j+1] | lastRd[j]) << 1) | 1) | lastRd[j+1]
			}
			if (rd[j] & matchmask) != 0 {
				score := c.matchBitapScore(d, j-1, loc, pattern)
				// This match will almost certainly be better than any existing
				// match. But check anyway.
				if score <= scoreThreshold {
					// Told you so.
					scoreThreshold = score
					bestLoc = j - 1
					if bestLoc > loc {
						// When passing loc, don't exceed our current distance from loc.
						start = max(1, 2*loc-bestLoc)
					} else {
						// Already passed loc, downhill from here on in.
						break
					}
				}
			}
		}
		if c.matchBitapScore(d+1, loc, loc, pattern) > scoreThreshold {
			// No hope for a (better) match at greater error levels.
			break
		}
		lastRd = rd
	}
	return bestLoc
}

// matchBitapScore computes the score for a match with e errors at
// location x, relative to loc, per Config.MatchDistance.
func (c *Config) matchBitapScore(e, x, loc int, pattern []rune) float64 {
	accuracy := float64(e) / float64(len(pattern))
	proximity := math.Abs(float64(loc - x))
	if c.MatchDistance == 0 {
		// Dodge divide by zero error.
		if proximity == 0 {
			return accuracy
		}
		return 1.0
	}
	return accuracy + (proximity / float64(c.MatchDistance))
}

// matchAlphabet initialises the alphabet for the Bitap algorithm: for each
// rune in pattern, a bitmask whose bit i is set iff pattern[i] == rune.
func matchAlphabet(pattern []rune) map[rune]int {
	s := map[rune]int{}
	for _, r := range pattern {
		if _, ok := s[r]; !ok {
			s[r] = 0
		}
	}
	for i, r := range pattern {
		s[r] |= 1 << uint(len(pattern)-i-1)
	}
	return s
}
