// Package diffmatchpatch offers robust algorithms to perform the operations
// required for synchronizing plain text: computing a diff script between
// two texts, locating a fuzzy match for a pattern near a hinted offset, and
// building/applying context-anchored patches that tolerate drifted source
// text.
package diffmatchpatch

import (
	"io"
	"time"

	"gopkg.in/yaml.v2"
)

// Config is the configuration for diff-match-patch operations. It is a
// plain value threaded through calls by the caller rather than global
// state, so operations stay reentrant and tests stay order-independent.
type Config struct {
	// DiffTimeout is the wall-clock budget allotted to the Bisect search
	// before it gives up and returns a coarse delete+insert script (0
	// disables both the deadline and the HalfMatch speedup, since
	// HalfMatch can otherwise return a non-minimal diff).
	DiffTimeout time.Duration `yaml:"diff_timeout"`
	// DiffEditCost is the equality length below which efficiency cleanup
	// will merge the equality away rather than keep it as a standalone
	// patch boundary.
	DiffEditCost int `yaml:"diff_edit_cost"`

	// MatchDistance is the offset, in Unicode scalars, at which Bitap's
	// positional penalty reaches 1.0 (reject).
	MatchDistance int `yaml:"match_distance"`
	// MatchMaxBits is the pattern length above which Bitap is not used
	// and oversized patches are split before being applied. 0 disables
	// both the length check and patch splitting.
	MatchMaxBits int `yaml:"match_maxbits"`
	// MatchThreshold is the maximum acceptable match score (0.0 is a
	// perfect match, 1.0 is hopeless).
	MatchThreshold float64 `yaml:"match_threshold"`

	// PatchDeleteThreshold bounds the Levenshtein-distance/pattern-length
	// ratio PatchApply will accept when re-anchoring onto imperfectly
	// matched, drifted text. It is checked only for patches whose source
	// text is longer than MatchMaxBits (the oversized-delete case); shorter
	// imperfect matches are applied without this check.
	PatchDeleteThreshold float64 `yaml:"patch_delete_threshold"`
	// PatchMargin is the number of characters of context appended to
	// each side of a patch.
	PatchMargin int `yaml:"patch_margin"`
}

// NewDefaultConfig creates a new configuration with default parameters.
func NewDefaultConfig() *Config {
	return &Config{
		DiffTimeout:          time.Second,
		DiffEditCost:         4,
		MatchThreshold:       0.5,
		MatchDistance:        1000,
		MatchMaxBits:         32,
		PatchDeleteThreshold: 0.5,
		PatchMargin:          4,
	}
}

// LoadConfigYAML reads configuration overrides from r and applies them on
// top of NewDefaultConfig. Fields absent from the document keep their
// default value. This is the engine's only ambient I/O: the algorithms
// themselves take a *Config by value/reference and never read files,
// environment variables, or flags on their own.
func LoadConfigYAML(r io.Reader) (*Config, error) {
	config := NewDefaultConfig()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(config); err != nil && err != io.EOF {
		return nil, parseErrorf("decoding config yaml: %v", err)
	}
	return config, nil
}

// LengthUnit selects how the Delta codec counts the length of a run: in
// Unicode scalars (runes) or in UTF-16 code units. All algorithmic offsets
// elsewhere in the engine, and the patch-text codec, always use Unicode
// scalars; only the Delta wire encoding is unit-selectable.
type LengthUnit int

// LengthUnit values.
const (
	// UnitScalar counts lengths in Unicode scalar values (runes).
	UnitScalar LengthUnit = iota
	// UnitUTF16 counts lengths in UTF-16 code units.
	UnitUTF16
)
