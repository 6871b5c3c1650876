package diffmatchpatch

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Codec and parsing operations wrap one of these with
// fmt.Errorf("%w: ...", Err*, ...) so callers can discriminate with errors.Is.
// Algorithmic operations (Diff, PatchApply, and Match apart from its
// ErrPatternTooLong precondition) never return an error;
// per spec they report fuzzy or partial outcomes instead (a -1 location, a
// false success flag, a non-minimal script on deadline expiry).
var (
	// ErrParseError marks a malformed delta token, patch header, patch body
	// prefix, or percent-encoded sequence.
	ErrParseError = errors.New("diffmatchpatch: parse error")
	// ErrLengthMismatch marks a delta whose declared source lengths do not
	// sum to the length of the text it was applied to.
	ErrLengthMismatch = errors.New("diffmatchpatch: length mismatch")
	// ErrPatternTooLong marks a Match call whose pattern exceeds
	// Config.MatchMaxBits while splitting is enabled (MatchMaxBits != 0).
	ErrPatternTooLong = errors.New("diffmatchpatch: pattern too long")
	// ErrUnicodeError marks bytes that failed to decode as valid UTF-8, or
	// a UTF-16 range that would split a surrogate pair.
	ErrUnicodeError = errors.New("diffmatchpatch: invalid utf-8")
)

func parseErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrParseError}, args...)...)
}

func lengthMismatchf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrLengthMismatch}, args...)...)
}

func unicodeErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrUnicodeError}, args...)...)
}
