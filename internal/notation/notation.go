// Package notation parses the compact sets×reps notation used on exercises,
// e.g. "3 × 8-10", "3 x failure", "1 × 20-30 min". The text stays the
// user-facing source of truth; everything downstream works on the parsed
// form.
package notation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// SetsReps is the structured form of a notation string.
type SetsReps struct {
	SetCount   int
	TargetReps string
}

var (
	notationRe = regexp.MustCompile(`^\s*(\d+)\s*[x×X]\s*(.+?)\s*$`)
	rangeRe    = regexp.MustCompile(`^(\d+)-(\d+)(.*)$`)
	numberRe   = regexp.MustCompile(`^(\d+)(.*)$`)
)

// Parse splits a notation string into set count and target reps. Input that
// does not match "<n> × <rest>" degrades to one set with the whole string as
// the target rather than failing.
func Parse(text string) SetsReps {
	m := notationRe.FindStringSubmatch(text)
	if m == nil {
		return SetsReps{SetCount: 1, TargetReps: strings.TrimSpace(text)}
	}
	count, err := strconv.Atoi(m[1])
	if err != nil || count < 1 {
		return SetsReps{SetCount: 1, TargetReps: strings.TrimSpace(text)}
	}
	return SetsReps{SetCount: count, TargetReps: m[2]}
}

// Format renders the structured form back to canonical notation.
func Format(sr SetsReps) string {
	return fmt.Sprintf("%d × %s", sr.SetCount, sr.TargetReps)
}

// IsRepsAdjustable reports whether the target reps support numeric
// increment/decrement, i.e. start with a digit. Free-text targets like
// "failure" are not adjustable.
func IsRepsAdjustable(text string) bool {
	target := Parse(text).TargetReps
	return target != "" && target[0] >= '0' && target[0] <= '9'
}

// AdjustSetCount adds delta to the set count, flooring at 1.
func AdjustSetCount(text string, delta int) string {
	sr := Parse(text)
	sr.SetCount = max(1, sr.SetCount+delta)
	return Format(sr)
}

// AdjustReps adds delta to the numeric reps target. Ranges like "8-10" move
// both bounds; plain numbers move the number; suffixes ("/leg", " min") are
// preserved. Non-numeric targets are returned unchanged.
func AdjustReps(text string, delta int) string {
	sr := Parse(text)

	if m := rangeRe.FindStringSubmatch(sr.TargetReps); m != nil {
		low, _ := strconv.Atoi(m[1])
		high, _ := strconv.Atoi(m[2])
		sr.TargetReps = fmt.Sprintf("%d-%d%s", max(1, low+delta), max(1, high+delta), m[3])
		return Format(sr)
	}
	if m := numberRe.FindStringSubmatch(sr.TargetReps); m != nil {
		n, _ := strconv.Atoi(m[1])
		sr.TargetReps = fmt.Sprintf("%d%s", max(1, n+delta), m[2])
		return Format(sr)
	}
	return text
}
