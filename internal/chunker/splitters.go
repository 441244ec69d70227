package chunker

import "regexp"

// splitFunc is a pure boundary scan: it returns every offset in text
// where a cut may be placed, ascending. A cut offset is the start of
// the following piece.
type splitFunc func(text string) []int

// fallbackSplitters are applied in priority order when a unit still
// exceeds the size limit after structural splitting: blank line,
// single newline, sentence-final punctuation plus space, plain space.
var fallbackSplitters = []splitFunc{
	regexBoundaries(regexp.MustCompile(`\n[ \t]*\n+`)),
	regexBoundaries(regexp.MustCompile(`\n`)),
	regexBoundaries(regexp.MustCompile(`[.!?][ \t]`)),
	regexBoundaries(regexp.MustCompile(` `)),
}

// regexBoundaries places a cut immediately after every match.
func regexBoundaries(re *regexp.Regexp) splitFunc {
	return func(text string) []int {
		idx := re.FindAllStringIndex(text, -1)
		out := make([]int, 0, len(idx))
		for _, m := range idx {
			out = append(out, m[1])
		}
		return out
	}
}

// lastBoundaryWithin returns the latest cut inside text offered by the
// highest-priority splitter that matches at all, or 0 when no splitter
// finds a usable cut.
func lastBoundaryWithin(text string) int {
	for _, split := range fallbackSplitters {
		best := 0
		for _, b := range split(text) {
			if b > best && b <= len(text) {
				best = b
			}
		}
		if best > 0 {
			return best
		}
	}
	return 0
}

// firstBoundaryAfter returns the earliest cut strictly past min offered
// by any splitter, or 0 when the rest of text is one unbroken run.
func firstBoundaryAfter(text string, min int) int {
	first := 0
	for _, split := range fallbackSplitters {
		for _, b := range split(text) {
			if b > min && (first == 0 || b < first) {
				first = b
			}
		}
	}
	return first
}
