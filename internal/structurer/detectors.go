package structurer

import "regexp"

// Boundary marks where a new unit begins in the scanned text, with the
// ordinal captured from the matched header.
type Boundary struct {
	Start  int
	Number string
}

// boundaryDetector is a pure scan over text producing unit boundaries
// in document order. Detectors are applied most specific first:
// article headers split the document, clause markers split an article.
type boundaryDetector interface {
	Detect(text string) []Boundary
}

type regexDetector struct {
	re     *regexp.Regexp
	number func(groups []string) string
}

func (d regexDetector) Detect(text string) []Boundary {
	idx := d.re.FindAllStringSubmatchIndex(text, -1)
	out := make([]Boundary, 0, len(idx))
	for _, m := range idx {
		groups := make([]string, len(m)/2)
		for g := 0; g < len(m); g += 2 {
			if m[g] >= 0 {
				groups[g/2] = text[m[g]:m[g+1]]
			}
		}
		out = append(out, Boundary{Start: m[0], Number: d.number(groups)})
	}
	return out
}

// articleHeaderDetector matches localized article headers at line
// start: "MADDE 76-", "Madde 76 –", "GEÇİCİ MADDE 3". Temporary
// articles keep a distinct label so their ordinals never collide with
// the main numbering.
func articleHeaderDetector() boundaryDetector {
	return regexDetector{
		re: regexp.MustCompile(`(?m)^[ \t]*((?:GEÇİCİ|Geçici)[ \t]+)?(?:MADDE|Madde)[ \t]+(\d+)[ \t]*(?:[-–—.:])?`),
		number: func(groups []string) string {
			if groups[1] != "" {
				return "Geçici " + groups[2]
			}
			return groups[2]
		},
	}
}

// clauseMarkerDetector matches a parenthesized ordinal at paragraph
// start: "(1) ", "(12) ".
func clauseMarkerDetector() boundaryDetector {
	return regexDetector{
		re: regexp.MustCompile(`(?m)^[ \t]*\(([1-9][0-9]*)\)[ \t]`),
		number: func(groups []string) string {
			return groups[1]
		},
	}
}
