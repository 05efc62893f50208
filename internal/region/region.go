// Package region finds blackdocs:off / blackdocs:on markers and the disabled
// spans they delimit.
package region

import (
	"regexp"
)

// Marker is the keyword shared by every on/off comment.
const Marker = "blackdocs"

const (
	reLineBegin = `(?m)^[[:blank:]]*`
	reLineEnd   = `[[:blank:]]*\r?$`
	reSwitch    = Marker + `:(on|off)`
)

var reMarker = regexp.MustCompile(reLineBegin + `(?:` +
	// Markdown
	`<!--[[:blank:]]*` + reSwitch + `[[:blank:]]*-->` + `|` +
	// reStructuredText
	`\.\.[[:blank:]]+` + reSwitch + `|` +
	// LaTeX
	`%[[:blank:]]*` + reSwitch +
	`)` + reLineEnd)

// Span is a half-open byte range [Start, End) in which nothing is rewritten.
type Span struct {
	Start int
	End   int
}

// Spans is an ordered list of non-overlapping disabled spans.
type Spans []Span

// Contains reports whether offset lies inside any span.
func (s Spans) Contains(offset int) bool {
	for _, span := range s {
		if span.Start <= offset && offset < span.End {
			return true
		}
	}

	return false
}

// Disabled pairs every off marker with the next on marker. An off marker with
// no following on marker disables the rest of the source, on markers outside
// a disabled span and repeated off markers inside one are ignored.
func Disabled(source []byte) Spans {
	var (
		spans Spans
		start = -1
	)

	for _, loc := range reMarker.FindAllSubmatchIndex(source, -1) {
		off := switchValue(source, loc) == "off"

		switch {
		case off && start < 0:
			start = loc[0]
		case !off && start >= 0:
			spans = append(spans, Span{Start: start, End: loc[1]})
			start = -1
		}
	}

	if start >= 0 {
		spans = append(spans, Span{Start: start, End: len(source)})
	}

	return spans
}

func switchValue(source []byte, loc []int) string {
	for i := 2; i+1 < len(loc); i += 2 {
		if loc[i] >= 0 {
			return string(source[loc[i]:loc[i+1]])
		}
	}

	return ""
}
