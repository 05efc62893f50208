package docblock

import (
	"strings"
	"unicode"

	"github.com/yuin/goldmark/util"
)

func isBlankString(s string) bool {
	return util.IsBlank([]byte(s))
}

// dedent removes the longest leading whitespace shared by every non-blank
// line. Blank lines are left as they are.
func dedent(s string) string {
	lines := strings.SplitAfter(s, "\n")

	var (
		margin string
		seen   bool
	)

	for _, l := range lines {
		if isBlankString(l) {
			continue
		}

		ws := l[:len(l)-len(strings.TrimLeft(l, " \t"))]

		if !seen {
			margin, seen = ws, true

			continue
		}

		margin = commonPrefix(margin, ws)
	}

	if len(margin) == 0 {
		return s
	}

	var b strings.Builder

	for _, l := range lines {
		if !isBlankString(l) {
			l = l[len(margin):]
		}

		b.WriteString(l)
	}

	return b.String()
}

func commonPrefix(a, b string) string {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}

	return a[:n]
}

// indent prefixes every non-blank line of s.
func indent(s, prefix string) string {
	if len(prefix) == 0 {
		return s
	}

	var b strings.Builder

	for _, l := range strings.SplitAfter(s, "\n") {
		if !isBlankString(l) {
			b.WriteString(prefix)
		}

		b.WriteString(l)
	}

	return b.String()
}

// minIndent returns the shortest run of leading spaces among the indented
// non-blank lines of s.
func minIndent(s string) string {
	least := -1

	for _, l := range strings.Split(s, "\n") {
		if isBlankString(l) {
			continue
		}

		n := leadingSpaces([]byte(l))
		if n > 0 && (least < 0 || n < least) {
			least = n
		}
	}

	if least < 0 {
		return ""
	}

	return strings.Repeat(" ", least)
}

// splitTrailing separates the whitespace that follows the last non-blank
// line of s, starting with that line's newline. The trailing part is
// reattached verbatim after formatting so blank lines after a block survive.
func splitTrailing(s string) (body, trailing string) {
	last := strings.LastIndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) })
	if last < 0 {
		return "", s
	}

	nl := strings.IndexByte(s[last:], '\n')
	if nl < 0 {
		return s, ""
	}

	return s[:last+nl], s[last+nl:]
}

func rstrip(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}
