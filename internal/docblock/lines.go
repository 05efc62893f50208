package docblock

import (
	"bytes"

	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// line is one line of a document. The embedded segment excludes the line
// break; next is the offset of the following line.
type line struct {
	text.Segment
	next int
}

func splitLines(source []byte) []line {
	var lines []line

	for start := 0; start < len(source); {
		stop := bytes.IndexByte(source[start:], '\n')
		if stop < 0 {
			lines = append(lines, line{Segment: text.NewSegment(start, len(source)), next: len(source)})

			break
		}

		lines = append(lines, line{Segment: text.NewSegment(start, start+stop), next: start + stop + 1})
		start += stop + 1
	}

	return lines
}

func leadingSpaces(b []byte) int {
	n := 0
	for n < len(b) && b[n] == ' ' {
		n++
	}

	return n
}

func isBlank(b []byte) bool {
	return util.IsBlank(b)
}

// trimHorizontal drops trailing whitespace, a carriage return included.
func trimHorizontal(b []byte) []byte {
	return util.TrimRightSpace(b)
}

func lineAt(source []byte, offset int) int {
	if offset > len(source) {
		offset = len(source)
	}

	return bytes.Count(source[:offset], []byte{'\n'}) + 1
}
