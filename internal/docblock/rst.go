package docblock

import (
	"bytes"
	"strings"
)

var (
	// codeDirectives take the language as their argument.
	codeDirectives = map[string]bool{
		"code":       true,
		"code-block": true,
		"sourcecode": true,
		"ipython":    true,
	}
	// doctestDirectives hold plain Python whatever their argument.
	doctestDirectives = map[string]bool{
		"testsetup":   true,
		"testcleanup": true,
		"testcode":    true,
	}
)

type directive struct {
	indent  int
	kind    Kind
	lang    string
	info    string
	foreign bool
}

func parseDirective(l []byte) (directive, bool) {
	indent := leadingSpaces(l)
	rest := trimHorizontal(l[indent:])

	if !bytes.HasPrefix(rest, []byte(".. ")) {
		return directive{}, false
	}

	rest = rest[len(".. "):]

	idx := bytes.Index(rest, []byte("::"))
	if idx <= 0 {
		return directive{}, false
	}

	name, arg := string(rest[:idx]), string(rest[idx+2:])
	d := directive{indent: indent, kind: KindRST}

	switch {
	case codeDirectives[name]:
		if len(arg) != 0 && arg[0] != ' ' {
			return directive{}, false
		}

		d.lang = strings.TrimSpace(arg)

		switch {
		case pythonLangs[d.lang]:
		case d.lang == pyconLang && (name == "code" || name == "code-block"):
			d.kind = KindRSTPycon
		default:
			d.foreign = true
		}
	case name == "jupyter-execute":
		if len(strings.TrimSpace(arg)) != 0 {
			return directive{}, false
		}

		d.lang = "python"
	case doctestDirectives[name]:
		d.lang, d.info = "python", strings.TrimSpace(arg)
	case name == "doctest":
		d.kind, d.lang, d.info = KindRSTPycon, pyconLang, strings.TrimSpace(arg)
	default:
		return directive{}, false
	}

	return d, true
}

// isOption reports whether l is a directive option line such as
// "    :linenos:" under a header indented by width spaces.
func isOption(l []byte, width int) bool {
	n := leadingSpaces(l)

	return n > width && n < len(l) && l[n] == ':'
}

// indentedBody locates the payload of an indented block whose header is
// lines[header], indented by width spaces. Options and blank lines right
// after the header are skipped; the payload is every following line that is
// blank or indented deeper than the header. ok is false when the payload has
// no code at all.
func indentedBody(source []byte, lines []line, header, width int) (first, last int, ok bool) {
	j := header + 1

	for j < len(lines) && isOption(lines[j].Value(source), width) {
		j++
	}

	for j < len(lines) && isBlank(lines[j].Value(source)) {
		j++
	}

	first = j

	for ; j < len(lines); j++ {
		l := lines[j].Value(source)
		if isBlank(l) {
			continue
		}

		if leadingSpaces(l) <= width {
			break
		}

		ok = true
	}

	return first, j, ok
}

func indentedBlock(source []byte, lines []line, header, first, last int, kind Kind, width int) *Block {
	h := lines[header]
	block := &Block{
		Kind:      kind,
		Indent:    string(source[h.Start : h.Start+width]),
		Start:     h.Start,
		CodeStart: lines[first].Start,
		CodeEnd:   lines[last-1].next,
	}
	block.End = block.CodeEnd

	block.fill(source)

	return block
}

func scanDirectives(source []byte, lines []line) Blocks {
	var blocks Blocks

	for i := 0; i < len(lines); i++ {
		d, ok := parseDirective(lines[i].Value(source))
		if !ok {
			continue
		}

		first, last, ok := indentedBody(source, lines, i, d.indent)
		if !ok {
			continue
		}

		block := indentedBlock(source, lines, i, first, last, d.kind, d.indent)
		block.Lang = d.lang
		block.Info = d.info
		block.Foreign = d.foreign

		blocks = append(blocks, block)
		i = last - 1
	}

	return blocks
}

// scanLiteral finds reST literal blocks: any paragraph ending in "::" that is
// not itself a directive, followed by an indented payload.
func scanLiteral(source []byte, lines []line) Blocks {
	var blocks Blocks

	for i := 0; i < len(lines); i++ {
		l := trimHorizontal(lines[i].Value(source))
		if !bytes.HasSuffix(l, []byte("::")) {
			continue
		}

		width := leadingSpaces(l)
		if bytes.HasPrefix(l[width:], []byte(".. ")) {
			continue
		}

		first, last, ok := indentedBody(source, lines, i, width)
		if !ok {
			continue
		}

		block := indentedBlock(source, lines, i, first, last, KindRSTLiteral, width)
		block.Lang = "python"

		blocks = append(blocks, block)
		i = last - 1
	}

	return blocks
}
