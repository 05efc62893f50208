package docblock

import (
	"bytes"

	"github.com/yuin/goldmark/util"
)

// pythonLangs are the language tags formatted as plain Python source.
var pythonLangs = map[string]bool{
	"python":  true,
	"py":      true,
	"sage":    true,
	"python3": true,
	"py3":     true,
	"numpy":   true,
}

const (
	pyconLang = "pycon"
	fence     = "```"
)

type fenceOpen struct {
	indent int
	lang   string
	info   string
}

// parseFence recognizes an opening line: spaces, exactly three backticks,
// optional blanks, the language tag and optional info text after a space.
func parseFence(l []byte) (fenceOpen, bool) {
	indent := leadingSpaces(l)
	rest := l[indent:]

	if !bytes.HasPrefix(rest, []byte(fence)) || bytes.HasPrefix(rest[len(fence):], []byte("`")) {
		return fenceOpen{}, false
	}

	rest = trimHorizontal(util.TrimLeftSpace(rest[len(fence):]))
	open := fenceOpen{indent: indent, lang: string(rest)}

	if idx := bytes.IndexByte(rest, ' '); idx >= 0 {
		open.lang, open.info = string(rest[:idx]), string(rest[idx+1:])
	}

	return open, true
}

func (f fenceOpen) kind() (Kind, bool) {
	switch {
	case pythonLangs[f.lang]:
		return KindMarkdown, false
	case f.lang == pyconLang:
		return KindMarkdownPycon, false
	default:
		return KindMarkdown, true
	}
}

// closesFence reports whether l closes a fence opened at the given indent.
// Transcript fences accept any text after the backticks.
func closesFence(l []byte, indent int, session bool) bool {
	if leadingSpaces(l) != indent || !bytes.HasPrefix(l[indent:], []byte(fence)) {
		return false
	}

	return session || isBlank(l[indent+len(fence):])
}

func scanMarkdown(source []byte, lines []line) Blocks {
	var blocks Blocks

	for i := 0; i < len(lines); i++ {
		open, ok := parseFence(lines[i].Value(source))
		if !ok {
			continue
		}

		kind, foreign := open.kind()

		for j := i + 1; j < len(lines); j++ {
			if !closesFence(lines[j].Value(source), open.indent, kind.Session()) {
				continue
			}

			block := delimitedBlock(source, lines[i], lines[j], kind, open.indent)
			block.Lang = open.lang
			block.Info = open.info
			block.Meta = parseMeta(open.info)
			block.Foreign = foreign

			blocks = append(blocks, block)
			i = j

			break
		}
	}

	return blocks
}

// delimitedBlock builds a block whose payload sits between an opening and a
// closing marker line.
func delimitedBlock(source []byte, open, closing line, kind Kind, indent int) *Block {
	block := &Block{
		Kind:      kind,
		Indent:    string(source[open.Start : open.Start+indent]),
		Start:     open.Start,
		CodeStart: open.next,
		CodeEnd:   closing.Start,
		End:       closing.Stop,
	}

	block.fill(source)

	return block
}

func (b *Block) fill(source []byte) {
	b.Code = clone(source[b.CodeStart:b.CodeEnd])
	b.StartLine = lineAt(source, b.Start)
	b.EndLine = lineAt(source, max(b.End-1, b.Start))
}

func clone(b []byte) []byte {
	return append([]byte{}, b...)
}
