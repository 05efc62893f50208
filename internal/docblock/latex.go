package docblock

import (
	"bytes"
)

// pythontexEnvs are PythonTeX environments holding plain Python.
var pythontexEnvs = map[string]bool{
	"pyblock":    true,
	"pycode":     true,
	"pyconsole":  true,
	"pyverbatim": true,
}

const (
	beginCmd = `\begin`
	endCmd   = `\end`
)

type environment struct {
	indent  int
	name    string
	kind    Kind
	lang    string
	options string
	foreign bool
}

// cutGroup splits a leading delimited group such as "{python}" off b.
func cutGroup(b []byte, open, closing byte) (inner, rest []byte, ok bool) {
	if len(b) == 0 || b[0] != open {
		return nil, b, false
	}

	idx := bytes.IndexByte(b, closing)
	if idx < 0 {
		return nil, b, false
	}

	return b[1:idx], b[idx+1:], true
}

func parseBegin(l []byte) (environment, bool) {
	indent := leadingSpaces(l)
	rest := trimHorizontal(l[indent:])

	if !bytes.HasPrefix(rest, []byte(beginCmd)) {
		return environment{}, false
	}

	name, rest, ok := cutGroup(rest[len(beginCmd):], '{', '}')
	if !ok {
		return environment{}, false
	}

	env := environment{indent: indent, name: string(name)}

	if _, after, ok := cutGroup(rest, '[', ']'); ok {
		env.options = string(rest[:len(rest)-len(after)])
		rest = after
	}

	switch {
	case env.name == "minted":
		lang, after, ok := cutGroup(rest, '{', '}')
		if !ok || len(after) != 0 {
			return environment{}, false
		}

		env.lang = string(lang)

		switch {
		case pythonLangs[env.lang]:
			env.kind = KindLaTeX
		case env.lang == pyconLang:
			env.kind = KindLaTeXPycon
		default:
			env.kind, env.foreign = KindLaTeX, true
		}
	case pythontexEnvs[env.name]:
		if len(rest) != 0 {
			return environment{}, false
		}

		env.kind, env.lang = KindPythonTeX, "python"
	default:
		return environment{}, false
	}

	return env, true
}

func (e environment) closedBy(l []byte) bool {
	end := endCmd + "{" + e.name + "}"

	if leadingSpaces(l) != e.indent || !bytes.HasPrefix(l[e.indent:], []byte(end)) {
		return false
	}

	return isBlank(l[e.indent+len(end):])
}

func scanLatex(source []byte, lines []line) Blocks {
	var blocks Blocks

	for i := 0; i < len(lines); i++ {
		env, ok := parseBegin(lines[i].Value(source))
		if !ok {
			continue
		}

		for j := i + 1; j < len(lines); j++ {
			if !env.closedBy(lines[j].Value(source)) {
				continue
			}

			block := delimitedBlock(source, lines[i], lines[j], env.kind, env.indent)
			block.Lang = env.lang
			block.Info = env.options
			block.Meta = parseOptions(env.options)
			block.Foreign = env.foreign

			blocks = append(blocks, block)
			i = j

			break
		}
	}

	return blocks
}
