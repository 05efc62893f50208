package docblock

import (
	"strings"

	"github.com/yuin/goldmark/util"
)

const (
	promptPrefix       = ">>> "
	continuationPrefix = "..."
)

// statement is an interactive statement being accumulated: a prompt line and
// the continuation lines that follow it.
type statement struct {
	// offset is the position of the prompt line in the document.
	offset int
	// raw holds the original lines, transcript indentation removed.
	raw []string
	// source holds the lines with their prompts removed.
	source []string
}

func (s *statement) add(raw, src string) {
	s.raw = append(s.raw, raw)
	s.source = append(s.source, src)
}

// transcript reconstructs a session payload. It is either between statements
// (stmt is nil) or accumulating continuation lines of stmt.
type transcript struct {
	rw  *rewriter
	out strings.Builder
	// stmt is the statement in flight.
	stmt *statement
	// width is the indentation of the first non-blank line, -1 until seen.
	width int
}

// run feeds every line of code, whose first byte sits at base in the
// document, and finalizes the last statement.
func (t *transcript) run(code string, base int) error {
	err := eachLine(code, func(l string, offset int) error {
		return t.line(l, base+offset)
	})
	if err != nil {
		return err
	}

	return t.finish()
}

func (t *transcript) line(l string, offset int) error {
	trimmed := string(util.TrimLeftSpace([]byte(l)))
	if t.width < 0 && len(trimmed) != 0 {
		t.width = len(l) - len(trimmed)
	}

	if rest, ok := continuation(trimmed); ok && t.stmt != nil {
		t.stmt.add(t.dropIndent(l), rest)

		return nil
	}

	if err := t.finish(); err != nil {
		return err
	}

	if strings.HasPrefix(trimmed, promptPrefix) {
		t.stmt = &statement{offset: offset}
		t.stmt.add(t.dropIndent(l), trimmed[len(promptPrefix):])

		return nil
	}

	t.writeLine(t.dropIndent(l))

	return nil
}

// finish formats the statement in flight and renders it with prompts. The
// formatter may separate nested definitions with blank lines; those are
// dropped because a blank line ends a statement in an interactive session.
// A statement whose last line is indented gets a bare continuation prompt to
// close the compound statement.
func (t *transcript) finish() error {
	stmt := t.stmt
	t.stmt = nil

	if stmt == nil {
		return nil
	}

	formatted, ok, err := t.rw.format(strings.Join(stmt.source, "\n")+"\n", stmt.offset)
	if err != nil {
		return err
	}

	if !ok || isBlankString(formatted) {
		for _, l := range stmt.raw {
			t.writeLine(l)
		}

		return nil
	}

	lines := strings.Split(strings.TrimSuffix(formatted, "\n"), "\n")

	t.writeLine(promptPrefix + lines[0])

	for _, l := range lines[1:] {
		if len(l) != 0 {
			t.writeLine(continuationPrefix + " " + l)
		}
	}

	if strings.HasPrefix(lines[len(lines)-1], " ") {
		t.writeLine(continuationPrefix)
	}

	return nil
}

func (t *transcript) writeLine(l string) {
	t.out.WriteString(l)
	t.out.WriteByte('\n')
}

// dropIndent removes up to the transcript's indentation from l.
func (t *transcript) dropIndent(l string) string {
	n := 0
	for n < t.width && n < len(l) && (l[n] == ' ' || l[n] == '\t') {
		n++
	}

	return l[n:]
}

// continuation strips a continuation prompt: "..." alone or followed by a
// space.
func continuation(trimmed string) (string, bool) {
	switch {
	case trimmed == continuationPrefix:
		return "", true
	case strings.HasPrefix(trimmed, continuationPrefix+" "):
		return trimmed[len(continuationPrefix)+1:], true
	default:
		return "", false
	}
}
