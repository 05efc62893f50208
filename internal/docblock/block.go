// Package docblock finds Python code embedded in documentation files and
// rewrites it with an external formatter, leaving everything else untouched.
package docblock

// Kind identifies the markup dialect that produced a [Block].
type Kind int

const (
	KindMarkdown Kind = iota
	KindMarkdownPycon
	KindRST
	KindRSTPycon
	KindRSTLiteral
	KindLaTeX
	KindLaTeXPycon
	KindPythonTeX
)

var kindNames = [...]string{
	KindMarkdown:      "markdown",
	KindMarkdownPycon: "markdown-pycon",
	KindRST:           "rst",
	KindRSTPycon:      "rst-pycon",
	KindRSTLiteral:    "rst-literal",
	KindLaTeX:         "latex",
	KindLaTeXPycon:    "latex-pycon",
	KindPythonTeX:     "pythontex",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "unknown"
}

// Session reports whether payloads of this kind are interactive session
// transcripts rather than plain source.
func (k Kind) Session() bool {
	return k == KindMarkdownPycon || k == KindRSTPycon || k == KindLaTeXPycon
}

// indented reports whether the payload of this kind is delimited by
// indentation (reST) rather than by a closing marker.
func (k Kind) indented() bool {
	return k == KindRST || k == KindRSTPycon || k == KindRSTLiteral
}

// Block is one code region found in a document.
//
// Start and End delimit the whole region, CodeStart and CodeEnd its payload.
// Code initially holds the payload; a [Walker] may replace it.
type Block struct {
	Kind Kind
	Lang string
	Info string
	Meta Meta

	Indent string
	Code   []byte

	Start     int
	End       int
	CodeStart int
	CodeEnd   int
	StartLine int
	EndLine   int

	// Foreign blocks use a language other than Python. They are reported by
	// Scan so that nothing inside them is mistaken for code, but never
	// rewritten.
	Foreign bool
	// Disabled blocks start inside a blackdocs:off span.
	Disabled bool
}

// Formattable reports whether the block is a candidate for rewriting.
func (b *Block) Formattable() bool {
	return !b.Foreign && !b.Disabled
}

type Blocks []*Block
