package docblock

import (
	"context"
	"fmt"
	"strings"

	"github.com/ezerfernandes/blackdocs/internal/black"
)

// CodeBlockError records a block, or a single session statement, that the
// formatter rejected. The offending text is left as it was.
type CodeBlockError struct {
	Offset int
	Line   int
	Err    error
}

func (e *CodeBlockError) Error() string {
	return fmt.Sprintf("line %d: code block parse error %v", e.Line, e.Err)
}

func (e *CodeBlockError) Unwrap() error {
	return e.Err
}

// Result is the outcome of [Format] on one document.
type Result struct {
	// Changed is true when Source differs from the input.
	Changed bool
	Source  []byte
	// Blocks counts the blocks handed to the formatter.
	Blocks int
	Errors []*CodeBlockError
}

// Format rewrites every Python block of source with formatter. Formatter
// failures are collected in the result and never abort the document; the
// returned error is only set when ctx is done.
func Format(ctx context.Context, source []byte, formatter black.Formatter, mode black.Mode, opts Options) (*Result, error) {
	rw := &rewriter{ctx: ctx, formatter: formatter, mode: mode, source: source}

	changed, out, err := Walk(source, opts, rw.rewrite)
	if err != nil {
		return nil, err
	}

	if !changed {
		out = source
	}

	return &Result{Changed: changed, Source: out, Blocks: rw.blocks, Errors: rw.errs}, nil
}

type rewriter struct {
	ctx       context.Context
	formatter black.Formatter
	mode      black.Mode
	source    []byte
	blocks    int
	errs      []*CodeBlockError
}

func (r *rewriter) rewrite(block *Block) error {
	r.blocks++

	switch {
	case block.Kind.Session():
		return r.session(block)
	case block.Kind.indented():
		return r.indented(block)
	default:
		return r.delimited(block)
	}
}

// format runs the formatter. ok is false when it failed, in which case the
// failure has been recorded at offset unless err reports cancellation.
func (r *rewriter) format(src string, offset int) (string, bool, error) {
	out, err := r.formatter.Format(r.ctx, src, r.mode)
	if err == nil {
		return out, true, nil
	}

	if ctxErr := r.ctx.Err(); ctxErr != nil {
		return "", false, ctxErr
	}

	r.errs = append(r.errs, &CodeBlockError{Offset: offset, Line: lineAt(r.source, offset), Err: err})

	return "", false, nil
}

// delimited handles payloads between explicit markers: the code is reindented
// to the opening marker.
func (r *rewriter) delimited(block *Block) error {
	formatted, ok, err := r.format(dedent(string(block.Code)), block.Start)
	if !ok {
		return err
	}

	block.Code = []byte(indent(formatted, block.Indent))

	return nil
}

// indented handles reST payloads: the code keeps its own smallest indentation
// and the blank lines that end the block are preserved.
func (r *rewriter) indented(block *Block) error {
	code := string(block.Code)

	formatted, ok, err := r.format(dedent(code), block.Start)
	if !ok {
		return err
	}

	_, trailing := splitTrailing(code)
	block.Code = []byte(rstrip(indent(formatted, minIndent(code))) + trailing)

	return nil
}

func (r *rewriter) session(block *Block) error {
	code := string(block.Code)

	t := &transcript{rw: r, width: -1}
	if err := t.run(code, block.CodeStart); err != nil {
		return err
	}

	out := t.out.String()

	if !block.Kind.indented() {
		block.Code = []byte(indent(out, block.Indent))

		return nil
	}

	if isBlankString(out) {
		return nil
	}

	block.Code = []byte(indent(out, minIndent(code)))

	return nil
}

// eachLine calls fn with every line of s, without its line break, and the
// offset at which the line starts.
func eachLine(s string, fn func(l string, offset int) error) error {
	for offset := 0; offset < len(s); {
		end := strings.IndexByte(s[offset:], '\n')
		if end < 0 {
			return fn(s[offset:], offset)
		}

		if err := fn(s[offset:offset+end], offset); err != nil {
			return err
		}

		offset += end + 1
	}

	return nil
}
