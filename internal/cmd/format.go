package cmd

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/ezerfernandes/blackdocs/internal/black"
	"github.com/ezerfernandes/blackdocs/internal/docblock"
	"github.com/pmezard/go-difflib/difflib"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const fileMode = 0o644

type report struct {
	name   string
	source []byte
	result *docblock.Result
	err    error
}

func formatRun(ctx context.Context, out io.Writer, args []string, opts *options) error {
	files, err := opts.collect(args)
	if err != nil {
		return err
	}

	formatter := opts.newFormatter(opts.formatter)
	reports := make([]*report, len(files))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(opts.jobs)

	for i, name := range files {
		i, name := i, name

		group.Go(func() error {
			rep, err := opts.formatFile(ctx, formatter, name)
			reports[i] = rep

			return err
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	code := codeOK

	for _, rep := range reports {
		code = max(code, opts.emit(out, rep))
	}

	if code != codeOK {
		return &exitStatus{code: code}
	}

	return nil
}

// formatFile formats and, unless only reporting, rewrites one document. The
// returned error is set only when ctx is done; anything else is recorded in
// the report.
func (opts *options) formatFile(ctx context.Context, formatter black.Formatter, name string) (*report, error) {
	rep := &report{name: name} //nolint:exhaustruct
	start := time.Now()

	info, err := fs.Stat(opts.fsys, name)
	if err != nil {
		rep.err = err

		return rep, nil
	}

	source, err := fs.ReadFile(opts.fsys, name)
	if err != nil {
		rep.err = err

		return rep, nil
	}

	res, err := docblock.Format(ctx, source, formatter, opts.mode, docblock.Options{RSTLiteralBlocks: opts.rstLiteralBlocks})
	if err != nil {
		return rep, err
	}

	rep.source, rep.result = source, res

	opts.logger.Debug("formatted",
		zap.String("file", name),
		zap.Int("blocks", res.Blocks),
		zap.Int("errors", len(res.Errors)),
		zap.Bool("changed", res.Changed),
		zap.Duration("duration", time.Since(start)),
	)

	if !res.Changed || opts.check || opts.diff || opts.failed(res) {
		return rep, nil
	}

	perm := info.Mode().Perm()
	if perm == 0 {
		perm = fileMode
	}

	if err := opts.fsys.WriteFile(name, res.Source, perm); err != nil {
		rep.err = fmt.Errorf("%s: %w", name, err)
	}

	return rep, nil
}

// emit prints the diagnostics of one report and returns its exit code.
func (opts *options) emit(out io.Writer, rep *report) int {
	if rep.result == nil {
		opts.errorf("error: %v\n", rep.err)

		return codeError
	}

	for _, blockErr := range rep.result.Errors {
		opts.errorf("%s:%d: code block parse error %v\n", rep.name, blockErr.Line, blockErr.Err)
	}

	if rep.err != nil {
		opts.errorf("error: %v\n", rep.err)

		return codeError
	}

	if opts.failed(rep.result) {
		return codeError
	}

	if !rep.result.Changed {
		return codeOK
	}

	switch {
	case opts.diff:
		if err := writeDiff(out, rep.name, rep.source, rep.result.Source); err != nil {
			opts.errorf("error: %s: %v\n", rep.name, err)

			return codeError
		}

		opts.status("%s: Requires a rewrite.\n", rep.name)
	case opts.check:
		opts.status("%s: Requires a rewrite.\n", rep.name)
	default:
		opts.status("%s: Rewriting...\n", rep.name)
	}

	return codeChanged
}

// failed reports whether a document has parse errors that were not waived
// with --skip-errors. Such a document is left untouched.
func (opts *options) failed(res *docblock.Result) bool {
	return len(res.Errors) != 0 && !opts.skipErrors
}

func writeDiff(out io.Writer, name string, before, after []byte) error {
	diff := difflib.UnifiedDiff{ //nolint:exhaustruct
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: name,
		ToFile:   name,
		Context:  3,
	}

	return difflib.WriteUnifiedDiff(out, diff)
}
