// Package cmd wires the blackdocs command line.
package cmd

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/ezerfernandes/blackdocs/internal/black"
	"github.com/ezerfernandes/blackdocs/internal/config"
	"github.com/gobwas/glob"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

//go:embed help/root.md
var rootHelp string

var version = "dev"

const (
	codeOK      = 0
	codeChanged = 1
	codeError   = 2
)

// ErrNoPaths is returned when a command is given nothing to process.
var ErrNoPaths = errors.New("no paths given")

type options struct {
	fsys         FS
	workdir      string
	newFormatter func(script string) black.Formatter

	lineLength              int
	targetVersions          []string
	skipStringNormalization bool
	preview                 bool
	pyi                     bool
	rstLiteralBlocks        bool
	skipErrors              bool
	check                   bool
	diff                    bool
	formatter               string
	configPath              string
	exclude                 []string
	jobs                    int
	quiet                   bool
	verbose                 bool

	mode     black.Mode
	excludes []glob.Glob
	status   statusFunc
	errorf   statusFunc
	logger   *zap.Logger
}

// exitStatus carries a non-zero exit code out of a command that already
// reported why.
type exitStatus struct {
	code int
}

func (e *exitStatus) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// Execute runs the command line and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	workdir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)

		return codeError
	}

	opts := &options{ //nolint:exhaustruct
		fsys:         osFS{},
		workdir:      filepath.ToSlash(workdir),
		newFormatter: commandFormatter,
	}

	return execute(opts, args, stdout, stderr)
}

func commandFormatter(script string) black.Formatter {
	return &black.Command{Script: script} //nolint:exhaustruct
}

func execute(opts *options, args []string, stdout, stderr io.Writer) int {
	root := rootCmd(opts)

	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(context.Background())
	if err == nil {
		return codeOK
	}

	var exit *exitStatus
	if errors.As(err, &exit) {
		return exit.code
	}

	fmt.Fprintf(stderr, "error: %v\n", err)

	return codeError
}

func rootCmd(opts *options) *cobra.Command {
	root := &cobra.Command{ //nolint:exhaustruct
		Use:     "blackdocs [flags] PATH...",
		Short:   "Format Python code blocks in documentation with black",
		Long:    rootHelp,
		Version: version,
		Args:    checkargs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.prepare(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return formatRun(cmd.Context(), cmd.OutOrStdout(), args, opts)
		},

		SilenceErrors:     true,
		SilenceUsage:      true,
		DisableAutoGenTag: true,
	}

	root.CompletionOptions.DisableDefaultCmd = true

	flags := root.Flags()

	flags.IntVarP(&opts.lineLength, "line-length", "l", black.DefaultLineLength, "how many characters per line to allow")
	flags.StringArrayVarP(&opts.targetVersions, "target-version", "t", nil,
		"Python versions that should be supported (repeatable): "+targetVersionNames())
	flags.BoolVarP(&opts.skipStringNormalization, "skip-string-normalization", "S", false, "don't normalize string quotes or prefixes")
	flags.BoolVar(&opts.preview, "preview", false, "enable black's preview style")
	flags.BoolVar(&opts.pyi, "pyi", false, "format all code as typing stubs")
	flags.BoolVarP(&opts.skipErrors, "skip-errors", "E", false, "don't exit non-zero when a code block fails to parse")
	flags.BoolVar(&opts.check, "check", false, "don't write files, report those that would change")
	flags.BoolVar(&opts.diff, "diff", false, "don't write files, print a unified diff instead")
	flags.StringVar(&opts.formatter, "formatter", black.DefaultScript, "shell command running black")
	flags.IntVarP(&opts.jobs, "jobs", "j", runtime.NumCPU(), "number of files formatted concurrently")

	pflags := root.PersistentFlags()

	pflags.BoolVar(&opts.rstLiteralBlocks, "rst-literal-blocks", false, "also format reStructuredText literal blocks")
	pflags.StringArrayVar(&opts.exclude, "exclude", nil, "glob of paths to skip (repeatable)")
	pflags.StringVar(&opts.configPath, "config", "", "configuration file (default: searched from the working directory up)")
	pflags.BoolVarP(&opts.quiet, "quiet", "q", false, "don't print status messages")
	pflags.BoolVarP(&opts.verbose, "verbose", "v", false, "print debug information")

	root.AddCommand(listCmd(opts))

	return root
}

func targetVersionNames() string {
	versions := black.TargetVersions()
	names := make([]string, len(versions))

	for i, v := range versions {
		names[i] = string(v)
	}

	return strings.Join(names, ", ")
}

func checkargs(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		return ErrNoPaths
	}

	return nil
}

// prepare merges the configuration file under the flags and derives the
// formatter mode.
func (opts *options) prepare(cmd *cobra.Command) error {
	opts.createStatus(cmd.ErrOrStderr())

	name := opts.configPath
	if len(name) == 0 {
		found, err := config.Find(opts.fsys, opts.workdir)
		if err != nil {
			return err
		}

		name = found
	}

	cfg, err := config.Load(opts.fsys, name)
	if err != nil {
		return err
	}

	if len(name) != 0 {
		opts.logger.Debug("loaded configuration", zap.String("path", name))
	}

	opts.apply(cmd, cfg)

	if opts.lineLength <= 0 {
		return fmt.Errorf("invalid line length: %d", opts.lineLength)
	}

	if opts.jobs <= 0 {
		opts.jobs = runtime.NumCPU()
	}

	mode := black.Mode{ //nolint:exhaustruct
		LineLength:          opts.lineLength,
		StringNormalization: !opts.skipStringNormalization,
		Preview:             opts.preview,
		IsPyi:               opts.pyi,
	}

	for _, target := range opts.targetVersions {
		v, err := black.ParseTargetVersion(target)
		if err != nil {
			return err
		}

		mode.TargetVersions = append(mode.TargetVersions, v)
	}

	opts.mode = mode

	opts.excludes = opts.excludes[:0]

	for _, pattern := range opts.exclude {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return fmt.Errorf("exclude %q: %w", pattern, err)
		}

		opts.excludes = append(opts.excludes, g)
	}

	return nil
}

func (opts *options) apply(cmd *cobra.Command, cfg config.Config) {
	merge(&opts.lineLength, cfg.LineLength, changed(cmd, "line-length"))
	merge(&opts.targetVersions, cfg.TargetVersions, changed(cmd, "target-version"))
	merge(&opts.skipStringNormalization, cfg.SkipStringNormalization, changed(cmd, "skip-string-normalization"))
	merge(&opts.preview, cfg.Preview, changed(cmd, "preview"))
	merge(&opts.pyi, cfg.Pyi, changed(cmd, "pyi"))
	merge(&opts.rstLiteralBlocks, cfg.RSTLiteralBlocks, changed(cmd, "rst-literal-blocks"))
	merge(&opts.skipErrors, cfg.SkipErrors, changed(cmd, "skip-errors"))
	merge(&opts.formatter, cfg.Formatter, changed(cmd, "formatter"))
	merge(&opts.exclude, cfg.Exclude, changed(cmd, "exclude"))
}

func merge[T any](dst *T, value *T, flagChanged bool) {
	if value != nil && !flagChanged {
		*dst = *value
	}
}

func changed(cmd *cobra.Command, name string) bool {
	flag := cmd.Flag(name)

	return flag != nil && flag.Changed
}
