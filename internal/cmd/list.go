package cmd

import (
	_ "embed"
	"fmt"
	"io"
	"io/fs"

	"github.com/ezerfernandes/blackdocs/internal/docblock"
	"github.com/mattn/go-runewidth"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

//go:embed help/list.md
var listHelp string

func listCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:     "list [flags] PATH...",
		Aliases: []string{"ls"},
		Short:   "List the code blocks found in documents",
		Long:    listHelp,
		Args:    checkargs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listRun(cmd.OutOrStdout(), args, opts)
		},

		DisableAutoGenTag: true,
	}

	return cmd
}

func listRun(out io.Writer, args []string, opts *options) error {
	files, err := opts.collect(args)
	if err != nil {
		return err
	}

	tbl := table.New("File", "Lines", "Kind", "Lang", "Meta", "State").
		WithWriter(out).
		WithWidthFunc(runewidth.StringWidth)

	for _, name := range files {
		source, err := fs.ReadFile(opts.fsys, name)
		if err != nil {
			return err
		}

		blocks := docblock.Scan(source, docblock.Options{RSTLiteralBlocks: opts.rstLiteralBlocks})

		opts.logger.Debug("scanned", zap.String("file", name), zap.Int("blocks", len(blocks)))

		for _, block := range blocks {
			opts.logger.Debug("block",
				zap.String("file", name),
				zap.String("lines", lines(block)),
				zap.String("info", block.Info),
			)

			tbl.AddRow(name, lines(block), block.Kind, block.Lang, block.Meta, state(block))
		}
	}

	tbl.Print()

	return nil
}

func lines(block *docblock.Block) string {
	return fmt.Sprintf("L%d-%d", block.StartLine, block.EndLine)
}

func state(block *docblock.Block) string {
	switch {
	case block.Disabled:
		return "off"
	case block.Foreign:
		return "foreign"
	default:
		return "format"
	}
}
