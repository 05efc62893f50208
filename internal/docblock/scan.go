package docblock

import (
	"sort"

	"github.com/ezerfernandes/blackdocs/internal/region"
)

// Options selects optional matchers.
type Options struct {
	// RSTLiteralBlocks formats every reST literal block ("::") as Python.
	// Off by default: any indented text after a double colon would match.
	RSTLiteralBlocks bool
}

// Scan returns every code block found in source ordered by offset, including
// foreign and disabled ones. Blocks never overlap: when matchers of
// different dialects claim intersecting regions the earliest one wins.
func Scan(source []byte, opts Options) Blocks {
	lines := splitLines(source)

	groups := []Blocks{scanMarkdown(source, lines)}
	if opts.RSTLiteralBlocks {
		groups = append(groups, scanLiteral(source, lines))
	}

	groups = append(groups, scanDirectives(source, lines), scanLatex(source, lines))

	blocks := merge(groups)
	disabled := region.Disabled(source)

	for _, block := range blocks {
		block.Disabled = disabled.Contains(block.Start)
	}

	return blocks
}

func merge(groups []Blocks) Blocks {
	var all Blocks

	for _, group := range groups {
		all = append(all, group...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Start < all[j].Start
	})

	var (
		merged Blocks
		end    int
	)

	for _, block := range all {
		if len(merged) != 0 && block.Start < end {
			continue
		}

		merged = append(merged, block)
		end = block.End
	}

	return merged
}
