// Package black describes the contract of the external Python formatter and
// runs the black executable through an embedded shell interpreter.
package black

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultLineLength is black's default maximum line width.
const DefaultLineLength = 88

// TargetVersion names a Python version black may assume the code runs on.
type TargetVersion string

var targetVersions = []TargetVersion{
	"py33", "py34", "py35", "py36", "py37", "py38", "py39",
	"py310", "py311", "py312", "py313",
}

// TargetVersions returns every accepted target version in ascending order.
func TargetVersions() []TargetVersion {
	return append([]TargetVersion(nil), targetVersions...)
}

// ParseTargetVersion validates a target version name such as "py38".
func ParseTargetVersion(name string) (TargetVersion, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	for _, v := range targetVersions {
		if string(v) == name {
			return v, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownTargetVersion, name)
}

// ErrUnknownTargetVersion is returned by [ParseTargetVersion] for names black
// does not accept.
var ErrUnknownTargetVersion = errors.New("unknown target version")

// Mode holds the formatter options that can be selected per run.
type Mode struct {
	LineLength          int
	TargetVersions      []TargetVersion
	StringNormalization bool
	Preview             bool
	IsPyi               bool
}

// DefaultMode mirrors black's own defaults.
func DefaultMode() Mode {
	return Mode{LineLength: DefaultLineLength, StringNormalization: true}
}

// Args renders the mode as black command line arguments reading source from
// standard input.
func (m Mode) Args() []string {
	lineLength := m.LineLength
	if lineLength <= 0 {
		lineLength = DefaultLineLength
	}

	args := []string{"--quiet", "--line-length", strconv.Itoa(lineLength)}

	for _, v := range m.TargetVersions {
		args = append(args, "--target-version", string(v))
	}

	if !m.StringNormalization {
		args = append(args, "--skip-string-normalization")
	}

	if m.Preview {
		args = append(args, "--preview")
	}

	if m.IsPyi {
		args = append(args, "--pyi")
	}

	return append(args, "-")
}

// Formatter reformats Python source. Already formatted source is returned
// unchanged; source that does not parse yields a *SyntaxError.
type Formatter interface {
	Format(ctx context.Context, src string, mode Mode) (string, error)
}

// FormatterFunc adapts a function to the [Formatter] interface.
type FormatterFunc func(ctx context.Context, src string, mode Mode) (string, error)

func (f FormatterFunc) Format(ctx context.Context, src string, mode Mode) (string, error) {
	return f(ctx, src, mode)
}

// SyntaxError reports source the formatter could not parse.
type SyntaxError struct {
	Msg string
}

func (e *SyntaxError) Error() string {
	return e.Msg
}
