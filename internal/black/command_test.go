package black_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ezerfernandes/blackdocs/internal/black"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandPassesModeArguments(t *testing.T) {
	t.Parallel()

	cmd := &black.Command{Script: `f() { echo "$@"; }; f`}

	out, err := cmd.Format(context.Background(), "", black.Mode{LineLength: 60, StringNormalization: true})
	require.NoError(t, err)
	assert.Equal(t, "--quiet --line-length 60 -\n", out)
}

func TestCommandReadsSourceFromStdin(t *testing.T) {
	t.Parallel()

	cmd := &black.Command{Script: `f() { while IFS= read -r line; do printf '%s!\n' "$line"; done; }; f`}

	out, err := cmd.Format(context.Background(), "a = 1\nb = 2\n", black.DefaultMode())
	require.NoError(t, err)
	assert.Equal(t, "a = 1!\nb = 2!\n", out)
}

func TestCommandSyntaxError(t *testing.T) {
	t.Parallel()

	cmd := &black.Command{Script: `f() { echo 'error: cannot format -: Cannot parse: 1:2: f(' >&2; return 123; }; f`}

	_, err := cmd.Format(context.Background(), "f(\n", black.DefaultMode())

	var syntaxErr *black.SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, "Cannot parse: 1:2: f(", syntaxErr.Msg)
	assert.Equal(t, "Cannot parse: 1:2: f(", err.Error())
}

func TestCommandFailure(t *testing.T) {
	t.Parallel()

	cmd := &black.Command{Script: `f() { echo boom >&2; return 3; }; f`}

	_, err := cmd.Format(context.Background(), "x\n", black.DefaultMode())
	require.Error(t, err)

	var syntaxErr *black.SyntaxError
	assert.False(t, errors.As(err, &syntaxErr))
	assert.Contains(t, err.Error(), "formatter exited with 3: boom")
}

func TestCommandBadScript(t *testing.T) {
	t.Parallel()

	cmd := &black.Command{Script: `f() {`}

	_, err := cmd.Format(context.Background(), "x\n", black.DefaultMode())
	require.ErrorContains(t, err, "formatter command")
}

func TestFormatterFunc(t *testing.T) {
	t.Parallel()

	var f black.Formatter = black.FormatterFunc(func(_ context.Context, src string, _ black.Mode) (string, error) {
		return src + "# done\n", nil
	})

	out, err := f.Format(context.Background(), "x\n", black.DefaultMode())
	require.NoError(t, err)
	assert.Equal(t, "x\n# done\n", out)
}
