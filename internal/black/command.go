package black

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// DefaultScript is the shell command used when [Command.Script] is empty.
const DefaultScript = "black"

// exitSyntaxError is black's exit status for sources it cannot format.
const exitSyntaxError = 123

const errPrefix = "error: cannot format -: "

// Command formats source by running a black compatible executable. Script is
// a shell snippet such as "black" or "python -m black"; the mode arguments are
// appended as positional parameters and the source is fed on standard input.
type Command struct {
	Script string
	Dir    string
}

func (c *Command) Format(ctx context.Context, src string, mode Mode) (string, error) {
	script := strings.TrimSpace(c.Script)
	if len(script) == 0 {
		script = DefaultScript
	}

	file, err := syntax.NewParser().Parse(strings.NewReader(script+` "$@"`), "")
	if err != nil {
		return "", fmt.Errorf("formatter command: %w", err)
	}

	var stdout, stderr bytes.Buffer

	opts := []interp.RunnerOption{
		interp.Params(append([]string{"--"}, mode.Args()...)...),
		interp.StdIO(strings.NewReader(src), &stdout, &stderr),
	}

	if len(c.Dir) != 0 {
		opts = append(opts, interp.Dir(c.Dir))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return "", err
	}

	err = runner.Run(ctx, file)
	if err == nil {
		return stdout.String(), nil
	}

	status, ok := interp.IsExitStatus(err)
	if !ok {
		return "", err
	}

	if status == exitSyntaxError {
		return "", &SyntaxError{Msg: parseMessage(stderr.String())}
	}

	return "", fmt.Errorf("formatter exited with %d: %s", status, strings.TrimSpace(stderr.String()))
}

func parseMessage(stderr string) string {
	for _, line := range strings.Split(stderr, "\n") {
		if strings.HasPrefix(line, errPrefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, errPrefix))
		}
	}

	return strings.TrimSpace(stderr)
}
