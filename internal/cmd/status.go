package cmd

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type statusFunc func(format string, args ...any)

func (opts *options) createStatus(out io.Writer) {
	opts.errorf = func(format string, args ...any) {
		fmt.Fprintf(out, format, args...)
	}

	if opts.quiet {
		opts.status = func(string, ...any) {}
	} else {
		opts.status = opts.errorf
	}

	level := zapcore.InfoLevel
	if opts.verbose {
		level = zapcore.DebugLevel
	}

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.TimeKey = ""

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.Lock(zapcore.AddSync(out)), level)
	opts.logger = zap.New(core)
}
