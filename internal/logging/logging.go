// Package logging builds the zap logger used for pvx debug output.
//
// User-facing messages go through the printer package. The logger only
// records what pvx does under the hood (tool invocations, resolved paths)
// and stays silent unless --verbose is set.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a debug console logger on stderr when verbose is true and a
// no-op logger otherwise.
func New(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	return NewWithWriter(os.Stderr, zapcore.DebugLevel)
}

// NewWithWriter returns a console logger writing to w at the given level.
func NewWithWriter(w io.Writer, level zapcore.Level) *zap.Logger {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	enc.CallerKey = ""
	enc.NameKey = "logger"

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(enc),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(level),
	)
	return zap.New(core).Named("pvx")
}
