// Package logging builds the zap logger shared by the commands.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options select the level and destination of the logger.
type Options struct {
	// Debug lowers the level to debug. The DEBUG environment variable does
	// the same.
	Debug bool
	// Path is a log file to append to. Empty means stderr.
	Path string
	// Discard drops all output when no Path is set.
	Discard bool
}

// New builds a console-encoded logger. The returned func flushes and closes
// the destination.
func New(o Options) (*zap.Logger, func(), error) {
	level := zapcore.InfoLevel
	if o.Debug || os.Getenv("DEBUG") != "" {
		level = zapcore.DebugLevel
	}

	var (
		ws      zapcore.WriteSyncer
		closeFn = func() {}
		color   = true
	)
	switch {
	case o.Path != "":
		if err := os.MkdirAll(filepath.Dir(o.Path), 0o700); err != nil {
			return nil, nil, fmt.Errorf("logging: create log dir: %w", err)
		}
		f, err := os.OpenFile(o.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("logging: open %s: %w", o.Path, err)
		}
		ws = zapcore.AddSync(f)
		closeFn = func() { _ = f.Close() }
		color = false
	case o.Discard:
		return zap.NewNop(), closeFn, nil
	default:
		ws = zapcore.Lock(os.Stderr)
	}

	core := zapcore.NewCore(newEncoder(color), ws, level)
	log := zap.New(core, zap.AddCaller())
	return log, func() {
		_ = log.Sync()
		closeFn()
	}, nil
}

// NewWriter builds a logger writing to w. Tests use it to capture output.
func NewWriter(w io.Writer, level zapcore.Level) *zap.Logger {
	core := zapcore.NewCore(newEncoder(false), zapcore.AddSync(w), level)
	return zap.New(core)
}

func newEncoder(color bool) zapcore.Encoder {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if color {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewConsoleEncoder(encoderConfig)
}
