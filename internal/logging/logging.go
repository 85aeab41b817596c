// Package logging builds the zap logger used by the command line tool and
// bridges it to the logr.Logger accepted by the xray packages.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity levels for logr.Logger.V.
const (
	DEBUG = 1
	TRACE = 2
)

// Output encodings accepted by [New].
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

var (
	errUnknownLevel  = errors.New("unknown log level")
	errUnknownFormat = errors.New("unknown log format")
)

// ParseLevel maps a level name to a zap level. "trace" enables logr
// verbosity [TRACE].
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zapcore.Level(-TRACE), nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("%w: %q", errUnknownLevel, level)
}

// New returns a logger writing to stderr.
func New(level, format string) (*zap.Logger, error) {
	return NewWithWriter(os.Stderr, level, format)
}

// NewWithWriter returns a logger writing level and above to w, encoded as
// [FormatConsole] or [FormatJSON].
func NewWithWriter(w io.Writer, level, format string) (*zap.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	switch strings.ToLower(format) {
	case "", FormatConsole:
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	case FormatJSON:
		enc = zapcore.NewJSONEncoder(encCfg)
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownFormat, format)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), zap.NewAtomicLevelAt(lvl))
	return zap.New(core), nil
}

// Logr wraps z as a logr.Logger.
func Logr(z *zap.Logger) logr.Logger {
	if z == nil {
		return logr.Discard()
	}
	return zapr.NewLogger(z)
}
