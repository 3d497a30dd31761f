package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. It discards everything until InitLogger runs.
var Log = zap.NewNop()

// ParseLevel maps a config string to a zap level, falling back to info.
func ParseLevel(logLevel string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(logLevel)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// New builds a logger writing to w. format is "json" (the default when
// empty) for log shippers or "console" for short lines on a terminal.
func New(w io.Writer, logLevel, format string) (*zap.Logger, error) {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "ts"
	enc.EncodeTime = zapcore.RFC3339TimeEncoder

	var encoder zapcore.Encoder
	switch strings.ToLower(format) {
	case "", "json":
		encoder = zapcore.NewJSONEncoder(enc)
	case "console":
		enc.TimeKey = ""
		enc.CallerKey = ""
		enc.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(enc)
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), ParseLevel(logLevel))
	return zap.New(core, zap.AddCaller()), nil
}

// InitLogger replaces Log with a logger on stderr.
func InitLogger(logLevel, format string) error {
	l, err := New(zapcore.Lock(os.Stderr), logLevel, format)
	if err != nil {
		return err
	}
	Log = l
	return nil
}
