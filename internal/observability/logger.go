// Package observability holds the zap logger and the HTTP middleware that logs
// requests and recovers panics.
package observability

import (
	"context"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type loggerKey struct{}

var noopLogger = zap.NewNop()

// ParseLevel maps a config level name onto a zap level. Empty or unknown names
// yield info.
func ParseLevel(name string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(strings.TrimSpace(name))
	if err != nil || strings.TrimSpace(name) == "" {
		return zapcore.InfoLevel
	}
	return lvl
}

// NewLogger returns a JSON logger on stdout at the named level.
func NewLogger(levelName string) (*zap.Logger, error) {
	return NewLoggerTo(os.Stdout, ParseLevel(levelName)), nil
}

// NewLoggerTo writes JSON lines to w. Records carry severity/message/timestamp keys
// and durations in milliseconds.
func NewLoggerTo(w io.Writer, level zapcore.Level) *zap.Logger {
	enc := zap.NewProductionEncoderConfig()
	enc.MessageKey = "message"
	enc.TimeKey = "timestamp"
	enc.LevelKey = "severity"
	enc.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	enc.EncodeDuration = zapcore.MillisDurationEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.Lock(zapcore.AddSync(w)), level)
	return zap.New(core, zap.AddCaller(), zap.ErrorOutput(zapcore.Lock(os.Stderr)))
}

// WithLogger returns ctx carrying logger. A nil logger stores the no-op logger.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	if logger == nil {
		logger = noopLogger
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the request logger, or a no-op logger outside a request.
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
		return logger
	}
	return noopLogger
}

// sanitize strips control characters and truncates to limit runes.
func sanitize(value string, limit int) string {
	var b strings.Builder
	n := 0
	for _, r := range value {
		if r < 0x20 || r == 0x7f {
			continue
		}
		if n == limit {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String()
}
