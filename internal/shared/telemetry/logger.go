package telemetry

import (
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	logger = newLogger(os.Stdout)
)

// SetOutput redirects log lines to w. Tests use it to capture output.
func SetOutput(w io.Writer) {
	l := newLogger(w)
	mu.Lock()
	prev := logger
	logger = l
	mu.Unlock()
	_ = prev.Sync()
}

// Info writes an info-level log line with the given fields.
func Info(msg string, fields map[string]any) {
	write(zapcore.InfoLevel, msg, fields)
}

// Warn writes a warn-level log line with the given fields.
func Warn(msg string, fields map[string]any) {
	write(zapcore.WarnLevel, msg, fields)
}

// Error writes an error-level log line with the given fields.
func Error(msg string, fields map[string]any) {
	write(zapcore.ErrorLevel, msg, fields)
}

func write(level zapcore.Level, msg string, fields map[string]any) {
	mu.RLock()
	l := logger
	mu.RUnlock()

	ce := l.Check(level, msg)
	if ce == nil {
		return
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	zf := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		zf = append(zf, zap.Any(k, fields[k]))
	}
	ce.Write(zf...)
}

func newLogger(w io.Writer) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.LevelKey = "level"
	encCfg.MessageKey = "msg"
	encCfg.CallerKey = zapcore.OmitKey
	encCfg.StacktraceKey = zapcore.OmitKey
	encCfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	encCfg.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.UTC().Format(time.RFC3339))
	}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(w), zapcore.DebugLevel)
	return zap.New(core)
}
