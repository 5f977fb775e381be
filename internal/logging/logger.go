package logging

import (
	"context"
	"log"
	"strings"
	"sync/atomic"
)

type requestIDKey struct{}

type level int32

const (
	levelDebug level = iota
	levelInfo
	levelWarn
	levelError
)

var minLevel atomic.Int32

func init() {
	minLevel.Store(int32(levelInfo))
}

// SetLevel sets the minimum level written by every Logger. Unknown names fall back to info.
func SetLevel(name string) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		minLevel.Store(int32(levelDebug))
	case "warn", "warning":
		minLevel.Store(int32(levelWarn))
	case "error":
		minLevel.Store(int32(levelError))
	default:
		minLevel.Store(int32(levelInfo))
	}
}

// WithRequestID returns a copy of ctx carrying the request id read by New.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestID extracts the request id stored by WithRequestID.
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}

// Logger writes leveled lines tagged with the request id of the context it was built from.
type Logger struct {
	requestID string
}

// New creates a logger bound to the request id in ctx, or "unknown" outside a request.
func New(ctx context.Context) *Logger {
	requestID := RequestID(ctx)
	if requestID == "" {
		requestID = "unknown"
	}
	return &Logger{requestID: requestID}
}

func (l *Logger) printf(lvl level, tag, operation, format string, args ...any) {
	if int32(lvl) < minLevel.Load() {
		return
	}
	log.Printf("["+tag+"] request_id=%s operation=%s "+format, append([]any{l.requestID, operation}, args...)...)
}

func (l *Logger) LogError(operation string, err error) {
	l.printf(levelError, "error", operation, "error=%v", err)
}

func (l *Logger) LogErrorf(operation string, format string, args ...any) {
	l.printf(levelError, "error", operation, format, args...)
}

func (l *Logger) LogWarnf(operation string, format string, args ...any) {
	l.printf(levelWarn, "warn", operation, format, args...)
}

func (l *Logger) LogInfo(operation string, message string) {
	l.printf(levelInfo, "info", operation, "message=%s", message)
}

func (l *Logger) LogInfof(operation string, format string, args ...any) {
	l.printf(levelInfo, "info", operation, format, args...)
}

func (l *Logger) LogDebugf(operation string, format string, args ...any) {
	l.printf(levelDebug, "debug", operation, format, args...)
}
