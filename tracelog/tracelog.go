// Package tracelog provides a tracer that acts as a traditional logger.
package tracelog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/pgtemporal/pgtemporal/pgtype"
)

// LogLevel represents the logging level. See LogLevel* constants for
// possible values.
type LogLevel int

// The values for log levels are chosen such that the zero value means that no
// log level was specified.
const (
	LogLevelTrace = LogLevel(6)
	LogLevelDebug = LogLevel(5)
	LogLevelInfo  = LogLevel(4)
	LogLevelWarn  = LogLevel(3)
	LogLevelError = LogLevel(2)
	LogLevelNone  = LogLevel(1)
)

func (ll LogLevel) String() string {
	switch ll {
	case LogLevelTrace:
		return "trace"
	case LogLevelDebug:
		return "debug"
	case LogLevelInfo:
		return "info"
	case LogLevelWarn:
		return "warn"
	case LogLevelError:
		return "error"
	case LogLevelNone:
		return "none"
	default:
		return fmt.Sprintf("invalid level %d", ll)
	}
}

// Logger is the interface used to get log output from pgtemporal.
type Logger interface {
	// Log a message at the given level with data key/value pairs. data may be nil.
	Log(ctx context.Context, level LogLevel, msg string, data map[string]any)
}

// LoggerFunc is a wrapper around a function to satisfy the Logger interface
type LoggerFunc func(ctx context.Context, level LogLevel, msg string, data map[string]any)

// Log delegates the logging request to the wrapped function
func (f LoggerFunc) Log(ctx context.Context, level LogLevel, msg string, data map[string]any) {
	f(ctx, level, msg, data)
}

// LogLevelFromString converts log level string to constant
//
// Valid levels:
//
//	trace
//	debug
//	info
//	warn
//	error
//	none
func LogLevelFromString(s string) (LogLevel, error) {
	switch s {
	case "trace":
		return LogLevelTrace, nil
	case "debug":
		return LogLevelDebug, nil
	case "info":
		return LogLevelInfo, nil
	case "warn":
		return LogLevelWarn, nil
	case "error":
		return LogLevelError, nil
	case "none":
		return LogLevelNone, nil
	default:
		return 0, errors.New("invalid log level")
	}
}

const maxLoggedSrc = 64

// logSrc shortens long source text on a rune boundary.
func logSrc(src string) string {
	if len(src) <= maxLoggedSrc {
		return src
	}
	l := 0
	for w := 0; l < maxLoggedSrc; l += w {
		_, w = utf8.DecodeRuneInString(src[l:])
	}
	if len(src) > l {
		return fmt.Sprintf("%s (truncated %d bytes)", src[:l], len(src)-l)
	}
	return src
}

// TraceLogConfig holds the configuration for key names
type TraceLogConfig struct {
	TimeKey string
}

// DefaultTraceLogConfig returns the default configuration for TraceLog
func DefaultTraceLogConfig() *TraceLogConfig {
	return &TraceLogConfig{
		TimeKey: "time",
	}
}

// TraceLog implements pgtype.DecodeTracer. Logger and LogLevel are required.
// Config will be automatically initialized on the first use if nil.
type TraceLog struct {
	Logger   Logger
	LogLevel LogLevel

	Config           *TraceLogConfig
	ensureConfigOnce sync.Once
}

// ensureConfig initializes the Config field with default values if it is nil.
func (tl *TraceLog) ensureConfig() {
	tl.ensureConfigOnce.Do(
		func() {
			if tl.Config == nil {
				tl.Config = DefaultTraceLogConfig()
			}
		},
	)
}

type ctxKey int

const (
	_ ctxKey = iota
	tracelogDecodeCtxKey
)

type traceDecodeData struct {
	startTime time.Time
	start     pgtype.TraceDecodeStartData
}

func (tl *TraceLog) TraceDecodeStart(ctx context.Context, _ *pgtype.Map, data pgtype.TraceDecodeStartData) context.Context {
	return context.WithValue(ctx, tracelogDecodeCtxKey, &traceDecodeData{
		startTime: time.Now(),
		start:     data,
	})
}

func (tl *TraceLog) TraceDecodeEnd(ctx context.Context, _ *pgtype.Map, data pgtype.TraceDecodeEndData) {
	tl.ensureConfig()
	decodeData, ok := ctx.Value(tracelogDecodeCtxKey).(*traceDecodeData)
	if !ok {
		return
	}

	interval := time.Since(decodeData.startTime)
	fields := map[string]any{
		"oid":             uint32(decodeData.start.OID),
		"src":             logSrc(decodeData.start.Src),
		"binary":          decodeData.start.Binary,
		tl.Config.TimeKey: interval,
	}
	if decodeData.start.TypeName != "" {
		fields["type"] = decodeData.start.TypeName
	}

	if data.Err != nil {
		if tl.shouldLog(LogLevelError) {
			fields["err"] = data.Err
			var pgErr *pgtype.Error
			if errors.As(data.Err, &pgErr) {
				fields["code"] = string(pgErr.Code)
			}
			tl.log(ctx, LogLevelError, "Decode", fields)
		}
		return
	}

	if tl.shouldLog(LogLevelDebug) {
		tl.log(ctx, LogLevelDebug, "Decode", fields)
	}
}

func (tl *TraceLog) shouldLog(lvl LogLevel) bool {
	return tl.LogLevel >= lvl
}

func (tl *TraceLog) log(ctx context.Context, lvl LogLevel, msg string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	tl.Logger.Log(ctx, lvl, msg, data)
}
