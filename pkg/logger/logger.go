package logger

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

type ctxKey struct{}

var base = logrus.New()

// Init configures the shared logger. An unknown level falls back to info.
// When file is set, output is also written there with size-based rotation.
func Init(level, format, file string) {
	if file != "" {
		base.SetOutput(io.MultiWriter(os.Stdout, RotatingFile(file)))
	} else {
		base.SetOutput(os.Stdout)
	}

	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	base.SetLevel(lvl)

	if strings.EqualFold(format, "json") {
		base.SetFormatter(&logrus.JSONFormatter{})
	} else {
		base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

// RotatingFile returns a writer that rotates at 10 MB and keeps 3 compressed
// backups for 28 days.
func RotatingFile(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
}

func L() *logrus.Logger {
	return base
}

func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, traceID)
}

func TraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// WithContext returns an entry carrying the request's trace id, if any.
func WithContext(ctx context.Context) *logrus.Entry {
	entry := logrus.NewEntry(base)
	if id := TraceID(ctx); id != "" {
		entry = entry.WithField("trace_id", id)
	}
	return entry
}
