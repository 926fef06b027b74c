// Package logging defines a minimal structured-logging interface used across
// the client. Two backends are provided: log/slog and zap.
package logging

import (
	"context"
	"io"
	"strings"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "category created", "id", id, "name", name)
type Logger interface {
	// Debug logs request-level chatter (URLs, status codes).
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a warning message for unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// Backend names accepted by New.
const (
	BackendSlog = "slog"
	BackendJSON = "json"
	BackendZap  = "zap"
)

// New builds a Logger writing to w. Unknown backends fall back to slog text
// output; unknown levels fall back to info.
func New(backend, level string, w io.Writer) Logger {
	switch strings.ToLower(backend) {
	case BackendZap:
		return NewZapLogger(w, level)
	case BackendJSON:
		return NewSlogLogger(w, level, true)
	default:
		return NewSlogLogger(w, level, false)
	}
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return NewSlogLogger(io.Discard, "error", false)
}
