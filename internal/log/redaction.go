// Package log provides the logging plumbing shared by the transport and the
// command-line tools: a redacting slog handler and a size-rotated log file.
package log

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
)

// Redacted replaces sensitive values in log output.
const Redacted = "[REDACTED]"

// sensitiveKeys defines the list of keys whose values should be redacted.
// Keys are case-insensitive and matched as substrings.
var sensitiveKeys = []string{
	"password",
	"pass",
	"secret",
	"token",
	"auth",
	"cred",
	"cookie",
}

// RedactingHandler is a slog.Handler that redacts sensitive information:
// attributes with sensitive keys, and passwords embedded in URL values.
type RedactingHandler struct {
	next slog.Handler
}

// NewRedactingHandler creates a new RedactingHandler.
func NewRedactingHandler(next slog.Handler) *RedactingHandler {
	return &RedactingHandler{next: next}
}

// Enabled implements slog.Handler.
func (h *RedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle implements slog.Handler. It redacts sensitive attributes before passing to the next handler.
func (h *RedactingHandler) Handle(ctx context.Context, r slog.Record) error {
	newRecord := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		newRecord.AddAttrs(redactAttr(a))
		return true
	})

	return h.next.Handle(ctx, newRecord)
}

// WithAttrs implements slog.Handler.
func (h *RedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redactedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		redactedAttrs[i] = redactAttr(a)
	}
	return &RedactingHandler{next: h.next.WithAttrs(redactedAttrs)}
}

// WithGroup implements slog.Handler.
func (h *RedactingHandler) WithGroup(name string) slog.Handler {
	return &RedactingHandler{next: h.next.WithGroup(name)}
}

func redactAttr(a slog.Attr) slog.Attr {
	if isSensitiveKey(a.Key) {
		return slog.String(a.Key, Redacted)
	}

	a.Value = a.Value.Resolve()
	switch a.Value.Kind() {
	case slog.KindGroup:
		attrs := a.Value.Group()
		redactedGroup := make([]any, len(attrs))
		for i, attr := range attrs {
			redactedGroup[i] = redactAttr(attr)
		}
		return slog.Group(a.Key, redactedGroup...)
	case slog.KindString:
		return slog.String(a.Key, RedactURL(a.Value.String()))
	}

	return a
}

func isSensitiveKey(key string) bool {
	lowerKey := strings.ToLower(key)
	for _, sens := range sensitiveKeys {
		if strings.Contains(lowerKey, sens) {
			return true
		}
	}
	return false
}

// RedactURL hides the password of a URL with embedded credentials (as "xxxxx").
// Other strings are returned unchanged.
func RedactURL(s string) string {
	if !strings.Contains(s, "://") || !strings.Contains(s, "@") {
		return s
	}
	u, err := url.Parse(s)
	if err != nil || u.User == nil {
		return s
	}
	return u.Redacted()
}
