// Package attr has the slog attribute helpers shared by every module so log keys stay consistent.
package attr

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type correlationKey struct{}

const CorrelationIDKey = "correlation_id"

// WithCorrelationID stores id on ctx, generating one when id is empty.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = uuid.NewString()
	}
	return context.WithValue(ctx, correlationKey{}, id)
}

// CorrelationID returns the id stored on ctx, or "".
func CorrelationID(ctx context.Context) string {
	if v, ok := ctx.Value(correlationKey{}).(string); ok {
		return v
	}
	return ""
}

// ExtractCorrelationID returns the correlation id as a log attribute.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	return slog.String(CorrelationIDKey, CorrelationID(ctx))
}

func String(key, value string) slog.Attr      { return slog.String(key, value) }
func Int(key string, value int) slog.Attr     { return slog.Int(key, value) }
func Int64(key string, value int64) slog.Attr { return slog.Int64(key, value) }
func Bool(key string, value bool) slog.Attr   { return slog.Bool(key, value) }
func Any(key string, value any) slog.Attr     { return slog.Any(key, value) }

// Error logs err under "error"; a nil error logs an empty string.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

func RoundID(value int64) slog.Attr  { return slog.Int64("round_id", value) }
func PlayerID(value int64) slog.Attr { return slog.Int64("player_id", value) }
