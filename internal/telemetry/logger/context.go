package logger

import "context"

// contextKey is a type for context keys to avoid collisions.
type contextKey string

// connIDKey is the context key for the connection id.
const connIDKey contextKey = "respkv.conn_id"

// WithConnID adds a connection id to the context.
func WithConnID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, connIDKey, id)
}

// ConnIDFromContext extracts the connection id from context.
func ConnIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(connIDKey).(string); ok {
		return id
	}
	return ""
}
