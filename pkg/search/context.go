package search

import "context"

type requestIDKey struct{}

// WithRequestID returns a context carrying a caller-assigned request ID.
// The pipeline uses it for logs and telemetry so recorded events can be
// correlated with the response the caller saw. An empty ID is ignored.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the ID set by WithRequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
