package httpx

import (
	"context"
	"net/http"
)

type contextKey string

const (
	requestIDKey contextKey = "requestID"
	sessionIDKey contextKey = "sessionID"
	trackerKey   contextKey = "sessionTracker"
)

// sessionTracker lets an inner middleware report the session back to the access log.
type sessionTracker struct {
	id string
}

func withSessionTracker(ctx context.Context, t *sessionTracker) context.Context {
	return context.WithValue(ctx, trackerKey, t)
}

// RequestIDFrom retrieves the request ID from the request context.
func RequestIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// ContextWithRequestID returns a new context carrying the request ID.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// SessionIDFrom retrieves the browsing session ID from the request context.
func SessionIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(sessionIDKey).(string); ok {
		return v
	}
	return ""
}

// ContextWithSessionID returns a new context carrying the session ID for logging.
func ContextWithSessionID(ctx context.Context, sessionID string) context.Context {
	if t, ok := ctx.Value(trackerKey).(*sessionTracker); ok {
		t.id = sessionID
	}
	return context.WithValue(ctx, sessionIDKey, sessionID)
}
