package middleware

import "context"

type contextKey string

const (
	ctxSessionID contextKey = "session_id"
	ctxAdminID   contextKey = "admin_id"
)

func stringFromContext(ctx context.Context, key contextKey) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(key).(string)
	return v
}

// SessionIDFromContext returns the shopper session id stamped by Session,
// or "" when the request never passed through it.
func SessionIDFromContext(ctx context.Context) string {
	return stringFromContext(ctx, ctxSessionID)
}

// AdminIDFromContext returns the authenticated admin id stamped by AdminAuth.
func AdminIDFromContext(ctx context.Context) string {
	return stringFromContext(ctx, ctxAdminID)
}

// WithSessionID injects the shopper session identifier into the context.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSessionID, sessionID)
}

// WithAdminID injects the authenticated admin identifier into the context.
func WithAdminID(ctx context.Context, adminID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxAdminID, adminID)
}
