package middleware

import "context"

type contextKey string

const (
	sessionIDKey contextKey = "session_id"
	userEmailKey contextKey = "user_email"
)

// SessionID returns the opaque session id attached by the Session
// middleware, empty when the middleware did not run.
func SessionID(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey).(string); ok {
		return id
	}
	return ""
}

// UserEmail returns the logged-in identity, empty for anonymous requests.
func UserEmail(ctx context.Context) string {
	if email, ok := ctx.Value(userEmailKey).(string); ok {
		return email
	}
	return ""
}

func withSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}

func withUserEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, userEmailKey, email)
}
