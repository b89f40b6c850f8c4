package ctxutil

import "context"

type ctxKey string

const (
	profileKey   ctxKey = "profile_key"
	requestIDKey ctxKey = "request_id"
)

// WithProfileKey stores the storage key of the active profile in the context.
func WithProfileKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, profileKey, key)
}

// ProfileKeyFromCtx extracts the active profile key from the context.
// Returns "" and false if the value is missing, empty, or of the wrong type.
func ProfileKeyFromCtx(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(profileKey).(string)
	if !ok || key == "" {
		return "", false
	}
	return key, true
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
