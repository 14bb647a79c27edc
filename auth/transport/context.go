package transport

import "context"

type contextKey string

const anonymousKey = contextKey("appkit.anonymous")

// WithAnonymous marks requests issued with the returned context as
// unauthenticated: no Authorization header is attached even when a usable
// token is stored. Password-reset confirmation uses this so a stale bearer
// token never rides along with the reset credential.
func WithAnonymous(ctx context.Context) context.Context {
	return context.WithValue(ctx, anonymousKey, true)
}

func isAnonymous(ctx context.Context) bool {
	value, _ := ctx.Value(anonymousKey).(bool)
	return value
}
