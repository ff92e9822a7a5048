package domain

import "context"

type backendTokenKey struct{}

// WithBackendToken returns a context carrying the backend session token. Every
// authenticated backend call reads it from there.
func WithBackendToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, backendTokenKey{}, token)
}

// BackendTokenFromContext returns the backend session token, if one is set.
func BackendTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(backendTokenKey{}).(string)
	return token, ok && token != ""
}
