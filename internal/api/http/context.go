package http

import (
	"context"

	"brecho-backend/internal/security"
)

type contextKey string

const claimsKey contextKey = "session-claims"

// ClaimsFromContext returns the validated session claims injected by the
// auth middleware, or nil on an unauthenticated request.
func ClaimsFromContext(ctx context.Context) *security.SessionClaims {
	claims, _ := ctx.Value(claimsKey).(*security.SessionClaims)
	return claims
}

func withClaims(ctx context.Context, claims *security.SessionClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}
