package auth

import "context"

type contextKey string

const adminClaimsKey contextKey = "admin_claims"

// WithAdminClaims stores verified admin claims in the context.
func WithAdminClaims(ctx context.Context, claims *AdminClaims) context.Context {
	return context.WithValue(ctx, adminClaimsKey, claims)
}

// AdminClaimsFromContext returns the claims set by RequireAdmin.
func AdminClaimsFromContext(ctx context.Context) (*AdminClaims, bool) {
	v, ok := ctx.Value(adminClaimsKey).(*AdminClaims)
	return v, ok && v != nil
}
