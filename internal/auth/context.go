package auth

import (
	"context"

	"eats-backend/internal/store"
)

type ctxKey struct{}

// WithAccount attaches the authenticated account to a request context.
func WithAccount(ctx context.Context, a *store.Account) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

// FromContext returns the authenticated account, if any.
func FromContext(ctx context.Context) (*store.Account, bool) {
	a, ok := ctx.Value(ctxKey{}).(*store.Account)
	if !ok || a == nil {
		return nil, false
	}
	return a, true
}
