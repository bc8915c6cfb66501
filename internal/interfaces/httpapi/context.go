package httpapi

import (
	"context"

	"github.com/fridayfut/fridayfut/internal/usecase"
)

type contextKey string

const principalContextKey contextKey = "auth_principal"

func withPrincipal(ctx context.Context, p usecase.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

func principalFromContext(ctx context.Context) (usecase.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(usecase.Principal)
	return p, ok
}
