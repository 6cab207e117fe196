package auth

import (
	"context"

	"github.com/Rehan1234890/inventory/internal/domain"
)

// Identity is the authenticated caller attached to a request context by the
// bearer-token middleware.
type Identity struct {
	UserID int64
	Role   domain.Role
}

type contextKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}
