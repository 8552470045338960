package session

import (
	"context"

	"rideshare/models"
)

type identityKey struct{}

// WithIdentity returns a context carrying the acting user.
func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// CurrentIdentity returns the acting user, if any.
func CurrentIdentity(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(models.Identity)
	return identity, ok && identity.Email != ""
}
