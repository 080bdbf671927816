package baas

import (
	"context"

	"github.com/healthify/portal/internal/platform/auth"
)

// ForRequest scopes h to the signed-in user's access token so the backend's
// row-level policies apply. Without a token in ctx, h is returned unchanged.
func ForRequest(ctx context.Context, h Handle) Handle {
	if s, ok := auth.SessionFromContext(ctx); ok && s.AccessToken != "" {
		return h.WithAccessToken(s.AccessToken)
	}
	return h
}
