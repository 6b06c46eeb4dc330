package common

import "context"

type contextKey string

// AdminUsernameKey carries the username resolved from the bearer token.
// Admin identity is re-derived per request; there is no shared session
// object.
const AdminUsernameKey contextKey = "admin_username"

// GetAdminUsernameFromContext extracts the authenticated admin username
// from the request context.
func GetAdminUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(AdminUsernameKey).(string)
	return username, ok
}
