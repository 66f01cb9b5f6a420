package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// Keys used to store the authenticated principal.
// Using a custom type prevents collisions.
const (
	userIDKey   = contextKey("userID")
	tenantIDKey = contextKey("tenantID")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userID, ok := c.Get(string(userIDKey)); ok {
		if s, ok := userID.(string); ok {
			return s, true
		}
	}
	return GetUserIDFromCtx(c.Request.Context())
}

// GetTenantIDFromContext retrieves the tenant the request is scoped to.
func GetTenantIDFromContext(c *gin.Context) (string, bool) {
	if tenantID, ok := c.Get(string(tenantIDKey)); ok {
		if s, ok := tenantID.(string); ok {
			return s, true
		}
	}
	return GetTenantIDFromCtx(c.Request.Context())
}

func GetUserIDFromCtx(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

func GetTenantIDFromCtx(ctx context.Context) (string, bool) {
	tenantID, ok := ctx.Value(tenantIDKey).(string)
	return tenantID, ok && tenantID != ""
}

// WithPrincipal stores the authenticated user and tenant in ctx.
func WithPrincipal(ctx context.Context, userID, tenantID string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, tenantIDKey, tenantID)
}
