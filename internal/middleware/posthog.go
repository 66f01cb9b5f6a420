package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIRequestEvent is the analytics event captured for every successful API call.
const APIRequestEvent = "api_request"

// pathsToSkip contains paths that should not be tracked
var pathsToSkip = map[string]bool{
	"/health": true,
}

// AnalyticsClient is the part of the posthog wrapper the middleware needs.
type AnalyticsClient interface {
	IsInitialized() bool
	Enqueue(distinctID string, event string, properties map[string]any)
}

// PosthogMiddleware captures an api_request event per successful authenticated request.
func PosthogMiddleware(client AnalyticsClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || !client.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest || c.FullPath() == "" {
			return
		}

		userID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"route":       c.FullPath(),
			"status_code": c.Writer.Status(),
		}
		if tenantID, ok := GetTenantIDFromContext(c); ok {
			props["tenant_id"] = tenantID
		}
		if len(c.Params) > 0 {
			params := make(map[string]string, len(c.Params))
			for _, p := range c.Params {
				params[p.Key] = p.Value
			}
			props["params"] = params
		}

		client.Enqueue(userID, APIRequestEvent, props)
	}
}
