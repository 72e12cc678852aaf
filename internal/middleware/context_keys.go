package middleware

import "github.com/gin-gonic/gin"

// Keys used to store the authenticated principal in the Gin context.
const (
	actorKey  = contextKey("actor")
	tenantKey = contextKey("tenantID")
)

// GetActorFromContext retrieves the authenticated actor from the Gin context.
// It returns the actor and a boolean indicating if it was found.
func GetActorFromContext(c *gin.Context) (string, bool) {
	return stringFromContext(c, actorKey)
}

// GetTenantIDFromContext retrieves the tenant the request is scoped to.
func GetTenantIDFromContext(c *gin.Context) (string, bool) {
	return stringFromContext(c, tenantKey)
}

func stringFromContext(c *gin.Context, key contextKey) (string, bool) {
	val, exists := c.Get(string(key))
	if !exists {
		// check in the request context as well
		if v, ok := c.Request.Context().Value(key).(string); ok && v != "" {
			return v, true
		}
		return "", false
	}
	s, ok := val.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
