package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"libris/internal/shared/errors"
)

// ParseIDParam parses a numeric ID from a URL path parameter.
// paramName is the Gin route parameter name (e.g. "id").
// entityName is used in error messages (e.g. "book", "loan").
func ParseIDParam(c *gin.Context, paramName, entityName string) (uint, error) {
	raw := c.Param(paramName)
	if raw == "" {
		return 0, errors.NewValidationError(entityName + " ID is required")
	}

	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("invalid " + entityName + " ID")
	}

	return uint(id), nil
}

// PrincipalFromContext reads the authenticated user id and role that the auth
// middleware stored in the gin context. ok is false for unauthenticated requests.
func PrincipalFromContext(c *gin.Context) (userID uint, role string, ok bool) {
	rawID, exists := c.Get("user_id")
	if !exists {
		return 0, "", false
	}
	id, ok2 := rawID.(uint)
	if !ok2 || id == 0 {
		return 0, "", false
	}
	return id, c.GetString("user_role"), true
}
