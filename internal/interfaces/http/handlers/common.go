package handlers

import (
	"github.com/gin-gonic/gin"

	"libris/internal/shared/authorization"
	"libris/internal/shared/utils"
)

// principalFromContext rebuilds the caller's principal from the values the
// auth middleware stored in the gin context. Returns the zero principal for
// unauthenticated requests.
func principalFromContext(c *gin.Context) authorization.Principal {
	userID, role, ok := utils.PrincipalFromContext(c)
	if !ok {
		return authorization.Principal{}
	}
	return authorization.Principal{
		UserID: userID,
		Role:   authorization.ParseUserRole(role),
	}
}
