// internal/handlers/session.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/library-shop/internal/middleware"
	"github.com/javajoker/library-shop/internal/services"
	"github.com/javajoker/library-shop/internal/utils"
)

// requireSession returns the request's session or writes an error response.
func requireSession(c *gin.Context) (*services.Session, bool) {
	session, ok := middleware.GetSession(c)
	if !ok {
		utils.InternalErrorResponse(c, "session middleware is not installed")
		return nil, false
	}
	return session, true
}
