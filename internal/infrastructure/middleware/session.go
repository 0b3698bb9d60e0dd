// Package middleware provides Gin middleware for the HTTP surface.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cms_backend/internal/api"
)

// SessionChecker reports whether a customer is currently logged in.
// The session controller satisfies this.
type SessionChecker interface {
	IsLoggedIn() bool
}

// LoginRequired returns a Gin middleware that restricts access to routes
// that read or mutate customer data to the logged-in views.
func LoginRequired(s SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.IsLoggedIn() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "login required"})
			return
		}
		c.Next()
	}
}
