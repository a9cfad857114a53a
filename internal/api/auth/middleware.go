package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linkbio/linkbio/internal/session"
)

// TokenKey is the gin context key holding the session token of a guarded request.
const TokenKey = "token"

// LoginPath is where visitors without a session are sent.
const LoginPath = "/login"

// RequireAuth only lets requests through whose session holds a token.
// The token is not validated; an invalid one surfaces when the backend rejects it.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := session.From(c).Token()
		if token == "" {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}

		c.Set(TokenKey, token)
		c.Next()
	}
}

// RedirectIfAuthenticated sends visitors who already hold a token to target.
func RedirectIfAuthenticated(target string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if session.From(c).Token() != "" {
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}
		c.Next()
	}
}
