package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"vetscribe-server/internal/config"
	"vetscribe-server/internal/utils"
)

// AuthMiddleware creates a middleware for JWT authentication. This is a
// single-operator app, so there are no roles: any valid token is the
// operator.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Unauthorized(c, "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			utils.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(parts[1], cfg.JWTSecret)
		if err != nil {
			utils.Unauthorized(c, "Invalid token: "+err.Error())
			c.Abort()
			return
		}

		c.Set("operatorEmail", claims.Email)
		c.Next()
	}
}

// GetOperatorEmail returns the signed-in operator's email from the context.
func GetOperatorEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get("operatorEmail")
	if !exists {
		return "", false
	}
	str, ok := email.(string)
	return str, ok
}
