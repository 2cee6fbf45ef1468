package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"salescrm/model"
	"salescrm/services"
)

const userKey = "user"

func AccessTokenMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.Request.Header.Get("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			return
		}

		bearerToken := strings.Split(header, " ")
		if len(bearerToken) != 2 || bearerToken[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			return
		}

		claims, err := services.ParseAccessToken(secret, bearerToken[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token is expired or invalid"})
			return
		}

		c.Set(userKey, claims.AuthUser())
		c.Set("userId", claims.UserID)
		c.Next()
	}
}

// RequireRoles must run after AccessTokenMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Claims not found"})
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	}
}

func CurrentUser(c *gin.Context) (model.AuthUser, bool) {
	v, exists := c.Get(userKey)
	if !exists {
		return model.AuthUser{}, false
	}
	user, ok := v.(model.AuthUser)
	return user, ok
}
