package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-rbac-service/internal/core/auth"
	resp "go-rbac-service/internal/transport/http/response"
)

// AuthJWT Bearer 校验；通过后在上下文注入 userId / username
func AuthJWT(j *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, "missing token"))
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, "invalid token"))
			return
		}
		c.Set("claims", claims)
		c.Set("userId", claims.UID)
		c.Set("username", claims.Username)
		c.Next()
	}
}
