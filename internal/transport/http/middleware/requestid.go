package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const KeyRequestID = "X-Request-ID"

// RequestID 透传调用方的请求 id，缺省或超长时重新生成；
// 同时写回响应头方便排查
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader(KeyRequestID))
		if rid == "" || len(rid) > 64 {
			rid = uuid.NewString()
		}
		c.Set(KeyRequestID, rid)
		c.Writer.Header().Set(KeyRequestID, rid)
		c.Next()
	}
}
