package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ai-assistant-go/pkg/token"
)

// 上下文键：已验证的调用者用户 ID。
const ContextUserID = "userID"

// Auth 创建一个 Gin 中间件，验证托管认证服务签发的 Bearer token，
// 并把 token 的 subject（用户 ID）放入请求上下文。
// 本服务只验证，不签发；注册/登录在托管认证侧完成。
func Auth(manager *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, bearerPrefix)

		claims, err := manager.Verify(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ContextUserID, claims.Subject)
		c.Next()
	}
}
