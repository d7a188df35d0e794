package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"ai-assistant-go/pkg/log"
)

// RequestLogger 是一个 Gin 中间件，记录每个请求的概要日志。
// 请求体可能包含用户对话内容，出于隐私考虑不进入日志。
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		log.Infow("HTTP Request Log",
			"statusCode", c.Writer.Status(),
			"latency", time.Since(startTime).String(),
			"clientIP", c.ClientIP(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
	}
}
