// Package middleware 存放 Gin 框架的中间件。
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS 在每一条响应路径上附加宽松的跨域头，并就地应答 OPTIONS 预检。
// 头部取值与移动端既有约定保持一致。
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.String(http.StatusOK, "ok")
			c.Abort()
			return
		}

		c.Next()
	}
}
