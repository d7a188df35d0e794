package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ai-assistant-go/internal/service"
)

// AssistantHandler 处理助手目录相关的 API 请求。
type AssistantHandler struct {
	service service.AssistantService
}

// NewAssistantHandler 创建一个新的 AssistantHandler。
func NewAssistantHandler(service service.AssistantService) *AssistantHandler {
	return &AssistantHandler{service: service}
}

// List 处理获取启用助手列表的请求。
// 支持 lang（en/ru，默认 en）与 category 查询参数。
func (h *AssistantHandler) List(c *gin.Context) {
	lang := c.DefaultQuery("lang", "en")
	category := c.Query("category")

	assistants, err := h.service.ListActive(c.Request.Context(), lang, category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    http.StatusInternalServerError,
			"message": "Failed to retrieve assistants",
			"data":    nil,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data":    assistants,
	})
}
