// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ai-assistant-go/internal/service"
	"ai-assistant-go/pkg/llm"
	"ai-assistant-go/pkg/log"
)

// GenerateHandler 处理核心的 AI 应答生成请求。
type GenerateHandler struct {
	service service.GenerateService
}

// NewGenerateHandler 创建一个新的 GenerateHandler。
func NewGenerateHandler(service service.GenerateService) *GenerateHandler {
	return &GenerateHandler{service: service}
}

// Generate 处理 POST /generate。
// 响应体与原边缘函数的契约保持一致：
// 成功 {aiResponse, messageId}；失败 {error[, details]}，状态码 400/404/500。
func (h *GenerateHandler) Generate(c *gin.Context) {
	var req service.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.ChatID == "" || req.UserMessage == "" || req.AssistantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	result, err := h.service.Generate(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// writeError 将流水线错误分类映射到 HTTP 响应。
// 原始错误在服务端完整记录；返回给调用方的是简短文案，
// 仅上游故障在 details 中回显诊断信息（可运维性与信息暴露的权衡）。
func (h *GenerateHandler) writeError(c *gin.Context, err error) {
	var storageErr *service.StorageError
	var upstreamErr *llm.UpstreamError

	switch {
	case errors.Is(err, service.ErrAssistantNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Assistant not found"})
	case errors.Is(err, service.ErrChatNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Chat not found"})
	case errors.Is(err, llm.ErrMissingCredential):
		log.Error("completion credential missing", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server configuration error"})
	case errors.As(err, &storageErr):
		log.Error("pipeline storage failure", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error " + storageErr.Op})
	case errors.Is(err, llm.ErrAttemptsExhausted), errors.As(err, &upstreamErr):
		log.Error("completion api failure", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "details": err.Error()})
	default:
		log.Error("unexpected error in generate pipeline", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "details": err.Error()})
	}
}
