package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ai-assistant-go/internal/middleware"
	"ai-assistant-go/internal/service"
)

// ChatHandler 处理会话管理相关的 API 请求。
type ChatHandler struct {
	service service.ChatService
}

// NewChatHandler 创建一个新的 ChatHandler。
func NewChatHandler(service service.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// createChatRequest 是创建会话的请求体。
type createChatRequest struct {
	AssistantID string `json:"assistant_id" binding:"required"`
}

// List 处理获取当前用户会话列表的请求。
func (h *ChatHandler) List(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	lang := c.DefaultQuery("lang", "en")

	chats, err := h.service.ListByUser(c.Request.Context(), userID, lang)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    http.StatusInternalServerError,
			"message": "Failed to retrieve chats",
			"data":    nil,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": chats})
}

// Create 处理创建新会话的请求。
func (h *ChatHandler) Create(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	var req createChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    http.StatusBadRequest,
			"message": "assistant_id is required",
			"data":    nil,
		})
		return
	}

	chat, err := h.service.Create(c.Request.Context(), userID, req.AssistantID)
	if err != nil {
		if errors.Is(err, service.ErrAssistantNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"code":    http.StatusNotFound,
				"message": "Assistant not found",
				"data":    nil,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    http.StatusInternalServerError,
			"message": "Failed to create chat",
			"data":    nil,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": chat})
}

// ListMessages 处理获取会话消息转写的请求。
func (h *ChatHandler) ListMessages(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	chatID := c.Param("chatId")

	messages, err := h.service.ListMessages(c.Request.Context(), userID, chatID)
	if err != nil {
		h.writeChatError(c, err, "Failed to retrieve messages")
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": messages})
}

// Delete 处理删除会话的请求。
func (h *ChatHandler) Delete(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	chatID := c.Param("chatId")

	if err := h.service.Delete(c.Request.Context(), userID, chatID); err != nil {
		h.writeChatError(c, err, "Failed to delete chat")
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": nil})
}

// writeChatError 统一映射会话操作的错误响应。
func (h *ChatHandler) writeChatError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrChatNotFound):
		c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "Chat not found", "data": nil})
	case errors.Is(err, service.ErrNotChatOwner):
		c.JSON(http.StatusForbidden, gin.H{"code": http.StatusForbidden, "message": "Forbidden", "data": nil})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": fallback, "data": nil})
	}
}
