package service

import (
	"context"
	"errors"
	"time"

	"ai-assistant-go/internal/model"
	"ai-assistant-go/internal/repository"
)

// ErrNotChatOwner 表示调用者试图操作不属于自己的会话。
var ErrNotChatOwner = errors.New("chat does not belong to the caller")

// ChatListItem 是会话列表接口的响应项，附带助手展示名。
type ChatListItem struct {
	ID            string  `json:"id"`
	AssistantID   string  `json:"assistant_id"`
	AssistantName string  `json:"assistant_name"`
	Title         *string `json:"title"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

// ChatService 定义了会话管理的接口（核心生成流水线之外的读写面）。
type ChatService interface {
	ListByUser(ctx context.Context, userID, lang string) ([]ChatListItem, error)
	Create(ctx context.Context, userID, assistantID string) (*model.Chat, error)
	ListMessages(ctx context.Context, userID, chatID string) ([]model.Message, error)
	Delete(ctx context.Context, userID, chatID string) error
}

type chatService struct {
	chatRepo      repository.ChatRepository
	messageRepo   repository.MessageRepository
	assistantRepo repository.AssistantRepository
}

// NewChatService 创建一个新的 ChatService 实例。
func NewChatService(
	chatRepo repository.ChatRepository,
	messageRepo repository.MessageRepository,
	assistantRepo repository.AssistantRepository,
) ChatService {
	return &chatService{
		chatRepo:      chatRepo,
		messageRepo:   messageRepo,
		assistantRepo: assistantRepo,
	}
}

// ListByUser 返回用户的全部会话，最近更新的在前。
func (s *chatService) ListByUser(ctx context.Context, userID, lang string) ([]ChatListItem, error) {
	chats, err := s.chatRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]ChatListItem, 0, len(chats))
	for i := range chats {
		c := &chats[i]
		item := ChatListItem{
			ID:          c.ID,
			AssistantID: c.AssistantID,
			Title:       c.Title,
			CreatedAt:   c.CreatedAt.Format(time.RFC3339),
			UpdatedAt:   c.UpdatedAt.Format(time.RFC3339),
		}
		if c.Assistant != nil {
			item.AssistantName = c.Assistant.LocalizedName(lang)
		}
		items = append(items, item)
	}
	return items, nil
}

// Create 为用户创建一个指向指定助手的新会话。
// 助手必须存在且处于启用状态。
func (s *chatService) Create(ctx context.Context, userID, assistantID string) (*model.Chat, error) {
	assistant, err := s.assistantRepo.FindByID(ctx, assistantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAssistantNotFound
		}
		return nil, err
	}
	if !assistant.IsActive {
		return nil, ErrAssistantNotFound
	}
	return s.chatRepo.Create(ctx, userID, assistantID)
}

// ListMessages 返回会话的有序转写，并校验会话归属。
func (s *chatService) ListMessages(ctx context.Context, userID, chatID string) ([]model.Message, error) {
	chat, err := s.chatRepo.FindByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, err
	}
	if chat.UserID != userID {
		return nil, ErrNotChatOwner
	}
	return s.messageRepo.ListByChat(ctx, chatID)
}

// Delete 删除用户自己的会话及其消息。
func (s *chatService) Delete(ctx context.Context, userID, chatID string) error {
	chat, err := s.chatRepo.FindByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrChatNotFound
		}
		return err
	}
	if chat.UserID != userID {
		return ErrNotChatOwner
	}
	return s.chatRepo.Delete(ctx, chatID)
}
