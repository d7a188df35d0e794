package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ai-assistant-go/internal/model"
)

// MessageRepository 定义了消息数据的持久化操作。
type MessageRepository interface {
	// ListByChat 按创建时间升序返回会话的全部消息，空会话返回空切片而非错误。
	ListByChat(ctx context.Context, chatID string) ([]model.Message, error)
	// Insert 写入一条消息并返回带 ID 和时间戳的完整记录。
	Insert(ctx context.Context, chatID, senderType, content string) (*model.Message, error)
}

// messageRepository 是 MessageRepository 接口的 GORM 实现。
type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建一个新的 MessageRepository 实例。
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// ListByChat 检索会话的规范转写顺序（created_at 升序）。
func (r *messageRepository) ListByChat(ctx context.Context, chatID string) ([]model.Message, error) {
	messages := make([]model.Message, 0)
	err := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// Insert 写入一条新消息。不做内部重试，错误原样上抛由调用方分类。
func (r *messageRepository) Insert(ctx context.Context, chatID, senderType, content string) (*model.Message, error) {
	msg := model.Message{
		ID:         uuid.NewString(),
		ChatID:     chatID,
		SenderType: senderType,
		Content:    content,
		CreatedAt:  time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}
