package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ai-assistant-go/internal/model"
)

// ChatRepository 定义了会话数据的持久化操作。
type ChatRepository interface {
	FindByID(ctx context.Context, id string) (*model.Chat, error)
	FindByUser(ctx context.Context, userID string) ([]model.Chat, error)
	Create(ctx context.Context, userID, assistantID string) (*model.Chat, error)
	UpdateTitle(ctx context.Context, id, title string) error
	Delete(ctx context.Context, id string) error
}

// chatRepository 是 ChatRepository 接口的 GORM 实现。
type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository 创建一个新的 ChatRepository 实例。
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

// FindByID 根据 ID 查找一个会话。
func (r *chatRepository) FindByID(ctx context.Context, id string) (*model.Chat, error) {
	var chat model.Chat
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&chat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

// FindByUser 检索某个用户的全部会话，最近更新的在前，附带助手信息。
func (r *chatRepository) FindByUser(ctx context.Context, userID string) ([]model.Chat, error) {
	var chats []model.Chat
	err := r.db.WithContext(ctx).
		Preload("Assistant").
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&chats).Error
	return chats, err
}

// Create 为指定用户与助手创建一个新会话。
func (r *chatRepository) Create(ctx context.Context, userID, assistantID string) (*model.Chat, error) {
	chat := model.Chat{
		ID:          uuid.NewString(),
		UserID:      userID,
		AssistantID: assistantID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(&chat).Error; err != nil {
		return nil, err
	}
	return &chat, nil
}

// UpdateTitle 更新会话标题。标题只写一次的守卫在上层，这里是单行 UPDATE。
func (r *chatRepository) UpdateTitle(ctx context.Context, id, title string) error {
	res := r.db.WithContext(ctx).Model(&model.Chat{}).Where("id = ?", id).Update("title", title)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete 删除会话及其全部消息。两条语句之间不要求事务原子性，
// 残留消息对读路径不可见（列表按 chat 过滤）。
func (r *chatRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("chat_id = ?", id).Delete(&model.Message{}).Error; err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Chat{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
