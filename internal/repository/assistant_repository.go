package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"ai-assistant-go/internal/model"
)

// AssistantRepository 定义了助手数据的只读访问接口。
type AssistantRepository interface {
	FindByID(ctx context.Context, id string) (*model.Assistant, error)
	FindActive(ctx context.Context, category string) ([]model.Assistant, error)
}

// assistantRepository 是 AssistantRepository 接口的 GORM 实现。
type assistantRepository struct {
	db *gorm.DB
}

// NewAssistantRepository 创建一个新的 AssistantRepository 实例。
func NewAssistantRepository(db *gorm.DB) AssistantRepository {
	return &assistantRepository{db: db}
}

// FindByID 根据 ID 查找一个助手。
func (r *assistantRepository) FindByID(ctx context.Context, id string) (*model.Assistant, error) {
	var assistant model.Assistant
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&assistant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &assistant, nil
}

// FindActive 检索所有启用中的助手，category 非空时按分类过滤。
func (r *assistantRepository) FindActive(ctx context.Context, category string) ([]model.Assistant, error) {
	var assistants []model.Assistant
	q := r.db.WithContext(ctx).Where("is_active = ?", true)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	err := q.Order("name_en ASC").Find(&assistants).Error
	return assistants, err
}
