package model

import "time"

// Chat 代表一个用户与某个助手之间持久化的会话线程。
// Title 在会话产生第一组消息时由首条用户消息推断生成，且只写入一次。
type Chat struct {
	ID          string     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string     `gorm:"type:uuid;index;not null" json:"user_id"`
	AssistantID string     `gorm:"type:uuid;index;not null" json:"assistant_id"`
	Title       *string    `json:"title"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	Assistant   *Assistant `gorm:"foreignKey:AssistantID" json:"assistant,omitempty"`
}

func (Chat) TableName() string {
	return "chats"
}
