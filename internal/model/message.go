package model

import "time"

// 消息发送方类型。created_at 升序即为会话的规范转写顺序。
const (
	SenderUser = "user"
	SenderAI   = "ai"
)

// 补全 API 使用的消息角色。落库的 sender_type 在拼装上下文时
// 映射到这些角色（user→user，ai→assistant）。
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message 代表会话中的一个回合，由用户或 AI 产生。
type Message struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	ChatID     string    `gorm:"type:uuid;index;not null" json:"chat_id"`
	SenderType string    `gorm:"column:sender_type;not null" json:"sender_type"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Message) TableName() string {
	return "messages"
}
