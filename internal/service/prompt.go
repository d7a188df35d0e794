// Package service 包含了应用的业务逻辑层。
package service

import (
	"ai-assistant-go/internal/model"
	"ai-assistant-go/pkg/llm"
)

// BuildMessages 将助手的 system prompt、历史消息与本次用户输入拼装为
// 发往补全 API 的有序消息列表。纯函数，不做任何截断或改写：
// system 恒为第一条且仅一条，历史按存储顺序逐条映射
// （user→user，ai→assistant），最后追加一条本次输入的 user 消息。
// N 条历史 ⇒ N+2 条输出。
func BuildMessages(systemPrompt string, history []model.Message, userInput string) []llm.Message {
	msgs := make([]llm.Message, 0, len(history)+2)
	msgs = append(msgs, llm.Message{Role: model.RoleSystem, Content: systemPrompt})
	for _, m := range history {
		role := model.RoleAssistant
		if m.SenderType == model.SenderUser {
			role = model.RoleUser
		}
		msgs = append(msgs, llm.Message{Role: role, Content: m.Content})
	}
	msgs = append(msgs, llm.Message{Role: model.RoleUser, Content: userInput})
	return msgs
}
