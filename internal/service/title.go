package service

import (
	"context"
	"strings"

	"ai-assistant-go/internal/repository"
	"ai-assistant-go/pkg/llm"
	"ai-assistant-go/pkg/log"
)

// 标题生成用小额度、低开销的固定参数，与主响应相互独立。
const (
	titleSystemPrompt = "Generate a short, concise title (maximum 6 words) for a conversation that starts with this message. Return only the title without quotes or additional text."
	titleFallback     = "New Conversation"
)

var (
	titleTemperature = 0.7
	titleMaxTokens   = 20
)

// titleGenerator 根据会话的开场消息推断一个简短标题并写入 chats.title。
// 整个过程尽力而为：任何失败只记录日志，绝不影响主响应。
type titleGenerator struct {
	llmClient llm.Client
	chatRepo  repository.ChatRepository
	model     string
}

func newTitleGenerator(llmClient llm.Client, chatRepo repository.ChatRepository, model string) *titleGenerator {
	return &titleGenerator{llmClient: llmClient, chatRepo: chatRepo, model: model}
}

// Generate 用固定的廉价模型从开场消息生成标题并持久化。
func (g *titleGenerator) Generate(ctx context.Context, chatID, openingMessage string) {
	messages := []llm.Message{
		{Role: "system", Content: titleSystemPrompt},
		{Role: "user", Content: openingMessage},
	}
	params := llm.CompletionParams{
		Model:       g.model,
		Temperature: &titleTemperature,
		MaxTokens:   &titleMaxTokens,
	}

	title, err := g.llmClient.Complete(ctx, messages, params)
	if err != nil {
		log.Warnf("title generation failed for chat %s: %v", chatID, err)
		return
	}

	title = strings.Trim(strings.TrimSpace(title), `"'`)
	if title == "" {
		title = titleFallback
	}

	if err := g.chatRepo.UpdateTitle(ctx, chatID, title); err != nil {
		log.Warnf("failed to persist title for chat %s: %v", chatID, err)
	}
}
