package service

import (
	"context"
	"errors"

	"ai-assistant-go/internal/model"
	"ai-assistant-go/internal/repository"
	"ai-assistant-go/pkg/llm"
	"ai-assistant-go/pkg/log"
)

// GenerateRequest 是生成接口的请求体，字段名与移动端既有约定保持一致。
type GenerateRequest struct {
	ChatID        string         `json:"chatId"`
	UserMessage   string         `json:"userMessage"`
	AssistantID   string         `json:"assistantId"`
	ModelSettings *ModelSettings `json:"modelSettings,omitempty"`
}

// ModelSettings 是调用方可选的生成参数。
// ModelName 是建议性的：不在允许列表内会被静默替换为默认模型。
type ModelSettings struct {
	Temperature *float64 `json:"temperature,omitempty"`
	MaxTokens   *int     `json:"max_tokens,omitempty"`
	ModelName   string   `json:"model_name,omitempty"`
}

// GenerateResult 是生成接口的成功响应。
// MessageID 对应已落库的 AI 消息记录。
type GenerateResult struct {
	AIResponse string `json:"aiResponse"`
	MessageID  string `json:"messageId"`
}

// GenerateService 定义了核心生成流水线的接口。
type GenerateService interface {
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResult, error)
}

type generateService struct {
	assistantRepo repository.AssistantRepository
	chatRepo      repository.ChatRepository
	messageRepo   repository.MessageRepository
	llmClient     llm.Client
	titleGen      *titleGenerator
}

// NewGenerateService 创建一个新的 GenerateService 实例。
// 所有依赖显式注入，进程内不持有可变共享状态，请求之间相互独立。
func NewGenerateService(
	assistantRepo repository.AssistantRepository,
	chatRepo repository.ChatRepository,
	messageRepo repository.MessageRepository,
	llmClient llm.Client,
	titleModel string,
) GenerateService {
	return &generateService{
		assistantRepo: assistantRepo,
		chatRepo:      chatRepo,
		messageRepo:   messageRepo,
		llmClient:     llmClient,
		titleGen:      newTitleGenerator(llmClient, chatRepo, titleModel),
	}
}

// Generate 串行执行生成流水线：
// 取助手 → 取会话 → 取历史 → 落库用户消息 → 拼装上下文 → 调补全 API →
// 落库 AI 消息 → （仅首组消息）生成并写入标题 → 返回结果。
// 任一读写失败即中止剩余步骤；标题生成尽力而为，失败只记日志。
func (s *generateService) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResult, error) {
	assistant, err := s.assistantRepo.FindByID(ctx, req.AssistantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAssistantNotFound
		}
		return nil, &StorageError{Op: "fetching assistant", Err: err}
	}

	chat, err := s.chatRepo.FindByID(ctx, req.ChatID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, &StorageError{Op: "fetching chat", Err: err}
	}

	history, err := s.messageRepo.ListByChat(ctx, req.ChatID)
	if err != nil {
		return nil, &StorageError{Op: "fetching chat history", Err: err}
	}

	// 标题守卫在插入用户消息之前取值：历史为空且标题未设置
	firstExchange := len(history) == 0 && chat.Title == nil

	if _, err := s.messageRepo.Insert(ctx, req.ChatID, model.SenderUser, req.UserMessage); err != nil {
		return nil, &StorageError{Op: "saving user message", Err: err}
	}

	messages := BuildMessages(assistant.Prompt, history, req.UserMessage)

	params := llm.CompletionParams{}
	if req.ModelSettings != nil {
		params.Model = req.ModelSettings.ModelName
		params.Temperature = req.ModelSettings.Temperature
		params.MaxTokens = req.ModelSettings.MaxTokens
	}

	aiResponse, err := s.llmClient.Complete(ctx, messages, params)
	if err != nil {
		return nil, err
	}

	aiMessage, err := s.messageRepo.Insert(ctx, req.ChatID, model.SenderAI, aiResponse)
	if err != nil {
		return nil, &StorageError{Op: "saving AI message", Err: err}
	}

	if firstExchange {
		s.titleGen.Generate(ctx, req.ChatID, req.UserMessage)
	}

	log.Infow("ai response generated",
		"chatId", req.ChatID,
		"assistantId", req.AssistantID,
		"messageId", aiMessage.ID,
	)
	return &GenerateResult{AIResponse: aiResponse, MessageID: aiMessage.ID}, nil
}
