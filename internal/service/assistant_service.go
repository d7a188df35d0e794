package service

import (
	"context"

	"ai-assistant-go/internal/repository"
)

// AssistantDTO 是助手列表接口的响应项，按请求语言本地化展示字段。
type AssistantDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// AssistantService 定义了助手目录的查询接口。
type AssistantService interface {
	ListActive(ctx context.Context, lang, category string) ([]AssistantDTO, error)
}

type assistantService struct {
	assistantRepo repository.AssistantRepository
}

// NewAssistantService 创建一个新的 AssistantService 实例。
func NewAssistantService(assistantRepo repository.AssistantRepository) AssistantService {
	return &assistantService{assistantRepo: assistantRepo}
}

// ListActive 返回启用中的助手列表，名称与描述按 lang 本地化。
func (s *assistantService) ListActive(ctx context.Context, lang, category string) ([]AssistantDTO, error) {
	assistants, err := s.assistantRepo.FindActive(ctx, category)
	if err != nil {
		return nil, err
	}
	dtos := make([]AssistantDTO, 0, len(assistants))
	for i := range assistants {
		a := &assistants[i]
		dtos = append(dtos, AssistantDTO{
			ID:          a.ID,
			Name:        a.LocalizedName(lang),
			Description: a.LocalizedDescription(lang),
			Category:    a.Category,
		})
	}
	return dtos, nil
}
