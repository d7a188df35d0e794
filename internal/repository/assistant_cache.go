package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"ai-assistant-go/internal/model"
	"ai-assistant-go/pkg/log"
)

// 助手记录对本服务只读，短 TTL 足以吸收绝大部分重复读。
const assistantCacheTTL = 10 * time.Minute

// cachedAssistantRepository 在 AssistantRepository 之上加了一层 Redis 读穿缓存。
// 缓存故障只记录日志并回落到数据库，绝不影响请求结果。
type cachedAssistantRepository struct {
	inner AssistantRepository
	rdb   *redis.Client
}

// NewCachedAssistantRepository 用 Redis 缓存包装一个 AssistantRepository。
func NewCachedAssistantRepository(inner AssistantRepository, rdb *redis.Client) AssistantRepository {
	return &cachedAssistantRepository{inner: inner, rdb: rdb}
}

func assistantCacheKey(id string) string {
	return fmt.Sprintf("assistant:%s", id)
}

// cachedAssistant 是缓存专用的序列化形态。
// 模型上的 Prompt 标记为 json:"-" 以免泄漏到 API 响应，
// 缓存必须完整保留它，否则命中缓存的生成请求会拿到空 prompt。
type cachedAssistant struct {
	ID            string    `json:"id"`
	Prompt        string    `json:"prompt"`
	NameEN        string    `json:"name_en"`
	NameRU        string    `json:"name_ru"`
	DescriptionEN string    `json:"description_en"`
	DescriptionRU string    `json:"description_ru"`
	Category      string    `json:"category"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

func toCachedAssistant(a *model.Assistant) cachedAssistant {
	return cachedAssistant{
		ID:            a.ID,
		Prompt:        a.Prompt,
		NameEN:        a.NameEN,
		NameRU:        a.NameRU,
		DescriptionEN: a.DescriptionEN,
		DescriptionRU: a.DescriptionRU,
		Category:      a.Category,
		IsActive:      a.IsActive,
		CreatedAt:     a.CreatedAt,
	}
}

func (c *cachedAssistant) toModel() *model.Assistant {
	return &model.Assistant{
		ID:            c.ID,
		Prompt:        c.Prompt,
		NameEN:        c.NameEN,
		NameRU:        c.NameRU,
		DescriptionEN: c.DescriptionEN,
		DescriptionRU: c.DescriptionRU,
		Category:      c.Category,
		IsActive:      c.IsActive,
		CreatedAt:     c.CreatedAt,
	}
}

// FindByID 先查缓存，未命中时回源数据库并写回缓存。
func (r *cachedAssistantRepository) FindByID(ctx context.Context, id string) (*model.Assistant, error) {
	key := assistantCacheKey(id)
	jsonData, err := r.rdb.Get(ctx, key).Result()
	if err == nil {
		var cached cachedAssistant
		if uerr := json.Unmarshal([]byte(jsonData), &cached); uerr == nil && cached.ID != "" {
			return cached.toModel(), nil
		}
		// 缓存内容损坏：当作未命中处理
		log.Warnf("assistant cache entry corrupted, falling back to db: %s", id)
	} else if err != redis.Nil {
		log.Warnf("assistant cache read failed: %v", err)
	}

	assistant, err := r.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, merr := json.Marshal(toCachedAssistant(assistant)); merr == nil {
		if serr := r.rdb.Set(ctx, key, data, assistantCacheTTL).Err(); serr != nil {
			log.Warnf("assistant cache write failed: %v", serr)
		}
	}
	return assistant, nil
}

// FindActive 列表查询直接透传，避免分类过滤组合带来的缓存键膨胀。
func (r *cachedAssistantRepository) FindActive(ctx context.Context, category string) ([]model.Assistant, error) {
	return r.inner.FindActive(ctx, category)
}
