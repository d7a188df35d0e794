// Package llm provides a client for the external chat-completion API.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"ai-assistant-go/internal/config"
	"ai-assistant-go/pkg/log"
)

// 与补全 API 交互过程中可能出现的错误。
var (
	// ErrMissingCredential 表示补全 API 凭证未配置，调用在触碰网络前即被拒绝。
	ErrMissingCredential = errors.New("llm: api key is not configured")
	// ErrAttemptsExhausted 表示限流/瞬时故障重试已达上限仍未成功。
	ErrAttemptsExhausted = errors.New("llm: retry attempts exhausted")
)

// UpstreamError 携带补全 API 返回的非 2xx（且非 429）状态与响应体。
// 此类错误不重试，立即上抛。
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("llm: upstream returned status %d: %s", e.StatusCode, e.Body)
}

// Message 表示一条角色消息。
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionParams 控制单次补全调用的模型与生成行为。
// Model 为空或不在允许列表内时会被替换为配置的默认模型（见 resolveModel）。
type CompletionParams struct {
	Model       string
	Temperature *float64
	MaxTokens   *int
}

// Client 定义了补全调用的接口。
type Client interface {
	// Complete 发起一次补全调用并返回生成文本。
	// 429 与网络层错误按指数退避重试；其他非 2xx 立即失败。
	Complete(ctx context.Context, messages []Message, params CompletionParams) (string, error)
}

// 上游未返回任何候选时使用的兜底文案。
const emptyCompletionFallback = "Sorry, I couldn't generate a response."

type openAIClient struct {
	cfg    config.LLMConfig
	client *http.Client
	sleep  SleepFunc
}

// NewClient 基于配置创建一个补全 API 客户端。
func NewClient(cfg config.LLMConfig) Client {
	return &openAIClient{
		cfg:    cfg,
		client: &http.Client{},
		sleep:  sleepWithContext,
	}
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete 实现 Client 接口。
// 单次调用的状态机：Pending →(成功)→ Done；
// Pending →(429/网络错误，剩余尝试)→ Pending；
// Pending →(429/网络错误，用尽)→ Failed(ErrAttemptsExhausted)；
// Pending →(其他 HTTP 错误)→ Failed(UpstreamError)。
func (c *openAIClient) Complete(ctx context.Context, messages []Message, params CompletionParams) (string, error) {
	if c.cfg.APIKey == "" {
		return "", ErrMissingCredential
	}

	reqBody := chatRequest{
		Model:       c.resolveModel(params.Model),
		Messages:    messages,
		Temperature: c.cfg.Generation.Temperature,
		MaxTokens:   c.cfg.Generation.MaxTokens,
	}
	if params.Temperature != nil {
		reqBody.Temperature = *params.Temperature
	}
	if params.MaxTokens != nil {
		reqBody.MaxTokens = *params.MaxTokens
	}

	reqBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	sched := newBackoffSchedule(c.cfg.Retry.MaxAttempts, initialBackoff(c.cfg.Retry.InitialBackoffMS))
	var lastErr error
	for {
		text, outcome, err := c.attempt(ctx, reqBytes)
		switch outcome {
		case outcomeSuccess:
			return text, nil
		case outcomeFatal:
			return "", err
		}

		// outcomeRetryable：限流或网络层故障
		lastErr = err
		delay, ok := sched.Next()
		if !ok {
			return "", fmt.Errorf("%w: %v", ErrAttemptsExhausted, lastErr)
		}
		log.Warnf("completion attempt failed, retrying in %s: %v", delay, err)
		if serr := c.sleep(ctx, delay); serr != nil {
			return "", serr
		}
	}
}

// attempt 执行一次 HTTP 调用并归类结果。
func (c *openAIClient) attempt(ctx context.Context, body []byte) (string, attemptOutcome, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", outcomeFatal, fmt.Errorf("failed to create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		// 连接失败或超时：与 429 共用同一重试预算
		return "", outcomeRetryable, fmt.Errorf("failed to call chat api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		io.Copy(io.Discard, resp.Body)
		return "", outcomeRetryable, fmt.Errorf("chat api rate limited (status 429)")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", outcomeFatal, &UpstreamError{StatusCode: resp.StatusCode, Body: string(bodyBytes)}
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", outcomeFatal, fmt.Errorf("failed to decode chat response: %w", err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return emptyCompletionFallback, outcomeSuccess, nil
	}
	return parsed.Choices[0].Message.Content, outcomeSuccess, nil
}

// resolveModel 校验调用方给出的模型名。不在允许列表内时静默回退到默认模型，
// 只留一条 warn 日志——model_name 是建议性的，不是权威的。
func (c *openAIClient) resolveModel(requested string) string {
	if requested == "" {
		return c.cfg.DefaultModel
	}
	for _, m := range c.cfg.AllowedModels {
		if m == requested {
			return requested
		}
	}
	log.Warnf("requested model %q is not allowed, falling back to %q", requested, c.cfg.DefaultModel)
	return c.cfg.DefaultModel
}
