package service

import (
	"context"
	"strings"

	"mindease-backend/internal/config"
	"mindease-backend/internal/errs"
	"mindease-backend/internal/model"
	"mindease-backend/internal/utils"
	"mindease-backend/pkg/logger"

	openai "github.com/sashabaranov/go-openai"
)

const msgUpstreamUnavailable = "AI service is currently unavailable. Please try again later."

// LLMService Groq聊天补全客户端（OpenAI兼容协议）
// 所有LLM路由共用一个实例，不做重试：失败直接回报网关级错误，
// 客户端侧的冷却机制已经限制了重试风暴
type LLMService struct {
	client      *openai.Client
	model       string
	temperature float32
}

func NewLLMService(cfg config.GroqConfig) *LLMService {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	clientConfig.HTTPClient = utils.NewHTTPClient(cfg.Timeout)

	return &LLMService{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}
}

// Chat 单轮调用：固定system提示 + 一条拼好的user提示
func (s *LLMService) Chat(ctx context.Context, system, user string, maxTokens int) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: system},
		{Role: openai.ChatMessageRoleUser, Content: user},
	}
	return s.complete(ctx, messages, maxTokens)
}

// ChatWithHistory 多轮调用：固定system提示 + 调用方原样提交的历史消息
func (s *LLMService) ChatWithHistory(ctx context.Context, system string, history []model.ChatMessage, maxTokens int) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: system,
	})
	for _, msg := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    convertRole(msg.Role),
			Content: msg.Content,
		})
	}
	return s.complete(ctx, messages, maxTokens)
}

func (s *LLMService) complete(ctx context.Context, messages []openai.ChatCompletionMessage, maxTokens int) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Temperature: s.temperature,
		MaxTokens:   maxTokens,
		Messages:    messages,
	})
	if err != nil {
		// 上游细节只进日志，不透给客户端
		logger.Errorf("chat completion failed: %v", err)
		return "", errs.Upstream(msgUpstreamUnavailable)
	}
	if len(resp.Choices) == 0 {
		logger.Error("chat completion returned no choices")
		return "", errs.Upstream(msgUpstreamUnavailable)
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// 角色映射，未知角色按user处理
func convertRole(role string) string {
	switch role {
	case "assistant":
		return openai.ChatMessageRoleAssistant
	case "system":
		return openai.ChatMessageRoleSystem
	default:
		return openai.ChatMessageRoleUser
	}
}
