package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"mindease-backend/internal/errs"
	"mindease-backend/internal/model"
)

// 每个路由的回答长度上限
const (
	maxTokensCoping   = 500
	maxTokensChat     = 400
	maxTokensSelfCare = 600
	maxTokensJournal  = 300
	maxTokensQuotes   = 500
)

// 每个路由固定的system提示：角色设定 + 输出格式约束
const (
	copingSystemPrompt = "You are a caring mental wellness assistant. " +
		"Given a user's stress level, stress factors and symptoms, suggest practical coping strategies. " +
		"Respond with a JSON array of strings only. Do not include explanations, markdown or any other formatting."

	chatSystemPrompt = "You are a calm and friendly AI mental health therapist. " +
		"Keep responses concise, supportive and conversational. You may use Markdown formatting."

	selfCareSystemPrompt = "You are a self-care planning assistant. " +
		"Create a short, actionable one-day self-care plan tailored to the user's mood, stress level and habits. " +
		"Respond with plain text only."

	journalSystemPrompt = "You are a reflective journaling coach. " +
		"Based on the user's recent journal entries, write a single thoughtful journal prompt for today. " +
		"Respond with the prompt text only."

	quotesSystemPrompt = "You are a motivational quote generator. " +
		"Generate 3 short motivational quotes about happiness and life. " +
		"Respond with a JSON array of objects, each object having a \"content\" field and an \"author\" field. " +
		"Only return the JSON array."
)

const (
	msgInvalidFormat  = "Invalid response format from AI service"
	msgMalformedQuote = "Malformed quote structure"
)

// WellnessService 把各路由的提示构造和响应归一化集中在一处
// LLM返回2xx但内容不符合约定属于归一化失败，与传输失败是两类错误
type WellnessService struct {
	llm *LLMService
}

func NewWellnessService(llm *LLMService) *WellnessService {
	return &WellnessService{llm: llm}
}

// SuggestCoping 上游必须返回字符串JSON数组，解析失败不做降级
func (s *WellnessService) SuggestCoping(ctx context.Context, req *model.CopingRequest) ([]string, error) {
	prompt := fmt.Sprintf(
		"Stress level: %d out of 4.\nStress factors: %s.\nSymptoms: %s.\nSuggest 5 short coping strategies.",
		*req.StressLevel,
		strings.Join(req.StressFactors, ", "),
		strings.Join(req.Symptoms, ", "),
	)

	text, err := s.llm.Chat(ctx, copingSystemPrompt, prompt, maxTokensCoping)
	if err != nil {
		return nil, err
	}

	var strategies []string
	if err := json.Unmarshal([]byte(text), &strategies); err != nil {
		return nil, errs.Normalization(msgInvalidFormat)
	}
	return strategies, nil
}

// Chat 回复原样透传（Markdown文本），不做解析
func (s *WellnessService) Chat(ctx context.Context, req *model.ChatRequest) (string, error) {
	return s.llm.ChatWithHistory(ctx, chatSystemPrompt, req.Messages, maxTokensChat)
}

func (s *WellnessService) SelfCarePlan(ctx context.Context, req *model.SelfCarePlanRequest) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Mood: %s.\nStress level: %v.\n", req.Mood, req.StressLevel)
	if len(req.Habits) > 0 {
		fmt.Fprintf(&sb, "Current habits: %s.\n", strings.Join(req.Habits, ", "))
	}
	sb.WriteString("Create a self-care plan for today.")

	return s.llm.Chat(ctx, selfCareSystemPrompt, sb.String(), maxTokensSelfCare)
}

func (s *WellnessService) JournalPrompt(ctx context.Context, req *model.JournalPromptRequest) (string, error) {
	prompt := "Recent journal entries:\n- " + strings.Join(req.Journals, "\n- ") +
		"\nWrite one journal prompt for today."

	return s.llm.Chat(ctx, journalSystemPrompt, prompt, maxTokensJournal)
}

// DailyQuotes 上游必须返回{content,author}对象的JSON数组
// 任何一条缺字段则整批失败，不返回部分结果
func (s *WellnessService) DailyQuotes(ctx context.Context) ([]model.Quote, error) {
	text, err := s.llm.Chat(ctx, quotesSystemPrompt, "Give me today's quotes.", maxTokensQuotes)
	if err != nil {
		return nil, err
	}

	var raw []struct {
		Content *string `json:"content"`
		Author  *string `json:"author"`
	}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, errs.Normalization(msgInvalidFormat)
	}

	quotes := make([]model.Quote, 0, len(raw))
	for _, q := range raw {
		if q.Content == nil || q.Author == nil {
			return nil, errs.Normalization(msgMalformedQuote)
		}
		quotes = append(quotes, model.Quote{Content: *q.Content, Author: *q.Author})
	}
	return quotes, nil
}
