package model

// 所有路由共用的响应信封：成功时 success=true 加具名字段，失败时 success=false 加 message
// 字段名是对外硬约定，不能改

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type AnalyzeResponse struct {
	Success bool   `json:"success"`
	Emotion string `json:"emotion"`
}

type CopingResponse struct {
	Success          bool     `json:"success"`
	CopingStrategies []string `json:"coping_strategies"`
}

type ChatResponse struct {
	Success bool   `json:"success"`
	Reply   string `json:"reply"`
}

type SelfCarePlanResponse struct {
	Success bool   `json:"success"`
	Plan    string `json:"plan"`
}

type JournalPromptResponse struct {
	Success bool   `json:"success"`
	Prompt  string `json:"prompt"`
}

type Quote struct {
	Content string `json:"content"`
	Author  string `json:"author"`
}

type QuotesResponse struct {
	Success bool    `json:"success"`
	Quotes  []Quote `json:"quotes"`
}
