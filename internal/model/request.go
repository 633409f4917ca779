package model

// AnalyzeRequest 表情分析请求，image为data-URI编码的图片
type AnalyzeRequest struct {
	Image string `json:"image"`
}

// CopingRequest 压力应对建议请求
// StressLevel用指针区分"缺失"和"零值"，提示语义上取值0-4但不做范围校验
type CopingRequest struct {
	StressLevel   *int     `json:"stress_level"`
	StressFactors []string `json:"stress_factors"`
	Symptoms      []string `json:"symptoms"`
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest 对话请求，客户端每次提交完整历史，服务端不保存会话状态
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
}

// SelfCarePlanRequest stress_level故意保持宽松，任意JSON类型都接受（源系统行为）
type SelfCarePlanRequest struct {
	Mood        string      `json:"mood"`
	StressLevel interface{} `json:"stress_level"`
	Habits      []string    `json:"habits"`
}

type JournalPromptRequest struct {
	Journals []string `json:"journals"`
}
