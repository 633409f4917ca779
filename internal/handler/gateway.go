package handler

import (
	"fmt"
	"net/http"
	"time"

	"mindease-backend/internal/errs"
	"mindease-backend/internal/model"
	"mindease-backend/internal/service"
	"mindease-backend/internal/throttle"
	"mindease-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// 限流路由名，作为(客户端, 路由)键的一部分
const (
	routeAnalyze = "analyze"
	routeCoping  = "suggest-coping"
)

// GatewayHandler 每个路由走同一条流水线：
// 限流检查 → 参数校验 → 构造上游请求 → 调用 → 归一化 → 信封响应
// 任何一步失败立即终止，没有重试，没有跳步
type GatewayHandler struct {
	wellness *service.WellnessService
	emotion  *service.EmotionService
	throttle throttle.Store
	cooldown time.Duration
}

// NewGatewayHandler store传nil表示关闭限流
func NewGatewayHandler(wellness *service.WellnessService, emotion *service.EmotionService, store throttle.Store, cooldown time.Duration) *GatewayHandler {
	return &GatewayHandler{
		wellness: wellness,
		emotion:  emotion,
		throttle: store,
		cooldown: cooldown,
	}
}

// Health 健康检查不经过流水线，直接返回静态状态
func (h *GatewayHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, model.HealthResponse{
		Status:  "ok",
		Message: "Mindease AI gateway is running",
	})
}

func (h *GatewayHandler) Analyze(c *gin.Context) {
	if err := h.checkThrottle(c, routeAnalyze, "Emotion analysis is"); err != nil {
		respondError(c, err)
		return
	}

	var req model.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errs.Validation(model.MsgImageRequired))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err)
		return
	}

	emotion, err := h.emotion.Analyze(c.Request.Context(), req.Image)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.AnalyzeResponse{Success: true, Emotion: emotion})
}

func (h *GatewayHandler) SuggestCoping(c *gin.Context) {
	if err := h.checkThrottle(c, routeCoping, "Coping suggestions are"); err != nil {
		respondError(c, err)
		return
	}

	var req model.CopingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errs.Validation(model.MsgStressLevelRequired))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err)
		return
	}

	strategies, err := h.wellness.SuggestCoping(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.CopingResponse{Success: true, CopingStrategies: strategies})
}

func (h *GatewayHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errs.Validation(model.MsgMessagesInvalid))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err)
		return
	}

	reply, err := h.wellness.Chat(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.ChatResponse{Success: true, Reply: reply})
}

func (h *GatewayHandler) SelfCarePlan(c *gin.Context) {
	var req model.SelfCarePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errs.Validation(model.MsgMoodRequired))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err)
		return
	}

	plan, err := h.wellness.SelfCarePlan(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.SelfCarePlanResponse{Success: true, Plan: plan})
}

func (h *GatewayHandler) JournalPrompt(c *gin.Context) {
	var req model.JournalPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errs.Validation(model.MsgJournalNeeded))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err)
		return
	}

	prompt, err := h.wellness.JournalPrompt(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.JournalPromptResponse{Success: true, Prompt: prompt})
}

func (h *GatewayHandler) DailyQuotes(c *gin.Context) {
	quotes, err := h.wellness.DailyQuotes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.QuotesResponse{Success: true, Quotes: quotes})
}

// checkThrottle 以客户端IP为身份做冷却检查
// 通过即记录时间戳（即使后续校验失败也算消耗一次），被拒不刷新窗口
func (h *GatewayHandler) checkThrottle(c *gin.Context, route, subject string) error {
	if h.throttle == nil {
		return nil
	}
	if h.throttle.CheckAndRecord(c.ClientIP(), route, time.Now()) {
		return nil
	}

	logger.Infof("throttled client=%s route=%s", c.ClientIP(), route)
	return errs.Throttled(fmt.Sprintf(
		"%s available once every %d minutes. Please try again later.",
		subject, int(h.cooldown.Minutes()),
	))
}

// respondError 错误只在这一处转成HTTP响应，未知错误按500兜底
func respondError(c *gin.Context, err error) {
	e := errs.From(err)
	c.JSON(e.Status, model.ErrorResponse{Success: false, Message: e.Message})
}
