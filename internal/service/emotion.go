package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"strings"

	"mindease-backend/internal/config"
	"mindease-backend/internal/errs"
	"mindease-backend/internal/utils"
	"mindease-backend/pkg/logger"
)

const msgAnalyzeFailed = "Failed to analyze image"

// EmotionService 表情识别路径：本地解码校验图片，再把图片转给识别引擎
// 引擎侧关闭了人脸强制检测，检测不到清晰人脸时给出尽力而为的标签而不是报错
type EmotionService struct {
	engineURL  string
	httpClient *http.Client
}

func NewEmotionService(cfg config.EngineConfig) *EmotionService {
	return &EmotionService{
		engineURL:  strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: utils.NewHTTPClient(cfg.Timeout),
	}
}

// Analyze 解码data-URI图片并调用识别引擎，返回主导情绪标签
func (s *EmotionService) Analyze(ctx context.Context, dataURI string) (string, error) {
	if err := s.decodeImage(dataURI); err != nil {
		return "", err
	}
	return s.classify(ctx, dataURI)
}

// decodeImage 去掉"data:image/jpeg;base64,"头部后解码，确认是可用的图片字节
func (s *EmotionService) decodeImage(dataURI string) error {
	parts := strings.SplitN(dataURI, ",", 2)
	if len(parts) != 2 {
		return errs.Decode(msgAnalyzeFailed)
	}

	raw, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		logger.Warnf("image base64 decode failed: %v", err)
		return errs.Decode(msgAnalyzeFailed)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		logger.Warnf("image decode failed: %v", err)
		return errs.Decode(msgAnalyzeFailed)
	}
	if img.Bounds().Empty() {
		return errs.Decode(msgAnalyzeFailed)
	}
	return nil
}

func (s *EmotionService) classify(ctx context.Context, dataURI string) (string, error) {
	body, err := json.Marshal(map[string]string{"image": dataURI})
	if err != nil {
		return "", errs.Upstream(msgAnalyzeFailed)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.engineURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return "", errs.Upstream(msgAnalyzeFailed)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		logger.Errorf("emotion engine request failed: %v", err)
		return "", errs.Upstream(msgAnalyzeFailed)
	}
	defer resp.Body.Close()

	var result struct {
		Success bool   `json:"success"`
		Emotion string `json:"emotion"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		logger.Errorf("emotion engine response decode failed: %v", err)
		return "", errs.Upstream(msgAnalyzeFailed)
	}
	if resp.StatusCode != http.StatusOK || !result.Success {
		logger.Errorf("emotion engine returned status=%d message=%s", resp.StatusCode, result.Message)
		return "", errs.Upstream(msgAnalyzeFailed)
	}

	return result.Emotion, nil
}
