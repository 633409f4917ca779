package model

import (
	"strings"

	"mindease-backend/internal/errs"
)

// 每个路由对应的校验提示语
// JSON类型不匹配在绑定阶段就会失败，handler用同一条提示回复
const (
	MsgImageRequired       = "No image data provided"
	MsgImageInvalid        = "Invalid image data format"
	MsgStressLevelRequired = "Stress level is required and must be a number"
	MsgStressFactorNeeded  = "At least one stress factor is required"
	MsgSymptomNeeded       = "At least one symptom is required"
	MsgMessagesInvalid     = "Messages must be a list"
	MsgMoodRequired        = "Mood is required"
	MsgStressLevelMissing  = "Stress level is required"
	MsgJournalNeeded       = "At least one journal entry is required"
)

// ValidateAnalyze 检查data-URI必须带逗号分隔的头部
// base64和像素解码留给表情服务，这里只做形状检查
func (r *AnalyzeRequest) Validate() *errs.Error {
	if r.Image == "" {
		return errs.Validation(MsgImageRequired)
	}
	if !strings.Contains(r.Image, ",") {
		return errs.Validation(MsgImageInvalid)
	}
	return nil
}

func (r *CopingRequest) Validate() *errs.Error {
	if r.StressLevel == nil {
		return errs.Validation(MsgStressLevelRequired)
	}
	if len(r.StressFactors) == 0 {
		return errs.Validation(MsgStressFactorNeeded)
	}
	if len(r.Symptoms) == 0 {
		return errs.Validation(MsgSymptomNeeded)
	}
	return nil
}

func (r *ChatRequest) Validate() *errs.Error {
	if len(r.Messages) == 0 {
		return errs.Validation(MsgMessagesInvalid)
	}
	return nil
}

// Validate stress_level只查存在性，类型不限（保留源系统的宽松行为）
func (r *SelfCarePlanRequest) Validate() *errs.Error {
	if r.Mood == "" {
		return errs.Validation(MsgMoodRequired)
	}
	if r.StressLevel == nil {
		return errs.Validation(MsgStressLevelMissing)
	}
	return nil
}

func (r *JournalPromptRequest) Validate() *errs.Error {
	if len(r.Journals) == 0 {
		return errs.Validation(MsgJournalNeeded)
	}
	return nil
}
