package errs

import "net/http"

// 错误分类：所有路由级错误在这里定义，handler边界统一转换为HTTP响应
type Kind int

const (
	KindValidation Kind = iota // 请求参数缺失或格式错误
	KindThrottled              // 冷却时间未到
	KindUpstream               // 上游服务不可用或返回非2xx
	KindNormalization          // 上游返回2xx但内容格式不符合约定
	KindDecode                 // 图片base64/像素解码失败
)

type Error struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: message}
}

func Throttled(message string) *Error {
	return &Error{Kind: KindThrottled, Status: http.StatusTooManyRequests, Message: message}
}

func Upstream(message string) *Error {
	return &Error{Kind: KindUpstream, Status: http.StatusInternalServerError, Message: message}
}

func Normalization(message string) *Error {
	return &Error{Kind: KindNormalization, Status: http.StatusInternalServerError, Message: message}
}

// Decode 保持500，与通用兜底一致
func Decode(message string) *Error {
	return &Error{Kind: KindDecode, Status: http.StatusInternalServerError, Message: message}
}

// From 把任意error归一为*Error，未知错误按500兜底处理
func From(err error) *Error {
	if e, ok := err.(*Error); ok {
		return e
	}
	return &Error{Kind: KindUpstream, Status: http.StatusInternalServerError, Message: "Internal server error"}
}
