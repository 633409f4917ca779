package utils

import (
	"crypto/tls"
	"net/http"
	"time"
)

// DefaultTimeout 出站请求默认超时
// 上游调用阻塞整个请求协程，必须有上限
const DefaultTimeout = 30 * time.Second

func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: false,
			},
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}
