package throttle

import (
	"sync"
	"time"
)

// MemoryStore 进程内的冷却记录表
// 记录只增不删，条目数量上限是(客户端数 x 路由数)，进程重启后清零
// 这是单进程中等流量下可接受的内存开销，不做后台清理
type MemoryStore struct {
	window  time.Duration
	entries map[string]time.Time
	mu      sync.Mutex
}

func NewMemoryStore(window time.Duration) *MemoryStore {
	return &MemoryStore{
		window:  window,
		entries: make(map[string]time.Time),
	}
}

// CheckAndRecord 检查并记录，整个check-then-record序列持锁执行
// 避免同一客户端并发请求同时通过检查
func (s *MemoryStore) CheckAndRecord(clientID, route string, now time.Time) bool {
	key := clientID + "|" + route

	s.mu.Lock()
	defer s.mu.Unlock()

	last, exists := s.entries[key]
	if exists && now.Sub(last) < s.window {
		// 被限流时不写入，客户端重试不会延长自己的冷却期
		return false
	}

	s.entries[key] = now
	return true
}
