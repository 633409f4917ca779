package throttle

import "time"

// Store 限流存储接口
// 单进程部署用内存实现；多实例部署可替换为外部缓存实现，
// 但必须保持check-and-record的原子语义
type Store interface {
	// CheckAndRecord 检查(客户端, 路由)是否在冷却期内
	// 允许通过时记录本次时间戳；被限流时不刷新时间戳
	CheckAndRecord(clientID, route string, now time.Time) bool
}
