package throttle

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCheckAndRecordWindow(t *testing.T) {
	store := NewMemoryStore(300 * time.Second)
	now := time.Now()

	assert.True(t, store.CheckAndRecord("1.2.3.4", "analyze", now))
	assert.False(t, store.CheckAndRecord("1.2.3.4", "analyze", now.Add(time.Second)))
	assert.False(t, store.CheckAndRecord("1.2.3.4", "analyze", now.Add(299*time.Second)))
	assert.True(t, store.CheckAndRecord("1.2.3.4", "analyze", now.Add(300*time.Second)))
}

func TestThrottledDoesNotRefreshTimestamp(t *testing.T) {
	store := NewMemoryStore(300 * time.Second)
	now := time.Now()

	assert.True(t, store.CheckAndRecord("1.2.3.4", "analyze", now))

	// 连续三次被拒都不应刷新窗口，客户端狂刷不会延长自己的冷却
	assert.False(t, store.CheckAndRecord("1.2.3.4", "analyze", now.Add(100*time.Second)))
	assert.False(t, store.CheckAndRecord("1.2.3.4", "analyze", now.Add(200*time.Second)))
	assert.False(t, store.CheckAndRecord("1.2.3.4", "analyze", now.Add(299*time.Second)))

	// 距第一次成功300秒后恢复，而不是距最后一次被拒300秒
	assert.True(t, store.CheckAndRecord("1.2.3.4", "analyze", now.Add(300*time.Second)))
}

func TestKeysAreIndependent(t *testing.T) {
	store := NewMemoryStore(300 * time.Second)
	now := time.Now()

	assert.True(t, store.CheckAndRecord("1.2.3.4", "analyze", now))

	// 不同路由、不同客户端各有各的窗口
	assert.True(t, store.CheckAndRecord("1.2.3.4", "suggest-coping", now))
	assert.True(t, store.CheckAndRecord("5.6.7.8", "analyze", now))

	assert.False(t, store.CheckAndRecord("1.2.3.4", "analyze", now.Add(time.Second)))
	assert.False(t, store.CheckAndRecord("1.2.3.4", "suggest-coping", now.Add(time.Second)))
}

func TestConcurrentCheckAndRecord(t *testing.T) {
	store := NewMemoryStore(300 * time.Second)
	now := time.Now()

	// 同一键并发抢入，check-then-record必须原子，只能放行一个
	const workers = 64
	var wg sync.WaitGroup
	var count int64
	var mu sync.Mutex

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if store.CheckAndRecord("1.2.3.4", "analyze", now) {
				mu.Lock()
				count++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), count)
}

func TestConcurrentDistinctClients(t *testing.T) {
	store := NewMemoryStore(300 * time.Second)
	now := time.Now()

	const workers = 32
	var wg sync.WaitGroup
	results := make([]bool, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = store.CheckAndRecord(fmt.Sprintf("10.0.0.%d", i), "analyze", now)
		}(i)
	}
	wg.Wait()

	for i, ok := range results {
		assert.True(t, ok, "client %d should have been allowed", i)
	}
}
