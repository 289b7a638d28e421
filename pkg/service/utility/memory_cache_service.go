/*
 * @Description: 内存缓存服务实现（Redis 不可用时的降级方案）
 * @Author: 安知鱼
 * @Date: 2025-10-05 00:00:00
 * @LastEditTime: 2026-10-17 16:35:50
 * @LastEditors: 安知鱼
 */
package utility

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// memorySweepInterval 后台清理过期键的间隔
const memorySweepInterval = time.Minute

type cacheItem struct {
	value     string
	expiresAt time.Time // 零值表示永不过期
}

func (item cacheItem) expired(now time.Time) bool {
	return !item.expiresAt.IsZero() && now.After(item.expiresAt)
}

// MemoryCache 是进程内的 CacheService，读取时惰性淘汰过期键，后台定期清扫
type MemoryCache struct {
	mu    sync.RWMutex
	items map[string]cacheItem
	now   func() time.Time

	done     chan struct{}
	stopOnce sync.Once
}

// NewMemoryCacheService 创建内存缓存并启动后台清扫
func NewMemoryCacheService() CacheService {
	return newMemoryCache(time.Now, memorySweepInterval)
}

func newMemoryCache(now func() time.Time, sweep time.Duration) *MemoryCache {
	m := &MemoryCache{
		items: make(map[string]cacheItem),
		now:   now,
		done:  make(chan struct{}),
	}
	go m.sweepLoop(sweep)
	return m
}

func (m *MemoryCache) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.sweep()
		case <-m.done:
			return
		}
	}
}

func (m *MemoryCache) sweep() {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, item := range m.items {
		if item.expired(now) {
			delete(m.items, k)
		}
	}
}

// Stop 停止后台清扫，可重复调用
func (m *MemoryCache) Stop() {
	m.stopOnce.Do(func() { close(m.done) })
}

// Len 当前保存的键数量（含尚未清扫的过期键）
func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

func (m *MemoryCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	item := cacheItem{}
	switch v := value.(type) {
	case string:
		item.value = v
	case []byte:
		item.value = string(v)
	default:
		item.value = fmt.Sprint(v)
	}
	if expiration > 0 {
		item.expiresAt = m.now().Add(expiration)
	}

	m.mu.Lock()
	m.items[key] = item
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	item, ok := m.items[key]
	m.mu.RUnlock()
	if !ok {
		return "", nil
	}
	if item.expired(m.now()) {
		m.mu.Lock()
		delete(m.items, key)
		m.mu.Unlock()
		return "", nil
	}
	return item.value, nil
}

func (m *MemoryCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.items, k)
	}
	return nil
}
