/*
 * @Description: 按键的进行中互斥，同一实体同一时刻只允许一个远程变更
 * @Author: 安知鱼
 * @Date: 2025-07-14 01:41:43
 * @LastEditTime: 2026-10-17 09:48:20
 * @LastEditors: 安知鱼
 */
package utility

import (
	"sync"

	"github.com/anzhiyu-c/anheyu-interact/pkg/domain/model"
)

// InFlightGuard 提供了一个基于字符串键（例如 "like:essay:12"）的非阻塞占用机制。
// 与阻塞式的互斥锁不同，已被占用的键会直接拒绝新的操作，不排队。
type InFlightGuard struct {
	mu      sync.Mutex
	pending map[string]model.PendingMutation
}

// NewInFlightGuard 创建一个新的 InFlightGuard 实例。
func NewInFlightGuard() *InFlightGuard {
	return &InFlightGuard{
		pending: make(map[string]model.PendingMutation),
	}
}

// TryAcquire 尝试占用给定的键，键已被占用时返回 false。
func (g *InFlightGuard) TryAcquire(key string, m model.PendingMutation) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.pending[key]; busy {
		return false
	}
	g.pending[key] = m
	return true
}

// Release 释放给定的键，并返回占用时记录的变更。
func (g *InFlightGuard) Release(key string) (model.PendingMutation, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	m, ok := g.pending[key]
	// 释放即删除，map 不会随历史操作增长
	delete(g.pending, key)
	return m, ok
}

// Update 更新已占用键上记录的变更，键未被占用时返回 false。
func (g *InFlightGuard) Update(key string, m model.PendingMutation) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.pending[key]; !busy {
		return false
	}
	g.pending[key] = m
	return true
}

// Pending 返回给定键上正在进行的变更。
func (g *InFlightGuard) Pending(key string) (model.PendingMutation, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	m, ok := g.pending[key]
	return m, ok
}

// Len 返回当前进行中的变更数量
func (g *InFlightGuard) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.pending)
}
