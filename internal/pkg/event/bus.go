/*
 * @Description: 一个带固定Worker池的异步事件总线
 * @Author: 安知鱼
 * @Date: 2025-07-10 19:06:12
 * @LastEditTime: 2026-10-16 22:28:17
 * @LastEditors: 安知鱼
 */
package event

import (
	"log"
	"sync"
)

// 定义事件类型
type Topic string

const (
	// 用户提示事件，payload 为 model.Notice
	NoticeSuccess Topic = "notice:success"
	NoticeWarning Topic = "notice:warning"
	NoticeError   Topic = "notice:error"
	// 需要登录，payload 为触发登录的提示文案
	LoginRequired Topic = "auth:login-required"
)

// 事件处理器函数类型
type Handler func(payload interface{})

// Event 是在通道中传递的事件结构
type Event struct {
	Topic   Topic
	Payload interface{}
}

// EventBus 实现了基于Worker池的异步事件总线
type EventBus struct {
	mu        sync.RWMutex
	handlers  map[Topic][]Handler
	eventChan chan Event     // 带缓冲的事件通道
	wg        sync.WaitGroup // 用于优雅关闭
	closeOnce sync.Once
	closed    bool
}

// 定义Worker池和通道的配置
const (
	DefaultWorkerCount = 2   // 提示事件量很小，默认启动2个后台Worker
	DefaultChannelSize = 256 // 默认事件通道缓冲区大小
)

// NewEventBus 创建并启动一个新的事件总线
func NewEventBus() *EventBus {
	return NewEventBusWithWorkers(DefaultWorkerCount, DefaultChannelSize)
}

// NewEventBusWithWorkers 使用指定的Worker数量和缓冲区大小创建事件总线
func NewEventBusWithWorkers(workers, size int) *EventBus {
	if workers <= 0 {
		workers = DefaultWorkerCount
	}
	if size <= 0 {
		size = DefaultChannelSize
	}
	bus := &EventBus{
		handlers: make(map[Topic][]Handler),
		// 创建一个带缓冲的通道，避免Publish阻塞
		eventChan: make(chan Event, size),
	}
	bus.startWorkers(workers)
	return bus
}

// startWorkers 启动固定数量的后台worker
func (b *EventBus) startWorkers(count int) {
	for i := 0; i < count; i++ {
		b.wg.Add(1)
		go b.worker(i + 1)
	}
}

// worker 是消费者，不断从通道中读取并处理事件
func (b *EventBus) worker(workerID int) {
	defer b.wg.Done()

	for event := range b.eventChan {
		b.mu.RLock()
		handlers := append([]Handler(nil), b.handlers[event.Topic]...)
		b.mu.RUnlock()

		for _, handler := range handlers {
			handler(event.Payload)
		}
	}
	log.Printf("[EventBus] Worker %d stopped", workerID)
}

// Subscribe 订阅一个事件
func (b *EventBus) Subscribe(topic Topic, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], handler)
}

// Publish 发布一个事件
// 这是一个非阻塞操作，提示属于“发出即忘”的旁路，通道满时直接丢弃
func (b *EventBus) Publish(topic Topic, payload interface{}) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}

	select {
	case b.eventChan <- Event{Topic: topic, Payload: payload}:
	default:
		log.Printf("[EventBus] WARN: Event channel is full. Dropping event for topic '%s'.", topic)
	}
}

// Shutdown 优雅地关闭事件总线，已入队的事件会被处理完
func (b *EventBus) Shutdown() {
	b.closeOnce.Do(func() {
		b.mu.Lock()
		b.closed = true
		close(b.eventChan) // 关闭通道，这将使worker的range循环结束
		b.mu.Unlock()
		b.wg.Wait()
	})
}
