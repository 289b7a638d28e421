/*
 * @Description: 通用防抖工具：一段时间内的多次触发合并为一次执行
 * @Author: 安知鱼
 * @Date: 2026-10-16 19:22:05
 * @LastEditTime: 2026-10-17 08:51:37
 * @LastEditors: 安知鱼
 */
package debounce

import (
	"sync"
	"time"
)

// Debouncer 在最后一次 Trigger 之后等待 wait，再执行一次 fn。
// 等待期间的新触发会取消已排期的执行并重新计时；任何时刻最多只有一个排期。
type Debouncer struct {
	mu      sync.Mutex
	wait    time.Duration
	fn      func()
	timer   *time.Timer
	gen     uint64 // 每次排期或取消都会递增，用来识别已过期的回调
	stopped bool
}

// New 创建一个防抖器
func New(wait time.Duration, fn func()) *Debouncer {
	return &Debouncer{wait: wait, fn: fn}
}

// Trigger 排期一次执行，取消尚未执行的上一次排期。Stop 之后调用无效。
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.wait, func() { d.fire(gen) })
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	// timer.Stop 无法拦截已经开始运行的回调，这里再按代号校验一次
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	d.fn()
}

// Cancel 取消尚未执行的排期，之后仍可再次 Trigger
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
}

// Pending 是否存在尚未执行的排期
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Stop 取消排期并永久停用，用于组件卸载
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
	d.stopped = true
}

func (d *Debouncer) cancelLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}
