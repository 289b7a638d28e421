/*
 * @Description: Scroll-Spy 导航器：滚动位置 → 当前激活的目录标题
 * @Author: 安知鱼
 * @Date: 2026-10-16 18:20:19
 * @LastEditTime: 2026-10-17 09:30:52
 * @LastEditors: 安知鱼
 */
package scrollspy

import (
	"log"
	"sync"
	"time"

	"github.com/anzhiyu-c/anheyu-interact/internal/pkg/debounce"
	"github.com/anzhiyu-c/anheyu-interact/pkg/domain/model"
)

// Options 导航器参数
type Options struct {
	Debounce      time.Duration // 滚动事件防抖窗口
	Lookahead     float64       // 扫描阈值 = 滚动偏移 + Lookahead
	NavUpperRatio float64       // 导航条目在容器上部这个比例内时不自动滚动
	HeaderMargin  float64       // 点击跳转时在头部高度之外额外留出的间距
	NarrowWidth   float64       // 视口宽度小于该值时，点击跳转后关闭侧边栏
}

// DefaultOptions 返回默认参数
func DefaultOptions() Options {
	return Options{
		Debounce:      50 * time.Millisecond,
		Lookahead:     300,
		NavUpperRatio: 0.6,
		HeaderMargin:  24,
		NarrowWidth:   1024,
	}
}

// Navigator 维护目录导航状态。滚动事件经过防抖后重新计算激活标题，
// 卸载（Close）后不会再有任何过期的计算被执行。
type Navigator struct {
	viewport Viewport
	nav      NavContainer
	opts     Options

	mu           sync.Mutex
	headings     []model.HeadingEntry
	state        model.NavigationState
	headerHeight float64
	closed       bool
	listeners    []func(model.NavigationState)

	debouncer *debounce.Debouncer
}

// NewNavigator 创建导航器，nav 可以为 nil（没有目录容器时不做自动滚动）
func NewNavigator(viewport Viewport, nav NavContainer, opts Options) *Navigator {
	def := DefaultOptions()
	if opts.Debounce <= 0 {
		opts.Debounce = def.Debounce
	}
	if opts.Lookahead <= 0 {
		opts.Lookahead = def.Lookahead
	}
	if opts.NavUpperRatio <= 0 || opts.NavUpperRatio > 1 {
		opts.NavUpperRatio = def.NavUpperRatio
	}
	if opts.NarrowWidth <= 0 {
		opts.NarrowWidth = def.NarrowWidth
	}
	n := &Navigator{viewport: viewport, nav: nav, opts: opts}
	n.debouncer = debounce.New(opts.Debounce, n.Recompute)
	return n
}

// SetHeadings 替换标题快照，在下一次内容渲染之前保持不变。
// 会立即排期一次计算，和挂载时主动触发一次滚动处理一致。
func (n *Navigator) SetHeadings(headings []model.HeadingEntry) {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.headings = append([]model.HeadingEntry(nil), headings...)
	n.mu.Unlock()

	n.OnScroll()
}

// Headings 返回当前标题快照
func (n *Navigator) Headings() []model.HeadingEntry {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]model.HeadingEntry(nil), n.headings...)
}

// OnScroll 处理一次滚动事件，窗口内的连续事件只触发一次计算
func (n *Navigator) OnScroll() {
	n.debouncer.Trigger()
}

// Recompute 执行一次计算：更新激活标题，并在需要时滚动目录容器。
// 没有标题越过阈值时保持原激活标题不变。
func (n *Navigator) Recompute() {
	n.mu.Lock()
	if n.closed || len(n.headings) == 0 {
		n.mu.Unlock()
		return
	}
	headings := n.headings
	n.mu.Unlock()

	threshold := n.viewport.ScrollY() + n.opts.Lookahead
	activeID, ok := ActiveHeading(headings, n.viewport.HeadingOffset, threshold)
	if !ok {
		return
	}

	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	changed := n.state.ActiveHeadingID != activeID
	n.state.ActiveHeadingID = activeID
	state := n.state
	n.mu.Unlock()

	n.scrollNavTo(activeID)
	if changed {
		n.notify(state)
	}
}

func (n *Navigator) scrollNavTo(headingID string) {
	if n.nav == nil {
		return
	}
	// 持锁操作容器，Close 返回后不会再写入滚动位置
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	itemTop, ok := n.nav.ItemTop(headingID)
	if !ok {
		return
	}
	if next, moved := NavScrollTop(n.nav.Height(), itemTop, n.nav.ScrollTop(), n.opts.NavUpperRatio); moved {
		n.nav.SetScrollTop(next)
	}
}

// ScrollToHeading 用户点击目录条目：平滑滚动到标题位置（预留头部高度），
// 窄屏下同时关闭侧边栏。标题不存在时不做任何事并返回 false。
func (n *Navigator) ScrollToHeading(id string) bool {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return false
	}
	headerHeight := n.headerHeight
	n.mu.Unlock()

	top, ok := n.viewport.HeadingOffset(id)
	if !ok {
		log.Printf("[ScrollSpy] 标题 %q 不存在，忽略跳转", id)
		return false
	}
	n.viewport.ScrollTo(ScrollTarget(top, headerHeight, n.opts.HeaderMargin), true)

	if n.viewport.Width() < n.opts.NarrowWidth {
		n.SetSidebarOpen(false)
	}
	return true
}

// SetSidebarOpen 显式打开或关闭目录侧边栏
func (n *Navigator) SetSidebarOpen(open bool) {
	n.mu.Lock()
	if n.closed || n.state.SidebarOpen == open {
		n.mu.Unlock()
		return
	}
	n.state.SidebarOpen = open
	state := n.state
	n.mu.Unlock()

	n.notify(state)
}

// ToggleSidebar 切换侧边栏
func (n *Navigator) ToggleSidebar() {
	n.mu.Lock()
	open := !n.state.SidebarOpen
	n.mu.Unlock()
	n.SetSidebarOpen(open)
}

// SetHeaderHeight 页面头部高度变化（例如窗口尺寸变化）时更新
func (n *Navigator) SetHeaderHeight(h float64) {
	n.mu.Lock()
	n.headerHeight = h
	n.mu.Unlock()
}

// State 返回当前导航状态
func (n *Navigator) State() model.NavigationState {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// Subscribe 注册导航状态变化监听器
func (n *Navigator) Subscribe(fn func(model.NavigationState)) {
	n.mu.Lock()
	n.listeners = append(n.listeners, fn)
	n.mu.Unlock()
}

func (n *Navigator) notify(state model.NavigationState) {
	n.mu.Lock()
	listeners := make([]func(model.NavigationState), len(n.listeners))
	copy(listeners, n.listeners)
	n.mu.Unlock()
	for _, fn := range listeners {
		fn(state)
	}
}

// Close 卸载导航器：取消已排期的计算，之后的事件全部忽略
func (n *Navigator) Close() {
	n.debouncer.Stop()
	n.mu.Lock()
	n.closed = true
	n.listeners = nil
	n.mu.Unlock()
}
