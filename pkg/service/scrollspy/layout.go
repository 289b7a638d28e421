package scrollspy

import (
	"sync"

	"github.com/anzhiyu-c/anheyu-interact/pkg/domain/model"
)

// LineLayout 是一个静态的几何估算：标题偏移 = TopOffset + (行号-1) * LineHeight。
// 没有真实 DOM 的场景（命令行预览、测试）用它代替浏览器视口。
type LineLayout struct {
	mu         sync.Mutex
	offsets    map[string]float64
	order      []string
	scrollY    float64
	width      float64
	navHeight  float64
	itemHeight float64
	navScroll  float64
}

// LayoutOptions 静态布局参数
type LayoutOptions struct {
	TopOffset  float64
	LineHeight float64
	Width      float64
	NavHeight  float64 // 目录容器可见高度
	ItemHeight float64 // 每个目录条目的高度
}

// NewLineLayout 根据标题行号建立静态布局
func NewLineLayout(headings []model.HeadingEntry, opts LayoutOptions) *LineLayout {
	if opts.LineHeight <= 0 {
		opts.LineHeight = 24
	}
	if opts.ItemHeight <= 0 {
		opts.ItemHeight = 32
	}
	l := &LineLayout{
		offsets:    make(map[string]float64, len(headings)),
		width:      opts.Width,
		navHeight:  opts.NavHeight,
		itemHeight: opts.ItemHeight,
	}
	for i, h := range headings {
		line := h.Line
		if line <= 0 {
			line = i + 1
		}
		l.offsets[h.ID] = opts.TopOffset + float64(line-1)*opts.LineHeight
		l.order = append(l.order, h.ID)
	}
	return l
}

// NewFixedLayout 直接使用给定的标题偏移建立布局
func NewFixedLayout(offsets map[string]float64, order []string, width float64) *LineLayout {
	l := &LineLayout{offsets: make(map[string]float64, len(offsets)), width: width, itemHeight: 32}
	for k, v := range offsets {
		l.offsets[k] = v
	}
	l.order = append(l.order, order...)
	return l
}

// SetScrollY 模拟用户滚动
func (l *LineLayout) SetScrollY(y float64) {
	l.mu.Lock()
	l.scrollY = y
	l.mu.Unlock()
}

func (l *LineLayout) ScrollY() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.scrollY
}

func (l *LineLayout) HeadingOffset(id string) (float64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	top, ok := l.offsets[id]
	return top, ok
}

func (l *LineLayout) Width() float64 { return l.width }

func (l *LineLayout) ScrollTo(top float64, _ bool) {
	l.SetScrollY(top)
}

// --- NavContainer ---

func (l *LineLayout) Height() float64 { return l.navHeight }

func (l *LineLayout) ItemTop(headingID string) (float64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, id := range l.order {
		if id == headingID {
			return float64(i)*l.itemHeight - l.navScroll, true
		}
	}
	return 0, false
}

func (l *LineLayout) ScrollTop() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.navScroll
}

func (l *LineLayout) SetScrollTop(top float64) {
	l.mu.Lock()
	l.navScroll = top
	l.mu.Unlock()
}
