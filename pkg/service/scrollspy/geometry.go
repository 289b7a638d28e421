package scrollspy

// Viewport 是页面视口的几何信息，由渲染层提供。
// 所有偏移量都是相对于文档顶部的绝对像素值。
type Viewport interface {
	// ScrollY 当前滚动偏移
	ScrollY() float64
	// HeadingOffset 标题元素的文档偏移，元素不存在时返回 false
	HeadingOffset(id string) (float64, bool)
	// Width 视口宽度，用于判断是否为窄屏
	Width() float64
	// ScrollTo 请求滚动视口，smooth 为 true 时平滑滚动
	ScrollTo(top float64, smooth bool)
}

// NavContainer 是目录导航的可滚动容器
type NavContainer interface {
	// Height 容器可见高度
	Height() float64
	// ItemTop 导航条目顶部相对于容器可见区域顶部的位置，条目不存在时返回 false
	ItemTop(headingID string) (float64, bool)
	ScrollTop() float64
	SetScrollTop(top float64)
}
