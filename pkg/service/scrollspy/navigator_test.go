package scrollspy

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anzhiyu-c/anheyu-interact/pkg/domain/model"
)

// countingViewport 记录 ScrollY 被读取的次数，用于确认防抖后只计算一次
type countingViewport struct {
	*LineLayout
	reads int32
}

func (c *countingViewport) ScrollY() float64 {
	atomic.AddInt32(&c.reads, 1)
	return c.LineLayout.ScrollY()
}

func newTestNavigator(t *testing.T, width float64) (*Navigator, *countingViewport) {
	t.Helper()
	layout := NewFixedLayout(map[string]float64{"简介1": 100, "安装2": 400, "配置2": 900},
		[]string{"简介1", "安装2", "配置2"}, width)
	vp := &countingViewport{LineLayout: layout}
	opts := DefaultOptions()
	opts.Debounce = 10 * time.Millisecond
	n := NewNavigator(vp, nil, opts)
	t.Cleanup(n.Close)
	return n, vp
}

func TestNavigatorDebouncedActiveHeading(t *testing.T) {
	n, vp := newTestNavigator(t, 1440)
	n.SetHeadings(sample)
	// 初始计算：滚动偏移 0，阈值 300，只有 简介1 越过
	assert.Eventually(t, func() bool { return n.State().ActiveHeadingID == "简介1" }, time.Second, 2*time.Millisecond)

	atomic.StoreInt32(&vp.reads, 0)
	for y := 0.0; y <= 350; y += 50 {
		vp.SetScrollY(y)
		n.OnScroll()
	}
	assert.Eventually(t, func() bool { return n.State().ActiveHeadingID == "安装2" }, time.Second, 2*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&vp.reads), "a burst of scroll events must collapse into one recomputation")
}

func TestNavigatorKeepsActiveWhenAboveAllHeadings(t *testing.T) {
	layout := NewFixedLayout(map[string]float64{"简介1": 400, "安装2": 700}, []string{"简介1", "安装2"}, 1440)
	n := NewNavigator(layout, nil, DefaultOptions())
	defer n.Close()
	n.SetHeadings(sample[:2])

	layout.SetScrollY(500)
	n.Recompute()
	require.Equal(t, "安装2", n.State().ActiveHeadingID)

	// 阈值 = 0 + 300 < 400：没有标题满足条件，保持不变
	layout.SetScrollY(0)
	n.Recompute()
	assert.Equal(t, "安装2", n.State().ActiveHeadingID)
}

func TestNavigatorNoActiveHeadingInitially(t *testing.T) {
	layout := NewFixedLayout(map[string]float64{"简介1": 400}, []string{"简介1"}, 1440)
	n := NewNavigator(layout, nil, DefaultOptions())
	defer n.Close()
	n.SetHeadings(sample[:1])
	n.Recompute()
	assert.Equal(t, "", n.State().ActiveHeadingID)
}

func TestNavigatorScrollsNavContainer(t *testing.T) {
	headings := make([]model.HeadingEntry, 0, 20)
	offsetMap := make(map[string]float64)
	order := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		id := string(rune('a'+i)) + "2"
		headings = append(headings, model.HeadingEntry{ID: id, Level: 2})
		offsetMap[id] = float64(i * 500)
		order = append(order, id)
	}
	layout := NewFixedLayout(offsetMap, order, 1440)
	layout.navHeight = 320 // 10 个条目可见，上部 60% 为 192px（前 6 个条目）

	n := NewNavigator(layout, layout, DefaultOptions())
	defer n.Close()
	n.SetHeadings(headings)

	// 激活第 4 个条目（top=96）：位于上部区域内，不滚动
	layout.SetScrollY(3*500 - 300)
	n.Recompute()
	require.Equal(t, order[3], n.State().ActiveHeadingID)
	assert.Equal(t, 0.0, layout.ScrollTop())

	// 激活第 12 个条目（top=352）：超出上部区域，滚到区域中间
	layout.SetScrollY(11*500 - 300)
	n.Recompute()
	require.Equal(t, order[11], n.State().ActiveHeadingID)
	assert.Equal(t, 352.0-96.0, layout.ScrollTop())
}

func TestScrollToHeadingClosesSidebarOnNarrowViewport(t *testing.T) {
	n, vp := newTestNavigator(t, 768)
	n.SetHeadings(sample)
	n.SetHeaderHeight(64)
	n.SetSidebarOpen(true)

	require.True(t, n.ScrollToHeading("配置2"))
	assert.Equal(t, 900.0-64-24, vp.LineLayout.ScrollY())
	assert.False(t, n.State().SidebarOpen)

	assert.False(t, n.ScrollToHeading("不存在"))
}

func TestScrollToHeadingKeepsSidebarOnWideViewport(t *testing.T) {
	n, _ := newTestNavigator(t, 1440)
	n.SetHeadings(sample)
	n.SetSidebarOpen(true)
	require.True(t, n.ScrollToHeading("安装2"))
	assert.True(t, n.State().SidebarOpen)
}

func TestCloseCancelsPendingRecompute(t *testing.T) {
	n, vp := newTestNavigator(t, 1440)
	var mu sync.Mutex
	var changes []model.NavigationState
	n.Subscribe(func(s model.NavigationState) {
		mu.Lock()
		changes = append(changes, s)
		mu.Unlock()
	})

	vp.SetScrollY(700)
	n.SetHeadings(sample)
	n.Close()

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, "", n.State().ActiveHeadingID)
	mu.Lock()
	assert.Empty(t, changes)
	mu.Unlock()

	n.OnScroll()
	n.Recompute()
	assert.Equal(t, "", n.State().ActiveHeadingID)
}

// parkingNav 在第一次 ItemTop 时停住，记录 Close 返回后是否还有写入
type parkingNav struct {
	*LineLayout
	parked  chan struct{}
	release chan struct{}
	once    sync.Once

	closeReturned atomic.Bool
	lateWrites    int32
}

func (p *parkingNav) ItemTop(id string) (float64, bool) {
	p.once.Do(func() {
		close(p.parked)
		<-p.release
	})
	return p.LineLayout.ItemTop(id)
}

func (p *parkingNav) SetScrollTop(top float64) {
	if p.closeReturned.Load() {
		atomic.AddInt32(&p.lateWrites, 1)
	}
	p.LineLayout.SetScrollTop(top)
}

func TestCloseDuringRecomputeStopsNavScroll(t *testing.T) {
	layout := NewFixedLayout(map[string]float64{"简介1": 100, "安装2": 400, "配置2": 900},
		[]string{"简介1", "安装2", "配置2"}, 1440)
	layout.navHeight = 40
	nav := &parkingNav{LineLayout: layout, parked: make(chan struct{}), release: make(chan struct{})}
	n := NewNavigator(layout, nav, DefaultOptions())
	n.SetHeadings(sample)
	layout.SetScrollY(700)

	recomputed := make(chan struct{})
	go func() {
		n.Recompute()
		close(recomputed)
	}()
	select {
	case <-nav.parked:
	case <-time.After(time.Second):
		t.Fatal("计算没有走到目录容器")
	}

	closed := make(chan struct{})
	go func() {
		n.Close()
		nav.closeReturned.Store(true)
		close(closed)
	}()
	time.Sleep(20 * time.Millisecond)
	close(nav.release)
	<-closed
	<-recomputed

	assert.Zero(t, atomic.LoadInt32(&nav.lateWrites), "Close 返回后不能再滚动目录容器")
}
