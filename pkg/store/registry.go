package store

import (
	"sort"
	"sync"

	"github.com/anzhiyu-c/anheyu-interact/pkg/constant"
	"github.com/anzhiyu-c/anheyu-interact/pkg/domain/model"
)

// Registry 为列表页（例如随笔列表）中的每个内容条目维护一个独立的 Store。
// 条目之间没有共享的可变状态，一个条目上的失败不会影响其它条目。
type Registry struct {
	mu     sync.RWMutex
	stores map[uint]*Store
}

// NewRegistry 创建一个空的 Registry
func NewRegistry() *Registry {
	return &Registry{stores: make(map[uint]*Store)}
}

// Put 为内容条目创建或替换 Store
func (r *Registry) Put(item model.ContentItem, comments []model.Comment) (*Store, error) {
	s, err := New(item, comments)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.stores[item.ID] = s
	r.mu.Unlock()
	return s, nil
}

// Get 获取内容条目对应的 Store
func (r *Registry) Get(contentID uint) (*Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.stores[contentID]
	if !ok {
		return nil, constant.ErrNotFound
	}
	return s, nil
}

// Remove 页面离开时销毁条目状态
func (r *Registry) Remove(contentID uint) {
	r.mu.Lock()
	delete(r.stores, contentID)
	r.mu.Unlock()
}

// Feed 返回所有条目的快照，推荐条目在前，其余按创建时间倒序
func (r *Registry) Feed() []State {
	r.mu.RLock()
	states := make([]State, 0, len(r.stores))
	for _, s := range r.stores {
		states = append(states, s.GetState())
	}
	r.mu.RUnlock()

	SortFeed(states)
	return states
}

// SortFeed 推荐条目排在前面；推荐状态相同时按创建时间倒序，时间也相同则按ID倒序
func SortFeed(states []State) {
	sort.SliceStable(states, func(i, j int) bool {
		a, b := states[i].Item, states[j].Item
		if a.Recommend != b.Recommend {
			return a.Recommend
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
}
