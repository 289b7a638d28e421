/*
 * @Description: Entity Store，保存单个内容条目及其扁平评论集合
 * @Author: 安知鱼
 * @Date: 2026-10-16 20:02:37
 * @LastEditTime: 2026-10-17 10:05:44
 * @LastEditors: 安知鱼
 */
package store

import (
	"fmt"
	"log"
	"sync"

	"github.com/anzhiyu-c/anheyu-interact/pkg/domain/model"
)

// State 是 Store 的只读快照
type State struct {
	Item     model.ContentItem
	Comments []model.Comment
	// ReplyTarget 当前打开回复框的评论ID，需要全局互斥，所以放在共享状态中
	ReplyTarget *uint
}

func (s State) clone() State {
	s.Comments = model.CloneComments(s.Comments)
	if s.ReplyTarget != nil {
		id := *s.ReplyTarget
		s.ReplyTarget = &id
	}
	return s
}

// FindComment 在快照中按ID查找评论
func (s State) FindComment(id uint) (model.Comment, bool) {
	for _, c := range s.Comments {
		if c.ID == id {
			return c, true
		}
	}
	return model.Comment{}, false
}

// Listener 在每次状态成功变更后被调用
type Listener func(State)

// Store 持有页面生命周期内某个内容条目的规范状态。
// 所有变更都在锁内一步完成，外部不会观察到变更过程中的中间状态。
type Store struct {
	mu        sync.RWMutex
	state     State
	listeners map[int]Listener
	nextID    int
}

// New 创建一个 Store，评论会按创建时间排序，评论数由集合长度推导
func New(item model.ContentItem, comments []model.Comment) (*Store, error) {
	if item.LikeCount < 0 {
		return nil, fmt.Errorf("内容 %d 的点赞数无效: %d", item.ID, item.LikeCount)
	}
	s := &Store{listeners: make(map[int]Listener)}
	s.state.Item = item
	if err := s.Dispatch(SetComments{Comments: comments}); err != nil {
		return nil, err
	}
	return s, nil
}

// GetState 返回当前状态的深拷贝
func (s *Store) GetState() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Dispatch 应用一个动作。动作要么完整生效，要么被拒绝且不修改任何字段。
func (s *Store) Dispatch(action Action) error {
	_, err := s.Apply(action)
	return err
}

// Apply 与 Dispatch 相同，同时返回动作生效前的状态。
// 旧状态的读取与新状态的写入在同一次加锁内完成。
func (s *Store) Apply(action Action) (previous State, err error) {
	s.mu.Lock()
	contentID := s.state.Item.ID
	next, err := action.apply(s.state.clone())
	if err != nil {
		s.mu.Unlock()
		log.Printf("[Store] 拒绝动作 %s (内容 %d): %v", action.name(), contentID, err)
		return State{}, err
	}
	previous = s.state.clone()
	s.state = next
	snapshot := next.clone()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(snapshot)
	}
	return previous, nil
}

// Subscribe 注册状态变更监听器，返回取消函数
func (s *Store) Subscribe(l Listener) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}
