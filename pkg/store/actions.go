/*
 * @Description: Entity Store 的状态变更动作（封闭集合）
 * @Author: 安知鱼
 * @Date: 2026-10-16 20:14:52
 * @LastEditTime: 2026-10-17 09:58:21
 * @LastEditors: 安知鱼
 */
package store

import (
	"fmt"
	"sort"

	"github.com/anzhiyu-c/anheyu-interact/pkg/constant"
	"github.com/anzhiyu-c/anheyu-interact/pkg/domain/model"
)

// Action 是一个状态变更动作。apply 是 (state, action) → newState 的纯函数，
// 返回错误时调用方丢弃返回值，原状态保持不变。
// apply 未导出，因此动作集合在包外是封闭的。
type Action interface {
	apply(s State) (State, error)
	name() string
}

// ToggleLike 翻转点赞状态，取消点赞时点赞数不会小于 0
type ToggleLike struct{}

func (ToggleLike) name() string { return "TOGGLE_LIKE" }

func (ToggleLike) apply(s State) (State, error) {
	next := s.Item.LikeSnapshot().Toggled()
	s.Item.IsLiked = next.IsLiked
	s.Item.LikeCount = next.LikeCount
	return s, nil
}

// SetLike 原样写入点赞状态，用于回滚到操作前的快照
type SetLike struct {
	Snapshot model.LikeSnapshot
}

func (SetLike) name() string { return "SET_LIKE" }

func (a SetLike) apply(s State) (State, error) {
	if a.Snapshot.LikeCount < 0 {
		return s, fmt.Errorf("%w: 点赞数不能为负数(%d)", constant.ErrInvalidAction, a.Snapshot.LikeCount)
	}
	s.Item.IsLiked = a.Snapshot.IsLiked
	s.Item.LikeCount = a.Snapshot.LikeCount
	return s, nil
}

// SetContent 用远程返回的内容替换内容条目（评论集合不变）
type SetContent struct {
	Item model.ContentItem
}

func (SetContent) name() string { return "SET_CONTENT" }

func (a SetContent) apply(s State) (State, error) {
	if a.Item.LikeCount < 0 {
		return s, fmt.Errorf("%w: 点赞数不能为负数(%d)", constant.ErrInvalidAction, a.Item.LikeCount)
	}
	item := a.Item
	item.CommentCount = len(s.Comments)
	s.Item = item
	return s, nil
}

// SetComments 整体替换评论集合
type SetComments struct {
	Comments []model.Comment
}

func (SetComments) name() string { return "SET_COMMENTS" }

func (a SetComments) apply(s State) (State, error) {
	seen := make(map[uint]struct{}, len(a.Comments))
	for _, c := range a.Comments {
		if c.ID == 0 {
			return s, fmt.Errorf("%w: 评论缺少ID", constant.ErrInvalidAction)
		}
		if _, dup := seen[c.ID]; dup {
			return s, fmt.Errorf("%w: 重复的评论ID %d", constant.ErrInvalidAction, c.ID)
		}
		seen[c.ID] = struct{}{}
	}
	s.Comments = sortByCreatedAt(model.CloneComments(a.Comments))
	s.Item.CommentCount = len(s.Comments)
	return s, nil
}

// Hydrate 用远程返回的内容和评论一次性替换整个条目。
// 如果当前打开回复框的评论已不存在，回复框随之关闭。
// KeepLike 为 true 时保留本地的点赞字段（有点赞请求在途时，服务端结果还是旧值）。
type Hydrate struct {
	Item     model.ContentItem
	Comments []model.Comment
	KeepLike bool
}

func (Hydrate) name() string { return "HYDRATE" }

func (a Hydrate) apply(s State) (State, error) {
	item := a.Item
	if a.KeepLike {
		item.IsLiked = s.Item.IsLiked
		item.LikeCount = s.Item.LikeCount
	}
	s, err := SetContent{Item: item}.apply(s)
	if err != nil {
		return s, err
	}
	if s, err = (SetComments{Comments: a.Comments}).apply(s); err != nil {
		return s, err
	}
	if s.ReplyTarget != nil {
		if _, ok := s.FindComment(*s.ReplyTarget); !ok {
			s.ReplyTarget = nil
		}
	}
	return s, nil
}

// AddComment 追加一条评论，之后集合仍按创建时间升序
type AddComment struct {
	Comment model.Comment
}

func (AddComment) name() string { return "ADD_COMMENT" }

func (a AddComment) apply(s State) (State, error) {
	if a.Comment.ID == 0 {
		return s, fmt.Errorf("%w: 评论缺少ID", constant.ErrInvalidAction)
	}
	for _, c := range s.Comments {
		if c.ID == a.Comment.ID {
			return s, fmt.Errorf("%w: 重复的评论ID %d", constant.ErrInvalidAction, c.ID)
		}
	}
	comments := make([]model.Comment, 0, len(s.Comments)+1)
	comments = append(comments, s.Comments...)
	comments = append(comments, a.Comment.Clone())
	s.Comments = sortByCreatedAt(comments)
	s.Item.CommentCount = len(s.Comments)
	return s, nil
}

// RemoveComment 删除一条评论。回复它的评论保留，展示时父引用悬空。
type RemoveComment struct {
	CommentID uint
}

func (RemoveComment) name() string { return "DELETE_COMMENT" }

func (a RemoveComment) apply(s State) (State, error) {
	comments := make([]model.Comment, 0, len(s.Comments))
	found := false
	for _, c := range s.Comments {
		if c.ID == a.CommentID {
			found = true
			continue
		}
		comments = append(comments, c)
	}
	if !found {
		return s, fmt.Errorf("%w: 评论 %d", constant.ErrNotFound, a.CommentID)
	}
	s.Comments = comments
	s.Item.CommentCount = len(s.Comments)
	if s.ReplyTarget != nil && *s.ReplyTarget == a.CommentID {
		s.ReplyTarget = nil
	}
	return s, nil
}

// SetReplyTarget 设置当前打开回复框的评论，nil 表示全部关闭。
// 同一时刻最多只有一个回复框处于打开状态。
type SetReplyTarget struct {
	CommentID *uint
}

func (SetReplyTarget) name() string { return "SET_RP_ACTIVE_ID" }

func (a SetReplyTarget) apply(s State) (State, error) {
	if a.CommentID == nil {
		s.ReplyTarget = nil
		return s, nil
	}
	for _, c := range s.Comments {
		if c.ID == *a.CommentID {
			id := *a.CommentID
			s.ReplyTarget = &id
			return s, nil
		}
	}
	return s, fmt.Errorf("%w: 评论 %d", constant.ErrNotFound, *a.CommentID)
}

// sortByCreatedAt 稳定排序：时间相同的评论保持插入顺序
func sortByCreatedAt(comments []model.Comment) []model.Comment {
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments
}
