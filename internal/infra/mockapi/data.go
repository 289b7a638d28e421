/*
 * @Description: 本地模拟接口的内存数据
 * @Author: 安知鱼
 * @Date: 2026-10-17 11:45:30
 * @LastEditTime: 2026-10-17 12:20:18
 * @LastEditors: 安知鱼
 */
package mockapi

import (
	"sort"
	"sync"
	"time"

	"github.com/anzhiyu-c/anheyu-interact/pkg/domain/model"
)

type record struct {
	item     model.ContentItem
	comments []model.Comment
	likers   map[uint]bool
}

// Operation 可注入失败的接口类别
type Operation string

const (
	OpFetch   Operation = "fetch"
	OpLike    Operation = "like"
	OpComment Operation = "comment"
	OpDelete  Operation = "delete"
)

// FailureMode 失败的表现形式
type FailureMode int

const (
	// FailInBody HTTP 200，body 中 code 为 500
	FailInBody FailureMode = iota + 1
	// FailHTTP HTTP 500，body 仍为统一返回结构
	FailHTTP
	// FailGarbage HTTP 502，body 不是 JSON
	FailGarbage
)

// RequestRecord 记录收到的请求，供测试检查请求头
type RequestRecord struct {
	Method        string
	Path          string
	RequestID     string
	Authorization string
	Operation     Operation
}

type memoryData struct {
	mu            sync.Mutex
	blogs         map[uint]*record
	essays        map[uint]*record
	users         map[uint]model.Viewer
	nextCommentID uint
	failures      map[Operation][]FailureMode
	requests      []RequestRecord
	now           func() time.Time
}

func newMemoryData() *memoryData {
	return &memoryData{
		blogs:         make(map[uint]*record),
		essays:        make(map[uint]*record),
		users:         make(map[uint]model.Viewer),
		nextCommentID: 1000,
		failures:      make(map[Operation][]FailureMode),
		now:           time.Now,
	}
}

func (d *memoryData) table(kind model.ContentKind) map[uint]*record {
	if kind == model.KindEssay {
		return d.essays
	}
	return d.blogs
}

func (d *memoryData) seed(item model.ContentItem, comments []model.Comment) {
	d.mu.Lock()
	defer d.mu.Unlock()
	r := &record{item: item, comments: model.CloneComments(comments), likers: make(map[uint]bool)}
	for _, c := range comments {
		if c.ID >= d.nextCommentID {
			d.nextCommentID = c.ID + 1
		}
	}
	d.table(item.Kind)[item.ID] = r
}

// takeFailure 取出一个待注入的失败
func (d *memoryData) takeFailure(op Operation) (FailureMode, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	queue := d.failures[op]
	if len(queue) == 0 {
		return 0, false
	}
	d.failures[op] = queue[1:]
	return queue[0], true
}

// view 返回某个用户看到的内容条目
func (d *memoryData) view(r *record, viewerID uint) model.ContentPayload {
	item := r.item
	item.IsLiked = viewerID != 0 && r.likers[viewerID]
	comments := model.CloneComments(r.comments)
	item.CommentCount = len(comments)
	return model.ContentPayload{Item: item, Comments: comments}
}

func (d *memoryData) get(kind model.ContentKind, id, viewerID uint) (model.ContentPayload, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	r, ok := d.table(kind)[id]
	if !ok {
		return model.ContentPayload{}, false
	}
	return d.view(r, viewerID), true
}

func (d *memoryData) list(kind model.ContentKind, viewerID uint) []model.ContentPayload {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]model.ContentPayload, 0, len(d.table(kind)))
	for _, r := range d.table(kind) {
		out = append(out, d.view(r, viewerID))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Item.ID < out[j].Item.ID })
	return out
}

// setLike 幂等地设置点赞状态
func (d *memoryData) setLike(kind model.ContentKind, id, userID uint, liked bool) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	r, ok := d.table(kind)[id]
	if !ok {
		return false
	}
	if r.likers[userID] == liked {
		return true
	}
	r.likers[userID] = liked
	if liked {
		r.item.LikeCount++
	} else if r.item.LikeCount > 0 {
		r.item.LikeCount--
	}
	return true
}

func (d *memoryData) addComment(kind model.ContentKind, id uint, draft model.CommentDraft) (uint, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	r, ok := d.table(kind)[id]
	if !ok {
		return 0, false
	}
	user, known := d.users[draft.UserID]
	if !known {
		user = model.Viewer{UserID: draft.UserID}
	}
	commentID := d.nextCommentID
	d.nextCommentID++
	r.comments = append(r.comments, model.Comment{
		ID:            commentID,
		ParentID:      draft.ParentID,
		Author:        user.AsAuthor(),
		Content:       draft.Content,
		IsAdminAuthor: user.IsAdmin(),
		CreatedAt:     d.now(),
	})
	return commentID, true
}

func (d *memoryData) deleteComment(kind model.ContentKind, commentID uint) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, r := range d.table(kind) {
		for i, c := range r.comments {
			if c.ID == commentID {
				r.comments = append(r.comments[:i], r.comments[i+1:]...)
				return true
			}
		}
	}
	return false
}
