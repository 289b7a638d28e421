/*
 * @Description: 交互引擎：点赞乐观更新 + 失败回滚，评论新增/删除在确认后落地
 * @Author: 安知鱼
 * @Date: 2026-10-17 13:20:44
 * @LastEditTime: 2026-10-17 14:36:12
 * @LastEditors: 安知鱼
 */
package interaction

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/anzhiyu-c/anheyu-interact/internal/pkg/strutil"
	"github.com/anzhiyu-c/anheyu-interact/pkg/constant"
	"github.com/anzhiyu-c/anheyu-interact/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-interact/pkg/service/content"
	"github.com/anzhiyu-c/anheyu-interact/pkg/service/thread"
	"github.com/anzhiyu-c/anheyu-interact/pkg/service/utility"
	"github.com/anzhiyu-c/anheyu-interact/pkg/store"
)

// Options 引擎配置
type Options struct {
	MaxCommentLength int
	RefreshPolicy    RefreshPolicy
	// Now 用于给新评论打时间戳，测试中可替换
	Now func() time.Time
}

// Engine 负责一个页面（一种内容类型）上的全部交互。
// 点赞先改本地状态再请求远程，失败时恢复到操作前的快照；
// 评论新增和删除只在远程确认成功后才修改本地状态。
type Engine struct {
	kind     model.ContentKind
	registry *store.Registry
	remote   Remote
	identity Identity
	notifier Notifier
	loader   *content.Loader
	guard    *utility.InFlightGuard
	opts     Options

	mu sync.Mutex
	// 本次会话中确认新增的评论，merge 刷新时保留
	localAdded map[uint]map[uint]struct{}
}

// NewEngine 创建交互引擎。loader 为 nil 时直接从 remote 加载且不缓存。
func NewEngine(kind model.ContentKind, remote Remote, identity Identity, notifier Notifier, loader *content.Loader, opts Options) *Engine {
	if opts.MaxCommentLength <= 0 {
		opts.MaxCommentLength = constant.DefaultMaxCommentLen
	}
	if opts.RefreshPolicy == "" {
		opts.RefreshPolicy = RefreshReplace
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if loader == nil {
		loader = content.NewLoader(remote, nil, 0)
	}
	return &Engine{
		kind:       kind,
		registry:   store.NewRegistry(),
		remote:     remote,
		identity:   identity,
		notifier:   notifier,
		loader:     loader,
		guard:      utility.NewInFlightGuard(),
		opts:       opts,
		localAdded: make(map[uint]map[uint]struct{}),
	}
}

// Kind 返回引擎服务的内容类型
func (e *Engine) Kind() model.ContentKind { return e.kind }

// Registry 返回所有内容条目的状态
func (e *Engine) Registry() *store.Registry { return e.registry }

// Store 返回某个内容条目的状态
func (e *Engine) Store(contentID uint) (*store.Store, error) {
	return e.registry.Get(contentID)
}

// Open 直接用已有数据建立内容条目的状态（例如服务端渲染时已带上数据）
func (e *Engine) Open(item model.ContentItem, comments []model.Comment) (*store.Store, error) {
	item.Kind = e.kind
	return e.registry.Put(item, comments)
}

func (e *Engine) notify(level model.NoticeLevel, msg string) {
	if e.notifier != nil {
		e.notifier.Notify(model.Notice{Level: level, Message: msg})
	}
}

func (e *Engine) viewerID() uint {
	if v, ok := e.identity.Viewer(); ok {
		return v.UserID
	}
	return 0
}

// requireViewer 未登录时提示并弹出登录框
func (e *Engine) requireViewer(msg string) (*model.Viewer, error) {
	v, ok := e.identity.Viewer()
	if !ok {
		e.notify(model.NoticeWarning, msg)
		e.identity.PromptLogin()
		return nil, constant.ErrUnauthenticated
	}
	return v, nil
}

func likeKey(contentID uint) string { return fmt.Sprintf("like:%d", contentID) }

func commentKey(contentID uint, parentID *uint) string {
	if parentID == nil {
		return fmt.Sprintf("comment:%d:root", contentID)
	}
	return fmt.Sprintf("comment:%d:%d", contentID, *parentID)
}

func deleteKey(commentID uint) string { return fmt.Sprintf("delete:%d", commentID) }

// IsPending 内容条目上是否有进行中的点赞请求，界面据此禁用按钮
func (e *Engine) IsPending(contentID uint) bool {
	_, ok := e.guard.Pending(likeKey(contentID))
	return ok
}

// ToggleLike 乐观地翻转点赞状态。
// 同一条目已有进行中的请求时直接忽略本次操作，不排队。
func (e *Engine) ToggleLike(ctx context.Context, contentID uint) error {
	viewer, err := e.requireViewer(constant.MsgLoginToLike)
	if err != nil {
		return err
	}
	s, err := e.registry.Get(contentID)
	if err != nil {
		return err
	}

	key := likeKey(contentID)
	pending := model.PendingMutation{
		ID:        uuid.NewString(),
		ContentID: contentID,
		Kind:      model.MutationLikeToggle,
		IssuedAt:  e.opts.Now(),
	}
	if !e.guard.TryAcquire(key, pending) {
		return constant.ErrMutationPending
	}
	defer e.guard.Release(key)

	// 快照取自本次翻转生效前的那一刻，回滚和远程目标都以它为准
	before, err := s.Apply(store.ToggleLike{})
	if err != nil {
		return err
	}
	pending.Previous = before.Item.LikeSnapshot()
	e.guard.Update(key, pending)
	target := pending.Previous.Toggled()

	if err := e.remote.SetLike(ctx, e.kind, contentID, viewer.UserID, target.IsLiked); err != nil {
		if rbErr := s.Dispatch(store.SetLike{Snapshot: pending.Previous}); rbErr != nil {
			log.Printf("[Interaction] 回滚点赞失败 (mutation=%s): %v", pending.ID, rbErr)
		}
		log.Printf("[Interaction] 点赞请求失败，已回滚 (content=%d, mutation=%s): %v", contentID, pending.ID, err)
		e.notify(model.NoticeError, constant.MsgLikeFailed)
		return fmt.Errorf("点赞失败: %w", err)
	}

	e.loader.Invalidate(ctx, e.kind, contentID, viewer.UserID)
	return nil
}

// validateComment 去掉首尾空白后校验，长度按字符计
func (e *Engine) validateComment(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		e.notify(model.NoticeWarning, constant.MsgEmptyComment)
		return "", constant.ErrEmptyContent
	}
	if strutil.RuneLen(text) > e.opts.MaxCommentLength {
		e.notify(model.NoticeWarning, fmt.Sprintf(constant.MsgCommentTooLong, e.opts.MaxCommentLength))
		return "", constant.ErrContentTooLong
	}
	return text, nil
}

// SubmitComment 发表评论或回复（parentID 非空）。远程确认后才加入本地集合。
func (e *Engine) SubmitComment(ctx context.Context, contentID uint, parentID *uint, raw string) (*model.Comment, error) {
	text, err := e.validateComment(raw)
	if err != nil {
		return nil, err
	}
	loginMsg := constant.MsgLoginToComment
	if parentID != nil {
		loginMsg = constant.MsgLoginToReply
	}
	viewer, err := e.requireViewer(loginMsg)
	if err != nil {
		return nil, err
	}
	s, err := e.registry.Get(contentID)
	if err != nil {
		return nil, err
	}

	var parent *uint
	if parentID != nil {
		id := *parentID
		parent = &id
		if nickname, ok := thread.ReplyToNickname(s.GetState().Comments, parent); ok {
			log.Printf("[Interaction] 回复 @%s (content=%d, parent=%d)", nickname, contentID, id)
		} else {
			log.Printf("[Interaction] 父评论 %d 不在当前集合中，仍然提交", id)
		}
	}

	key := commentKey(contentID, parent)
	if !e.guard.TryAcquire(key, model.PendingMutation{
		ID: uuid.NewString(), ContentID: contentID, Kind: model.MutationAddComment, IssuedAt: e.opts.Now(),
	}) {
		return nil, constant.ErrMutationPending
	}
	defer e.guard.Release(key)

	commentID, err := e.remote.CreateComment(ctx, e.kind, contentID, model.CommentDraft{
		UserID: viewer.UserID, Content: text, ParentID: parent,
	})
	if err != nil {
		log.Printf("[Interaction] 发表评论失败 (content=%d): %v", contentID, err)
		e.notify(model.NoticeError, constant.MsgCommentFailed)
		return nil, fmt.Errorf("发表评论失败: %w", err)
	}

	comment := model.Comment{
		ID:            commentID,
		ParentID:      parent,
		Author:        viewer.AsAuthor(),
		Content:       text,
		ContentHTML:   e.loader.RenderComment(text),
		IsAdminAuthor: viewer.IsAdmin(),
		CreatedAt:     e.opts.Now(),
	}
	if err := s.Dispatch(store.AddComment{Comment: comment}); err != nil {
		// 服务端已确认；刷新可能先一步带回了这条评论
		if !errors.Is(err, constant.ErrInvalidAction) {
			return nil, err
		}
		if _, exists := s.GetState().FindComment(commentID); !exists {
			return nil, err
		}
	}
	e.trackLocal(contentID, commentID)

	msg := constant.MsgCommentSuccess
	if parent != nil {
		msg = constant.MsgReplySuccess
		if st := s.GetState(); st.ReplyTarget != nil && *st.ReplyTarget == *parent {
			_ = s.Dispatch(store.SetReplyTarget{})
		}
	}
	e.notify(model.NoticeSuccess, msg)
	e.loader.Invalidate(ctx, e.kind, contentID, viewer.UserID)

	created := comment.Clone()
	return &created, nil
}

// DeleteComment 删除评论（仅管理员）。远程确认后才从本地集合移除。
func (e *Engine) DeleteComment(ctx context.Context, contentID, commentID uint) error {
	if !e.identity.CanDelete() {
		e.notify(model.NoticeWarning, constant.MsgNoDeletePerm)
		return constant.ErrForbidden
	}
	s, err := e.registry.Get(contentID)
	if err != nil {
		return err
	}
	if _, ok := s.GetState().FindComment(commentID); !ok {
		return fmt.Errorf("%w: 评论 %d", constant.ErrNotFound, commentID)
	}

	key := deleteKey(commentID)
	if !e.guard.TryAcquire(key, model.PendingMutation{
		ID: uuid.NewString(), ContentID: contentID, Kind: model.MutationDeleteComment, IssuedAt: e.opts.Now(),
	}) {
		return constant.ErrMutationPending
	}
	defer e.guard.Release(key)

	if err := e.remote.DeleteComment(ctx, e.kind, commentID); err != nil {
		log.Printf("[Interaction] 删除评论失败 (content=%d, comment=%d): %v", contentID, commentID, err)
		e.notify(model.NoticeError, constant.MsgDeleteFailed)
		return fmt.Errorf("删除评论失败: %w", err)
	}

	if err := s.Dispatch(store.RemoveComment{CommentID: commentID}); err != nil && !errors.Is(err, constant.ErrNotFound) {
		return err
	}
	e.untrackLocal(contentID, commentID)
	e.notify(model.NoticeSuccess, constant.MsgDeleteSuccess)
	e.loader.Invalidate(ctx, e.kind, contentID, e.viewerID())
	return nil
}

// ToggleReplyBox 打开或关闭某条评论的回复框，同一时刻只有一个回复框打开
func (e *Engine) ToggleReplyBox(contentID, commentID uint) error {
	if _, err := e.requireViewer(constant.MsgLoginToReply); err != nil {
		return err
	}
	s, err := e.registry.Get(contentID)
	if err != nil {
		return err
	}
	if st := s.GetState(); st.ReplyTarget != nil && *st.ReplyTarget == commentID {
		return s.Dispatch(store.SetReplyTarget{})
	}
	id := commentID
	return s.Dispatch(store.SetReplyTarget{CommentID: &id})
}

func (e *Engine) trackLocal(contentID, commentID uint) {
	e.mu.Lock()
	defer e.mu.Unlock()
	ids, ok := e.localAdded[contentID]
	if !ok {
		ids = make(map[uint]struct{})
		e.localAdded[contentID] = ids
	}
	ids[commentID] = struct{}{}
}

func (e *Engine) untrackLocal(contentID, commentID uint) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.localAdded[contentID], commentID)
}
