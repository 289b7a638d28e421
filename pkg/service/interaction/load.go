package interaction

import (
	"context"
	"fmt"
	"log"

	"github.com/anzhiyu-c/anheyu-interact/pkg/constant"
	"github.com/anzhiyu-c/anheyu-interact/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-interact/pkg/store"
)

// Load 加载单个内容条目。条目已存在时按刷新策略合并。
func (e *Engine) Load(ctx context.Context, contentID uint) (*store.Store, error) {
	payload, err := e.loader.Load(ctx, e.kind, contentID, e.viewerID())
	if err != nil {
		log.Printf("[Interaction] 加载内容 %d 失败: %v", contentID, err)
		e.notify(model.NoticeError, constant.MsgLoadFailed)
		return nil, fmt.Errorf("加载内容失败: %w", err)
	}
	return e.apply(*payload)
}

// Refresh 跳过缓存重新加载
func (e *Engine) Refresh(ctx context.Context, contentID uint) (*store.Store, error) {
	e.loader.Invalidate(ctx, e.kind, contentID, e.viewerID())
	return e.Load(ctx, contentID)
}

// LoadFeed 加载随笔列表，返回推荐在前、时间倒序的快照
func (e *Engine) LoadFeed(ctx context.Context) ([]store.State, error) {
	if e.kind != model.KindEssay {
		return nil, fmt.Errorf("%s 类型没有列表接口", e.kind)
	}
	payloads, err := e.loader.LoadFeed(ctx, e.viewerID())
	if err != nil {
		log.Printf("[Interaction] 加载随笔列表失败: %v", err)
		e.notify(model.NoticeError, constant.MsgLoadFailed)
		return nil, fmt.Errorf("加载随笔列表失败: %w", err)
	}
	for _, p := range payloads {
		if _, err := e.apply(p); err != nil {
			// 单条数据异常不影响其它条目
			log.Printf("[Interaction] 随笔 %d 数据无效，已跳过: %v", p.Item.ID, err)
		}
	}
	return e.registry.Feed(), nil
}

func (e *Engine) apply(p model.ContentPayload) (*store.Store, error) {
	p.Item.Kind = e.kind
	s, err := e.registry.Get(p.Item.ID)
	if err != nil {
		return e.registry.Put(p.Item, p.Comments)
	}

	comments := p.Comments
	if e.opts.RefreshPolicy == RefreshMerge {
		comments = e.mergeLocal(s.GetState(), p.Comments)
	}
	hydrate := store.Hydrate{Item: p.Item, Comments: comments, KeepLike: e.IsPending(p.Item.ID)}
	if err := s.Dispatch(hydrate); err != nil {
		return nil, err
	}
	return s, nil
}

// mergeLocal 把本地已确认、但服务端结果中还没有的评论补回去
func (e *Engine) mergeLocal(current store.State, fetched []model.Comment) []model.Comment {
	e.mu.Lock()
	local := make(map[uint]struct{}, len(e.localAdded[current.Item.ID]))
	for id := range e.localAdded[current.Item.ID] {
		local[id] = struct{}{}
	}
	e.mu.Unlock()
	if len(local) == 0 {
		return fetched
	}

	present := make(map[uint]struct{}, len(fetched))
	for _, c := range fetched {
		present[c.ID] = struct{}{}
	}
	merged := model.CloneComments(fetched)
	for _, c := range current.Comments {
		if _, mine := local[c.ID]; !mine {
			continue
		}
		if _, ok := present[c.ID]; !ok {
			merged = append(merged, c.Clone())
		}
	}
	return merged
}
