/*
 * @Description: 内容加载服务：远程拉取 + 缓存 + 并发合并
 * @Author: 安知鱼
 * @Date: 2026-10-17 12:40:05
 * @LastEditTime: 2026-10-17 13:18:27
 * @LastEditors: 安知鱼
 */
package content

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/anzhiyu-c/anheyu-interact/internal/pkg/parser"
	"github.com/anzhiyu-c/anheyu-interact/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-interact/pkg/service/utility"
)

// DefaultTTL 缓存默认有效期
const DefaultTTL = time.Minute

// Fetcher 是远程接口中负责读取的部分
type Fetcher interface {
	FetchContent(ctx context.Context, kind model.ContentKind, contentID, viewerID uint) (*model.ContentPayload, error)
	FetchEssays(ctx context.Context, viewerID uint) ([]model.ContentPayload, error)
}

// Loader 加载内容条目。同一个键的并发加载只会触发一次远程调用，
// 结果按浏览者分别缓存（点赞状态因人而异）。
type Loader struct {
	fetcher Fetcher
	cache   utility.CacheService
	ttl     time.Duration
	group   singleflight.Group
	render  func(string) string
}

// NewLoader 创建加载服务，cache 为 nil 时不缓存
func NewLoader(fetcher Fetcher, cache utility.CacheService, ttl time.Duration) *Loader {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Loader{
		fetcher: fetcher,
		cache:   cache,
		ttl:     ttl,
		render:  parser.RenderComment,
	}
}

func contentKey(kind model.ContentKind, contentID, viewerID uint) string {
	return fmt.Sprintf("interact:content:%s:%d:v%d", kind, contentID, viewerID)
}

func feedKey(viewerID uint) string {
	return fmt.Sprintf("interact:feed:essay:v%d", viewerID)
}

// Load 加载单个内容条目
func (l *Loader) Load(ctx context.Context, kind model.ContentKind, contentID, viewerID uint) (*model.ContentPayload, error) {
	key := contentKey(kind, contentID, viewerID)

	var cached model.ContentPayload
	if l.readCache(ctx, key, &cached) {
		return &cached, nil
	}

	v, err, _ := l.group.Do(key, func() (interface{}, error) {
		payload, err := l.fetcher.FetchContent(ctx, kind, contentID, viewerID)
		if err != nil {
			return nil, err
		}
		l.renderComments(payload)
		l.writeCache(ctx, key, payload)
		return payload, nil
	})
	if err != nil {
		return nil, err
	}
	return clonePayload(v.(*model.ContentPayload)), nil
}

// LoadFeed 加载随笔列表
func (l *Loader) LoadFeed(ctx context.Context, viewerID uint) ([]model.ContentPayload, error) {
	key := feedKey(viewerID)

	var cached []model.ContentPayload
	if l.readCache(ctx, key, &cached) {
		return cached, nil
	}

	v, err, _ := l.group.Do(key, func() (interface{}, error) {
		payloads, err := l.fetcher.FetchEssays(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		for i := range payloads {
			l.renderComments(&payloads[i])
		}
		l.writeCache(ctx, key, payloads)
		return payloads, nil
	})
	if err != nil {
		return nil, err
	}
	shared := v.([]model.ContentPayload)
	out := make([]model.ContentPayload, len(shared))
	for i := range shared {
		out[i] = *clonePayload(&shared[i])
	}
	return out, nil
}

// Invalidate 在本地确认一次变更后清除该浏览者的缓存，随笔同时清除列表缓存
func (l *Loader) Invalidate(ctx context.Context, kind model.ContentKind, contentID, viewerID uint) {
	if l.cache == nil {
		return
	}
	keys := []string{contentKey(kind, contentID, viewerID)}
	if kind == model.KindEssay {
		keys = append(keys, feedKey(viewerID))
	}
	if err := l.cache.Delete(ctx, keys...); err != nil {
		log.Printf("[ContentLoader] 清除缓存失败 %v: %v", keys, err)
	}
}

// RenderComment 渲染单条评论，新建评论与加载的评论使用同一个渲染器
func (l *Loader) RenderComment(markdown string) string {
	return l.render(markdown)
}

func (l *Loader) renderComments(p *model.ContentPayload) {
	for i := range p.Comments {
		if p.Comments[i].ContentHTML == "" {
			p.Comments[i].ContentHTML = l.render(p.Comments[i].Content)
		}
	}
}

// readCache 缓存不可用或数据损坏时视为未命中
func (l *Loader) readCache(ctx context.Context, key string, out interface{}) bool {
	if l.cache == nil {
		return false
	}
	hit, err := utility.GetJSON(ctx, l.cache, key, out)
	if err != nil {
		log.Printf("[ContentLoader] 读取缓存失败，按未命中处理: %v", err)
		return false
	}
	return hit
}

func (l *Loader) writeCache(ctx context.Context, key string, v interface{}) {
	if l.cache == nil {
		return
	}
	if err := utility.SetJSON(ctx, l.cache, key, v, l.ttl); err != nil {
		log.Printf("[ContentLoader] 写入缓存 %s 失败: %v", key, err)
	}
}

func clonePayload(p *model.ContentPayload) *model.ContentPayload {
	out := *p
	out.Comments = model.CloneComments(p.Comments)
	return &out
}
