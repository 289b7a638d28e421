package interaction

import (
	"context"
	"fmt"

	"github.com/anzhiyu-c/anheyu-interact/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-interact/pkg/service/content"
)

// Remote 远程接口。读取部分与内容加载服务共用。
type Remote interface {
	content.Fetcher
	SetLike(ctx context.Context, kind model.ContentKind, contentID, viewerID uint, liked bool) error
	CreateComment(ctx context.Context, kind model.ContentKind, contentID uint, draft model.CommentDraft) (uint, error)
	DeleteComment(ctx context.Context, kind model.ContentKind, commentID uint) error
}

// Identity 当前用户身份
type Identity interface {
	Viewer() (*model.Viewer, bool)
	CanDelete() bool
	PromptLogin()
}

// Notifier 用户提示，发出即忘
type Notifier interface {
	Notify(n model.Notice)
}

// RefreshPolicy 决定重新加载时如何对待本地已确认的评论
type RefreshPolicy string

const (
	// RefreshReplace 以服务端返回为准，整体替换
	RefreshReplace RefreshPolicy = "replace"
	// RefreshMerge 保留本次会话中新增、但服务端结果里还没有的评论
	RefreshMerge RefreshPolicy = "merge"
)

// ParseRefreshPolicy 解析配置中的刷新策略，空值视为 replace
func ParseRefreshPolicy(s string) (RefreshPolicy, error) {
	switch RefreshPolicy(s) {
	case "", RefreshReplace:
		return RefreshReplace, nil
	case RefreshMerge:
		return RefreshMerge, nil
	}
	return "", fmt.Errorf("未知的刷新策略: %s", s)
}
