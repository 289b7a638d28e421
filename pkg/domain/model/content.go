/*
 * @Description: 内容条目（文章 / 随笔）领域模型
 * @Author: 安知鱼
 * @Date: 2025-08-11 17:58:40
 * @LastEditTime: 2026-10-17 10:40:02
 * @LastEditors: 安知鱼
 */
package model

import (
	"fmt"
	"time"
)

// ContentKind 区分内容类型，决定使用哪一组远程接口
type ContentKind string

const (
	KindBlog  ContentKind = "blog"
	KindEssay ContentKind = "essay"
)

// ParseContentKind 把命令行等外部输入转换为 ContentKind
func ParseContentKind(s string) (ContentKind, error) {
	switch ContentKind(s) {
	case KindBlog, KindEssay:
		return ContentKind(s), nil
	}
	return "", fmt.Errorf("未知的内容类型: %s", s)
}

// ContentItem 是当前浏览者看到的一篇文章或一条随笔
type ContentItem struct {
	ID             uint        `json:"id"`
	Kind           ContentKind `json:"kind"`
	Title          string      `json:"title,omitempty"`
	Content        string      `json:"content,omitempty"`
	AuthorNickname string      `json:"author_nickname,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	Recommend      bool        `json:"recommend"`
	LikeCount      int         `json:"like_count"`
	IsLiked        bool        `json:"is_liked"`
	// CommentCount 由评论集合长度推导，不单独维护
	CommentCount int `json:"comment_count"`
}

// LikeSnapshot 点赞相关字段的快照，用于失败回滚
type LikeSnapshot struct {
	IsLiked   bool `json:"is_liked"`
	LikeCount int  `json:"like_count"`
}

// LikeSnapshot 返回当前的点赞状态
func (c ContentItem) LikeSnapshot() LikeSnapshot {
	return LikeSnapshot{IsLiked: c.IsLiked, LikeCount: c.LikeCount}
}

// Toggled 返回翻转一次后的点赞状态，点赞数不会小于 0
func (s LikeSnapshot) Toggled() LikeSnapshot {
	if s.IsLiked {
		count := s.LikeCount - 1
		if count < 0 {
			count = 0
		}
		return LikeSnapshot{IsLiked: false, LikeCount: count}
	}
	return LikeSnapshot{IsLiked: true, LikeCount: s.LikeCount + 1}
}

// ContentPayload 是一次远程加载的结果：内容条目及其完整评论集合
type ContentPayload struct {
	Item     ContentItem `json:"item"`
	Comments []Comment   `json:"comments"`
}
