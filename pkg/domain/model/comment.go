/*
 * @Description: 评论领域模型（扁平集合）
 * @Author: 安知鱼
 * @Date: 2025-08-11 17:58:40
 * @LastEditTime: 2026-10-17 10:12:40
 * @LastEditors: 安知鱼
 */
package model

import "time"

// Comment 是评论的核心领域模型。
// 评论以扁平集合的形式保存，不构建树：要么没有 ParentID（根评论），
// 要么引用同一集合中的另一条评论（回复）。
type Comment struct {
	ID uint `json:"id"`

	// --- 关系 ---
	// ParentID 指向被回复的评论。展示时允许悬空（父评论已被删除），悬空时不显示回复对象。
	ParentID *uint `json:"parent_id,omitempty"`

	// --- 评论者信息 ---
	Author Author `json:"author"`

	// --- 内容 ---
	Content     string `json:"content"`      // Markdown 原文
	ContentHTML string `json:"content_html"` // 渲染后的 HTML

	// --- 元数据 ---
	IsAdminAuthor bool      `json:"is_admin_author"`
	CreatedAt     time.Time `json:"created_at"`
}

// Author 代表了评论的作者信息
type Author struct {
	UserID   uint   `json:"user_id"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar,omitempty"`
}

// IsTopLevel 检查是否为根评论。
func (c Comment) IsTopLevel() bool {
	return c.ParentID == nil
}

// Clone 返回评论的深拷贝，ParentID 指针不与原值共享。
func (c Comment) Clone() Comment {
	if c.ParentID != nil {
		pid := *c.ParentID
		c.ParentID = &pid
	}
	return c
}

// CloneComments 深拷贝评论切片
func CloneComments(src []Comment) []Comment {
	if src == nil {
		return nil
	}
	dst := make([]Comment, len(src))
	for i := range src {
		dst[i] = src[i].Clone()
	}
	return dst
}

// CommentDraft 是提交给远程接口的新评论
type CommentDraft struct {
	UserID   uint
	Content  string
	ParentID *uint // nil 表示根评论，线上协议中以 -1 表示
}
