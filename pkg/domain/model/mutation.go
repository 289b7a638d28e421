/*
 * @Description: 进行中的远程变更记录
 * @Author: 安知鱼
 * @Date: 2026-10-16 21:03:11
 * @LastEditTime: 2026-10-16 21:03:11
 * @LastEditors: 安知鱼
 */
package model

import "time"

// MutationKind 变更类型
type MutationKind string

const (
	MutationLikeToggle    MutationKind = "like-toggle"
	MutationAddComment    MutationKind = "add-comment"
	MutationDeleteComment MutationKind = "delete-comment"
)

// PendingMutation 只在一次远程调用期间存在。
// 成功后直接丢弃，失败时使用 Previous 恢复之前的状态。
type PendingMutation struct {
	ID        string
	ContentID uint
	Kind      MutationKind
	Previous  LikeSnapshot
	IssuedAt  time.Time
}

// NoticeLevel 提示级别
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice 是一次性的用户提示，核心逻辑不跟踪它是否被展示或关闭。
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}
