/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-10-09 18:07:37
 * @LastEditTime: 2026-10-16 22:30:49
 * @LastEditors: 安知鱼
 */
package constant

import "github.com/anzhiyu-c/anheyu-interact/internal/pkg/event"

// EventTopic 事件主题类型
type EventTopic = event.Topic

// 导出事件主题常量，供外部使用
const (
	// 用户提示事件
	EventNoticeSuccess EventTopic = event.NoticeSuccess
	EventNoticeWarning EventTopic = event.NoticeWarning
	EventNoticeError   EventTopic = event.NoticeError
	// EventLoginRequired 需要登录时触发，由外部登录组件弹出登录框
	EventLoginRequired EventTopic = event.LoginRequired
)
