/*
 * @Description: 通知服务实现，把交互结果以提示事件的形式发布到事件总线
 * @Author: 安知鱼
 * @Date: 2025-10-12
 */
package notification

import (
	"github.com/anzhiyu-c/anheyu-interact/internal/pkg/event"
	"github.com/anzhiyu-c/anheyu-interact/pkg/domain/model"
)

// Publisher 是事件总线的发布端
type Publisher interface {
	Publish(topic event.Topic, payload interface{})
}

// Service 通知服务接口
type Service interface {
	// Notify 发出一次性提示，不跟踪是否被展示
	Notify(n model.Notice)
	// RequireLogin 请求外部登录组件弹出登录框
	RequireLogin(reason string)
}

type notificationService struct {
	bus Publisher
}

// NewNotificationService 创建通知服务
func NewNotificationService(bus Publisher) Service {
	return &notificationService{bus: bus}
}

// Notify 按提示级别发布到对应主题
func (s *notificationService) Notify(n model.Notice) {
	s.bus.Publish(topicFor(n.Level), n)
}

// RequireLogin 发布登录请求事件
func (s *notificationService) RequireLogin(reason string) {
	s.bus.Publish(event.LoginRequired, reason)
}

func topicFor(level model.NoticeLevel) event.Topic {
	switch level {
	case model.NoticeSuccess:
		return event.NoticeSuccess
	case model.NoticeWarning:
		return event.NoticeWarning
	default:
		return event.NoticeError
	}
}
