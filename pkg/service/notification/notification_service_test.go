package notification

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/anzhiyu-c/anheyu-interact/internal/pkg/event"
	"github.com/anzhiyu-c/anheyu-interact/pkg/domain/model"
)

type recordingBus struct {
	mu     sync.Mutex
	topics []event.Topic
}

func (b *recordingBus) Publish(topic event.Topic, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.topics = append(b.topics, topic)
}

func TestNotifyTopics(t *testing.T) {
	tests := []struct {
		name  string
		level model.NoticeLevel
		want  event.Topic
	}{
		{"成功提示", model.NoticeSuccess, event.NoticeSuccess},
		{"警告提示", model.NoticeWarning, event.NoticeWarning},
		{"错误提示", model.NoticeError, event.NoticeError},
		{"未知级别按错误处理", model.NoticeLevel("other"), event.NoticeError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := &recordingBus{}
			NewNotificationService(bus).Notify(model.Notice{Level: tt.level, Message: "x"})
			assert.Equal(t, []event.Topic{tt.want}, bus.topics)
		})
	}
}

func TestNotifyThroughEventBus(t *testing.T) {
	bus := event.NewEventBus()
	defer bus.Shutdown()

	got := make(chan model.Notice, 1)
	bus.Subscribe(event.NoticeError, func(payload interface{}) {
		got <- payload.(model.Notice)
	})
	login := make(chan string, 1)
	bus.Subscribe(event.LoginRequired, func(payload interface{}) {
		login <- payload.(string)
	})

	svc := NewNotificationService(bus)
	svc.Notify(model.Notice{Level: model.NoticeError, Message: "点赞失败"})
	svc.RequireLogin("请先登录")

	select {
	case n := <-got:
		assert.Equal(t, "点赞失败", n.Message)
	case <-time.After(time.Second):
		t.Fatal("未收到错误提示")
	}
	select {
	case reason := <-login:
		assert.Equal(t, "请先登录", reason)
	case <-time.After(time.Second):
		t.Fatal("未收到登录请求")
	}
}
