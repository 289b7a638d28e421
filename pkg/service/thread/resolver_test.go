package thread

import (
	"testing"
	"time"

	"github.com/anzhiyu-c/anheyu-interact/pkg/domain/model"
)

func ptr(v uint) *uint { return &v }

func comment(id uint, parent *uint, nick string, min int) model.Comment {
	return model.Comment{
		ID:        id,
		ParentID:  parent,
		Author:    model.Author{Nickname: nick},
		CreatedAt: time.Date(2026, 10, 17, 9, min, 0, 0, time.UTC),
	}
}

func TestReplyToNickname(t *testing.T) {
	comments := []model.Comment{
		comment(1, nil, "安知鱼", 0),
		comment(2, ptr(1), "小明", 1),
		comment(3, ptr(2), "小红", 2),
	}

	tests := []struct {
		name     string
		parentID *uint
		wantNick string
		wantOK   bool
	}{
		{name: "根评论没有回复对象", parentID: nil, wantNick: "", wantOK: false},
		{name: "回复根评论", parentID: ptr(1), wantNick: "安知鱼", wantOK: true},
		{name: "回复的回复只取直接父评论", parentID: ptr(2), wantNick: "小明", wantOK: true},
		{name: "父评论已被删除", parentID: ptr(404), wantNick: "", wantOK: false},
	}
	idx := NewIndex(comments)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nick, ok := ReplyToNickname(comments, tt.parentID)
			if nick != tt.wantNick || ok != tt.wantOK {
				t.Fatalf("ReplyToNickname = (%q, %v), want (%q, %v)", nick, ok, tt.wantNick, tt.wantOK)
			}
			nick, ok = idx.ReplyToNickname(tt.parentID)
			if nick != tt.wantNick || ok != tt.wantOK {
				t.Fatalf("Index.ReplyToNickname = (%q, %v), want (%q, %v)", nick, ok, tt.wantNick, tt.wantOK)
			}
		})
	}
}

func TestReplyToNicknameEmptyCollection(t *testing.T) {
	if nick, ok := ReplyToNickname(nil, ptr(1)); ok || nick != "" {
		t.Fatalf("expected no label on empty collection")
	}
}

func TestGroupTwoLevels(t *testing.T) {
	comments := []model.Comment{
		comment(1, nil, "A", 0),
		comment(2, nil, "B", 1),
		comment(3, ptr(1), "C", 2),
		comment(4, ptr(3), "D", 3),
		comment(5, ptr(404), "E", 4), // 悬空，作为根展示
	}

	threads := Group(comments)
	if len(threads) != 3 {
		t.Fatalf("expected 3 threads, got %d", len(threads))
	}
	if threads[0].Root.ID != 1 || len(threads[0].Replies) != 2 {
		t.Fatalf("unexpected first thread %+v", threads[0])
	}
	if threads[0].Replies[0].ReplyTo != "A" || threads[0].Replies[1].ReplyTo != "C" {
		t.Fatalf("unexpected reply labels %+v", threads[0].Replies)
	}
	if threads[1].Root.ID != 2 || len(threads[1].Replies) != 0 {
		t.Fatalf("unexpected second thread %+v", threads[1])
	}
	if threads[2].Root.ID != 5 {
		t.Fatalf("dangling reply should be shown as a root, got %+v", threads[2])
	}
}

func TestGroupCycleDoesNotLoop(t *testing.T) {
	comments := []model.Comment{
		comment(1, ptr(2), "A", 0),
		comment(2, ptr(1), "B", 1),
	}
	threads := Group(comments)
	if len(threads) != 2 {
		t.Fatalf("expected both comments as roots, got %d threads", len(threads))
	}
}

func TestGroupReplyBeforeRoot(t *testing.T) {
	// 时间戳异常：回复排在根评论之前
	comments := []model.Comment{
		comment(2, ptr(1), "B", 0),
		comment(1, nil, "A", 1),
		comment(3, ptr(1), "C", 2),
	}
	threads := Group(comments)
	if len(threads) != 1 {
		t.Fatalf("expected a single thread, got %d", len(threads))
	}
	if threads[0].Root.ID != 1 || len(threads[0].Replies) != 2 {
		t.Fatalf("unexpected thread %+v", threads[0])
	}
}
