package scrollspy

import (
	"testing"

	"github.com/anzhiyu-c/anheyu-interact/pkg/domain/model"
)

var sample = []model.HeadingEntry{
	{ID: "简介1", Text: "简介", Level: 1},
	{ID: "安装2", Text: "安装", Level: 2},
	{ID: "配置2", Text: "配置", Level: 2},
}

func offsets(m map[string]float64) OffsetFunc {
	return func(id string) (float64, bool) {
		v, ok := m[id]
		return v, ok
	}
}

func TestActiveHeading(t *testing.T) {
	geo := offsets(map[string]float64{"简介1": 100, "安装2": 400, "配置2": 900})

	tests := []struct {
		name      string
		threshold float64
		wantID    string
		wantOK    bool
	}{
		{name: "滚动350加300前瞻", threshold: 650, wantID: "安装2", wantOK: true},
		{name: "恰好等于偏移", threshold: 900, wantID: "配置2", wantOK: true},
		{name: "所有标题之上", threshold: 99, wantID: "", wantOK: false},
		{name: "滚到底部", threshold: 5000, wantID: "配置2", wantOK: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ActiveHeading(sample, geo, tt.threshold)
			if id != tt.wantID || ok != tt.wantOK {
				t.Fatalf("ActiveHeading = (%q, %v), want (%q, %v)", id, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}

func TestActiveHeadingSkipsMissingElements(t *testing.T) {
	geo := offsets(map[string]float64{"简介1": 100, "配置2": 900})
	id, ok := ActiveHeading(sample, geo, 650)
	if !ok || id != "简介1" {
		t.Fatalf("expected 简介1, got %q %v", id, ok)
	}
}

func TestActiveHeadingUsesOffsetNotDocumentOrder(t *testing.T) {
	// 文档顺序与偏移顺序不一致时按偏移取最大者
	geo := offsets(map[string]float64{"简介1": 500, "安装2": 200, "配置2": 900})
	id, _ := ActiveHeading(sample, geo, 650)
	if id != "简介1" {
		t.Fatalf("expected 简介1, got %q", id)
	}
}

func TestNavScrollTop(t *testing.T) {
	tests := []struct {
		name      string
		itemTop   float64
		scrollTop float64
		want      float64
		wantMoved bool
	}{
		{name: "在上部60%内不滚动", itemTop: 200, scrollTop: 50, want: 50, wantMoved: false},
		{name: "恰好在边界不滚动", itemTop: 300, scrollTop: 0, want: 0, wantMoved: false},
		{name: "低于上部区域", itemTop: 400, scrollTop: 100, want: 350, wantMoved: true},
		{name: "在容器上方", itemTop: -40, scrollTop: 100, want: 60, wantMoved: true},
		{name: "不会滚到负值", itemTop: -40, scrollTop: 10, want: 0, wantMoved: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, moved := NavScrollTop(500, tt.itemTop, tt.scrollTop, 0.6)
			if got != tt.want || moved != tt.wantMoved {
				t.Fatalf("NavScrollTop = (%v, %v), want (%v, %v)", got, moved, tt.want, tt.wantMoved)
			}
		})
	}
}

func TestScrollTarget(t *testing.T) {
	if got := ScrollTarget(1000, 64, 24); got != 912 {
		t.Fatalf("expected 912, got %v", got)
	}
	if got := ScrollTarget(50, 64, 24); got != 0 {
		t.Fatalf("expected clamp to 0, got %v", got)
	}
}
