package parser

import (
	"strings"
	"testing"
)

const sampleDoc = `# 简介

这是正文。

## 快速 开始

### Install *Go*

## 快速 开始

##

<script>alert(1)</script>
`

func TestRenderAssignsHeadingIDs(t *testing.T) {
	doc, err := Render(sampleDoc)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	want := []struct {
		id    string
		text  string
		level int
		line  int
	}{
		{id: "简介1", text: "简介", level: 1, line: 1},
		{id: "快速-开始2", text: "快速 开始", level: 2, line: 5},
		{id: "Install-Go3", text: "Install Go", level: 3, line: 7},
		{id: "快速-开始2-1", text: "快速 开始", level: 2, line: 9},
	}
	if len(doc.Headings) != len(want)+1 {
		t.Fatalf("expected %d headings, got %d: %+v", len(want)+1, len(doc.Headings), doc.Headings)
	}
	for i, w := range want {
		h := doc.Headings[i]
		if h.ID != w.id || h.Text != w.text || h.Level != w.level || h.Line != w.line {
			t.Errorf("heading %d = %+v, want %+v", i, h, w)
		}
		if !strings.Contains(doc.HTML, `id="`+w.id+`"`) {
			t.Errorf("rendered HTML is missing id %q", w.id)
		}
	}

	// 空标题使用兜底 id
	last := doc.Headings[len(doc.Headings)-1]
	if !strings.HasPrefix(last.ID, "heading-2-") {
		t.Errorf("expected fallback id, got %q", last.ID)
	}
	if strings.Contains(doc.HTML, "<script>") {
		t.Errorf("script tag should be sanitized: %s", doc.HTML)
	}
}

func TestHeadingID(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		level int
		want  string
	}{
		{name: "中文", text: "简介", level: 1, want: "简介1"},
		{name: "多个空白", text: "  Hello \t World ", level: 2, want: "Hello-World2"},
		{name: "空文本", text: "   ", level: 3, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HeadingID(tt.text, tt.level); got != tt.want {
				t.Fatalf("HeadingID(%q, %d) = %q, want %q", tt.text, tt.level, got, tt.want)
			}
		})
	}
}

func TestRenderCommentSanitizes(t *testing.T) {
	out := RenderComment("**你好** <img src=x onerror=alert(1)>")
	if !strings.Contains(out, "<strong>你好</strong>") {
		t.Fatalf("expected bold text, got %s", out)
	}
	if strings.Contains(out, "onerror") {
		t.Fatalf("event handler attribute should be removed: %s", out)
	}
}

func TestPreview(t *testing.T) {
	got := Preview("<p>第一行<br/>第二行 &amp; 更多</p>", 8)
	if got != "第一行第二行 &..." {
		t.Fatalf("unexpected preview %q", got)
	}
}
