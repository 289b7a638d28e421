package strutil

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{name: "未超出", input: "你好", max: 5, want: "你好"},
		{name: "中文截断", input: "你好世界", max: 2, want: "你好..."},
		{name: "英文截断", input: "hello", max: 3, want: "hel..."},
		{name: "长度为0", input: "hello", max: 0, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.max); got != tt.want {
				t.Fatalf("Truncate(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.want)
			}
		})
	}
}

func TestRuneLenCountsCharacters(t *testing.T) {
	if got := RuneLen("评论abc"); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
}

func TestSingleLine(t *testing.T) {
	if got := SingleLine("第一行\n  第二行\t末尾 "); got != "第一行 第二行 末尾" {
		t.Fatalf("unexpected %q", got)
	}
}
