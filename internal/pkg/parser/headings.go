package parser

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/yuin/goldmark/ast"

	"github.com/anzhiyu-c/anheyu-interact/pkg/domain/model"
)

// HeadingID 由标题文本和层级生成 id：空白折叠为 "-" 后拼接层级，例如 "快速 开始" + 2 → "快速-开始2"。
// 文本为空时返回空字符串，由调用方使用兜底 id。
func HeadingID(text string, level int) string {
	fields := strings.FieldsFunc(text, unicode.IsSpace)
	if len(fields) == 0 {
		return ""
	}
	return strings.Join(fields, "-") + fmt.Sprint(level)
}

// FallbackHeadingID 无法从文本生成 id 时使用的兜底 id
func FallbackHeadingID(level, line int) string {
	return fmt.Sprintf("heading-%d-%d", level, line)
}

// ExtractHeadings 只提取标题，不渲染 HTML
func ExtractHeadings(mdContent string) ([]model.HeadingEntry, error) {
	doc, err := Render(mdContent)
	if err != nil {
		return nil, err
	}
	return doc.Headings, nil
}

// assignHeadingIDs 遍历 AST，为每个标题写入 id 属性并收集目录条目。
// 重复的 id 追加 "-1"、"-2" 等后缀，保证页面内唯一。
func assignHeadingIDs(doc ast.Node, source []byte) ([]model.HeadingEntry, error) {
	var headings []model.HeadingEntry
	used := make(map[string]int)

	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		txt := strings.TrimSpace(plainText(h, source))
		line := headingLine(h, source)
		if line == 0 {
			line = len(headings) + 1
		}

		id := HeadingID(txt, h.Level)
		if id == "" {
			id = FallbackHeadingID(h.Level, line)
		}
		if count, dup := used[id]; dup {
			used[id] = count + 1
			id = fmt.Sprintf("%s-%d", id, count+1)
		}
		used[id] = 0

		h.SetAttributeString("id", []byte(id))
		headings = append(headings, model.HeadingEntry{ID: id, Text: txt, Level: h.Level, Line: headingLine(h, source)})
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, fmt.Errorf("提取标题失败: %w", err)
	}
	return headings, nil
}

// plainText 拼接节点下所有文本片段
func plainText(n ast.Node, source []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(t.Value)
		case *ast.AutoLink:
			sb.Write(t.Label(source))
		case *ast.RawHTML:
			// 标题中的原始 HTML 不参与文本
		default:
			sb.WriteString(plainText(c, source))
		}
	}
	return sb.String()
}

// headingLine 标题所在行号（从 1 开始），空标题等无法确定时返回 0
func headingLine(h *ast.Heading, source []byte) int {
	lines := h.Lines()
	if lines == nil || lines.Len() == 0 {
		return 0
	}
	start := lines.At(0).Start
	if start > len(source) {
		return 0
	}
	return bytes.Count(source[:start], []byte("\n")) + 1
}
