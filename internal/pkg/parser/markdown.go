/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-08-08 15:57:23
 * @LastEditTime: 2026-10-17 08:20:11
 * @LastEditors: 安知鱼
 */
// internal/pkg/parser/markdown.go
package parser

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"github.com/anzhiyu-c/anheyu-interact/pkg/domain/model"
)

var mdParser goldmark.Markdown
var policy *bluemonday.Policy

func init() {
	// 初始化 Goldmark 解析器，并启用常用扩展
	mdParser = goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,           // 支持 GitHub Flavored Markdown
			extension.Footnote,      // 支持脚注
			extension.Typographer,   // 美化排版
			extension.Linkify,       // 自动识别链接
			extension.Strikethrough, // 删除线
			extension.Table,         // 表格
			extension.TaskList,      // 任务列表
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(), // 硬换行
			html.WithXHTML(),     // 渲染为 XHTML
			html.WithUnsafe(),    // 信任所有原始 HTML，后续由 bluemonday 清理
		),
	)

	// 初始化 bluemonday 的安全策略
	// UGCPolicy 是一个很好的起点，它适用于用户生成的内容
	policy = bluemonday.UGCPolicy()
	// 允许代码高亮需要的 class 属性
	policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "span")
	// 允许表格相关元素
	policy.AllowElements("table", "thead", "tbody", "tr", "th", "td")
	// 允许标题的 id 属性，目录导航依赖它定位标题
	policy.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
}

// Document 是一次内容渲染的结果：安全的 HTML 以及从中提取的标题列表
type Document struct {
	HTML     string
	Headings []model.HeadingEntry
}

// Render 将 Markdown 渲染为安全的 HTML，并为每个标题生成 id。
// 返回的标题列表与 HTML 中的 id 一一对应，供目录导航使用。
func Render(mdContent string) (*Document, error) {
	source := []byte(mdContent)
	doc := mdParser.Parser().Parse(text.NewReader(source))

	headings, err := assignHeadingIDs(doc, source)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := mdParser.Renderer().Render(&buf, source, doc); err != nil {
		return nil, fmt.Errorf("渲染 Markdown 失败: %w", err)
	}
	// 使用 bluemonday 清理 HTML，防止 XSS
	return &Document{HTML: policy.Sanitize(buf.String()), Headings: headings}, nil
}

// MarkdownToHTML 将 Markdown 字符串转换为安全的 HTML 字符串
func MarkdownToHTML(mdContent string) (string, error) {
	var buf bytes.Buffer
	if err := mdParser.Convert([]byte(mdContent), &buf); err != nil {
		return "", err
	}
	return policy.Sanitize(buf.String()), nil
}

// RenderComment 渲染评论内容，渲染失败时退化为转义后的纯文本
func RenderComment(mdContent string) string {
	safeHTML, err := MarkdownToHTML(mdContent)
	if err != nil {
		return policy.Sanitize(mdContent)
	}
	return safeHTML
}
