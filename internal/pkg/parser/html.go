/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-08-08 16:10:36
 * @LastEditTime: 2026-10-17 08:46:02
 * @LastEditors: 安知鱼
 */
package parser

import (
	"html"

	"github.com/microcosm-cc/bluemonday"

	"github.com/anzhiyu-c/anheyu-interact/internal/pkg/strutil"
)

var stripTagsPolicy *bluemonday.Policy

func init() {
	// StripTagsPolicy 会移除所有的HTML标签
	stripTagsPolicy = bluemonday.StripTagsPolicy()
}

// StripHTML 接受一个HTML字符串，返回一个去除了所有标签的纯文本字符串。
func StripHTML(htmlContent string) string {
	return html.UnescapeString(stripTagsPolicy.Sanitize(htmlContent))
}

// Preview 生成单行纯文本摘要，用于命令行展示评论
func Preview(htmlContent string, maxRunes int) string {
	return strutil.Truncate(strutil.SingleLine(StripHTML(htmlContent)), maxRunes)
}
