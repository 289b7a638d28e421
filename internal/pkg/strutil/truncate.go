/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-08-08 16:10:53
 * @LastEditTime: 2026-10-17 08:44:26
 * @LastEditors: 安知鱼
 */
package strutil

import (
	"strings"
	"unicode/utf8"
)

// RuneLen 按字符（而不是字节）计算长度，评论长度上限按字符计
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// Truncate 安全地将UTF-8字符串截断到指定的长度，并在需要时添加省略号。
func Truncate(s string, maxLength int) string {
	if maxLength <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLength {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLength]) + "..."
}

// SingleLine 把多行文本折叠为一行，用于命令行等单行展示
func SingleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
