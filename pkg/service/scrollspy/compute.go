/*
 * @Description: Scroll-Spy 的纯计算部分
 * @Author: 安知鱼
 * @Date: 2026-10-16 18:37:44
 * @LastEditTime: 2026-10-17 09:12:30
 * @LastEditors: 安知鱼
 */
package scrollspy

import "github.com/anzhiyu-c/anheyu-interact/pkg/domain/model"

// OffsetFunc 返回标题的文档偏移
type OffsetFunc func(id string) (float64, bool)

// ActiveHeading 在偏移量不超过 threshold 的标题中选出偏移最大的一个，
// 即读者最后滚过的标题（后者优先，而不是按距离最近）。
// 偏移相同时取文档顺序靠后的标题；没有标题满足条件时返回 false。
func ActiveHeading(headings []model.HeadingEntry, offsetOf OffsetFunc, threshold float64) (string, bool) {
	var (
		bestID  string
		bestTop float64
		found   bool
	)
	for _, h := range headings {
		top, ok := offsetOf(h.ID)
		if !ok {
			continue
		}
		if top > threshold {
			continue
		}
		if !found || top >= bestTop {
			bestID, bestTop, found = h.ID, top, true
		}
	}
	return bestID, found
}

// NavScrollTop 计算导航容器新的 scrollTop。
// 条目位于容器上部 upperRatio 区域内时不滚动，避免跳动；
// 低于该区域时把条目滚到该区域的中间；位于容器上方（负值）时向上滚到可见。
func NavScrollTop(containerHeight, itemTop, scrollTop, upperRatio float64) (float64, bool) {
	upper := containerHeight * upperRatio
	var next float64
	switch {
	case itemTop > upper:
		next = scrollTop + itemTop - upper/2
	case itemTop < 0:
		next = scrollTop + itemTop
	default:
		return scrollTop, false
	}
	if next < 0 {
		next = 0
	}
	return next, next != scrollTop
}

// ScrollTarget 点击目录时视口的目标位置：标题偏移减去头部高度和额外间距
func ScrollTarget(headingTop, headerHeight, margin float64) float64 {
	target := headingTop - (headerHeight + margin)
	if target < 0 {
		return 0
	}
	return target
}
