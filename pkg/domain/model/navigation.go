package model

// HeadingEntry 是从渲染结果中提取出的一个标题，用于生成目录导航。
// 同一次渲染内只读，内容变化后整体替换。
type HeadingEntry struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Level int    `json:"level"` // 1-6
	Line  int    `json:"line"`  // 标题在源文档中的行号（从 1 开始），无法确定时为 0
}

// NavigationState 目录导航状态，只由 Scroll-Spy 导航器和显式的开关操作修改。
type NavigationState struct {
	ActiveHeadingID string `json:"active_heading_id"`
	SidebarOpen     bool   `json:"sidebar_open"`
}
