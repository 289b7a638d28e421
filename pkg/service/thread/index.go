package thread

import "github.com/anzhiyu-c/anheyu-interact/pkg/domain/model"

// Index 是按ID建立的评论索引，评论量很大时代替线性查找，结果与 ReplyToNickname 一致。
type Index struct {
	byID map[uint]model.Comment
}

// NewIndex 为评论集合建立索引
func NewIndex(comments []model.Comment) *Index {
	idx := &Index{byID: make(map[uint]model.Comment, len(comments))}
	for _, c := range comments {
		idx.byID[c.ID] = c
	}
	return idx
}

// Get 按ID获取评论
func (i *Index) Get(id uint) (model.Comment, bool) {
	c, ok := i.byID[id]
	return c, ok
}

// ReplyToNickname 与包级函数语义相同
func (i *Index) ReplyToNickname(parentID *uint) (string, bool) {
	if parentID == nil {
		return "", false
	}
	c, ok := i.byID[*parentID]
	if !ok {
		return "", false
	}
	return c.Author.Nickname, true
}

// rootOf 沿父引用找到根评论ID。遇到悬空引用或环时返回 false。
func (i *Index) rootOf(c model.Comment) (uint, bool) {
	visited := map[uint]bool{c.ID: true}
	cur := c
	for !cur.IsTopLevel() {
		parent, ok := i.byID[*cur.ParentID]
		if !ok || visited[parent.ID] {
			return 0, false
		}
		visited[parent.ID] = true
		cur = parent
	}
	return cur.ID, true
}
