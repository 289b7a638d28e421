/*
 * @Description: 评论“回复给谁”的解析与两级展示分组
 * @Author: 安知鱼
 * @Date: 2026-10-16 21:40:18
 * @LastEditTime: 2026-10-17 10:20:03
 * @LastEditors: 安知鱼
 */
package thread

import "github.com/anzhiyu-c/anheyu-interact/pkg/domain/model"

// ReplyToNickname 返回 parentID 所指评论作者的昵称。
// 线性查找：每页评论只有几十条，不为此维护索引。
// parentID 为空或父评论已不在集合中时返回 ("", false)，不会报错。
func ReplyToNickname(comments []model.Comment, parentID *uint) (string, bool) {
	if parentID == nil {
		return "", false
	}
	for i := range comments {
		if comments[i].ID == *parentID {
			return comments[i].Author.Nickname, true
		}
	}
	return "", false
}

// Thread 是展示用的两级结构：一条根评论及其下所有回复（已打平）
type Thread struct {
	Root    model.Comment
	Replies []Reply
}

// Reply 是线程中的一条回复，ReplyTo 为直接父评论作者的昵称，悬空时为空
type Reply struct {
	Comment model.Comment
	ReplyTo string
}

// Group 将按时间排序的扁平评论集合分成两级线程。
// 回复沿父引用向上找到根评论后挂在根下，不递归构建树；
// 父链悬空的回复当作根评论展示。集合顺序在每个线程内保持不变。
func Group(comments []model.Comment) []Thread {
	idx := NewIndex(comments)

	threads := make([]Thread, 0)
	position := make(map[uint]int)
	for _, c := range comments {
		rootID, ok := idx.rootOf(c)
		if !ok || rootID == c.ID {
			if _, exists := position[c.ID]; exists {
				continue
			}
			position[c.ID] = len(threads)
			threads = append(threads, Thread{Root: c})
			continue
		}
		pos, exists := position[rootID]
		if !exists {
			// 回复早于根评论出现（时间戳异常），先为根占位
			root, _ := idx.Get(rootID)
			pos = len(threads)
			position[rootID] = pos
			threads = append(threads, Thread{Root: root})
		}
		nick, _ := idx.ReplyToNickname(c.ParentID)
		threads[pos].Replies = append(threads[pos].Replies, Reply{Comment: c, ReplyTo: nick})
	}

	return threads
}
