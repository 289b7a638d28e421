package remote

import (
	"time"

	"github.com/anzhiyu-c/anheyu-interact/pkg/domain/model"
)

// 线上协议的父评论ID约定：-1 表示根评论
const rootParentID int64 = -1

type userDTO struct {
	ID       uint   `json:"id"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
}

// BlogCommentDTO 文章接口中的评论，作者信息是平铺的
type BlogCommentDTO struct {
	ID              uint      `json:"id"`
	Content         string    `json:"content"`
	CreateTime      time.Time `json:"createTime"`
	UserID          uint      `json:"userId"`
	Nickname        string    `json:"nickname"`
	Avatar          string    `json:"avatar"`
	ParentCommentID *int64    `json:"parentCommentId"`
	AdminComment    bool      `json:"adminComment"`
}

// BlogDTO GET /blog/:id 的 data
type BlogDTO struct {
	ID         uint             `json:"id"`
	Title      string           `json:"title"`
	Content    string           `json:"content"`
	CreateTime time.Time        `json:"createTime"`
	Likes      *int             `json:"likes"`
	Liked      bool             `json:"liked"`
	User       userDTO          `json:"user"`
	Comments   []BlogCommentDTO `json:"comments"`
}

type parentRefDTO struct {
	ID uint `json:"id"`
}

// EssayCommentDTO 随笔接口中的评论，作者信息嵌套在 user 中
type EssayCommentDTO struct {
	ID                 uint          `json:"id"`
	User               userDTO       `json:"user"`
	CreateTime         *time.Time    `json:"createTime"`
	ParentCommentID    *int64        `json:"parentCommentId"`
	ParentEssayComment *parentRefDTO `json:"parentEssayComment,omitempty"`
	AdminComment       bool          `json:"adminComment"`
	Content            string        `json:"content"`
}

// EssayDTO GET /essays 列表中的一项
type EssayDTO struct {
	ID            uint              `json:"id"`
	Likes         *int              `json:"likes"`
	Liked         bool              `json:"liked"`
	User          userDTO           `json:"user"`
	Title         string            `json:"title"`
	Content       string            `json:"content"`
	CreateTime    time.Time         `json:"createTime"`
	Recommend     bool              `json:"recommend"`
	EssayComments []EssayCommentDTO `json:"essayComments"`
}

type likeRequest struct {
	UserID  uint  `json:"userId"`
	BlogID  *uint `json:"blogId,omitempty"`
	EssayID *uint `json:"essayId,omitempty"`
	IsLike  bool  `json:"isLike"`
}

type blogCommentRequest struct {
	Content  string `json:"content"`
	BlogID   uint   `json:"blogId"`
	UserID   uint   `json:"userId"`
	ParentID int64  `json:"parentId"`
}

type essayCommentRequest struct {
	UserID          uint   `json:"userId"`
	Content         string `json:"content"`
	ParentCommentID int64  `json:"parentCommentId"`
}

type createdDTO struct {
	ID uint `json:"id"`
}

func parentToWire(parentID *uint) int64 {
	if parentID == nil {
		return rootParentID
	}
	return int64(*parentID)
}

func parentFromWire(p *int64) *uint {
	if p == nil || *p <= 0 {
		return nil
	}
	id := uint(*p)
	return &id
}

func likesOrZero(p *int) int {
	if p == nil || *p < 0 {
		return 0
	}
	return *p
}

// ToPayload 转换为领域模型，评论的 HTML 由上层渲染
func (b *BlogDTO) ToPayload() model.ContentPayload {
	comments := make([]model.Comment, 0, len(b.Comments))
	for _, c := range b.Comments {
		comments = append(comments, model.Comment{
			ID:            c.ID,
			ParentID:      parentFromWire(c.ParentCommentID),
			Author:        model.Author{UserID: c.UserID, Nickname: c.Nickname, Avatar: c.Avatar},
			Content:       c.Content,
			IsAdminAuthor: c.AdminComment,
			CreatedAt:     c.CreateTime,
		})
	}
	return model.ContentPayload{
		Item: model.ContentItem{
			ID:             b.ID,
			Kind:           model.KindBlog,
			Title:          b.Title,
			Content:        b.Content,
			AuthorNickname: b.User.Nickname,
			CreatedAt:      b.CreateTime,
			LikeCount:      likesOrZero(b.Likes),
			IsLiked:        b.Liked,
			CommentCount:   len(comments),
		},
		Comments: comments,
	}
}

// ToPayload 转换为领域模型。缺少创建时间的评论使用 now 作为时间。
func (e *EssayDTO) ToPayload(now time.Time) model.ContentPayload {
	comments := make([]model.Comment, 0, len(e.EssayComments))
	for _, c := range e.EssayComments {
		createdAt := now
		if c.CreateTime != nil {
			createdAt = *c.CreateTime
		}
		parentID := parentFromWire(c.ParentCommentID)
		if parentID == nil && c.ParentEssayComment != nil && c.ParentEssayComment.ID > 0 {
			id := c.ParentEssayComment.ID
			parentID = &id
		}
		comments = append(comments, model.Comment{
			ID:            c.ID,
			ParentID:      parentID,
			Author:        model.Author{UserID: c.User.ID, Nickname: c.User.Nickname, Avatar: c.User.Avatar},
			Content:       c.Content,
			IsAdminAuthor: c.AdminComment,
			CreatedAt:     createdAt,
		})
	}
	return model.ContentPayload{
		Item: model.ContentItem{
			ID:             e.ID,
			Kind:           model.KindEssay,
			Title:          e.Title,
			Content:        e.Content,
			AuthorNickname: e.User.Nickname,
			CreatedAt:      e.CreateTime,
			Recommend:      e.Recommend,
			LikeCount:      likesOrZero(e.Likes),
			IsLiked:        e.Liked,
			CommentCount:   len(comments),
		},
		Comments: comments,
	}
}
