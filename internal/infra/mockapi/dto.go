package mockapi

import (
	"github.com/anzhiyu-c/anheyu-interact/internal/infra/remote"
	"github.com/anzhiyu-c/anheyu-interact/pkg/domain/model"
)

func wireParentID(p *uint) *int64 {
	if p == nil {
		root := int64(-1)
		return &root
	}
	id := int64(*p)
	return &id
}

func toBlogDTO(p model.ContentPayload) remote.BlogDTO {
	likes := p.Item.LikeCount
	dto := remote.BlogDTO{
		ID:         p.Item.ID,
		Title:      p.Item.Title,
		Content:    p.Item.Content,
		CreateTime: p.Item.CreatedAt,
		Likes:      &likes,
		Liked:      p.Item.IsLiked,
		Comments:   make([]remote.BlogCommentDTO, 0, len(p.Comments)),
	}
	dto.User.Nickname = p.Item.AuthorNickname
	for _, c := range p.Comments {
		dto.Comments = append(dto.Comments, remote.BlogCommentDTO{
			ID:              c.ID,
			Content:         c.Content,
			CreateTime:      c.CreatedAt,
			UserID:          c.Author.UserID,
			Nickname:        c.Author.Nickname,
			Avatar:          c.Author.Avatar,
			ParentCommentID: wireParentID(c.ParentID),
			AdminComment:    c.IsAdminAuthor,
		})
	}
	return dto
}

func toEssayDTO(p model.ContentPayload) remote.EssayDTO {
	likes := p.Item.LikeCount
	dto := remote.EssayDTO{
		ID:            p.Item.ID,
		Likes:         &likes,
		Liked:         p.Item.IsLiked,
		Title:         p.Item.Title,
		Content:       p.Item.Content,
		CreateTime:    p.Item.CreatedAt,
		Recommend:     p.Item.Recommend,
		EssayComments: make([]remote.EssayCommentDTO, 0, len(p.Comments)),
	}
	dto.User.Nickname = p.Item.AuthorNickname
	for _, c := range p.Comments {
		createdAt := c.CreatedAt
		ec := remote.EssayCommentDTO{
			ID:              c.ID,
			CreateTime:      &createdAt,
			ParentCommentID: wireParentID(c.ParentID),
			AdminComment:    c.IsAdminAuthor,
			Content:         c.Content,
		}
		ec.User.ID = c.Author.UserID
		ec.User.Nickname = c.Author.Nickname
		ec.User.Avatar = c.Author.Avatar
		dto.EssayComments = append(dto.EssayComments, ec)
	}
	return dto
}
