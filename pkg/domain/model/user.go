// in internal/domain/model/user.go
package model

// 用户组公共ID中约定的管理员组
const AdminUserGroupID uint = 1

// Viewer 表示当前浏览页面的已登录用户
type Viewer struct {
	UserID      uint   `json:"user_id"`
	Nickname    string `json:"nickname"`
	Avatar      string `json:"avatar"`
	UserGroupID uint   `json:"user_group_id"`
}

// IsAdmin 是否为管理员，管理员可以删除评论
func (v *Viewer) IsAdmin() bool {
	return v != nil && v.UserGroupID == AdminUserGroupID
}

// AsAuthor 将当前用户转换为评论作者信息
func (v *Viewer) AsAuthor() Author {
	nickname := v.Nickname
	if nickname == "" {
		nickname = "匿名用户"
	}
	return Author{UserID: v.UserID, Nickname: nickname, Avatar: v.Avatar}
}
