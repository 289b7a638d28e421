package mockapi

import (
	"time"

	"github.com/anzhiyu-c/anheyu-interact/pkg/domain/model"
)

// 演示数据中的用户
var (
	DemoAdmin = model.Viewer{UserID: 1, Nickname: "安知鱼", UserGroupID: model.AdminUserGroupID}
	DemoUser  = model.Viewer{UserID: 2, Nickname: "小明", UserGroupID: 2}
)

const demoArticle = `# 开始之前

这是一篇用于演示目录导航的文章。

## 安装

执行安装命令。

## 配置

### 远程接口

填写 Remote.BaseURL。

### 缓存

可选的 Redis。

## 常见问题

没有更多了。
`

// SeedDemo 写入一篇文章、两条随笔以及几条评论，mock-server 命令和测试都使用它
func (s *Server) SeedDemo(now time.Time) {
	s.SeedUser(DemoAdmin)
	s.SeedUser(DemoUser)

	at := func(d time.Duration) time.Time { return now.Add(-d) }
	parent := func(id uint) *uint { return &id }
	admin := DemoAdmin.AsAuthor()
	user := DemoUser.AsAuthor()

	s.SeedContent(model.ContentItem{
		ID: 1, Kind: model.KindBlog, Title: "开始之前", Content: demoArticle,
		AuthorNickname: DemoAdmin.Nickname, CreatedAt: at(72 * time.Hour), LikeCount: 3,
	}, []model.Comment{
		{ID: 100, Author: user, Content: "写得很清楚", CreatedAt: at(3 * time.Hour)},
		{ID: 101, ParentID: parent(100), Author: admin, Content: "谢谢", IsAdminAuthor: true, CreatedAt: at(2 * time.Hour)},
		{ID: 102, ParentID: parent(101), Author: user, Content: "**期待**下一篇", CreatedAt: at(time.Hour)},
	})

	s.SeedContent(model.ContentItem{
		ID: 10, Kind: model.KindEssay, Content: "今天天气不错，出门走走。",
		AuthorNickname: DemoAdmin.Nickname, CreatedAt: at(48 * time.Hour), LikeCount: 1,
	}, nil)
	s.SeedContent(model.ContentItem{
		ID: 11, Kind: model.KindEssay, Content: "置顶：欢迎来到随笔。",
		AuthorNickname: DemoAdmin.Nickname, CreatedAt: at(96 * time.Hour), Recommend: true,
	}, []model.Comment{
		{ID: 200, Author: user, Content: "来了", CreatedAt: at(30 * time.Minute)},
	})
}
