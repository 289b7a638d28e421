package constant

// 用户提示文案
const (
	MsgLoginToLike       = "请先登录后再点赞"
	MsgLoginToComment    = "请先登录后再评论"
	MsgLoginToReply      = "请先登录再回复"
	MsgLikeFailed        = "操作失败，请稍后再试"
	MsgEmptyComment      = "请输入评论内容"
	MsgCommentTooLong    = "评论内容不能超过%d字"
	MsgCommentSuccess    = "评论成功"
	MsgReplySuccess      = "回复成功"
	MsgCommentFailed     = "评论失败，请稍后再试"
	MsgNoDeletePerm      = "没有权限删除评论"
	MsgDeleteSuccess     = "删除成功"
	MsgDeleteFailed      = "删除失败，请稍后再试"
	MsgLoadFailed        = "获取内容失败"
	DefaultMaxCommentLen = 1000
)
