/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-06-27 12:08:15
 * @LastEditTime: 2026-10-17 09:41:02
 * @LastEditors: 安知鱼
 */
package constant

import "errors"

// 本地校验失败：在发起任何远程调用之前拒绝，状态不变
var (
	// ErrUnauthenticated 表示当前没有登录用户
	ErrUnauthenticated = errors.New("请先登录")

	// ErrForbidden 表示当前用户无权执行该操作（例如删除评论）
	ErrForbidden = errors.New("没有权限执行该操作")

	// ErrEmptyContent 表示评论内容为空
	ErrEmptyContent = errors.New("评论内容不能为空")

	// ErrContentTooLong 表示评论内容超过长度上限
	ErrContentTooLong = errors.New("评论内容超过长度上限")

	// ErrMutationPending 表示同一内容上已有进行中的点赞请求，本次操作被忽略
	ErrMutationPending = errors.New("操作进行中，请稍候")
)

// 状态与远程调用相关的错误
var (
	// ErrNotFound 表示内容或评论不在当前页面的状态中
	ErrNotFound = errors.New("资源未找到")

	// ErrInvalidAction 表示状态变更被拒绝，没有任何字段被修改
	ErrInvalidAction = errors.New("无效的状态变更")

	// ErrRemoteRejected 表示远程接口返回了非成功状态码
	ErrRemoteRejected = errors.New("远程接口拒绝了请求")

	// ErrTransport 表示网络或传输层失败
	ErrTransport = errors.New("网络请求失败")

	// ErrInvalidToken 表示无效的令牌
	ErrInvalidToken = errors.New("无效令牌")

	// ErrInvalidPublicID 表示无效的公共ID
	ErrInvalidPublicID = errors.New("无效的公共ID")
)

// IsLocalRejection 判断错误是否属于本地校验失败（未发起远程调用）
func IsLocalRejection(err error) bool {
	return errors.Is(err, ErrUnauthenticated) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrEmptyContent) ||
		errors.Is(err, ErrContentTooLong) ||
		errors.Is(err, ErrMutationPending)
}
