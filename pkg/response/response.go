/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-06-15 12:16:18
 * @LastEditTime: 2026-10-16 23:02:47
 * @LastEditors: 安知鱼
 */
package response

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 是统一的API返回结构体，code 为 200 表示成功，其它任何值都表示失败
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Envelope 是客户端解码用的返回结构，data 延迟到确认成功后再解析
type Envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// OK 判断远程调用是否成功
func (e *Envelope) OK() bool {
	return e.Code == http.StatusOK
}

// Success 成功响应
func Success(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: message,
		Data:    data,
	})
}

// Fail 失败响应
func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

// FailInBody 失败响应，但 HTTP 状态码仍为 200，只通过 body 中的 code 区分。
// 部分旧接口采用这种方式，客户端必须同时兼容两种失败形式。
func FailInBody(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}
