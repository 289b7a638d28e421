/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-08-11 18:38:27
 * @LastEditTime: 2026-10-17 10:02:15
 * @LastEditors: 安知鱼
 */
package auth

import "github.com/golang-jwt/jwt/v5"

// CustomClaims 定义了 JWT 的自定义 Claims 结构体
// UserID 和 UserGroupID 存储的是其公共 ID 字符串表示。
type CustomClaims struct {
	UserID      string `json:"user_id"`       // 用户公共ID
	UserGroupID string `json:"user_group_id"` // 用户组公共ID
	Nickname    string `json:"nickname"`
	Avatar      string `json:"avatar"`
	jwt.RegisteredClaims
}
