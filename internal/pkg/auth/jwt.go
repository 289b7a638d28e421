/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-06-28 00:21:55
 * @LastEditTime: 2026-10-17 10:05:41
 * @LastEditors: 安知鱼
 */
package auth

import (
	"fmt"
	"time"

	"github.com/anzhiyu-c/anheyu-interact/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-interact/pkg/idgen"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL Access Token 默认有效期
const DefaultTokenTTL = 15 * time.Minute

// GenerateToken 为给定用户生成一个新的 JWT Access Token
func GenerateToken(viewer model.Viewer, secretKey []byte, ttl time.Duration) (string, error) {
	if len(secretKey) == 0 {
		return "", fmt.Errorf("JWT Secret 不能为空")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	publicUserID, err := idgen.GeneratePublicID(viewer.UserID, idgen.EntityTypeUser)
	if err != nil {
		return "", fmt.Errorf("生成用户公共ID失败: %w", err)
	}

	publicUserGroupID, err := idgen.GeneratePublicID(viewer.UserGroupID, idgen.EntityTypeUserGroup)
	if err != nil {
		return "", fmt.Errorf("生成用户组公共ID失败: %w", err)
	}

	now := time.Now()
	claims := CustomClaims{
		UserID:      publicUserID,
		UserGroupID: publicUserGroupID,
		Nickname:    viewer.Nickname,
		Avatar:      viewer.Avatar,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "anheyu-interact",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey)
}

// ParseToken 解析 JWT Token
func ParseToken(tokenStr string, secretKey []byte) (*CustomClaims, error) {
	if len(secretKey) == 0 {
		return nil, fmt.Errorf("JWT Secret 不能为空")
	}

	claims := &CustomClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secretKey, nil
	})

	if err != nil {
		return nil, fmt.Errorf("解析token失败: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("无效或过期Token")
	}

	return claims, nil
}

// ViewerFromClaims 把 Claims 中的公共 ID 解码为当前用户信息
func ViewerFromClaims(claims *CustomClaims) (*model.Viewer, error) {
	userID, err := idgen.DecodePublicIDOfType(claims.UserID, idgen.EntityTypeUser)
	if err != nil {
		return nil, fmt.Errorf("解码用户ID失败: %w", err)
	}
	groupID, err := idgen.DecodePublicIDOfType(claims.UserGroupID, idgen.EntityTypeUserGroup)
	if err != nil {
		return nil, fmt.Errorf("解码用户组ID失败: %w", err)
	}
	return &model.Viewer{
		UserID:      userID,
		Nickname:    claims.Nickname,
		Avatar:      claims.Avatar,
		UserGroupID: groupID,
	}, nil
}
