/*
 * @Description: 缓存服务接口、Redis 实现以及 JSON 读写辅助
 * @Author: 安知鱼
 * @Date: 2025-06-20 15:17:47
 * @LastEditTime: 2026-10-17 16:02:19
 * @LastEditors: 安知鱼
 */
package utility

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheService 是内容加载服务使用的键值缓存。
// Get 在键不存在时返回空字符串和 nil 错误，Redis 和内存实现一致。
type CacheService interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, keys ...string) error
}

type redisCacheService struct {
	client *redis.Client
}

// NewCacheService 使用已连接的 Redis 客户端创建缓存服务
func NewCacheService(client *redis.Client) CacheService {
	return &redisCacheService{client: client}
}

func (s *redisCacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return s.client.Set(ctx, key, value, expiration).Err()
}

func (s *redisCacheService) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return val, err
}

func (s *redisCacheService) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// SetJSON 把 v 序列化为 JSON 后写入缓存
func SetJSON(ctx context.Context, svc CacheService, key string, v interface{}, expiration time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("序列化缓存 %s 失败: %w", key, err)
	}
	return svc.Set(ctx, key, string(raw), expiration)
}

// GetJSON 读取并反序列化缓存，未命中时返回 false 和 nil 错误
func GetJSON(ctx context.Context, svc CacheService, key string, out interface{}) (bool, error) {
	raw, err := svc.Get(ctx, key)
	if err != nil || raw == "" {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, fmt.Errorf("缓存 %s 数据损坏: %w", key, err)
	}
	return true, nil
}
