/*
 * @Description: 智能缓存工厂，自动选择 Redis 或内存缓存
 * @Author: 安知鱼
 * @Date: 2025-10-05 00:00:00
 * @LastEditTime: 2026-10-17 09:36:48
 * @LastEditors: 安知鱼
 */
package utility

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

// RedisOptions 是创建 Redis 客户端所需的最小配置
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient 返回可用的 Redis 客户端，未配置或连接失败时返回 nil（用于自动降级）
func NewRedisClient(ctx context.Context, opts RedisOptions) *redis.Client {
	if opts.Addr == "" {
		log.Println("⚠️  Redis 地址未配置，将使用内存缓存")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️  连接 Redis (%s, DB %d) 失败: %v，将使用内存缓存", opts.Addr, opts.DB, err)
		rdb.Close()
		return nil
	}

	log.Printf("✅ 成功连接到 Redis (%s, DB %d)", opts.Addr, opts.DB)
	return rdb
}

// NewCacheServiceWithFallback 创建带有自动降级功能的缓存服务
// 如果 redisClient 为 nil，自动降级到内存缓存
func NewCacheServiceWithFallback(redisClient *redis.Client) CacheService {
	if redisClient == nil {
		log.Println("🔄 使用内存缓存服务（Memory Cache）")
		return NewMemoryCacheService()
	}

	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️  Redis 不可用: %v，降级到内存缓存", err)
		return NewMemoryCacheService()
	}

	log.Println("✅ 使用 Redis 缓存服务")
	return NewCacheService(redisClient)
}

// CacheServiceType 缓存服务类型
type CacheServiceType string

const (
	CacheTypeRedis  CacheServiceType = "redis"
	CacheTypeMemory CacheServiceType = "memory"
)

// GetCacheServiceType 获取当前使用的缓存类型
func GetCacheServiceType(svc CacheService) CacheServiceType {
	switch svc.(type) {
	case *redisCacheService:
		return CacheTypeRedis
	case *MemoryCache:
		return CacheTypeMemory
	default:
		return CacheTypeMemory
	}
}
