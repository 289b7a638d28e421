/*
 * @Description: 公共 ID 编解码，与服务端使用相同的 Sqids 字母表规则
 * @Author: 安知鱼
 * @Date: 2025-06-17 20:38:15
 * @LastEditTime: 2026-10-17 16:20:45
 * @LastEditors: 安知鱼
 */
package idgen

import (
	"errors"
	"fmt"
	mrand "math/rand"
	"sync"

	"github.com/sqids/sqids-go"

	"github.com/anzhiyu-c/anheyu-interact/pkg/constant"
)

// DefaultAlphabet 是默认的字母表
const DefaultAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// EntityType 定义了不同实体在生成公共 ID 时的类型标识，与服务端保持一致。
const (
	EntityTypeUser      uint64 = 1  // 用户实体的类型标识
	EntityTypeUserGroup uint64 = 4  // 用户组实体的类型标识
	EntityTypeComment   uint64 = 11 // 评论实体的类型标识
)

var errNotInitialized = errors.New("Sqids 编码器未初始化")

// Codec 把 (数据库ID, 实体类型) 编码为公共 ID
type Codec struct {
	sq *sqids.Sqids
}

// NewCodec 创建编解码器。seed 必须与服务端配置的 Auth.SqidsSeed 相同，
// 为空时使用默认字母表。
func NewCodec(seed string) (*Codec, error) {
	alphabet := DefaultAlphabet
	if seed != "" {
		alphabet = shuffleAlphabet(seed)
	}
	sq, err := sqids.New(sqids.Options{MinLength: 4, Alphabet: alphabet})
	if err != nil {
		return nil, fmt.Errorf("初始化 Sqids 编码器失败: %w", err)
	}
	return &Codec{sq: sq}, nil
}

// shuffleAlphabet 使用种子确定性地打乱字母表
func shuffleAlphabet(seed string) string {
	var seedInt int64
	for i, c := range seed {
		seedInt += int64(c) * int64(i+1)
	}
	r := mrand.New(mrand.NewSource(seedInt))

	alphabet := []rune(DefaultAlphabet)
	r.Shuffle(len(alphabet), func(i, j int) {
		alphabet[i], alphabet[j] = alphabet[j], alphabet[i]
	})
	return string(alphabet)
}

// Encode 编码公共 ID
func (c *Codec) Encode(dbID uint, entityType uint64) (string, error) {
	id, err := c.sq.Encode([]uint64{uint64(dbID), entityType})
	if err != nil {
		return "", fmt.Errorf("编码公共ID失败: %w", err)
	}
	return id, nil
}

// Decode 解码公共 ID 并校验实体类型，失败时返回的错误包装 constant.ErrInvalidPublicID
func (c *Codec) Decode(publicID string, want uint64) (uint, error) {
	numbers := c.sq.Decode(publicID)
	if len(numbers) != 2 {
		return 0, fmt.Errorf("%w: 期望2个数字，得到%d个", constant.ErrInvalidPublicID, len(numbers))
	}
	if numbers[1] != want {
		return 0, fmt.Errorf("%w: 公共ID '%s' 的实体类型为 %d，期望 %d", constant.ErrInvalidPublicID, publicID, numbers[1], want)
	}
	return uint(numbers[0]), nil
}

var (
	mu           sync.RWMutex
	defaultCodec *Codec
)

// InitSqidsEncoderWithSeed 初始化包级默认编解码器，JWT 和命令行共用
func InitSqidsEncoderWithSeed(seed string) error {
	c, err := NewCodec(seed)
	if err != nil {
		return err
	}
	mu.Lock()
	defaultCodec = c
	mu.Unlock()
	return nil
}

func current() (*Codec, error) {
	mu.RLock()
	defer mu.RUnlock()
	if defaultCodec == nil {
		return nil, errNotInitialized
	}
	return defaultCodec, nil
}

// GeneratePublicID 使用默认编解码器编码
func GeneratePublicID(dbID uint, entityType uint64) (string, error) {
	c, err := current()
	if err != nil {
		return "", err
	}
	return c.Encode(dbID, entityType)
}

// DecodePublicIDOfType 使用默认编解码器解码并校验实体类型
func DecodePublicIDOfType(publicID string, want uint64) (uint, error) {
	c, err := current()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", constant.ErrInvalidPublicID, err)
	}
	return c.Decode(publicID, want)
}
